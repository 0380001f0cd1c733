package borrowers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/pkg/errors"
)

type handler struct {
	store store.Store
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBorrowersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	borrowers, err := h.store.ListBorrowers(ctx, store.Filter{Name: params.Name})
	if err != nil {
		return errcodes.StoreError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, borrowers))
}
