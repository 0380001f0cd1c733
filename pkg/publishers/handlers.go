package publishers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/libgraph/libgraph/pkg/store"
	"github.com/pkg/errors"
)

type handler struct {
	store store.Store
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListPublishersQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publishers, err := h.store.ListEntities(ctx, models.KindPublisher, store.Filter{ID: params.ID})
	if err != nil {
		return errcodes.StoreError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, publishers))
}
