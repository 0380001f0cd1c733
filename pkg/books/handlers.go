package books

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

// list returns every book, or the single book matching id, joined with the
// names of its author, publisher, genre and current borrower.
func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.store.GetBooks(ctx, store.Filter{ID: params.ID})
	if err != nil {
		return errcodes.StoreError(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, books))
}
