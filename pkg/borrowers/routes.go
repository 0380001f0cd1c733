package borrowers

import (
	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/store"
)

// RegisterRoutesWithGroup registers the borrower listing. Borrowers are only
// created by borrowing a book.
func RegisterRoutesWithGroup(g *echo.Group, s store.Store) {
	h := &handler{
		store: s,
	}

	g.GET("/borrower", h.list)
}
