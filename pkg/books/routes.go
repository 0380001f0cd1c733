package books

import (
	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/store"
)

func RegisterRoutesWithGroup(g *echo.Group, s store.Store) {
	h := &handler{
		store: s,
	}

	g.GET("/books", h.list)
}
