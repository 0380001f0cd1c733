package authors

import (
	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/store"
)

// RegisterRoutesWithGroup registers the author listing on the API group.
func RegisterRoutesWithGroup(g *echo.Group, s store.Store) {
	h := &handler{
		store: s,
	}

	g.GET("/author", h.list)
}
