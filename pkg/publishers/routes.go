package publishers

import (
	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/store"
)

func RegisterRoutesWithGroup(g *echo.Group, s store.Store) {
	h := &handler{
		store: s,
	}

	g.GET("/publisher", h.list)
}
