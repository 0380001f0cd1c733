package descriptions

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers the description route on the API group.
func RegisterRoutesWithGroup(g *echo.Group, descriptionService *Service) {
	h := &handler{
		descriptionService: descriptionService,
	}

	g.GET("/description", h.get)
}
