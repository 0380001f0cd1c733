package borrowing

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutesWithGroup registers the loan routes on the API group.
func RegisterRoutesWithGroup(g *echo.Group, borrowingService *Service) {
	h := &handler{
		borrowingService: borrowingService,
	}

	g.POST("/borrow", h.borrow)
	g.POST("/return", h.giveBack)
	g.POST("/removeBorrowers", h.removeBorrowers)
}
