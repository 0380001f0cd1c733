package borrowing

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	borrowingService *Service
}

var success = map[string]string{"status": "success"}

func (h *handler) borrow(c echo.Context) error {
	ctx := c.Request().Context()

	params := BorrowPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	err := h.borrowingService.Borrow(ctx, BorrowInput{
		BookID:     int(params.BookID),
		Name:       params.Name,
		BorrowDate: params.BorrowDate,
		ReturnDate: params.ReturnDate,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, success))
}

func (h *handler) giveBack(c echo.Context) error {
	ctx := c.Request().Context()

	params := ReturnPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	if err := h.borrowingService.Return(ctx, int(params.BookID)); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, success))
}

func (h *handler) removeBorrowers(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := h.borrowingService.ClearAll(ctx); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, success))
}
