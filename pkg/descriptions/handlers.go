package descriptions

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/libgraph/libgraph/pkg/errcodes"
	"github.com/libgraph/libgraph/pkg/models"
	"github.com/pkg/errors"
)

type handler struct {
	descriptionService *Service
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Request().Context()

	params := GetDescriptionQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	kind, ok := models.ParseKind(params.Type)
	if !ok {
		return errcodes.ValidationError("Unsupported entity type " + params.Type + ".")
	}

	description, err := h.descriptionService.Get(ctx, kind, params.Name)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]string{"description": description}))
}
