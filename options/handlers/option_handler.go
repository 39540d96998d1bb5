package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/options/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources/errors"
)

type OptionHandler struct {
	service services.OptionService
}

func NewOptionHandler(service services.OptionService) *OptionHandler {
	return &OptionHandler{service: service}
}

// ValueLabel serves one dropdown source.
// Endpoint: GET /v1/other/<path>/value/label
func (h *OptionHandler) ValueLabel(option services.Option) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := h.service.ValueLabel(c.UserContext(), option)
		if err != nil {
			return errors.HandleServiceError(c, err)
		}
		return c.Status(http.StatusOK).JSON(rows)
	}
}
