package options

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/options/handlers"
	"github.com/rashikbuksh/Synaptech-Backend/options/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

type Handlers struct {
	OptionHandler *handlers.OptionHandler
}

func NewHandlers(repo repository.Repository) *Handlers {
	return &Handlers{OptionHandler: handlers.NewOptionHandler(services.NewOptionService(repo))}
}

// RegisterRoutes wires the value/label endpoints under /v1/other.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	group := app.Group("/v1/other")
	for _, option := range services.Options() {
		group.Get("/"+option.Path+"/value/label", h.OptionHandler.ValueLabel(option))
	}
}
