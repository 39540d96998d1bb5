package jobs

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/jobs/handlers"
	"github.com/rashikbuksh/Synaptech-Backend/jobs/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

type Handlers struct {
	Resources      *resources.Handlers
	PaymentHandler *handlers.PaymentHandler
}

func NewHandlers(repo repository.Repository) *Handlers {
	return &Handlers{
		Resources:      resources.NewHandlers(repo, Definitions(repo)...),
		PaymentHandler: handlers.NewPaymentHandler(services.NewPaymentService(repo, paymentList())),
	}
}

// RegisterRoutes wires job, job entry, serial and payment endpoints.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	resources.RegisterRoutes(app, h.Resources)

	group := app.Group("/v1")
	group.Get("/lib/job-payment/:job_uuid", h.PaymentHandler.ListByJob)
}
