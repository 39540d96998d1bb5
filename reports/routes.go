package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/reports/handlers"
	"github.com/rashikbuksh/Synaptech-Backend/reports/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources/repository"
)

type Handlers struct {
	ReportHandler *handlers.ReportHandler
}

func NewHandlers(repo repository.Repository) *Handlers {
	return &Handlers{ReportHandler: handlers.NewReportHandler(services.NewReportService(repo))}
}

// RegisterRoutes wires the job reports.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	group := app.Group("/v1")

	group.Get("/report/job/profit-summary", h.ReportHandler.ProfitSummary)
	group.Get("/lib/job-profit-summary", h.ReportHandler.ProfitSummary)
	group.Get("/report/job/product-database", h.ReportHandler.ProductDatabase)
}
