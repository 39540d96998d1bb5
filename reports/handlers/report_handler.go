package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/reports/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	resourceHandlers "github.com/rashikbuksh/Synaptech-Backend/resources/handlers"
)

type ReportHandler struct {
	service services.ReportService
}

func NewReportHandler(service services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// ProfitSummary returns revenue, cost and expenses per job.
// Endpoint: GET /v1/report/job/profit-summary
func (h *ReportHandler) ProfitSummary(c *fiber.Ctx) error {
	params, err := qb.ParseParams(resourceHandlers.QueryValues(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	rows, err := h.service.ProfitSummary(c.UserContext(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(rows)
}

// ProductDatabase returns every sold product with its serial and warranty.
// Endpoint: GET /v1/report/job/product-database
func (h *ReportHandler) ProductDatabase(c *fiber.Ctx) error {
	params, err := qb.ParseParams(resourceHandlers.QueryValues(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	rows, err := h.service.ProductDatabase(c.UserContext(), params)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(rows)
}
