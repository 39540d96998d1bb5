package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/jobs/services"
	"github.com/rashikbuksh/Synaptech-Backend/resources/errors"
)

type PaymentHandler struct {
	service services.PaymentService
}

func NewPaymentHandler(service services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// ListByJob returns the payments of one job.
// Endpoint: GET /v1/lib/job-payment/:job_uuid
func (h *PaymentHandler) ListByJob(c *fiber.Ctx) error {
	rows, err := h.service.ListByJob(c.UserContext(), c.Params("job_uuid"))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(rows)
}
