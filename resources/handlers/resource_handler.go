package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/internal/pkg/log"
	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
	"github.com/rashikbuksh/Synaptech-Backend/resources/services"
)

type ResourceHandler struct {
	service services.Service
}

func NewResourceHandler(service services.Service) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// Definition returns the resource served by the handler
func (h *ResourceHandler) Definition() *models.Definition {
	return h.service.Definition()
}

// List returns the composed rows.
// Endpoint: GET /v1/<path>?q=&page=&limit=&sort=&orderby=&search_field=&search_value=
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	params, err := qb.ParseParams(QueryValues(c))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}

	rows, err := h.service.List(c.UserContext(), params)
	if err != nil {
		log.ErrorWithContext(c.UserContext(), "list %s: %v", h.Definition().Path, err)
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(rows)
}

// Get returns one row.
// Endpoint: GET /v1/<path>/:key
func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	row, err := h.service.Get(c.UserContext(), c.Params(h.Definition().KeyColumn()))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(row)
}

// Create inserts one row, or several when the resource accepts a JSON array.
// Endpoint: POST /v1/<path>
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	if h.Definition().BulkCreate && isArray(c.Body()) {
		var payloads []map[string]interface{}
		if err := c.BodyParser(&payloads); err != nil {
			return errors.HandleValidationError(c, "invalid request body")
		}
		n, err := h.service.CreateMany(c.UserContext(), payloads)
		if err != nil {
			return errors.HandleServiceError(c, err)
		}
		return c.Status(http.StatusOK).JSON(models.Toast{
			ToastType: models.ToastCreate,
			Message:   fmt.Sprintf("%d records created successfully", n),
		})
	}

	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return errors.HandleValidationError(c, "invalid request body")
	}

	label, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		log.ErrorWithContext(c.UserContext(), "create %s: %v", h.Definition().Path, err)
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.NewToast(models.ToastCreate, label))
}

// Update applies a partial row.
// Endpoint: PATCH /v1/<path>/:key
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	var payload map[string]interface{}
	if len(bytes.TrimSpace(c.Body())) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return errors.HandleValidationError(c, "invalid request body")
		}
	}

	label, err := h.service.Update(c.UserContext(), c.Params(h.Definition().KeyColumn()), payload)
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.NewToast(models.ToastUpdate, label))
}

// Delete removes a row.
// Endpoint: DELETE /v1/<path>/:key
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	label, err := h.service.Delete(c.UserContext(), c.Params(h.Definition().KeyColumn()))
	if err != nil {
		return errors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(models.NewToast(models.ToastDelete, label))
}

// QueryValues copies the request query string into url.Values
func QueryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

func isArray(body []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(body), []byte("["))
}
