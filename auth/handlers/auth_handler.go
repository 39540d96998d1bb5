package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	authErrors "github.com/rashikbuksh/Synaptech-Backend/auth/errors"
	"github.com/rashikbuksh/Synaptech-Backend/auth/models"
	"github.com/rashikbuksh/Synaptech-Backend/auth/services"
	"github.com/rashikbuksh/Synaptech-Backend/internal/pkg/log"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	resourceErrors "github.com/rashikbuksh/Synaptech-Backend/resources/errors"
	resourceModels "github.com/rashikbuksh/Synaptech-Backend/resources/models"
)

type AuthHandler struct {
	service services.AuthService
}

func NewAuthHandler(service services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signin issues an access token.
// Endpoints: POST /v1/signin, POST /v1/hr/user/login
func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	var fields map[string]interface{}
	if err := c.BodyParser(&fields); err != nil {
		return resourceErrors.HandleValidationError(c, "invalid request body")
	}
	if len(fields) == 0 {
		return resourceErrors.HandleServiceError(c, validation.ErrNoUpdates)
	}

	var req models.SigninRequest
	if err := c.BodyParser(&req); err != nil {
		return resourceErrors.HandleValidationError(c, "invalid request body")
	}
	if req.Email == "" && req.Pass == "" {
		return resourceErrors.HandleServiceError(c, resourceErrors.ErrNotFound)
	}

	resp, err := h.service.Signin(c.UserContext(), req)
	if err != nil {
		log.WarnWithContext(c.UserContext(), "signin %s: %v", req.Email, err)
		return authErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// GetCanAccess returns the access list of an auth user.
// Endpoint: GET /v1/hr/users/can-access/:uuid
func (h *AuthHandler) GetCanAccess(c *fiber.Ctx) error {
	canAccess, err := h.service.CanAccess(c.UserContext(), c.Params("uuid"))
	if err != nil {
		return authErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"can_access": canAccess})
}

// PatchCanAccess replaces the access list.
// Endpoint: PATCH /v1/hr/users/can-access/:uuid
func (h *AuthHandler) PatchCanAccess(c *fiber.Ctx) error {
	var body struct {
		CanAccess interface{} `json:"can_access"`
	}
	if err := c.BodyParser(&body); err != nil {
		return resourceErrors.HandleValidationError(c, "invalid request body")
	}
	label, err := h.service.SetCanAccess(c.UserContext(), c.Params("uuid"), body.CanAccess)
	if err != nil {
		return authErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(resourceModels.NewToast(resourceModels.ToastUpdate, label))
}

// PatchStatus enables or disables signin.
// Endpoint: PATCH /v1/hr/users/status/:uuid
func (h *AuthHandler) PatchStatus(c *fiber.Ctx) error {
	var body struct {
		Status interface{} `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return resourceErrors.HandleValidationError(c, "invalid request body")
	}
	label, err := h.service.SetStatus(c.UserContext(), c.Params("uuid"), body.Status)
	if err != nil {
		return authErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(resourceModels.NewToast(resourceModels.ToastUpdate, label))
}

// PatchPassword stores a new password.
// Endpoint: PATCH /v1/hr/users/password/:uuid
func (h *AuthHandler) PatchPassword(c *fiber.Ctx) error {
	var req models.PasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return resourceErrors.HandleValidationError(c, "invalid request body")
	}
	label, err := h.service.ChangePassword(c.UserContext(), c.Params("uuid"), req)
	if err != nil {
		return authErrors.HandleServiceError(c, err)
	}
	return c.Status(http.StatusOK).JSON(resourceModels.NewToast(resourceModels.ToastUpdate, label))
}
