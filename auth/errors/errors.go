package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	resourceErrors "github.com/rashikbuksh/Synaptech-Backend/resources/errors"
)

// Auth service specific errors
var (
	ErrAccountDisabled = errors.New("account is disabled")
	ErrInvalidPassword = errors.New("invalid password")
)

// MessageResponse is the body of a rejected signin
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrMissingPassword rejects an empty password
var ErrMissingPassword = &validation.Error{Issues: []validation.Issue{{
	Code:    "required",
	Path:    []string{"pass"},
	Message: "Password is required",
}}}

// ErrWeakPassword rejects a password scored below the configured minimum
var ErrWeakPassword = &validation.Error{Issues: []validation.Issue{{
	Code:    "weak_password",
	Path:    []string{"pass"},
	Message: "Password is not strong enough",
}}}

// HandleServiceError maps auth errors; everything else is handled like any resource error
func HandleServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrAccountDisabled):
		return c.Status(http.StatusUnauthorized).JSON(MessageResponse{Message: "Account is disabled"})
	case errors.Is(err, ErrInvalidPassword):
		return c.Status(http.StatusUnauthorized).JSON(MessageResponse{Message: "Invalid password"})
	default:
		return resourceErrors.HandleServiceError(c, err)
	}
}
