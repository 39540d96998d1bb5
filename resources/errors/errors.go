package errors

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	qb "github.com/rashikbuksh/Synaptech-Backend/internal/querybuilder"
	"github.com/rashikbuksh/Synaptech-Backend/internal/validation"
	"github.com/rashikbuksh/Synaptech-Backend/resources/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrInvalidKey     = errors.New("invalid key")
)

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInvalidColumn  = "INVALID_COLUMN"
	CodeInvalidKey     = "INVALID_KEY"
	CodeInternalError  = "INTERNAL_ERROR"
)

// ValidationErrorName is reported in the body of every 422 response
const ValidationErrorName = "ValidationError"

type ErrorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ValidationBody is the 422 response body
type ValidationBody struct {
	Success bool            `json:"success"`
	Error   ValidationIssue `json:"error"`
}

type ValidationIssue struct {
	Issues []validation.Issue `json:"issues"`
	Name   string             `json:"name"`
}

func HandleServiceError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if verr, ok := validation.AsError(err); ok {
		return HandleValidationFailure(c, verr)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return HandleNotFound(c)
	case errors.Is(err, qb.ErrInvalidColumn):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidColumn, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, qb.ErrInvalidParams), errors.Is(err, ErrInvalidRequest):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: err.Error(), Details: err.Error()})
	case errors.Is(err, ErrInvalidKey):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidKey, Message: err.Error(), Details: err.Error()})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{Code: CodeInternalError, Message: "An unexpected error occurred", Details: err.Error()})
	}
}

func HandleNotFound(c *fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(models.Toast{ToastType: models.ToastNotFound, Message: "Not Found"})
}

func HandleValidationFailure(c *fiber.Ctx, verr *validation.Error) error {
	return c.Status(http.StatusUnprocessableEntity).JSON(ValidationBody{
		Success: false,
		Error:   ValidationIssue{Issues: verr.Issues, Name: ValidationErrorName},
	})
}

func HandleValidationError(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{Code: CodeInvalidRequest, Message: message, Details: message})
}
