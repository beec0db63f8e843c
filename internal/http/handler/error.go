package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"esignapi/internal/http/middleware"
	"esignapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError translates service sentinel errors into the standard
// error envelope. Unrecognized errors become opaque 500s.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrNotPDF):
		return writeError(c, fiber.StatusBadRequest, "NOT_A_PDF", "file is not a valid PDF")
	case errors.Is(err, service.ErrInvalidFieldType):
		return writeError(c, fiber.StatusBadRequest, "INVALID_FIELD_TYPE", "unknown field type")
	case errors.Is(err, service.ErrPageOutOfRange):
		return writeError(c, fiber.StatusBadRequest, "PAGE_OUT_OF_RANGE", "page number out of range")
	case errors.Is(err, service.ErrInvalidEmail):
		return writeError(c, fiber.StatusBadRequest, "INVALID_EMAIL", "invalid email address")
	case errors.Is(err, service.ErrInvalidTransition):
		return writeError(c, fiber.StatusConflict, "INVALID_TRANSITION", "illegal status transition")
	case errors.Is(err, service.ErrSignerMismatch):
		return writeError(c, fiber.StatusForbidden, "SIGNER_MISMATCH", "field not assigned to signer")
	case errors.Is(err, service.ErrValueRejected):
		return writeError(c, fiber.StatusUnprocessableEntity, "VALUE_REJECTED", "value fails field validation rule")
	case errors.Is(err, service.ErrMissingRequired):
		return writeError(c, fiber.StatusUnprocessableEntity, "MISSING_REQUIRED", "required field not filled")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
