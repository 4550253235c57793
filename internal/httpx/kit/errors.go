package kit

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"creme-menu/internal/menu"
	"creme-menu/internal/menuconfig"
)

// APIError is a structured application error with code and message.
type APIError struct {
	HTTPStatus int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string { return e.Message }

func NewAPIError(httpStatus int, code, msg string, details any) *APIError {
	return &APIError{HTTPStatus: httpStatus, Code: code, Message: msg, Details: details}
}

// Common helpers
func BadRequest(msg string, details any) error {
	return NewAPIError(http.StatusBadRequest, "E_INVALID_PARAM", msg, details)
}
func NotFound(msg string) error { return NewAPIError(http.StatusNotFound, "E_NOT_FOUND", msg, nil) }
func Conflict(msg string) error { return NewAPIError(http.StatusConflict, "E_CONFLICT", msg, nil) }
func InternalError(msg string, details any) error {
	return NewAPIError(http.StatusInternalServerError, "E_INTERNAL", msg, details)
}

// FromError maps domain errors to API errors. Unknown errors become 500s.
func FromError(err error) error {
	if err == nil {
		return nil
	}
	var ae *APIError
	var fe *fiber.Error
	if errors.As(err, &ae) || errors.As(err, &fe) {
		return err
	}
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return BadRequest("validation failed", TranslateErrors(ve))
	case errors.Is(err, menuconfig.ErrInvalidChoice),
		errors.Is(err, menuconfig.ErrInvalidName),
		errors.Is(err, menu.ErrInvalidID),
		errors.Is(err, menu.ErrMissingArgument),
		errors.Is(err, menu.ErrMissingURL):
		return BadRequest(err.Error(), nil)
	case errors.Is(err, menuconfig.ErrNotFound), errors.Is(err, menu.ErrNotFound):
		return NotFound(err.Error())
	case errors.Is(err, menuconfig.ErrConflict):
		return Conflict(err.Error())
	default:
		return InternalError("internal error", err.Error())
	}
}

// ErrorHandler returns a Fiber error handler that emits unified error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		// Fiber error
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{
				"code":       httpStatusToCode(fe.Code),
				"message":    fe.Message,
				"request_id": RequestID(c),
			})
		}

		// Application error
		var ae *APIError
		if errors.As(err, &ae) {
			return c.Status(ae.HTTPStatus).JSON(fiber.Map{
				"code":       ae.Code,
				"message":    ae.Message,
				"details":    ae.Details,
				"request_id": RequestID(c),
			})
		}

		// Fallback
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"code":       "E_INTERNAL",
			"message":    "Internal Server Error",
			"request_id": RequestID(c),
		})
	}
}

func httpStatusToCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "E_INVALID_PARAM"
	case http.StatusNotFound:
		return "E_NOT_FOUND"
	case http.StatusUnauthorized:
		return "E_UNAUTHORIZED"
	case http.StatusForbidden:
		return "E_FORBIDDEN"
	case http.StatusConflict:
		return "E_CONFLICT"
	case http.StatusTooManyRequests:
		return "E_RATE_LIMITED"
	default:
		if status >= 500 {
			return "E_INTERNAL"
		}
		return "E_UNKNOWN"
	}
}
