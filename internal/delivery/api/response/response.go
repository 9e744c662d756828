// Package response renders the JSON envelopes returned by the API.
package response

import (
	"net/http"

	domainerrors "vidtube/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []ErrorInfo `json:"errors"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code   string `json:"code"`             // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Detail string `json:"detail,omitempty"` // Additional context, never set for 5xx errors
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, SuccessResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error returns an error response. Details are dropped for 5xx errors.
func Error(c echo.Context, statusCode int, errorCode, message, detail string) error {
	if statusCode >= http.StatusInternalServerError {
		detail = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     []ErrorInfo{{Code: errorCode, Detail: detail}},
	})
}

// BindingError returns a binding error response
func BindingError(c echo.Context, message string) error {
	return Error(c, http.StatusBadRequest, domainerrors.ErrValidationFailed.ErrorCode(), message, "")
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}

// AppError renders an application error, or reports false when err is not one.
func AppError(c echo.Context, err error) (bool, error) {
	var appErr domainerrors.AppError
	if !errors.As(err, &appErr) {
		return false, nil
	}

	return true, Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
}
