// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/pencil-api/internal/domain"
	"github.com/jsamuelsen/pencil-api/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details holds field-level messages for validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// Error codes for machine-readable error identification.
const (
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeConflict   = "CONFLICT"
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeBadRequest = "BAD_REQUEST"
	ErrorCodeInternal   = "INTERNAL_ERROR"
	ErrorCodeTimeout    = "TIMEOUT"
	ErrorCodeTooLarge   = "PAYLOAD_TOO_LARGE"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with field details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	resp := NewErrorResponse(code, message)
	resp.Error.Details = details

	return resp
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to a status code and error envelope.
// Storage and unknown errors become a generic 500 so paths and causes stay
// in the logs.
func MapDomainError(err error) (int, *ErrorResponse) {
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsAlreadyExists(err):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// GetTraceID returns the id a client can quote when reporting an error:
// the OpenTelemetry trace id, else a "trace_id" context value, else the
// X-Request-ID header.
func GetTraceID(c *gin.Context) string {
	if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.HasTraceID() {
		return sc.TraceID().String()
	}

	if id, ok := c.Get("trace_id"); ok {
		s, _ := id.(string)
		return s
	}

	return c.GetHeader("X-Request-ID")
}

// HandleError writes the envelope for err. Internal errors are logged with
// their full cause.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "internal error",
			slog.Any("error", err),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// HandleBindError writes the response for a body that failed to bind or
// validate: 413 when it exceeded the server's size limit, 400 otherwise.
func HandleBindError(c *gin.Context, err error) {
	var (
		resp     *ErrorResponse
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.As(err, &tooLarge):
		resp = NewErrorResponse(ErrorCodeTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case IsValidationError(err):
		resp = NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", ValidationErrors(err))
	default:
		resp = NewErrorResponse(ErrorCodeBadRequest, "malformed request body")
	}

	resp.TraceID = GetTraceID(c)
	c.JSON(HTTPStatusFromCode(resp.Error.Code), resp)
}

// RespondWithErrorCode writes an envelope for an adapter-level error.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message)
	resp.TraceID = GetTraceID(c)

	c.JSON(HTTPStatusFromCode(code), resp)
}

// AbortWithErrorCode is RespondWithErrorCode for middleware that must stop
// the chain.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	resp := NewErrorResponse(code, message)
	resp.TraceID = GetTraceID(c)

	c.AbortWithStatusJSON(HTTPStatusFromCode(code), resp)
}
