package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// ProblemDetails is the body of every error response, shaped after RFC 7807.
// Message carries the human readable detail.
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Message  string            `json:"message"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation   = "https://backoffice.app/errors/validation"
	ErrorTypeNotFound     = "https://backoffice.app/errors/not-found"
	ErrorTypeUnauthorized = "https://backoffice.app/errors/unauthorized"
	ErrorTypeForbidden    = "https://backoffice.app/errors/forbidden"
	ErrorTypeConflict     = "https://backoffice.app/errors/conflict"
	ErrorTypeUnavailable  = "https://backoffice.app/errors/unavailable"
	ErrorTypeInternal     = "https://backoffice.app/errors/internal"
)

func problem(c echo.Context, status int, errType, title, message string, errs []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     errType,
		Title:    title,
		Status:   status,
		Message:  message,
		Instance: c.Request().URL.Path,
		Errors:   errs,
	})
}

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, message string, errs []ValidationError) error {
	return problem(c, http.StatusBadRequest, ErrorTypeValidation, "Validation Error", message, errs)
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, message string) error {
	return problem(c, http.StatusNotFound, ErrorTypeNotFound, "Not Found", message, nil)
}

// NewUnauthorizedError creates an unauthorized error response
func NewUnauthorizedError(c echo.Context, message string) error {
	return problem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, "Unauthorized", message, nil)
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, message string) error {
	return problem(c, http.StatusForbidden, ErrorTypeForbidden, "Forbidden", message, nil)
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, message string) error {
	return problem(c, http.StatusConflict, ErrorTypeConflict, "Conflict", message, nil)
}

// NewUnavailableError creates a service unavailable error response
func NewUnavailableError(c echo.Context, message string) error {
	return problem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Service Unavailable", message, nil)
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, message string) error {
	return problem(c, http.StatusInternalServerError, ErrorTypeInternal, "Internal Server Error", message, nil)
}

var notFoundErrors = []error{
	domain.ErrNotFound,
	domain.ErrExpenseNotFound,
	domain.ErrPaymentNotFound,
	domain.ErrClientNotFound,
	domain.ErrEmployeeNotFound,
	domain.ErrReceiptNotFound,
}

var receiptErrors = []error{
	service.ErrReceiptTooLarge,
	service.ErrInvalidReceiptFormat,
	service.ErrReceiptTooSmall,
	service.ErrInvalidReceiptData,
}

// respondError maps a service error onto its response. action names what failed
// in the log line and the 500 message.
func respondError(c echo.Context, err error, action string) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return NewUnauthorizedError(c, "Authentication required")
	case errors.Is(err, domain.ErrRecordAccessDenied):
		log.Warn().Err(err).Str("principal_id", principalID(c)).Msg("Record source denied access")
		return NewForbiddenError(c, "Access denied")
	case errors.Is(err, domain.ErrNegativeAmount), errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrClientEmailExists):
		return NewConflictError(c, "A client with this email already exists")
	case errors.Is(err, service.ErrReceiptStorageNotConfigured):
		return NewUnavailableError(c, "Receipt storage is not configured")
	}
	for _, target := range receiptErrors {
		if errors.Is(err, target) {
			return NewValidationError(c, err.Error(), []ValidationError{{Field: "file", Message: err.Error()}})
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return NewNotFoundError(c, capitalize(target.Error()))
		}
	}

	log.Error().Err(err).Str("principal_id", principalID(c)).Str("path", c.Path()).Msg("Failed to " + action)
	return NewInternalError(c, "Failed to "+action)
}

// money renders an amount as a JSON number with exactly two decimals
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func moneyPtr(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	m := money(*d)
	return &m
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
