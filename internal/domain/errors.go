package domain

import "errors"

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrClientEmailExists = errors.New("client email already exists")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrReceiptNotFound   = errors.New("expense has no receipt")
)

// Record source errors. A failure reading the record source is one of these two;
// anything else the source returns is wrapped as unavailable.
var (
	ErrRecordSourceUnavailable = errors.New("record source unavailable")
	ErrRecordAccessDenied      = errors.New("record source access denied")
)

// Validation constants
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
	DefaultCurrency      = "USD"
	DefaultCategory      = "Other"
)
