package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		errType string
		message string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, ErrorTypeUnauthorized, "Authentication required"},
		{"access denied", fmt.Errorf("list expenses: %w", domain.ErrRecordAccessDenied), http.StatusForbidden, ErrorTypeForbidden, "Access denied"},
		{"negative amount", fmt.Errorf("%w: amount", domain.ErrNegativeAmount), http.StatusBadRequest, ErrorTypeValidation, "amount must not be negative: amount"},
		{"invalid input", fmt.Errorf("%w: description is required", domain.ErrInvalidInput), http.StatusBadRequest, ErrorTypeValidation, ""},
		{"duplicate email", domain.ErrClientEmailExists, http.StatusConflict, ErrorTypeConflict, "A client with this email already exists"},
		{"storage disabled", service.ErrReceiptStorageNotConfigured, http.StatusServiceUnavailable, ErrorTypeUnavailable, "Receipt storage is not configured"},
		{"receipt too small", service.ErrReceiptTooSmall, http.StatusBadRequest, ErrorTypeValidation, ""},
		{"payment not found", domain.ErrPaymentNotFound, http.StatusNotFound, ErrorTypeNotFound, "Payment not found"},
		{"source unavailable", fmt.Errorf("count clients: %w", domain.ErrRecordSourceUnavailable), http.StatusInternalServerError, ErrorTypeInternal, "Failed to do the thing"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ErrorTypeInternal, "Failed to do the thing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(newTestEcho(), http.MethodGet, "/api/v1/anything", nil, testPrincipal)
			require.NoError(t, respondError(c, tt.err, "do the thing"))

			assert.Equal(t, tt.status, rec.Code)
			problem := decodeProblem(t, rec)
			assert.Equal(t, tt.status, problem.Status)
			assert.Equal(t, tt.errType, problem.Type)
			assert.Equal(t, "/api/v1/anything", problem.Instance)
			if tt.message != "" {
				assert.Equal(t, tt.message, problem.Message)
			}
		})
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "0.00", string(money(decimal.Zero)))
	assert.Equal(t, "12.30", string(money(decimal.RequireFromString("12.3"))))
	assert.Equal(t, "-0.50", string(money(decimal.RequireFromString("-0.5"))))
	assert.Equal(t, "1.01", string(money(decimal.RequireFromString("1.005"))))
	assert.Nil(t, moneyPtr(nil))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "Expense not found", capitalize("expense not found"))
}
