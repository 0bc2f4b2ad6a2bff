package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID            uuid.UUID   `json:"id"`
	ClientID      *uuid.UUID  `json:"clientId,omitempty"`
	ClientName    string      `json:"clientName"`
	ServiceCost   json.Number `json:"serviceCost" swaggertype:"number"`
	PaidAmount    json.Number `json:"paidAmount" swaggertype:"number"`
	PendingAmount json.Number `json:"pendingAmount" swaggertype:"number"`
	PaymentDate   domain.Date `json:"paymentDate" swaggertype:"string" format:"date"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        string      `json:"status"`
	Currency      string      `json:"currency"`
	Notes         *string     `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func toPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		ClientID:      p.ClientID,
		ClientName:    p.ClientName,
		ServiceCost:   money(p.ServiceCost),
		PaidAmount:    money(p.PaidAmount),
		PendingAmount: money(p.PendingAmount),
		PaymentDate:   p.PaymentDate,
		PaymentMethod: p.PaymentMethod,
		Status:        string(p.Status),
		Currency:      p.Currency,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ListPayments godoc
// @Summary List payments
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PaymentResponse
// @Router /payments [get]
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	payments, err := h.paymentService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "list payments")
	}
	response := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		response[i] = toPaymentResponse(p)
	}
	return c.JSON(http.StatusOK, response)
}

// GetPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} PaymentResponse
// @Failure 404 {object} ProblemDetails
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	payment, err := h.paymentService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "get payment")
	}
	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// CreatePayment godoc
// @Summary Record a payment
// @Description pendingAmount defaults to serviceCost minus paidAmount; status is derived from the amounts when omitted
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.PaymentInput true "Payment"
// @Success 201 {object} PaymentResponse
// @Failure 400 {object} ProblemDetails
// @Router /payments [post]
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	var input domain.PaymentInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	payment, err := h.paymentService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err, "create payment")
	}
	return c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

// UpdatePayment godoc
// @Summary Update a payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body domain.PaymentInput true "Payment"
// @Success 200 {object} PaymentResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /payments/{id} [put]
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input domain.PaymentInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	payment, err := h.paymentService.Update(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err, "update payment")
	}
	return c.JSON(http.StatusOK, toPaymentResponse(payment))
}

// DeletePayment godoc
// @Summary Delete a payment
// @Tags payments
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /payments/{id} [delete]
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.paymentService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "delete payment")
	}
	return c.NoContent(http.StatusNoContent)
}
