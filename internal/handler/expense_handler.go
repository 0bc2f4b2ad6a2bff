package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExpenseHandler handles expense and receipt HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
	receiptService *service.ReceiptService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService, receiptService *service.ReceiptService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		receiptService: receiptService,
	}
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID             uuid.UUID   `json:"id"`
	UserID         string      `json:"userId"`
	ClientID       *uuid.UUID  `json:"clientId,omitempty"`
	ClientName     *string     `json:"clientName,omitempty"`
	ExpenseDetails string      `json:"expenseDetails"`
	Category       string      `json:"category"`
	Amount         json.Number `json:"amount" swaggertype:"number"`
	Currency       string      `json:"currency"`
	ExpenseDate    domain.Date `json:"expenseDate" swaggertype:"string" format:"date"`
	Status         string      `json:"status"`
	HasReceipt     bool        `json:"hasReceipt"`
	Notes          *string     `json:"notes,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func toExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:             e.ID,
		UserID:         e.OwnerID,
		ClientID:       e.ClientID,
		ClientName:     e.ClientName,
		ExpenseDetails: e.Description,
		Category:       e.Category,
		Amount:         money(e.Amount),
		Currency:       e.Currency,
		ExpenseDate:    e.ExpenseDate,
		Status:         string(e.Status),
		HasReceipt:     e.ReceiptPath != nil,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ListExpenses godoc
// @Summary List the caller's expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExpenseResponse
// @Failure 401 {object} ProblemDetails
// @Router /expenses [get]
func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	expenses, err := h.expenseService.List(c.Request().Context(), principalID(c))
	if err != nil {
		return respondError(c, err, "list expenses")
	}
	response := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		response[i] = toExpenseResponse(e)
	}
	return c.JSON(http.StatusOK, response)
}

// GetExpense godoc
// @Summary Get one of the caller's expenses
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} ExpenseResponse
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	expense, err := h.expenseService.Get(c.Request().Context(), principalID(c), id)
	if err != nil {
		return respondError(c, err, "get expense")
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// CreateExpense godoc
// @Summary Record an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.ExpenseInput true "Expense"
// @Success 201 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Router /expenses [post]
func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var input domain.ExpenseInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	expense, err := h.expenseService.Create(c.Request().Context(), principalID(c), input)
	if err != nil {
		return respondError(c, err, "create expense")
	}
	return c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

// UpdateExpense godoc
// @Summary Update one of the caller's expenses
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param request body domain.ExpenseInput true "Expense"
// @Success 200 {object} ExpenseResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input domain.ExpenseInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	expense, err := h.expenseService.Update(c.Request().Context(), principalID(c), id, input)
	if err != nil {
		return respondError(c, err, "update expense")
	}
	return c.JSON(http.StatusOK, toExpenseResponse(expense))
}

// DeleteExpense godoc
// @Summary Delete one of the caller's expenses
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.expenseService.Delete(c.Request().Context(), principalID(c), id); err != nil {
		return respondError(c, err, "delete expense")
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadReceipt godoc
// @Summary Attach a receipt image to an expense
// @Tags expenses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Param file formData file true "JPEG, PNG or WebP image"
// @Success 201 {object} service.ReceiptLinks
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /expenses/{id}/receipt [post]
func (h *ExpenseHandler) UploadReceipt(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if !h.receiptService.IsEnabled() {
		return respondError(c, service.ErrReceiptStorageNotConfigured, "upload receipt")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{{Field: "file", Message: "Is required"}})
	}
	if file.Size > service.MaxReceiptSize {
		return respondError(c, service.ErrReceiptTooLarge, "upload receipt")
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, err, "read receipt")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxReceiptSize+1))
	if err != nil {
		return respondError(c, err, "read receipt")
	}

	links, err := h.receiptService.Attach(c.Request().Context(), principalID(c), id, data, file.Filename)
	if err != nil {
		return respondError(c, err, "upload receipt")
	}
	return c.JSON(http.StatusCreated, links)
}

// GetReceipt godoc
// @Summary Presigned links to an expense's receipt
// @Tags expenses
// @Produce json
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 200 {object} service.ReceiptLinks
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id}/receipt [get]
func (h *ExpenseHandler) GetReceipt(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	links, err := h.receiptService.Links(c.Request().Context(), principalID(c), id)
	if err != nil {
		return respondError(c, err, "get receipt")
	}
	return c.JSON(http.StatusOK, links)
}

// DeleteReceipt godoc
// @Summary Remove an expense's receipt
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /expenses/{id}/receipt [delete]
func (h *ExpenseHandler) DeleteReceipt(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.receiptService.Detach(c.Request().Context(), principalID(c), id); err != nil {
		return respondError(c, err, "delete receipt")
	}
	return c.NoContent(http.StatusNoContent)
}
