package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Expense is an outgoing cost recorded by a principal. Expenses are private to
// the principal that recorded them.
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     string          `json:"userId"`
	ClientID    *uuid.UUID      `json:"clientId,omitempty"`
	ClientName  *string         `json:"clientName,omitempty"`
	Description string          `json:"expenseDetails"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ExpenseDate Date            `json:"expenseDate"`
	Status      ExpenseStatus   `json:"status"`
	ReceiptPath *string         `json:"receipt,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExpenseInput carries the writable fields of an expense
type ExpenseInput struct {
	ClientID    *uuid.UUID      `json:"clientId,omitempty"`
	ClientName  *string         `json:"clientName,omitempty" validate:"omitempty,max=255"`
	Description string          `json:"expenseDetails" validate:"required,max=1000"`
	Category    string          `json:"category" validate:"max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	ExpenseDate Date            `json:"expenseDate"`
	Status      ExpenseStatus   `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	Notes       *string         `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ExpenseRecord is the read-only view of an expense consumed by the report
// aggregator
type ExpenseRecord struct {
	ID          string
	OwnerID     string
	Description string
	Category    string
	Amount      decimal.Decimal
	OccurredOn  Date
	CreatedOn   time.Time
}

// Record projects an expense onto the aggregator's read model
func (e *Expense) Record() ExpenseRecord {
	return ExpenseRecord{
		ID:          e.ID.String(),
		OwnerID:     e.OwnerID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		OccurredOn:  e.ExpenseDate,
		CreatedOn:   e.CreatedAt,
	}
}

type ExpenseRepository interface {
	Create(ctx context.Context, expense *Expense) (*Expense, error)
	GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*Expense, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Expense, error)
	Update(ctx context.Context, expense *Expense) (*Expense, error)
	UpdateReceipt(ctx context.Context, ownerID string, id uuid.UUID, receiptPath *string) error
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}
