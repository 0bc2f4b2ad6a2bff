package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusOverdue   PaymentStatus = "overdue"
)

// Payment is money owed or received from a client. Payments are shared by every
// principal of the installation.
type Payment struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      *uuid.UUID      `json:"clientId,omitempty"`
	ClientName    string          `json:"clientName"`
	ServiceCost   decimal.Decimal `json:"serviceCost"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	PaymentDate   Date            `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        PaymentStatus   `json:"status"`
	Currency      string          `json:"currency"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// PaymentInput carries the writable fields of a payment. A nil PendingAmount is
// derived from the service cost.
type PaymentInput struct {
	ClientID      *uuid.UUID       `json:"clientId,omitempty"`
	ClientName    string           `json:"clientName" validate:"required_without=ClientID,max=255"`
	ServiceCost   decimal.Decimal  `json:"serviceCost"`
	PaidAmount    decimal.Decimal  `json:"paidAmount"`
	PendingAmount *decimal.Decimal `json:"pendingAmount,omitempty"`
	PaymentDate   Date             `json:"paymentDate"`
	PaymentMethod string           `json:"paymentMethod" validate:"required,max=64"`
	Status        PaymentStatus    `json:"status" validate:"omitempty,oneof=completed partial pending overdue"`
	Currency      string           `json:"currency" validate:"omitempty,len=3"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// PaymentRecord is the read-only view of a payment consumed by the report
// aggregator
type PaymentRecord struct {
	ID            string
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	OccurredOn    Date
	ClientLabel   string
	CreatedOn     time.Time
}

// Record projects a payment onto the aggregator's read model
func (p *Payment) Record() PaymentRecord {
	return PaymentRecord{
		ID:            p.ID.String(),
		PaidAmount:    p.PaidAmount,
		PendingAmount: p.PendingAmount,
		OccurredOn:    p.PaymentDate,
		ClientLabel:   p.ClientName,
		CreatedOn:     p.CreatedAt,
	}
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) (*Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	List(ctx context.Context) ([]*Payment, error)
	Update(ctx context.Context, payment *Payment) (*Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
