package service

import (
	"context"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PaymentService handles payment business logic. Payments are shared: any
// authenticated principal may read and write every payment.
type PaymentService struct {
	notifier
	paymentRepo domain.PaymentRepository
	clientRepo  domain.ClientRepository
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo domain.PaymentRepository, clientRepo domain.ClientRepository) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
	}
}

// List returns every payment, newest first
func (s *PaymentService) List(ctx context.Context) ([]*domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

// Get returns a payment by ID
func (s *PaymentService) Get(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	return s.paymentRepo.GetByID(ctx, id)
}

// Create records a new payment
func (s *PaymentService) Create(ctx context.Context, input domain.PaymentInput) (*domain.Payment, error) {
	payment := &domain.Payment{ID: uuid.New()}
	if err := s.apply(ctx, payment, input); err != nil {
		return nil, err
	}

	created, err := s.paymentRepo.Create(ctx, payment)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create payment")
		return nil, err
	}

	s.notifyAll(websocket.EventTypeCreated, websocket.EntityTypePayment, created)
	return created, nil
}

// Update replaces the writable fields of a payment
func (s *PaymentService) Update(ctx context.Context, id uuid.UUID, input domain.PaymentInput) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, payment, input); err != nil {
		return nil, err
	}

	updated, err := s.paymentRepo.Update(ctx, payment)
	if err != nil {
		log.Error().Err(err).Str("payment_id", id.String()).Msg("Failed to update payment")
		return nil, err
	}

	s.notifyAll(websocket.EventTypeUpdated, websocket.EntityTypePayment, updated)
	return updated, nil
}

// Delete removes a payment
func (s *PaymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.paymentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyAll(websocket.EventTypeDeleted, websocket.EntityTypePayment, websocket.DeletedPayload{ID: id.String()})
	return nil
}

func (s *PaymentService) apply(ctx context.Context, payment *domain.Payment, input domain.PaymentInput) error {
	if err := nonNegative("service cost", input.ServiceCost); err != nil {
		return err
	}
	if err := nonNegative("paid amount", input.PaidAmount); err != nil {
		return err
	}
	pending := PendingAmount(input.ServiceCost, input.PaidAmount)
	if input.PendingAmount != nil {
		if err := nonNegative("pending amount", *input.PendingAmount); err != nil {
			return err
		}
		pending = *input.PendingAmount
	}

	method, err := requireText("payment method", input.PaymentMethod, 64)
	if err != nil {
		return err
	}
	notes, err := optionalText("notes", input.Notes, domain.MaxDescriptionLength)
	if err != nil {
		return err
	}
	if input.PaymentDate.IsZero() {
		return invalid("payment date is required")
	}
	currency, err := currencyOrDefault(input.Currency)
	if err != nil {
		return err
	}

	clientName, err := resolveClientName(ctx, s.clientRepo, input.ClientID, &input.ClientName)
	if err != nil {
		return err
	}
	if clientName == nil {
		return invalid("client name is required")
	}

	payment.ClientID = input.ClientID
	payment.ClientName = *clientName
	payment.ServiceCost = input.ServiceCost
	payment.PaidAmount = input.PaidAmount
	payment.PendingAmount = pending
	payment.PaymentDate = input.PaymentDate
	payment.PaymentMethod = method
	payment.Status = input.Status
	if payment.Status == "" {
		payment.Status = DerivePaymentStatus(input.ServiceCost, input.PaidAmount)
	}
	payment.Currency = currency
	payment.Notes = notes
	return nil
}

// PendingAmount is what is still owed on a service, never below zero
func PendingAmount(serviceCost, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(serviceCost.Sub(paid), decimal.Zero)
}

// DerivePaymentStatus picks a status from the amounts when the caller gives none
func DerivePaymentStatus(serviceCost, paid decimal.Decimal) domain.PaymentStatus {
	switch {
	case paid.IsPositive() && paid.GreaterThanOrEqual(serviceCost):
		return domain.PaymentStatusCompleted
	case paid.IsPositive():
		return domain.PaymentStatusPartial
	default:
		return domain.PaymentStatusPending
	}
}
