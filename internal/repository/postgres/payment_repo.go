package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const paymentColumns = `id, client_id, client_name, service_cost, paid_amount, pending_amount,
	payment_date, payment_method, status, currency, notes, created_at, updated_at`

// PaymentRepository implements domain.PaymentRepository using PostgreSQL
type PaymentRepository struct {
	base
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db querier, timeout time.Duration) *PaymentRepository {
	return &PaymentRepository{base: newBase(db, timeout)}
}

// Create inserts a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	amounts, err := paymentAmounts(payment)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO payments (id, client_id, client_name, service_cost, paid_amount, pending_amount,
			payment_date, payment_method, status, currency, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+paymentColumns,
		payment.ID, payment.ClientID, payment.ClientName, amounts[0], amounts[1], amounts[2],
		dateToPg(payment.PaymentDate), payment.PaymentMethod, string(payment.Status),
		payment.Currency, stringPtrToPgText(payment.Notes),
	)
	created, err := scanPayment(row)
	if err != nil {
		return nil, mapError(err, domain.ErrPaymentNotFound)
	}
	return created, nil
}

// GetByID retrieves a payment by its ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, mapError(err, domain.ErrPaymentNotFound)
	}
	return payment, nil
}

// List retrieves every payment, newest first
func (r *PaymentRepository) List(ctx context.Context) ([]*domain.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY created_at DESC`)
	if err != nil {
		return nil, mapError(err, domain.ErrPaymentNotFound)
	}

	payments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		return scanPayment(row)
	})
	if err != nil {
		return nil, mapError(err, domain.ErrPaymentNotFound)
	}
	return payments, nil
}

// Update overwrites the writable fields of a payment
func (r *PaymentRepository) Update(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	amounts, err := paymentAmounts(payment)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(ctx, `
		UPDATE payments
		SET client_id = $2, client_name = $3, service_cost = $4, paid_amount = $5,
			pending_amount = $6, payment_date = $7, payment_method = $8, status = $9,
			currency = $10, notes = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING `+paymentColumns,
		payment.ID, payment.ClientID, payment.ClientName, amounts[0], amounts[1], amounts[2],
		dateToPg(payment.PaymentDate), payment.PaymentMethod, string(payment.Status),
		payment.Currency, stringPtrToPgText(payment.Notes),
	)
	updated, err := scanPayment(row)
	if err != nil {
		return nil, mapError(err, domain.ErrPaymentNotFound)
	}
	return updated, nil
}

// Delete removes a payment
func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrPaymentNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// paymentAmounts converts service cost, paid and pending amounts in that order
func paymentAmounts(p *domain.Payment) ([3]pgtype.Numeric, error) {
	var out [3]pgtype.Numeric
	var err error
	if out[0], err = decimalToPgNumeric(p.ServiceCost); err != nil {
		return out, fmt.Errorf("invalid service cost: %w", err)
	}
	if out[1], err = decimalToPgNumeric(p.PaidAmount); err != nil {
		return out, fmt.Errorf("invalid paid amount: %w", err)
	}
	if out[2], err = decimalToPgNumeric(p.PendingAmount); err != nil {
		return out, fmt.Errorf("invalid pending amount: %w", err)
	}
	return out, nil
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p             domain.Payment
		clientID      pgtype.UUID
		serviceCost   pgtype.Numeric
		paidAmount    pgtype.Numeric
		pendingAmount pgtype.Numeric
		paymentDate   pgtype.Date
		status        string
		notes         pgtype.Text
	)
	err := row.Scan(&p.ID, &clientID, &p.ClientName, &serviceCost, &paidAmount, &pendingAmount,
		&paymentDate, &p.PaymentMethod, &status, &p.Currency, &notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	p.ClientID = pgUUIDToPtr(clientID)
	p.ServiceCost = pgNumericToDecimal(serviceCost)
	p.PaidAmount = pgNumericToDecimal(paidAmount)
	p.PendingAmount = pgNumericToDecimal(pendingAmount)
	p.PaymentDate = pgDateToDomain(paymentDate)
	p.Status = domain.PaymentStatus(status)
	p.Notes = pgTextToStringPtr(notes)
	return &p, nil
}
