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

const expenseColumns = `id, owner_id, client_id, client_name, description, category, amount,
	currency, expense_date, status, receipt_path, notes, created_at, updated_at`

// ExpenseRepository implements domain.ExpenseRepository using PostgreSQL
type ExpenseRepository struct {
	base
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db querier, timeout time.Duration) *ExpenseRepository {
	return &ExpenseRepository{base: newBase(db, timeout)}
}

// Create inserts a new expense
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO expenses (id, owner_id, client_id, client_name, description, category, amount,
			currency, expense_date, status, receipt_path, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+expenseColumns,
		expense.ID, expense.OwnerID, expense.ClientID, stringPtrToPgText(expense.ClientName),
		expense.Description, expense.Category, amount, expense.Currency,
		dateToPg(expense.ExpenseDate), string(expense.Status),
		stringPtrToPgText(expense.ReceiptPath), stringPtrToPgText(expense.Notes),
	)
	created, err := scanExpense(row)
	if err != nil {
		return nil, mapError(err, domain.ErrExpenseNotFound)
	}
	return created, nil
}

// GetByID retrieves an expense by its ID within the owner's expenses
func (r *ExpenseRepository) GetByID(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Expense, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE owner_id = $1 AND id = $2`,
		ownerID, id)
	expense, err := scanExpense(row)
	if err != nil {
		return nil, mapError(err, domain.ErrExpenseNotFound)
	}
	return expense, nil
}

// ListByOwner retrieves every expense of an owner, newest first
func (r *ExpenseRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID)
	if err != nil {
		return nil, mapError(err, domain.ErrExpenseNotFound)
	}

	expenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, mapError(err, domain.ErrExpenseNotFound)
	}
	return expenses, nil
}

// Update overwrites the writable fields of an owner's expense
func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	amount, err := decimalToPgNumeric(expense.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE expenses
		SET client_id = $3, client_name = $4, description = $5, category = $6, amount = $7,
			currency = $8, expense_date = $9, status = $10, notes = $11, updated_at = NOW()
		WHERE owner_id = $1 AND id = $2
		RETURNING `+expenseColumns,
		expense.OwnerID, expense.ID, expense.ClientID, stringPtrToPgText(expense.ClientName),
		expense.Description, expense.Category, amount, expense.Currency,
		dateToPg(expense.ExpenseDate), string(expense.Status), stringPtrToPgText(expense.Notes),
	)
	updated, err := scanExpense(row)
	if err != nil {
		return nil, mapError(err, domain.ErrExpenseNotFound)
	}
	return updated, nil
}

// UpdateReceipt sets or clears the receipt object key of an owner's expense
func (r *ExpenseRepository) UpdateReceipt(ctx context.Context, ownerID string, id uuid.UUID, receiptPath *string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx,
		`UPDATE expenses SET receipt_path = $3, updated_at = NOW() WHERE owner_id = $1 AND id = $2`,
		ownerID, id, stringPtrToPgText(receiptPath))
	if err != nil {
		return mapError(err, domain.ErrExpenseNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an owner's expense
func (r *ExpenseRepository) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE owner_id = $1 AND id = $2`, ownerID, id)
	if err != nil {
		return mapError(err, domain.ErrExpenseNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var (
		e           domain.Expense
		clientID    pgtype.UUID
		clientName  pgtype.Text
		amount      pgtype.Numeric
		expenseDate pgtype.Date
		status      string
		receiptPath pgtype.Text
		notes       pgtype.Text
	)
	err := row.Scan(&e.ID, &e.OwnerID, &clientID, &clientName, &e.Description, &e.Category,
		&amount, &e.Currency, &expenseDate, &status, &receiptPath, &notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.ClientID = pgUUIDToPtr(clientID)
	e.ClientName = pgTextToStringPtr(clientName)
	e.Amount = pgNumericToDecimal(amount)
	e.ExpenseDate = pgDateToDomain(expenseDate)
	e.Status = domain.ExpenseStatus(status)
	e.ReceiptPath = pgTextToStringPtr(receiptPath)
	e.Notes = pgTextToStringPtr(notes)
	return &e, nil
}

func pgUUIDToPtr(u pgtype.UUID) *uuid.UUID {
	if !u.Valid {
		return nil
	}
	id := uuid.UUID(u.Bytes)
	return &id
}
