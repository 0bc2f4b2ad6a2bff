package service

import (
	"context"
	"errors"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ExpenseService handles expense business logic. Every operation is scoped to
// the calling principal; other principals' expenses are reported as not found.
type ExpenseService struct {
	notifier
	expenseRepo domain.ExpenseRepository
	clientRepo  domain.ClientRepository
	receipts    *ReceiptService
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(expenseRepo domain.ExpenseRepository, clientRepo domain.ClientRepository) *ExpenseService {
	return &ExpenseService{
		expenseRepo: expenseRepo,
		clientRepo:  clientRepo,
	}
}

// SetReceiptService lets Delete remove the stored receipt with the expense
func (s *ExpenseService) SetReceiptService(receipts *ReceiptService) {
	s.receipts = receipts
}

// List returns the principal's expenses, newest first
func (s *ExpenseService) List(ctx context.Context, ownerID string) ([]*domain.Expense, error) {
	return s.expenseRepo.ListByOwner(ctx, ownerID)
}

// Get returns one of the principal's expenses
func (s *ExpenseService) Get(ctx context.Context, ownerID string, id uuid.UUID) (*domain.Expense, error) {
	return s.expenseRepo.GetByID(ctx, ownerID, id)
}

// Create records a new expense for the principal
func (s *ExpenseService) Create(ctx context.Context, ownerID string, input domain.ExpenseInput) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Status:  domain.ExpenseStatusPending,
	}
	if err := s.apply(ctx, expense, input); err != nil {
		return nil, err
	}

	created, err := s.expenseRepo.Create(ctx, expense)
	if err != nil {
		log.Error().Err(err).Str("principal_id", ownerID).Msg("Failed to create expense")
		return nil, err
	}

	s.notifyOwner(ownerID, websocket.EventTypeCreated, websocket.EntityTypeExpense, created)
	return created, nil
}

// Update replaces the writable fields of one of the principal's expenses
func (s *ExpenseService) Update(ctx context.Context, ownerID string, id uuid.UUID, input domain.ExpenseInput) (*domain.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, expense, input); err != nil {
		return nil, err
	}

	updated, err := s.expenseRepo.Update(ctx, expense)
	if err != nil {
		log.Error().Err(err).Str("principal_id", ownerID).Str("expense_id", id.String()).Msg("Failed to update expense")
		return nil, err
	}

	s.notifyOwner(ownerID, websocket.EventTypeUpdated, websocket.EntityTypeExpense, updated)
	return updated, nil
}

// Delete removes one of the principal's expenses along with its receipt
func (s *ExpenseService) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.expenseRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	if expense.ReceiptPath != nil && s.receipts.IsEnabled() {
		s.receipts.purge(ctx, *expense.ReceiptPath)
	}

	s.notifyOwner(ownerID, websocket.EventTypeDeleted, websocket.EntityTypeExpense, websocket.DeletedPayload{ID: id.String()})
	return nil
}

// apply validates input and copies it onto expense
func (s *ExpenseService) apply(ctx context.Context, expense *domain.Expense, input domain.ExpenseInput) error {
	description, err := requireText("expense details", input.Description, domain.MaxDescriptionLength)
	if err != nil {
		return err
	}
	category, err := optionalText("category", &input.Category, domain.MaxNameLength)
	if err != nil {
		return err
	}
	notes, err := optionalText("notes", input.Notes, domain.MaxDescriptionLength)
	if err != nil {
		return err
	}
	if err := nonNegative("amount", input.Amount); err != nil {
		return err
	}
	if input.ExpenseDate.IsZero() {
		return invalid("expense date is required")
	}
	currency, err := currencyOrDefault(input.Currency)
	if err != nil {
		return err
	}

	clientName, err := resolveClientName(ctx, s.clientRepo, input.ClientID, input.ClientName)
	if err != nil {
		return err
	}

	expense.ClientID = input.ClientID
	expense.ClientName = clientName
	expense.Description = description
	expense.Category = ""
	if category != nil {
		expense.Category = *category
	}
	expense.Amount = input.Amount
	expense.Currency = currency
	expense.ExpenseDate = input.ExpenseDate
	if input.Status != "" {
		expense.Status = input.Status
	}
	expense.Notes = notes
	return nil
}

// resolveClientName returns the name to store for a client reference. An
// explicit name wins; otherwise a referenced client's name is looked up.
func resolveClientName(ctx context.Context, clientRepo domain.ClientRepository, clientID *uuid.UUID, name *string) (*string, error) {
	name, err := optionalText("client name", name, domain.MaxNameLength)
	if err != nil || name != nil || clientID == nil {
		return name, err
	}

	client, err := clientRepo.GetByID(ctx, *clientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, invalid("client %s does not exist", clientID)
		}
		return nil, err
	}
	return &client.ClientName, nil
}
