package service

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expenseFixture struct {
	service   *ExpenseService
	expenses  *testutil.MockExpenseRepository
	clients   *testutil.MockClientRepository
	publisher *testutil.MockEventPublisher
	recorder  *testutil.MockRecorder
}

func newExpenseFixture() expenseFixture {
	f := expenseFixture{
		expenses:  testutil.NewMockExpenseRepository(),
		clients:   testutil.NewMockClientRepository(),
		publisher: &testutil.MockEventPublisher{},
		recorder:  &testutil.MockRecorder{},
	}
	f.service = NewExpenseService(f.expenses, f.clients)
	f.service.SetEventPublisher(f.publisher)
	f.service.SetMetrics(f.recorder)
	return f
}

func validExpenseInput() domain.ExpenseInput {
	return domain.ExpenseInput{
		Description: "  Flight to Lisbon ",
		Category:    "Travel",
		Amount:      decimal.RequireFromString("412.50"),
		ExpenseDate: day(2025, time.May, 3),
	}
}

func TestExpenseService_Create(t *testing.T) {
	f := newExpenseFixture()

	created, err := f.service.Create(context.Background(), owner, validExpenseInput())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, "Flight to Lisbon", created.Description)
	assert.Equal(t, domain.DefaultCurrency, created.Currency)
	assert.Equal(t, domain.ExpenseStatusPending, created.Status)
	assert.Equal(t, []string{"expense.created"}, f.publisher.Types())
	assert.Equal(t, owner, f.publisher.Events[0].PrincipalID)
	assert.Equal(t, []string{"expense.created"}, f.recorder.Mutations)
}

func TestExpenseService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*domain.ExpenseInput)
		wantErr error
	}{
		{"negative amount", func(in *domain.ExpenseInput) { in.Amount = decimal.NewFromInt(-1) }, domain.ErrNegativeAmount},
		{"blank description", func(in *domain.ExpenseInput) { in.Description = "   " }, domain.ErrInvalidInput},
		{"missing date", func(in *domain.ExpenseInput) { in.ExpenseDate = domain.Date{} }, domain.ErrInvalidInput},
		{"bad currency", func(in *domain.ExpenseInput) { in.Currency = "EURO" }, domain.ErrInvalidInput},
		{"unknown client", func(in *domain.ExpenseInput) { id := uuid.New(); in.ClientID = &id }, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newExpenseFixture()
			input := validExpenseInput()
			tt.modify(&input)

			_, err := f.service.Create(context.Background(), owner, input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.expenses.Expenses)
			assert.Empty(t, f.publisher.Events)
		})
	}
}

func TestExpenseService_Create_ResolvesClientName(t *testing.T) {
	f := newExpenseFixture()
	client := &domain.Client{ID: uuid.New(), ClientName: "Acme"}
	f.clients.AddClient(client)

	input := validExpenseInput()
	input.ClientID = &client.ID

	created, err := f.service.Create(context.Background(), owner, input)
	require.NoError(t, err)
	require.NotNil(t, created.ClientName)
	assert.Equal(t, "Acme", *created.ClientName)
}

func TestExpenseService_OwnerIsolation(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()

	created, err := f.service.Create(ctx, owner, validExpenseInput())
	require.NoError(t, err)

	other := "auth0|intruder"
	_, err = f.service.Get(ctx, other, created.ID)
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)

	_, err = f.service.Update(ctx, other, created.ID, validExpenseInput())
	assert.ErrorIs(t, err, domain.ErrExpenseNotFound)

	assert.ErrorIs(t, f.service.Delete(ctx, other, created.ID), domain.ErrExpenseNotFound)

	list, err := f.service.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = f.service.List(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestExpenseService_Update(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()

	created, err := f.service.Create(ctx, owner, validExpenseInput())
	require.NoError(t, err)

	input := validExpenseInput()
	input.Amount = decimal.NewFromInt(99)
	input.Status = domain.ExpenseStatusApproved
	input.Category = ""

	updated, err := f.service.Update(ctx, owner, created.ID, input)
	require.NoError(t, err)

	assert.Equal(t, "99", updated.Amount.String())
	assert.Equal(t, domain.ExpenseStatusApproved, updated.Status)
	assert.Equal(t, "", updated.Category)
	assert.Equal(t, []string{"expense.created", "expense.updated"}, f.publisher.Types())
}

func TestExpenseService_Update_RejectsNegativeAmount(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()

	created, err := f.service.Create(ctx, owner, validExpenseInput())
	require.NoError(t, err)

	input := validExpenseInput()
	input.Amount = decimal.NewFromInt(-5)

	_, err = f.service.Update(ctx, owner, created.ID, input)
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)

	stored, err := f.service.Get(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "412.5", stored.Amount.String())
}

func TestExpenseService_Delete_RemovesReceipt(t *testing.T) {
	f := newExpenseFixture()
	ctx := context.Background()
	store := testutil.NewMockReceiptStore()
	f.service.SetReceiptService(NewReceiptService(store, f.expenses))

	created, err := f.service.Create(ctx, owner, validExpenseInput())
	require.NoError(t, err)

	key := "receipts/" + created.ID.String() + "/r" + receiptMainSuffix
	store.Objects[key] = []byte("display")
	store.Objects[thumbnailKey(key)] = []byte("thumb")
	require.NoError(t, f.expenses.UpdateReceipt(ctx, owner, created.ID, &key))

	require.NoError(t, f.service.Delete(ctx, owner, created.ID))

	assert.Empty(t, store.Objects)
	assert.Equal(t, "expense.deleted", f.publisher.Events[len(f.publisher.Events)-1].Event.Type)
}

func TestExpenseService_RepositoryErrorsPropagate(t *testing.T) {
	f := newExpenseFixture()
	f.expenses.Err = domain.ErrRecordSourceUnavailable

	_, err := f.service.List(context.Background(), owner)
	assert.ErrorIs(t, err, domain.ErrRecordSourceUnavailable)

	_, err = f.service.Create(context.Background(), owner, validExpenseInput())
	assert.ErrorIs(t, err, domain.ErrRecordSourceUnavailable)
	assert.Empty(t, f.publisher.Events)
}
