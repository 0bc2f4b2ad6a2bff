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

func validPaymentInput() domain.PaymentInput {
	return domain.PaymentInput{
		ClientName:    "Acme",
		ServiceCost:   decimal.NewFromInt(1000),
		PaidAmount:    decimal.NewFromInt(400),
		PaymentDate:   day(2025, time.June, 1),
		PaymentMethod: "bank transfer",
	}
}

func TestPaymentService_Create_Defaults(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	publisher := &testutil.MockEventPublisher{}
	svc := NewPaymentService(repo, testutil.NewMockClientRepository())
	svc.SetEventPublisher(publisher)

	created, err := svc.Create(context.Background(), validPaymentInput())
	require.NoError(t, err)

	assert.Equal(t, "600", created.PendingAmount.String())
	assert.Equal(t, domain.PaymentStatusPartial, created.Status)
	assert.Equal(t, domain.DefaultCurrency, created.Currency)

	// Payments are shared, so the event goes to everyone
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, "payment.created", publisher.Events[0].Event.Type)
	assert.Empty(t, publisher.Events[0].PrincipalID)
}

func TestPaymentService_Create_ExplicitPendingAndStatus(t *testing.T) {
	svc := NewPaymentService(testutil.NewMockPaymentRepository(), testutil.NewMockClientRepository())

	input := validPaymentInput()
	pending := decimal.NewFromInt(50)
	input.PendingAmount = &pending
	input.Status = domain.PaymentStatusOverdue
	input.Currency = "eur"

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, "50", created.PendingAmount.String())
	assert.Equal(t, domain.PaymentStatusOverdue, created.Status)
	assert.Equal(t, "EUR", created.Currency)
}

func TestPaymentService_Create_Validation(t *testing.T) {
	negative := decimal.NewFromInt(-10)
	tests := []struct {
		name    string
		modify  func(*domain.PaymentInput)
		wantErr error
	}{
		{"negative paid", func(in *domain.PaymentInput) { in.PaidAmount = negative }, domain.ErrNegativeAmount},
		{"negative cost", func(in *domain.PaymentInput) { in.ServiceCost = negative }, domain.ErrNegativeAmount},
		{"negative pending", func(in *domain.PaymentInput) { in.PendingAmount = &negative }, domain.ErrNegativeAmount},
		{"no method", func(in *domain.PaymentInput) { in.PaymentMethod = "" }, domain.ErrInvalidInput},
		{"no date", func(in *domain.PaymentInput) { in.PaymentDate = domain.Date{} }, domain.ErrInvalidInput},
		{"no client", func(in *domain.PaymentInput) { in.ClientName = "" }, domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockPaymentRepository()
			svc := NewPaymentService(repo, testutil.NewMockClientRepository())
			input := validPaymentInput()
			tt.modify(&input)

			_, err := svc.Create(context.Background(), input)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.Payments)
		})
	}
}

func TestPaymentService_Create_ClientNameFromClient(t *testing.T) {
	clients := testutil.NewMockClientRepository()
	client := &domain.Client{ID: uuid.New(), ClientName: "Globex"}
	clients.AddClient(client)
	svc := NewPaymentService(testutil.NewMockPaymentRepository(), clients)

	input := validPaymentInput()
	input.ClientName = ""
	input.ClientID = &client.ID

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "Globex", created.ClientName)
}

func TestPaymentService_UpdateAndDelete(t *testing.T) {
	repo := testutil.NewMockPaymentRepository()
	publisher := &testutil.MockEventPublisher{}
	svc := NewPaymentService(repo, testutil.NewMockClientRepository())
	svc.SetEventPublisher(publisher)
	ctx := context.Background()

	created, err := svc.Create(ctx, validPaymentInput())
	require.NoError(t, err)

	input := validPaymentInput()
	input.PaidAmount = decimal.NewFromInt(1000)
	updated, err := svc.Update(ctx, created.ID, input)
	require.NoError(t, err)
	assert.True(t, updated.PendingAmount.IsZero())
	assert.Equal(t, domain.PaymentStatusCompleted, updated.Status)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrPaymentNotFound)

	_, err = svc.Update(ctx, uuid.New(), input)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	assert.Equal(t, []string{"payment.created", "payment.updated", "payment.deleted"}, publisher.Types())
}

func TestPendingAmount(t *testing.T) {
	assert.Equal(t, "600", PendingAmount(decimal.NewFromInt(1000), decimal.NewFromInt(400)).String())
	assert.True(t, PendingAmount(decimal.NewFromInt(100), decimal.NewFromInt(150)).IsZero())
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		cost, paid int64
		want       domain.PaymentStatus
	}{
		{1000, 1000, domain.PaymentStatusCompleted},
		{1000, 1200, domain.PaymentStatusCompleted},
		{1000, 1, domain.PaymentStatusPartial},
		{1000, 0, domain.PaymentStatusPending},
		{0, 0, domain.PaymentStatusPending},
	}
	for _, tt := range tests {
		got := DerivePaymentStatus(decimal.NewFromInt(tt.cost), decimal.NewFromInt(tt.paid))
		assert.Equal(t, tt.want, got, "cost=%d paid=%d", tt.cost, tt.paid)
	}
}
