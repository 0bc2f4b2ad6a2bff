package main

import (
	"context"
	"testing"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/dafibh/backoffice/backoffice-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	expenseRepo := testutil.NewMockExpenseRepository()
	paymentRepo := testutil.NewMockPaymentRepository()
	clientRepo := testutil.NewMockClientRepository()
	employeeRepo := testutil.NewMockEmployeeRepository()

	s := newSeeder(
		service.NewClientService(clientRepo),
		service.NewEmployeeService(employeeRepo),
		service.NewPaymentService(paymentRepo, clientRepo),
		service.NewExpenseService(expenseRepo, clientRepo),
		42,
		now,
	)

	counts, err := s.Run(ctx, "auth0|seed", plan{Clients: 3, Employees: 2, Payments: 6, Expenses: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Employees)
	assert.Equal(t, 6, counts.Payments)
	assert.Equal(t, 10, counts.Expenses)

	clients, err := clientRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, clients, counts.Clients)

	expenses, err := expenseRepo.ListByOwner(ctx, "auth0|seed")
	require.NoError(t, err)
	require.Len(t, expenses, 10)

	windowStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, e := range expenses {
		assert.False(t, e.Amount.IsNegative())
		assert.False(t, e.ExpenseDate.Before(windowStart), "expense dated %s is outside the dashboard window", e.ExpenseDate)
		assert.False(t, e.ExpenseDate.After(now))
	}

	payments, err := paymentRepo.List(ctx)
	require.NoError(t, err)
	for _, p := range payments {
		assert.NotEmpty(t, p.ClientName)
		assert.False(t, p.PendingAmount.IsNegative())
	}
}

func TestSeeder_NoClients(t *testing.T) {
	s := newSeeder(
		service.NewClientService(testutil.NewMockClientRepository()),
		service.NewEmployeeService(testutil.NewMockEmployeeRepository()),
		service.NewPaymentService(testutil.NewMockPaymentRepository(), testutil.NewMockClientRepository()),
		service.NewExpenseService(testutil.NewMockExpenseRepository(), testutil.NewMockClientRepository()),
		7,
		time.Now(),
	)

	counts, err := s.Run(context.Background(), "auth0|seed", plan{Payments: 3, Expenses: 2})
	require.NoError(t, err)
	assert.Equal(t, plan{Payments: 3, Expenses: 2}, counts)
}
