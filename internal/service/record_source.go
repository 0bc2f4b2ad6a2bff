package service

import (
	"context"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
)

// repositoryRecordSource adapts the expense and payment repositories to
// domain.RecordSource
type repositoryRecordSource struct {
	expenseRepo domain.ExpenseRepository
	paymentRepo domain.PaymentRepository
}

// NewRepositoryRecordSource creates a domain.RecordSource backed by repositories
func NewRepositoryRecordSource(expenseRepo domain.ExpenseRepository, paymentRepo domain.PaymentRepository) domain.RecordSource {
	return &repositoryRecordSource{expenseRepo: expenseRepo, paymentRepo: paymentRepo}
}

// ListExpenses returns the records of every expense owned by ownerID
func (s *repositoryRecordSource) ListExpenses(ctx context.Context, ownerID string) ([]domain.ExpenseRecord, error) {
	expenses, err := s.expenseRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	records := make([]domain.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = e.Record()
	}
	return records, nil
}

// ListPayments returns the records of every payment
func (s *repositoryRecordSource) ListPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]domain.PaymentRecord, len(payments))
	for i, p := range payments {
		records[i] = p.Record()
	}
	return records, nil
}

// repositoryDirectory adapts the client and employee repositories to
// domain.DirectoryCounter
type repositoryDirectory struct {
	clientRepo   domain.ClientRepository
	employeeRepo domain.EmployeeRepository
}

// NewRepositoryDirectory creates a domain.DirectoryCounter backed by repositories
func NewRepositoryDirectory(clientRepo domain.ClientRepository, employeeRepo domain.EmployeeRepository) domain.DirectoryCounter {
	return &repositoryDirectory{clientRepo: clientRepo, employeeRepo: employeeRepo}
}

func (d *repositoryDirectory) CountClients(ctx context.Context) (int, error) {
	return d.clientRepo.Count(ctx)
}

func (d *repositoryDirectory) CountEmployees(ctx context.Context) (int, error) {
	return d.employeeRepo.Count(ctx)
}
