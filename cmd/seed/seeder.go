package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// The seeder writes through the services so seeded rows pass the same
// validation as API writes.
type clientCreator interface {
	Create(ctx context.Context, input domain.ClientInput) (*domain.Client, error)
}

type employeeCreator interface {
	Create(ctx context.Context, input domain.EmployeeInput) (*domain.Employee, error)
}

type paymentCreator interface {
	Create(ctx context.Context, input domain.PaymentInput) (*domain.Payment, error)
}

type expenseCreator interface {
	Create(ctx context.Context, ownerID string, input domain.ExpenseInput) (*domain.Expense, error)
}

var (
	expenseCategories = []string{"Travel", "Software", "Office", "Meals", "Marketing", ""}
	paymentMethods    = []string{"Bank Transfer", "Credit Card", "Cash", "PayPal"}
	serviceNames      = []string{"Bookkeeping", "Tax Filing", "Payroll", "Consulting", "Audit"}
	skills            = []string{"Go", "SQL", "Accounting", "Excel", "Negotiation", "Design"}
)

// plan is how many records of each kind to create
type plan struct {
	Clients   int
	Employees int
	Payments  int
	Expenses  int
}

type seeder struct {
	clients   clientCreator
	employees employeeCreator
	payments  paymentCreator
	expenses  expenseCreator
	faker     *gofakeit.Faker
	now       time.Time
}

func newSeeder(clients clientCreator, employees employeeCreator, payments paymentCreator, expenses expenseCreator, seed uint64, now time.Time) *seeder {
	return &seeder{
		clients:   clients,
		employees: employees,
		payments:  payments,
		expenses:  expenses,
		faker:     gofakeit.New(seed),
		now:       now,
	}
}

// Run creates the planned records. Dates fall in the six months before now so
// the dashboard series has data. It returns how many of each were created.
func (s *seeder) Run(ctx context.Context, ownerID string, p plan) (plan, error) {
	var done plan

	clientIDs := make([]uuid.UUID, 0, p.Clients)
	for i := 0; i < p.Clients; i++ {
		client, err := s.clients.Create(ctx, s.clientInput())
		if errors.Is(err, domain.ErrClientEmailExists) {
			log.Warn().Msg("Skipping client with a duplicate email")
			continue
		}
		if err != nil {
			return done, fmt.Errorf("create client: %w", err)
		}
		clientIDs = append(clientIDs, client.ID)
		done.Clients++
	}

	for i := 0; i < p.Employees; i++ {
		if _, err := s.employees.Create(ctx, s.employeeInput()); err != nil {
			return done, fmt.Errorf("create employee: %w", err)
		}
		done.Employees++
	}

	for i := 0; i < p.Payments; i++ {
		if _, err := s.payments.Create(ctx, s.paymentInput(clientIDs)); err != nil {
			return done, fmt.Errorf("create payment: %w", err)
		}
		done.Payments++
	}

	for i := 0; i < p.Expenses; i++ {
		if _, err := s.expenses.Create(ctx, ownerID, s.expenseInput(clientIDs)); err != nil {
			return done, fmt.Errorf("create expense: %w", err)
		}
		done.Expenses++
	}

	return done, nil
}

func (s *seeder) clientInput() domain.ClientInput {
	address := s.faker.Address().Address
	return domain.ClientInput{
		ClientName:         s.faker.Name(),
		CompanyName:        s.faker.Company(),
		Email:              s.faker.Email(),
		Phone:              s.faker.Phone(),
		Address:            &address,
		ServiceName:        s.faker.RandomString(serviceNames),
		AdditionalServices: []string{s.faker.RandomString(serviceNames)},
	}
}

func (s *seeder) employeeInput() domain.EmployeeInput {
	phone := s.faker.Phone()
	position := s.faker.JobTitle()
	hireDate := domain.NewDate(s.faker.DateRange(s.now.AddDate(-5, 0, 0), s.now))
	salary := s.money(40000, 120000)
	return domain.EmployeeInput{
		FirstName: s.faker.FirstName(),
		LastName:  s.faker.LastName(),
		Email:     s.faker.Email(),
		Phone:     &phone,
		Position:  &position,
		HireDate:  &hireDate,
		Salary:    &salary,
		Skills:    []string{s.faker.RandomString(skills), s.faker.RandomString(skills)},
	}
}

func (s *seeder) paymentInput(clientIDs []uuid.UUID) domain.PaymentInput {
	cost := s.money(200, 5000)
	paid := cost
	switch s.faker.IntRange(0, 2) {
	case 0:
		paid = decimal.Zero
	case 1:
		paid = cost.Mul(decimal.NewFromFloat(s.faker.Float64Range(0.1, 0.9))).Round(2)
	}

	input := domain.PaymentInput{
		ServiceCost:   cost,
		PaidAmount:    paid,
		PaymentDate:   s.recentDate(),
		PaymentMethod: s.faker.RandomString(paymentMethods),
	}
	if len(clientIDs) > 0 {
		id := clientIDs[s.faker.IntRange(0, len(clientIDs)-1)]
		input.ClientID = &id
	} else {
		input.ClientName = s.faker.Company()
	}
	return input
}

func (s *seeder) expenseInput(clientIDs []uuid.UUID) domain.ExpenseInput {
	input := domain.ExpenseInput{
		Description: s.faker.Sentence(4),
		Category:    s.faker.RandomString(expenseCategories),
		Amount:      s.money(5, 800),
		ExpenseDate: s.recentDate(),
	}
	if len(clientIDs) > 0 && s.faker.Bool() {
		id := clientIDs[s.faker.IntRange(0, len(clientIDs)-1)]
		input.ClientID = &id
	}
	return input
}

func (s *seeder) money(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(s.faker.Float64Range(min, max)).Round(2)
}

// recentDate picks a day within the trailing dashboard window
func (s *seeder) recentDate() domain.Date {
	start := util.TrailingMonths(s.now, domain.TrailingMonths)[0]
	return domain.NewDate(s.faker.DateRange(start, s.now))
}
