package testutil

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockExpenseRepository is an in-memory implementation of domain.ExpenseRepository
type MockExpenseRepository struct {
	mu       sync.Mutex
	Expenses map[uuid.UUID]*domain.Expense
	// Err, when set, is returned by every method
	Err error
}

// NewMockExpenseRepository creates a new MockExpenseRepository
func NewMockExpenseRepository() *MockExpenseRepository {
	return &MockExpenseRepository{Expenses: make(map[uuid.UUID]*domain.Expense)}
}

// AddExpense stores an expense as-is
func (m *MockExpenseRepository) AddExpense(e *domain.Expense) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expenses[e.ID] = e
}

// Create stores a new expense
func (m *MockExpenseRepository) Create(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now
	stored := *expense
	m.Expenses[expense.ID] = &stored
	return expense, nil
}

// GetByID retrieves an owner's expense
func (m *MockExpenseRepository) GetByID(_ context.Context, ownerID string, id uuid.UUID) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domain.ErrExpenseNotFound
	}
	c := *e
	return &c, nil
}

// ListByOwner retrieves an owner's expenses, newest first
func (m *MockExpenseRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*domain.Expense, 0)
	for _, e := range m.Expenses {
		if e.OwnerID == ownerID {
			c := *e
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Update overwrites an owner's expense
func (m *MockExpenseRepository) Update(_ context.Context, expense *domain.Expense) (*domain.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	existing, ok := m.Expenses[expense.ID]
	if !ok || existing.OwnerID != expense.OwnerID {
		return nil, domain.ErrExpenseNotFound
	}
	expense.UpdatedAt = time.Now().UTC()
	stored := *expense
	m.Expenses[expense.ID] = &stored
	return expense, nil
}

// UpdateReceipt sets an expense's receipt key
func (m *MockExpenseRepository) UpdateReceipt(_ context.Context, ownerID string, id uuid.UUID, receiptPath *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrExpenseNotFound
	}
	e.ReceiptPath = receiptPath
	return nil
}

// Delete removes an owner's expense
func (m *MockExpenseRepository) Delete(_ context.Context, ownerID string, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	e, ok := m.Expenses[id]
	if !ok || e.OwnerID != ownerID {
		return domain.ErrExpenseNotFound
	}
	delete(m.Expenses, id)
	return nil
}

// MockPaymentRepository is an in-memory implementation of domain.PaymentRepository
type MockPaymentRepository struct {
	mu       sync.Mutex
	Payments map[uuid.UUID]*domain.Payment
	Err      error
}

// NewMockPaymentRepository creates a new MockPaymentRepository
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{Payments: make(map[uuid.UUID]*domain.Payment)}
}

// AddPayment stores a payment as-is
func (m *MockPaymentRepository) AddPayment(p *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Payments[p.ID] = p
}

// Create stores a new payment
func (m *MockPaymentRepository) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	stored := *payment
	m.Payments[payment.ID] = &stored
	return payment, nil
}

// GetByID retrieves a payment
func (m *MockPaymentRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	c := *p
	return &c, nil
}

// List retrieves every payment, newest first
func (m *MockPaymentRepository) List(_ context.Context) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*domain.Payment, 0, len(m.Payments))
	for _, p := range m.Payments {
		c := *p
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

// Update overwrites a payment
func (m *MockPaymentRepository) Update(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Payments[payment.ID]; !ok {
		return nil, domain.ErrPaymentNotFound
	}
	payment.UpdatedAt = time.Now().UTC()
	stored := *payment
	m.Payments[payment.ID] = &stored
	return payment, nil
}

// Delete removes a payment
func (m *MockPaymentRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Payments[id]; !ok {
		return domain.ErrPaymentNotFound
	}
	delete(m.Payments, id)
	return nil
}

// MockClientRepository is an in-memory implementation of domain.ClientRepository
type MockClientRepository struct {
	mu      sync.Mutex
	Clients map[uuid.UUID]*domain.Client
	Err     error
}

// NewMockClientRepository creates a new MockClientRepository
func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{Clients: make(map[uuid.UUID]*domain.Client)}
}

// AddClient stores a client as-is
func (m *MockClientRepository) AddClient(c *domain.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clients[c.ID] = c
}

func (m *MockClientRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, c := range m.Clients {
		if id != except && c.Email == email {
			return true
		}
	}
	return false
}

// Create stores a new client, rejecting duplicate emails
func (m *MockClientRepository) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.emailTaken(client.Email, client.ID) {
		return nil, domain.ErrClientEmailExists
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	stored := *client
	m.Clients[client.ID] = &stored
	return client, nil
}

// GetByID retrieves a client
func (m *MockClientRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

// List retrieves every client ordered by name
func (m *MockClientRepository) List(_ context.Context) ([]*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*domain.Client, 0, len(m.Clients))
	for _, c := range m.Clients {
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClientName < result[j].ClientName })
	return result, nil
}

// Update overwrites a client
func (m *MockClientRepository) Update(_ context.Context, client *domain.Client) (*domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Clients[client.ID]; !ok {
		return nil, domain.ErrClientNotFound
	}
	if m.emailTaken(client.Email, client.ID) {
		return nil, domain.ErrClientEmailExists
	}
	client.UpdatedAt = time.Now().UTC()
	stored := *client
	m.Clients[client.ID] = &stored
	return client, nil
}

// Delete removes a client
func (m *MockClientRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(m.Clients, id)
	return nil
}

// Count returns the number of clients
func (m *MockClientRepository) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Clients), nil
}

// MockEmployeeRepository is an in-memory implementation of domain.EmployeeRepository
type MockEmployeeRepository struct {
	mu        sync.Mutex
	Employees map[uuid.UUID]*domain.Employee
	Err       error
}

// NewMockEmployeeRepository creates a new MockEmployeeRepository
func NewMockEmployeeRepository() *MockEmployeeRepository {
	return &MockEmployeeRepository{Employees: make(map[uuid.UUID]*domain.Employee)}
}

// AddEmployee stores an employee as-is
func (m *MockEmployeeRepository) AddEmployee(e *domain.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Employees[e.ID] = e
}

// Create stores a new employee
func (m *MockEmployeeRepository) Create(_ context.Context, employee *domain.Employee) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now
	stored := *employee
	m.Employees[employee.ID] = &stored
	return employee, nil
}

// GetByID retrieves an employee
func (m *MockEmployeeRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	c := *e
	return &c, nil
}

// List retrieves every employee ordered by last name
func (m *MockEmployeeRepository) List(_ context.Context) ([]*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*domain.Employee, 0, len(m.Employees))
	for _, e := range m.Employees {
		c := *e
		result = append(result, &c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].LastName < result[j].LastName })
	return result, nil
}

// Update overwrites an employee
func (m *MockEmployeeRepository) Update(_ context.Context, employee *domain.Employee) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Employees[employee.ID]; !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	employee.UpdatedAt = time.Now().UTC()
	stored := *employee
	m.Employees[employee.ID] = &stored
	return employee, nil
}

// Delete removes an employee
func (m *MockEmployeeRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(m.Employees, id)
	return nil
}

// Count returns the number of employees
func (m *MockEmployeeRepository) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Employees), nil
}

// MockRecordSource is a domain.RecordSource and domain.DirectoryCounter over
// fixed records. The Fn hooks override the fixed data.
type MockRecordSource struct {
	Expenses       []domain.ExpenseRecord
	Payments       []domain.PaymentRecord
	ClientCount    int
	EmployeeCount  int
	ExpensesErr    error
	PaymentsErr    error
	CountErr       error
	ListPaymentsFn func(ctx context.Context) ([]domain.PaymentRecord, error)
}

// ListExpenses returns every fixed expense record; the aggregator does the scoping
func (m *MockRecordSource) ListExpenses(_ context.Context, _ string) ([]domain.ExpenseRecord, error) {
	if m.ExpensesErr != nil {
		return nil, m.ExpensesErr
	}
	return m.Expenses, nil
}

// ListPayments returns every fixed payment record
func (m *MockRecordSource) ListPayments(ctx context.Context) ([]domain.PaymentRecord, error) {
	if m.ListPaymentsFn != nil {
		return m.ListPaymentsFn(ctx)
	}
	if m.PaymentsErr != nil {
		return nil, m.PaymentsErr
	}
	return m.Payments, nil
}

// CountClients returns ClientCount
func (m *MockRecordSource) CountClients(_ context.Context) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.ClientCount, nil
}

// CountEmployees returns EmployeeCount
func (m *MockRecordSource) CountEmployees(_ context.Context) (int, error) {
	if m.CountErr != nil {
		return 0, m.CountErr
	}
	return m.EmployeeCount, nil
}

// MockReceiptStore is an in-memory storage.ReceiptStore
type MockReceiptStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	UploadErr error
	// FailUploadAfter makes every upload after the first n fail with UploadErr
	FailUploadAfter int
	uploads         int
}

// NewMockReceiptStore creates a new MockReceiptStore
func NewMockReceiptStore() *MockReceiptStore {
	return &MockReceiptStore{Objects: make(map[string][]byte), FailUploadAfter: -1}
}

// Upload stores the object
func (m *MockReceiptStore) Upload(_ context.Context, key string, data io.Reader, _ string, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil && (m.FailUploadAfter < 0 || m.uploads >= m.FailUploadAfter) {
		return m.UploadErr
	}
	buf, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	m.uploads++
	m.Objects[key] = buf
	return nil
}

// Delete removes the object
func (m *MockReceiptStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	return nil
}

// PresignGet returns a fake link
func (m *MockReceiptStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://receipts.test/" + key + "?signed=1", nil
}

// Has reports whether key is stored
func (m *MockReceiptStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}

// PublishedEvent is an event captured by MockEventPublisher. PrincipalID is
// empty for events sent to everyone.
type PublishedEvent struct {
	PrincipalID string
	Event       websocket.Event
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

// Publish implements websocket.EventPublisher
func (m *MockEventPublisher) Publish(principalID string, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{PrincipalID: principalID, Event: event})
}

// PublishAll implements websocket.EventPublisher
func (m *MockEventPublisher) PublishAll(event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{Event: event})
}

// Types returns the published event types in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

// MockRecorder records metrics calls
type MockRecorder struct {
	mu        sync.Mutex
	Outcomes  []string
	Mutations []string
}

// ObserveReport implements metrics.Recorder
func (m *MockRecorder) ObserveReport(outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes = append(m.Outcomes, outcome)
}

// IncrementMutation implements metrics.Recorder
func (m *MockRecorder) IncrementMutation(entity, operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Mutations = append(m.Mutations, entity+"."+operation)
}
