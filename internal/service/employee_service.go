package service

import (
	"context"
	"strings"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	notifier
	employeeRepo domain.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService
func NewEmployeeService(employeeRepo domain.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// List returns every employee
func (s *EmployeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// Get returns an employee by ID
func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	return s.employeeRepo.GetByID(ctx, id)
}

// Create adds an employee
func (s *EmployeeService) Create(ctx context.Context, input domain.EmployeeInput) (*domain.Employee, error) {
	employee := &domain.Employee{ID: uuid.New(), Status: domain.EmployeeStatusActive}
	if err := applyEmployee(employee, input); err != nil {
		return nil, err
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create employee")
		return nil, err
	}

	s.notifyAll(websocket.EventTypeCreated, websocket.EntityTypeEmployee, created)
	return created, nil
}

// Update replaces the writable fields of an employee
func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, input domain.EmployeeInput) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyEmployee(employee, input); err != nil {
		return nil, err
	}

	updated, err := s.employeeRepo.Update(ctx, employee)
	if err != nil {
		log.Error().Err(err).Str("employee_id", id.String()).Msg("Failed to update employee")
		return nil, err
	}

	s.notifyAll(websocket.EventTypeUpdated, websocket.EntityTypeEmployee, updated)
	return updated, nil
}

// Delete removes an employee
func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyAll(websocket.EventTypeDeleted, websocket.EntityTypeEmployee, websocket.DeletedPayload{ID: id.String()})
	return nil
}

func applyEmployee(employee *domain.Employee, input domain.EmployeeInput) error {
	var err error
	if employee.FirstName, err = requireText("first name", input.FirstName, domain.MaxNameLength); err != nil {
		return err
	}
	if employee.LastName, err = requireText("last name", input.LastName, domain.MaxNameLength); err != nil {
		return err
	}
	if employee.Email, err = requireText("email", input.Email, domain.MaxNameLength); err != nil {
		return err
	}
	employee.Email = strings.ToLower(employee.Email)
	if employee.Phone, err = optionalText("phone", input.Phone, 64); err != nil {
		return err
	}
	if employee.Position, err = optionalText("position", input.Position, domain.MaxNameLength); err != nil {
		return err
	}
	if input.Salary != nil {
		if err := nonNegative("salary", *input.Salary); err != nil {
			return err
		}
	}
	if input.HireDate != nil && input.HireDate.IsZero() {
		input.HireDate = nil
	}

	employee.HireDate = input.HireDate
	employee.Salary = input.Salary
	employee.Skills = cleanList(input.Skills)
	if input.Status != "" {
		employee.Status = input.Status
	}
	return nil
}
