package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "on-leave"
)

type Employee struct {
	ID        uuid.UUID        `json:"id"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	Phone     *string          `json:"phone,omitempty"`
	Position  *string          `json:"position,omitempty"`
	HireDate  *Date            `json:"hireDate,omitempty"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	Skills    []string         `json:"skills"`
	Status    EmployeeStatus   `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

type EmployeeInput struct {
	FirstName string           `json:"firstName" validate:"required,max=255"`
	LastName  string           `json:"lastName" validate:"required,max=255"`
	Email     string           `json:"email" validate:"required,email,max=255"`
	Phone     *string          `json:"phone,omitempty" validate:"omitempty,max=64"`
	Position  *string          `json:"position,omitempty" validate:"omitempty,max=255"`
	HireDate  *Date            `json:"hireDate,omitempty"`
	Salary    *decimal.Decimal `json:"salary,omitempty"`
	Skills    []string         `json:"skills" validate:"dive,max=255"`
	Status    EmployeeStatus   `json:"status" validate:"omitempty,oneof=active inactive on-leave"`
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
