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

const employeeColumns = `id, first_name, last_name, email, phone, position, hire_date, salary,
	skills, status, created_at, updated_at`

// EmployeeRepository implements domain.EmployeeRepository using PostgreSQL
type EmployeeRepository struct {
	base
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db querier, timeout time.Duration) *EmployeeRepository {
	return &EmployeeRepository{base: newBase(db, timeout)}
}

// Create inserts a new employee
func (r *EmployeeRepository) Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	salary, err := decimalPtrToPgNumeric(employee.Salary)
	if err != nil {
		return nil, fmt.Errorf("invalid salary: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		INSERT INTO employees (id, first_name, last_name, email, phone, position, hire_date, salary,
			skills, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+employeeColumns,
		employee.ID, employee.FirstName, employee.LastName, employee.Email,
		stringPtrToPgText(employee.Phone), stringPtrToPgText(employee.Position),
		datePtrToPg(employee.HireDate), salary, nonNilStrings(employee.Skills), string(employee.Status),
	)
	created, err := scanEmployee(row)
	if err != nil {
		return nil, mapError(err, domain.ErrEmployeeNotFound)
	}
	return created, nil
}

// GetByID retrieves an employee by its ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id)
	employee, err := scanEmployee(row)
	if err != nil {
		return nil, mapError(err, domain.ErrEmployeeNotFound)
	}
	return employee, nil
}

// List retrieves every employee ordered by name
func (r *EmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY last_name, first_name`)
	if err != nil {
		return nil, mapError(err, domain.ErrEmployeeNotFound)
	}

	employees, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Employee, error) {
		return scanEmployee(row)
	})
	if err != nil {
		return nil, mapError(err, domain.ErrEmployeeNotFound)
	}
	return employees, nil
}

// Update overwrites the writable fields of an employee
func (r *EmployeeRepository) Update(ctx context.Context, employee *domain.Employee) (*domain.Employee, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	salary, err := decimalPtrToPgNumeric(employee.Salary)
	if err != nil {
		return nil, fmt.Errorf("invalid salary: %w", err)
	}

	row := r.db.QueryRow(ctx, `
		UPDATE employees
		SET first_name = $2, last_name = $3, email = $4, phone = $5, position = $6,
			hire_date = $7, salary = $8, skills = $9, status = $10, updated_at = NOW()
		WHERE id = $1
		RETURNING `+employeeColumns,
		employee.ID, employee.FirstName, employee.LastName, employee.Email,
		stringPtrToPgText(employee.Phone), stringPtrToPgText(employee.Position),
		datePtrToPg(employee.HireDate), salary, nonNilStrings(employee.Skills), string(employee.Status),
	)
	updated, err := scanEmployee(row)
	if err != nil {
		return nil, mapError(err, domain.ErrEmployeeNotFound)
	}
	return updated, nil
}

// Delete removes an employee
func (r *EmployeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrEmployeeNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

// Count returns the number of employees
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM employees`).Scan(&n); err != nil {
		return 0, mapError(err, domain.ErrEmployeeNotFound)
	}
	return n, nil
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var (
		e        domain.Employee
		phone    pgtype.Text
		position pgtype.Text
		hireDate pgtype.Date
		salary   pgtype.Numeric
		status   string
	)
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &phone, &position, &hireDate,
		&salary, &e.Skills, &status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.Phone = pgTextToStringPtr(phone)
	e.Position = pgTextToStringPtr(position)
	e.HireDate = pgDateToDomainPtr(hireDate)
	e.Salary = pgNumericToDecimalPtr(salary)
	e.Skills = nonNilStrings(e.Skills)
	e.Status = domain.EmployeeStatus(status)
	return &e, nil
}
