package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EmployeeHandler handles employee HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// EmployeeResponse represents an employee in API responses
type EmployeeResponse struct {
	ID        uuid.UUID    `json:"id"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Email     string       `json:"email"`
	Phone     *string      `json:"phone,omitempty"`
	Position  *string      `json:"position,omitempty"`
	HireDate  *domain.Date `json:"hireDate,omitempty" swaggertype:"string" format:"date"`
	Salary    *json.Number `json:"salary,omitempty" swaggertype:"number"`
	Skills    []string     `json:"skills"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func toEmployeeResponse(e *domain.Employee) EmployeeResponse {
	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	return EmployeeResponse{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		Phone:     e.Phone,
		Position:  e.Position,
		HireDate:  e.HireDate,
		Salary:    moneyPtr(e.Salary),
		Skills:    skills,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ListEmployees godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} EmployeeResponse
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c echo.Context) error {
	employees, err := h.employeeService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "list employees")
	}
	response := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		response[i] = toEmployeeResponse(e)
	}
	return c.JSON(http.StatusOK, response)
}

// GetEmployee godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} EmployeeResponse
// @Failure 404 {object} ProblemDetails
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	employee, err := h.employeeService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "get employee")
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// CreateEmployee godoc
// @Summary Add an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.EmployeeInput true "Employee"
// @Success 201 {object} EmployeeResponse
// @Failure 400 {object} ProblemDetails
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c echo.Context) error {
	var input domain.EmployeeInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	employee, err := h.employeeService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err, "create employee")
	}
	return c.JSON(http.StatusCreated, toEmployeeResponse(employee))
}

// UpdateEmployee godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Param request body domain.EmployeeInput true "Employee"
// @Success 200 {object} EmployeeResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input domain.EmployeeInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	employee, err := h.employeeService.Update(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err, "update employee")
	}
	return c.JSON(http.StatusOK, toEmployeeResponse(employee))
}

// DeleteEmployee godoc
// @Summary Delete an employee
// @Tags employees
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "delete employee")
	}
	return c.NoContent(http.StatusNoContent)
}
