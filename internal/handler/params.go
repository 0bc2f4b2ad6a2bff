package handler

import (
	"github.com/dafibh/backoffice/backoffice-backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func principalID(c echo.Context) string {
	return middleware.GetPrincipalID(c)
}

// parseID reads the :id path parameter
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, NewValidationError(c, "Invalid ID", []ValidationError{{Field: "id", Message: "Must be a valid UUID"}})
	}
	return id, nil
}

// bindAndValidate decodes the request body into v and runs the registered
// validator on it. The returned error has already been written to c.
func bindAndValidate(c echo.Context, v interface{}) (bool, error) {
	if err := c.Bind(v); err != nil {
		return false, NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(v); err != nil {
		return false, NewValidationError(c, "Validation failed", validationErrors(err))
	}
	return true, nil
}
