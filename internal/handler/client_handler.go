package handler

import (
	"net/http"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ClientHandler handles client HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Client
// @Router /clients [get]
func (h *ClientHandler) ListClients(c echo.Context) error {
	clients, err := h.clientService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "list clients")
	}
	return c.JSON(http.StatusOK, clients)
}

// GetClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 404 {object} ProblemDetails
// @Router /clients/{id} [get]
func (h *ClientHandler) GetClient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	client, err := h.clientService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "get client")
	}
	return c.JSON(http.StatusOK, client)
}

// CreateClient godoc
// @Summary Add a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body domain.ClientInput true "Client"
// @Success 201 {object} domain.Client
// @Failure 400 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c echo.Context) error {
	var input domain.ClientInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	client, err := h.clientService.Create(c.Request().Context(), input)
	if err != nil {
		return respondError(c, err, "create client")
	}
	return c.JSON(http.StatusCreated, client)
}

// UpdateClient godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param request body domain.ClientInput true "Client"
// @Success 200 {object} domain.Client
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /clients/{id} [put]
func (h *ClientHandler) UpdateClient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input domain.ClientInput
	if ok, err := bindAndValidate(c, &input); !ok {
		return err
	}
	client, err := h.clientService.Update(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err, "update client")
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient godoc
// @Summary Delete a client
// @Tags clients
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.clientService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "delete client")
	}
	return c.NoContent(http.StatusNoContent)
}
