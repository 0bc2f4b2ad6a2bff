package service

import (
	"context"
	"strings"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/dafibh/backoffice/backoffice-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ClientService handles client business logic
type ClientService struct {
	notifier
	clientRepo domain.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo domain.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// List returns every client
func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.List(ctx)
}

// Get returns a client by ID
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	return s.clientRepo.GetByID(ctx, id)
}

// Create adds a client. Emails are unique across clients.
func (s *ClientService) Create(ctx context.Context, input domain.ClientInput) (*domain.Client, error) {
	client := &domain.Client{ID: uuid.New(), Status: domain.ClientStatusActive}
	if err := applyClient(client, input); err != nil {
		return nil, err
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		log.Error().Err(err).Str("email", client.Email).Msg("Failed to create client")
		return nil, err
	}

	s.notifyAll(websocket.EventTypeCreated, websocket.EntityTypeClient, created)
	return created, nil
}

// Update replaces the writable fields of a client
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input domain.ClientInput) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyClient(client, input); err != nil {
		return nil, err
	}

	updated, err := s.clientRepo.Update(ctx, client)
	if err != nil {
		log.Error().Err(err).Str("client_id", id.String()).Msg("Failed to update client")
		return nil, err
	}

	s.notifyAll(websocket.EventTypeUpdated, websocket.EntityTypeClient, updated)
	return updated, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyAll(websocket.EventTypeDeleted, websocket.EntityTypeClient, websocket.DeletedPayload{ID: id.String()})
	return nil
}

func applyClient(client *domain.Client, input domain.ClientInput) error {
	var err error
	if client.ClientName, err = requireText("client name", input.ClientName, domain.MaxNameLength); err != nil {
		return err
	}
	if client.CompanyName, err = requireText("company name", input.CompanyName, domain.MaxNameLength); err != nil {
		return err
	}
	if client.Email, err = requireText("email", input.Email, domain.MaxNameLength); err != nil {
		return err
	}
	client.Email = strings.ToLower(client.Email)
	if client.Phone, err = requireText("phone", input.Phone, 64); err != nil {
		return err
	}
	if client.Address, err = optionalText("address", input.Address, domain.MaxDescriptionLength); err != nil {
		return err
	}
	if client.ServiceName, err = requireText("service name", input.ServiceName, domain.MaxNameLength); err != nil {
		return err
	}
	client.AdditionalServices = cleanList(input.AdditionalServices)
	if input.Status != "" {
		client.Status = input.Status
	}
	return nil
}
