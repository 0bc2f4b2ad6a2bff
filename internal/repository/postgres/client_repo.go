package postgres

import (
	"context"
	"time"

	"github.com/dafibh/backoffice/backoffice-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const clientColumns = `id, client_name, company_name, email, phone, address, service_name,
	additional_services, status, created_at, updated_at`

// ClientRepository implements domain.ClientRepository using PostgreSQL
type ClientRepository struct {
	base
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db querier, timeout time.Duration) *ClientRepository {
	return &ClientRepository{base: newBase(db, timeout)}
}

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		INSERT INTO clients (id, client_name, company_name, email, phone, address, service_name,
			additional_services, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+clientColumns,
		client.ID, client.ClientName, client.CompanyName, client.Email, client.Phone,
		stringPtrToPgText(client.Address), client.ServiceName,
		nonNilStrings(client.AdditionalServices), string(client.Status),
	)
	created, err := scanClient(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrClientEmailExists
		}
		return nil, mapError(err, domain.ErrClientNotFound)
	}
	return created, nil
}

// GetByID retrieves a client by its ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	client, err := scanClient(row)
	if err != nil {
		return nil, mapError(err, domain.ErrClientNotFound)
	}
	return client, nil
}

// List retrieves every client ordered by name
func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY client_name, created_at`)
	if err != nil {
		return nil, mapError(err, domain.ErrClientNotFound)
	}

	clients, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, mapError(err, domain.ErrClientNotFound)
	}
	return clients, nil
}

// Update overwrites the writable fields of a client
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row := r.db.QueryRow(ctx, `
		UPDATE clients
		SET client_name = $2, company_name = $3, email = $4, phone = $5, address = $6,
			service_name = $7, additional_services = $8, status = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING `+clientColumns,
		client.ID, client.ClientName, client.CompanyName, client.Email, client.Phone,
		stringPtrToPgText(client.Address), client.ServiceName,
		nonNilStrings(client.AdditionalServices), string(client.Status),
	)
	updated, err := scanClient(row)
	if err != nil {
		if isPgUniqueViolation(err) {
			return nil, domain.ErrClientEmailExists
		}
		return nil, mapError(err, domain.ErrClientNotFound)
	}
	return updated, nil
}

// Delete removes a client. Expenses and payments keep their copy of the name.
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapError(err, domain.ErrClientNotFound)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Count returns the number of clients
func (r *ClientRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, mapError(err, domain.ErrClientNotFound)
	}
	return n, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var (
		c       domain.Client
		address pgtype.Text
		status  string
	)
	err := row.Scan(&c.ID, &c.ClientName, &c.CompanyName, &c.Email, &c.Phone, &address,
		&c.ServiceName, &c.AdditionalServices, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	c.Address = pgTextToStringPtr(address)
	c.AdditionalServices = nonNilStrings(c.AdditionalServices)
	c.Status = domain.ClientStatus(status)
	return &c, nil
}
