package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusPending  ClientStatus = "pending"
)

type Client struct {
	ID                 uuid.UUID    `json:"id"`
	ClientName         string       `json:"clientName"`
	CompanyName        string       `json:"companyName"`
	Email              string       `json:"email"`
	Phone              string       `json:"phone"`
	Address            *string      `json:"address,omitempty"`
	ServiceName        string       `json:"serviceName"`
	AdditionalServices []string     `json:"additionalServices"`
	Status             ClientStatus `json:"status"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type ClientInput struct {
	ClientName         string       `json:"clientName" validate:"required,max=255"`
	CompanyName        string       `json:"companyName" validate:"required,max=255"`
	Email              string       `json:"email" validate:"required,email,max=255"`
	Phone              string       `json:"phone" validate:"required,max=64"`
	Address            *string      `json:"address,omitempty" validate:"omitempty,max=1000"`
	ServiceName        string       `json:"serviceName" validate:"required,max=255"`
	AdditionalServices []string     `json:"additionalServices" validate:"dive,max=255"`
	Status             ClientStatus `json:"status" validate:"omitempty,oneof=active inactive pending"`
}

type ClientRepository interface {
	Create(ctx context.Context, client *Client) (*Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Update(ctx context.Context, client *Client) (*Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
