package repository

import (
	"context"

	"bikerental/internal/domain"
)

// ClientRepository defines the persistence operations for clients.
type ClientRepository interface {
	// Create persists a new client.
	Create(ctx context.Context, client *domain.Client) error

	// GetByID retrieves a client by ID.
	GetByID(ctx context.Context, id string) (*domain.Client, error)

	// GetAll retrieves all clients.
	GetAll(ctx context.Context) ([]*domain.Client, error)

	// Search retrieves clients whose name, phone or email contains the
	// query as a case-insensitive substring.
	Search(ctx context.Context, query string) ([]*domain.Client, error)

	// Update updates an existing client.
	Update(ctx context.Context, client *domain.Client) error

	// Delete removes a client. Rental history rows are kept.
	Delete(ctx context.Context, id string) error
}
