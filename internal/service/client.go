package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// ClientService handles client registration and lookup.
type ClientService struct {
	clientRepo repository.ClientRepository
	rentalRepo repository.RentalRepository
}

// NewClientService creates a new ClientService.
func NewClientService(clientRepo repository.ClientRepository, rentalRepo repository.RentalRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		rentalRepo: rentalRepo,
	}
}

// RegisterClientRequest contains the parameters for registering a client.
type RegisterClientRequest struct {
	Name     string
	Phone    string
	Email    string
	Document string
}

// Register adds a new client after validating all fields.
func (s *ClientService) Register(ctx context.Context, req RegisterClientRequest) (*domain.Client, error) {
	if err := ValidateClient(req.Name, req.Phone, req.Email, req.Document); err != nil {
		return nil, err
	}

	client := &domain.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Document:  strings.TrimSpace(req.Document),
		CreatedAt: time.Now(),
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// UpdateClientRequest contains the parameters for editing a client.
type UpdateClientRequest struct {
	ClientID string
	Name     string
	Phone    string
	Email    string
	Document string
}

// Update edits a client's details after validating all fields.
func (s *ClientService) Update(ctx context.Context, req UpdateClientRequest) (*domain.Client, error) {
	if req.ClientID == "" {
		return nil, ErrInvalidClientID
	}
	if err := ValidateClient(req.Name, req.Phone, req.Email, req.Document); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Phone = strings.TrimSpace(req.Phone)
	client.Email = strings.TrimSpace(req.Email)
	client.Document = strings.TrimSpace(req.Document)

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// Delete removes a client. Rental history rows keep the client id so past
// reports stay intact.
func (s *ClientService) Delete(ctx context.Context, clientID string) error {
	if clientID == "" {
		return ErrInvalidClientID
	}

	return s.clientRepo.Delete(ctx, clientID)
}

// GetByID retrieves a client by id.
func (s *ClientService) GetByID(ctx context.Context, clientID string) (*domain.Client, error) {
	if clientID == "" {
		return nil, ErrInvalidClientID
	}

	return s.clientRepo.GetByID(ctx, clientID)
}

// GetAll retrieves all clients.
func (s *ClientService) GetAll(ctx context.Context) ([]*domain.Client, error) {
	return s.clientRepo.GetAll(ctx)
}

// Search retrieves clients whose name, phone or email matches the query.
func (s *ClientService) Search(ctx context.Context, query string) ([]*domain.Client, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.clientRepo.GetAll(ctx)
	}

	return s.clientRepo.Search(ctx, query)
}

// History retrieves a client's rentals, newest first, with bike models.
func (s *ClientService) History(ctx context.Context, clientID string) ([]*domain.RentalHistoryEntry, error) {
	if clientID == "" {
		return nil, ErrInvalidClientID
	}

	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	return s.rentalRepo.GetHistoryByClientID(ctx, clientID)
}
