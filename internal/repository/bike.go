package repository

import (
	"context"

	"bikerental/internal/domain"
)

// BikeFilter narrows a bike search. Query matches model and serial number
// as a case-insensitive substring; Type and Status are exact when set.
type BikeFilter struct {
	Query  string
	Type   domain.BikeType
	Status domain.BikeStatus
}

// BikeRepository defines the persistence operations for bikes.
type BikeRepository interface {
	// Create persists a new bike.
	Create(ctx context.Context, bike *domain.Bike) error

	// GetByID retrieves a bike by ID.
	GetByID(ctx context.Context, id string) (*domain.Bike, error)

	// GetBySerial retrieves a bike by serial number.
	// Returns nil if no bike has the given serial.
	GetBySerial(ctx context.Context, serial string) (*domain.Bike, error)

	// GetAll retrieves all bikes.
	GetAll(ctx context.Context) ([]*domain.Bike, error)

	// GetAvailable retrieves all bikes currently available for rent.
	GetAvailable(ctx context.Context) ([]*domain.Bike, error)

	// Search retrieves bikes matching the filter.
	Search(ctx context.Context, filter BikeFilter) ([]*domain.Bike, error)

	// Update updates an existing bike.
	Update(ctx context.Context, bike *domain.Bike) error

	// UpdateStatus updates only the status of a bike.
	UpdateStatus(ctx context.Context, id string, status domain.BikeStatus) error

	// Delete removes a bike.
	Delete(ctx context.Context, id string) error
}
