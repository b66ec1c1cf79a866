package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// BikeService handles fleet management operations.
type BikeService struct {
	bikeRepo repository.BikeRepository
}

// NewBikeService creates a new BikeService.
func NewBikeService(bikeRepo repository.BikeRepository) *BikeService {
	return &BikeService{bikeRepo: bikeRepo}
}

// RegisterBikeRequest contains the parameters for registering a bike.
type RegisterBikeRequest struct {
	Model        string
	SerialNumber string
	Type         domain.BikeType
	PricePerHour float64
}

// Register adds a new bike to the fleet in Available status.
func (s *BikeService) Register(ctx context.Context, req RegisterBikeRequest) (*domain.Bike, error) {
	if err := s.validate(req.Model, req.SerialNumber, req.Type, req.PricePerHour); err != nil {
		return nil, err
	}

	existing, err := s.bikeRepo.GetBySerial(ctx, strings.TrimSpace(req.SerialNumber))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateSerial
	}

	bike := &domain.Bike{
		ID:           uuid.New().String(),
		Model:        strings.TrimSpace(req.Model),
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		Type:         req.Type,
		Status:       domain.BikeStatusAvailable,
		PricePerHour: req.PricePerHour,
	}

	if err := s.bikeRepo.Create(ctx, bike); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrDuplicateSerial
		}
		return nil, err
	}

	return bike, nil
}

// UpdateBikeRequest contains the parameters for editing a bike.
type UpdateBikeRequest struct {
	BikeID       string
	Model        string
	SerialNumber string
	Type         domain.BikeType
	PricePerHour float64
}

// Update edits a bike's details. Rented bikes cannot be edited.
func (s *BikeService) Update(ctx context.Context, req UpdateBikeRequest) (*domain.Bike, error) {
	if req.BikeID == "" {
		return nil, ErrInvalidBikeID
	}
	if err := s.validate(req.Model, req.SerialNumber, req.Type, req.PricePerHour); err != nil {
		return nil, err
	}

	bike, err := s.bikeRepo.GetByID(ctx, req.BikeID)
	if err != nil {
		return nil, err
	}
	if bike.Status == domain.BikeStatusRented {
		return nil, ErrBikeRented
	}

	serial := strings.TrimSpace(req.SerialNumber)
	other, err := s.bikeRepo.GetBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != bike.ID {
		return nil, ErrDuplicateSerial
	}

	bike.Model = strings.TrimSpace(req.Model)
	bike.SerialNumber = serial
	bike.Type = req.Type
	bike.PricePerHour = req.PricePerHour

	if err := s.bikeRepo.Update(ctx, bike); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrDuplicateSerial
		}
		return nil, err
	}

	return bike, nil
}

// ChangeStatus sets a bike's status manually (e.g. to Maintenance).
func (s *BikeService) ChangeStatus(ctx context.Context, bikeID string, status domain.BikeStatus) error {
	if bikeID == "" {
		return ErrInvalidBikeID
	}
	if !domain.ValidBikeStatus(status) {
		return ErrInvalidBikeStatus
	}

	return s.bikeRepo.UpdateStatus(ctx, bikeID, status)
}

// Delete removes a bike. Rented bikes cannot be deleted.
func (s *BikeService) Delete(ctx context.Context, bikeID string) error {
	if bikeID == "" {
		return ErrInvalidBikeID
	}

	bike, err := s.bikeRepo.GetByID(ctx, bikeID)
	if err != nil {
		return err
	}
	if bike.Status == domain.BikeStatusRented {
		return ErrBikeRented
	}

	return s.bikeRepo.Delete(ctx, bikeID)
}

// GetAll retrieves all bikes.
func (s *BikeService) GetAll(ctx context.Context) ([]*domain.Bike, error) {
	return s.bikeRepo.GetAll(ctx)
}

// GetAvailable retrieves all bikes available for rent.
func (s *BikeService) GetAvailable(ctx context.Context) ([]*domain.Bike, error) {
	return s.bikeRepo.GetAvailable(ctx)
}

// Search retrieves bikes matching the filter.
func (s *BikeService) Search(ctx context.Context, filter repository.BikeFilter) ([]*domain.Bike, error) {
	if filter.Type != "" && !domain.ValidBikeType(filter.Type) {
		return nil, ErrInvalidBikeType
	}
	if filter.Status != "" && !domain.ValidBikeStatus(filter.Status) {
		return nil, ErrInvalidBikeStatus
	}

	return s.bikeRepo.Search(ctx, filter)
}

func (s *BikeService) validate(model, serial string, bikeType domain.BikeType, price float64) error {
	if strings.TrimSpace(model) == "" {
		return ErrInvalidModel
	}
	if strings.TrimSpace(serial) == "" {
		return ErrInvalidSerial
	}
	if !domain.ValidBikeType(bikeType) {
		return ErrInvalidBikeType
	}
	if price <= 0 {
		return ErrInvalidPrice
	}
	return nil
}
