package service

import (
	"context"
	"log"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/redis"
	"bikerental/internal/repository"
)

// DashboardService serves the operational summary: available bikes, active
// rentals, registered clients and today's income. Reads go through the
// cache; a periodic refresh keeps it warm.
type DashboardService struct {
	bikeRepo   repository.BikeRepository
	clientRepo repository.ClientRepository
	rentalRepo repository.RentalRepository
	cache      redis.StatsCacheInterface
	now        func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	bikeRepo repository.BikeRepository,
	clientRepo repository.ClientRepository,
	rentalRepo repository.RentalRepository,
	cache redis.StatsCacheInterface,
) *DashboardService {
	return &DashboardService{
		bikeRepo:   bikeRepo,
		clientRepo: clientRepo,
		rentalRepo: rentalRepo,
		cache:      cache,
		now:        time.Now,
	}
}

// Stats returns dashboard statistics, from cache when warm.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		log.Printf("Failed to read dashboard stats cache: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	return s.Refresh(ctx)
}

// Refresh recomputes dashboard statistics and stores them in the cache.
func (s *DashboardService) Refresh(ctx context.Context) (*domain.DashboardStats, error) {
	available, err := s.bikeRepo.GetAvailable(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.rentalRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.clientRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	income, err := s.rentalRepo.IncomeForDay(ctx, s.now())
	if err != nil {
		return nil, err
	}

	stats := &domain.DashboardStats{
		AvailableBikes: len(available),
		ActiveRentals:  len(active),
		Clients:        len(clients),
		IncomeToday:    income,
	}

	if err := s.cache.Set(ctx, stats); err != nil {
		log.Printf("Failed to cache dashboard stats: %v", err)
	}

	return stats, nil
}
