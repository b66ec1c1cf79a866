package service

import (
	"context"
	"testing"
	"time"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

type activeRentalsStub struct {
	repository.RentalRepository
	rentals []*domain.Rental
}

func (s *activeRentalsStub) GetActive(ctx context.Context) ([]*domain.Rental, error) {
	return s.rentals, nil
}

type noClientsStub struct{ repository.ClientRepository }

func (s *noClientsStub) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	return nil, repository.ErrNotFound
}

type noBikesStub struct{ repository.BikeRepository }

func (s *noBikesStub) GetByID(ctx context.Context, id string) (*domain.Bike, error) {
	return nil, repository.ErrNotFound
}

type recordingNotifier struct{ sent []Notification }

func (n *recordingNotifier) Notify(ctx context.Context, msg Notification) error {
	n.sent = append(n.sent, msg)
	return nil
}

func TestSweep_RemindsAtExactExpectedEnd(t *testing.T) {
	t.Parallel()

	rental := &domain.Rental{
		ID:            "rental-1",
		StartTime:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		DurationHours: 1,
		Status:        domain.RentalStatusActive,
	}

	notifier := &recordingNotifier{}
	m := NewOverdueMonitor(&activeRentalsStub{rentals: []*domain.Rental{rental}}, &noClientsStub{}, &noBikesStub{}, nil, notifier)
	// The reminder window opens the moment the rental time runs out, not a
	// tick later.
	m.now = func() time.Time { return rental.ExpectedEnd() }

	if err := m.Sweep(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	if notifier.sent[0].Type != NotificationReturnDue {
		t.Errorf("notification type = %s, want %s", notifier.sent[0].Type, NotificationReturnDue)
	}
}
