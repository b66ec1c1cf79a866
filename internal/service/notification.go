package service

import (
	"context"
	"fmt"
	"log"
	"time"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRentalCreated   NotificationType = "RENTAL_CREATED"
	NotificationRentalCompleted NotificationType = "RENTAL_COMPLETED"
	NotificationReturnDue       NotificationType = "RETURN_DUE"
	NotificationRentalOverdue   NotificationType = "RENTAL_OVERDUE"
)

// Notification is a tray-style message with a title and body, addressed by
// the rental it concerns.
type Notification struct {
	Type      NotificationType
	RentalID  string
	Title     string
	Message   string
	CreatedAt time.Time
}

// Notifier delivers notifications. The overdue monitor guarantees at most
// one delivery per (rental, event) pair per process lifetime.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotificationService is the log-backed Notifier used in production.
type NotificationService struct {
	// A desktop build would route these to the system tray; a hosted one
	// to push/SMS/email providers.
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Notify delivers a notification to the log sink.
func (s *NotificationService) Notify(ctx context.Context, n Notification) error {
	log.Printf("[NOTIFICATION] Type=%s, Rental=%s, Title=%s, Message=%s",
		n.Type, n.RentalID, n.Title, n.Message)
	return nil
}

// ReturnDueNotification builds the one-time "please return" reminder sent
// when a rental reaches its expected end.
func ReturnDueNotification(rentalID, clientName, bikeModel string) Notification {
	return Notification{
		Type:      NotificationReturnDue,
		RentalID:  rentalID,
		Title:     "Rental time is up",
		Message:   fmt.Sprintf("%s - %s: rental time has ended. Please return the bike.", clientName, bikeModel),
		CreatedAt: time.Now(),
	}
}

// OverdueNotification builds the accrual message describing cumulative
// overdue time and cumulative penalty.
func OverdueNotification(rentalID, clientName, bikeModel string, overdueHours, totalPenalty float64) Notification {
	return Notification{
		Type:      NotificationRentalOverdue,
		RentalID:  rentalID,
		Title:     "Overdue rental",
		Message:   fmt.Sprintf("%s - %s: overdue by %.1f h, penalty: %.2f", clientName, bikeModel, overdueHours, totalPenalty),
		CreatedAt: time.Now(),
	}
}

// RentalCreatedNotification announces a freshly paid rental.
func RentalCreatedNotification(rentalID string, totalCost float64) Notification {
	return Notification{
		Type:      NotificationRentalCreated,
		RentalID:  rentalID,
		Title:     "Rental created",
		Message:   fmt.Sprintf("Rental %s created, paid %.2f", rentalID, totalCost),
		CreatedAt: time.Now(),
	}
}

// RentalCompletedNotification announces a completed rental and its final cost.
func RentalCompletedNotification(rentalID string, totalCost float64) Notification {
	return Notification{
		Type:      NotificationRentalCompleted,
		RentalID:  rentalID,
		Title:     "Rental completed",
		Message:   fmt.Sprintf("Rental %s completed, final cost %.2f", rentalID, totalCost),
		CreatedAt: time.Now(),
	}
}
