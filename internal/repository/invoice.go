package repository

import (
	"context"

	"bikerental/internal/domain"
)

// InvoiceRepository defines the persistence operations for invoices.
type InvoiceRepository interface {
	// Create persists a new invoice.
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice by ID.
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)

	// GetByRentalID retrieves the invoice issued for a rental.
	// Returns nil if the rental has no invoice.
	GetByRentalID(ctx context.Context, rentalID string) (*domain.Invoice, error)

	// UpdateStatus updates the status of an invoice.
	UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error
}
