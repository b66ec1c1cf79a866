package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// InvoiceRepository is a PostgreSQL implementation of repository.InvoiceRepository.
type InvoiceRepository struct {
	q Querier
}

// NewInvoiceRepository creates a new PostgreSQL invoice repository.
func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{q: db}
}

// NewInvoiceRepositoryWithTx creates an invoice repository using a transaction.
func NewInvoiceRepositoryWithTx(tx *sql.Tx) *InvoiceRepository {
	return &InvoiceRepository{q: tx}
}

// Create persists a new invoice.
func (r *InvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, rental_id, invoice_date, amount, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		invoice.ID,
		invoice.RentalID,
		invoice.InvoiceDate,
		invoice.Amount,
		invoice.Status,
	)

	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	query := `
		SELECT id, rental_id, invoice_date, amount, status
		FROM invoices WHERE id = $1
	`

	var invoice domain.Invoice
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&invoice.ID,
		&invoice.RentalID,
		&invoice.InvoiceDate,
		&invoice.Amount,
		&invoice.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return &invoice, nil
}

// GetByRentalID retrieves the invoice issued for a rental.
// Returns nil if the rental has no invoice.
func (r *InvoiceRepository) GetByRentalID(ctx context.Context, rentalID string) (*domain.Invoice, error) {
	query := `
		SELECT id, rental_id, invoice_date, amount, status
		FROM invoices WHERE rental_id = $1
	`

	var invoice domain.Invoice
	err := r.q.QueryRowContext(ctx, query, rentalID).Scan(
		&invoice.ID,
		&invoice.RentalID,
		&invoice.InvoiceDate,
		&invoice.Amount,
		&invoice.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &invoice, nil
}

// UpdateStatus updates the status of an invoice.
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id string, status domain.InvoiceStatus) error {
	query := `UPDATE invoices SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// Ensure InvoiceRepository implements repository.InvoiceRepository.
var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)
