package postgres

import (
	"context"
	"database/sql"

	"bikerental/internal/repository"
)

// UnitOfWork is a PostgreSQL implementation of repository.UnitOfWork.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a new PostgreSQL unit of work.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do begins a transaction, hands transaction-scoped repositories to fn and
// commits. Any error from fn rolls the transaction back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	repos := repository.Repos{
		Bikes:    NewBikeRepositoryWithTx(tx),
		Clients:  NewClientRepositoryWithTx(tx),
		Rentals:  NewRentalRepositoryWithTx(tx),
		Invoices: NewInvoiceRepositoryWithTx(tx),
		Payments: NewPaymentRepositoryWithTx(tx),
	}

	if err := fn(repos); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// Ensure UnitOfWork implements repository.UnitOfWork.
var _ repository.UnitOfWork = (*UnitOfWork)(nil)
