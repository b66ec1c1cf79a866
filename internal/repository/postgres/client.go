package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bikerental/internal/domain"
	"bikerental/internal/repository"
)

// ClientRepository is a PostgreSQL implementation of repository.ClientRepository.
type ClientRepository struct {
	q Querier
}

// NewClientRepository creates a new PostgreSQL client repository.
func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{q: db}
}

// NewClientRepositoryWithTx creates a client repository using a transaction.
func NewClientRepositoryWithTx(tx *sql.Tx) *ClientRepository {
	return &ClientRepository{q: tx}
}

const clientColumns = `id, name, phone, email, document, created_at`

// Create persists a new client.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	query := `
		INSERT INTO clients (id, name, phone, email, document, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		client.ID,
		client.Name,
		nullString(client.Phone),
		nullString(client.Email),
		client.Document,
		client.CreatedAt,
	)

	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var client domain.Client
	var phone, email sql.NullString
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&phone,
		&email,
		&client.Document,
		&client.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	client.Phone = phone.String
	client.Email = email.String

	return &client, nil
}

// GetAll retrieves all clients.
func (r *ClientRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at`

	return r.queryClients(ctx, query)
}

// Search retrieves clients whose name, phone or email contains the query.
func (r *ClientRepository) Search(ctx context.Context, query string) ([]*domain.Client, error) {
	q := `
		SELECT ` + clientColumns + `
		FROM clients
		WHERE name ILIKE $1 OR phone ILIKE $1 OR email ILIKE $1
		ORDER BY name
	`

	return r.queryClients(ctx, q, "%"+query+"%")
}

// Update updates an existing client.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	query := `
		UPDATE clients
		SET name = $1, phone = $2, email = $3, document = $4
		WHERE id = $5
	`

	result, err := r.q.ExecContext(ctx, query,
		client.Name,
		nullString(client.Phone),
		nullString(client.Email),
		client.Document,
		client.ID,
	)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

// Delete removes a client. Rental history rows keep the client id.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireRowsAffected(result)
}

func (r *ClientRepository) queryClients(ctx context.Context, query string, args ...any) ([]*domain.Client, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*domain.Client
	for rows.Next() {
		var client domain.Client
		var phone, email sql.NullString
		if err := rows.Scan(
			&client.ID,
			&client.Name,
			&phone,
			&email,
			&client.Document,
			&client.CreatedAt,
		); err != nil {
			return nil, err
		}
		client.Phone = phone.String
		client.Email = email.String
		clients = append(clients, &client)
	}

	return clients, rows.Err()
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ClientRepository implements repository.ClientRepository.
var _ repository.ClientRepository = (*ClientRepository)(nil)
