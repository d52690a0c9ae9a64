package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/hoteldesk/internal/domain"
)

// PostgresCustomerRepository implements domain.CustomerRepository using PostgreSQL
type PostgresCustomerRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCustomerRepository creates a new customer repository
func NewPostgresCustomerRepository(db *sql.DB, logger *slog.Logger) *PostgresCustomerRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCustomerRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all customers on record
func (r *PostgresCustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	query := `
		SELECT customer_id, first_name, last_name, COALESCE(email, ''), COALESCE(phone_number, '')
		FROM customers
		ORDER BY last_name, first_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list customers",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		err := rows.Scan(
			&c.CustomerID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.PhoneNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}
