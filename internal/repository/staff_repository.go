package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/hoteldesk/internal/domain"
)

// PostgresStaffRepository implements domain.StaffRepository using PostgreSQL
type PostgresStaffRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresStaffRepository creates a new staff repository
func NewPostgresStaffRepository(db *sql.DB, logger *slog.Logger) *PostgresStaffRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStaffRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all staff directory entries
func (r *PostgresStaffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	query := `
		SELECT user_id, first_name, last_name, phone_number, email, position,
		       COALESCE(hire_date, '0001-01-01'), COALESCE(salary, 0), COALESCE(address, '')
		FROM staff
		ORDER BY last_name, first_name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list staff",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	var staff []domain.Staff
	for rows.Next() {
		var s domain.Staff
		err := rows.Scan(
			&s.UserID,
			&s.FirstName,
			&s.LastName,
			&s.PhoneNumber,
			&s.Email,
			&s.Position,
			&s.HireDate,
			&s.Salary,
			&s.Address,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff row: %w", err)
		}
		staff = append(staff, s)
	}

	return staff, rows.Err()
}

// Add inserts a new staff directory entry
func (r *PostgresStaffRepository) Add(ctx context.Context, staff *domain.Staff) error {
	query := `
		INSERT INTO staff (user_id, first_name, last_name, phone_number, email, position, hire_date, salary, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		staff.UserID,
		staff.FirstName,
		staff.LastName,
		staff.PhoneNumber,
		staff.Email,
		staff.Position,
		staff.HireDate,
		staff.Salary,
		staff.Address,
	)
	if err != nil {
		r.logger.Error("failed to add staff",
			slog.Int("user_id", staff.UserID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to add staff: %w", err)
	}

	return nil
}

// Update replaces a staff directory entry
func (r *PostgresStaffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	query := `
		UPDATE staff
		SET first_name = $1, last_name = $2, phone_number = $3, email = $4,
		    position = $5, hire_date = $6, salary = $7, address = $8
		WHERE user_id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		staff.FirstName,
		staff.LastName,
		staff.PhoneNumber,
		staff.Email,
		staff.Position,
		staff.HireDate,
		staff.Salary,
		staff.Address,
		staff.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes a staff directory entry
func (r *PostgresStaffRepository) Delete(ctx context.Context, userID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM staff WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
