package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/hoteldesk/internal/domain"
)

// PostgresUserRepository implements domain.UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *sql.DB, logger *slog.Logger) *PostgresUserRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserRepository{
		db:     db,
		logger: logger,
	}
}

// FindByUsername retrieves a user identity by exact username
func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{}

	query := `
		SELECT user_id, username, password, role
		FROM users
		WHERE username = $1
	`

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to find user by username",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// GetWithStaffDetails retrieves a user identity together with its staff
// profile. Users without a staff row come back with empty detail fields.
func (r *PostgresUserRepository) GetWithStaffDetails(ctx context.Context, userID int) (*domain.User, error) {
	user := &domain.User{}

	query := `
		SELECT u.user_id, u.username, u.password, u.role,
		       COALESCE(s.first_name, ''), COALESCE(s.last_name, ''),
		       COALESCE(s.phone_number, ''), COALESCE(s.email, ''),
		       COALESCE(s.position, '')
		FROM users u
		LEFT JOIN staff s ON s.user_id = u.user_id
		WHERE u.user_id = $1
	`

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.UserID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.FirstName,
		&user.LastName,
		&user.PhoneNumber,
		&user.Email,
		&user.Position,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("failed to get user with staff details",
			slog.Int("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Create inserts a new user identity and, when any staff detail field is
// set, its staff profile in the same transaction.
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (username, password, role)
		VALUES ($1, $2, $3)
		RETURNING user_id
	`

	err = tx.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
	).Scan(&user.UserID)
	if err != nil {
		r.logger.Error("failed to create user",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if user.FirstName != "" || user.LastName != "" || user.Email != "" || user.PhoneNumber != "" || user.Position != "" {
		staffQuery := `
			INSERT INTO staff (user_id, first_name, last_name, phone_number, email, position)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		_, err = tx.ExecContext(ctx, staffQuery,
			user.UserID,
			user.FirstName,
			user.LastName,
			user.PhoneNumber,
			user.Email,
			user.Position,
		)
		if err != nil {
			return fmt.Errorf("failed to create staff profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}

	return nil
}

// Delete removes a user identity and its staff profile
func (r *PostgresUserRepository) Delete(ctx context.Context, userID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM staff WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete staff profile: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user deletion: %w", err)
	}

	return nil
}

// UpdateProfile updates a user's credentials and staff profile in a single
// transaction. The sequence is:
//
//  1. Verify the user identity exists, aborting with ErrNotFound before any
//     write when it does not.
//  2. When changePassword is set, update the stored credential. An update
//     that affects no rows is a ConstraintError and rolls everything back.
//  3. Update the staff profile when one exists, or insert it when the user
//     has none yet.
//
// Either every step commits or none of them do: a failed staff write must
// not leave a changed password behind.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, user *domain.User, changePassword bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE user_id = $1`, user.UserID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check user existence: %w", err)
	}
	if count == 0 {
		return domain.ErrNotFound
	}

	if changePassword {
		result, err := tx.ExecContext(ctx,
			`UPDATE users SET password = $1 WHERE user_id = $2`,
			user.PasswordHash, user.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return &domain.ConstraintError{Table: "users", Op: "update", Key: user.UserID}
		}
	}

	var staffCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM staff WHERE user_id = $1`, user.UserID,
	).Scan(&staffCount)
	if err != nil {
		return fmt.Errorf("failed to check staff existence: %w", err)
	}

	if staffCount > 0 {
		result, err := tx.ExecContext(ctx, `
			UPDATE staff
			SET first_name = $1, last_name = $2, email = $3, phone_number = $4
			WHERE user_id = $5
		`,
			user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.UserID,
		)
		if err != nil {
			return fmt.Errorf("failed to update staff profile: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check rows affected: %w", err)
		}
		if rows == 0 {
			return &domain.ConstraintError{Table: "staff", Op: "update", Key: user.UserID}
		}
	} else {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO staff (user_id, first_name, last_name, email, phone_number)
			VALUES ($1, $2, $3, $4, $5)
		`,
			user.UserID, user.FirstName, user.LastName, user.Email, user.PhoneNumber,
		)
		if err != nil {
			return fmt.Errorf("failed to insert staff profile: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile update: %w", err)
	}

	r.logger.Debug("profile updated",
		slog.Int("user_id", user.UserID),
		slog.Bool("password_changed", changePassword),
	)

	return nil
}
