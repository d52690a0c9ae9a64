package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/hoteldesk/internal/domain"
)

// PostgresFeedbackRepository implements domain.FeedbackRepository using PostgreSQL
type PostgresFeedbackRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresFeedbackRepository creates a new feedback repository
func NewPostgresFeedbackRepository(db *sql.DB, logger *slog.Logger) *PostgresFeedbackRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFeedbackRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all feedback entries with the customer name joined in,
// newest first
func (r *PostgresFeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	query := `
		SELECT f.feedback_id, f.customer_id, COALESCE(f.booking_id, 0),
		       c.first_name || ' ' || c.last_name,
		       f.rating, COALESCE(f.comments, ''), f.feedback_date
		FROM feedback f
		JOIN customers c ON c.customer_id = f.customer_id
		ORDER BY f.feedback_date DESC, f.feedback_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list feedback",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	var entries []domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		err := rows.Scan(
			&f.FeedbackID,
			&f.CustomerID,
			&f.BookingID,
			&f.CustomerName,
			&f.Rating,
			&f.Comments,
			&f.FeedbackDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		entries = append(entries, f)
	}

	return entries, rows.Err()
}

// Add inserts a new feedback entry. A zero BookingID is stored as NULL.
func (r *PostgresFeedbackRepository) Add(ctx context.Context, feedback *domain.Feedback) error {
	var bookingID any
	if feedback.BookingID != 0 {
		bookingID = feedback.BookingID
	}

	query := `
		INSERT INTO feedback (customer_id, booking_id, rating, comments, feedback_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING feedback_id
	`

	err := r.db.QueryRowContext(ctx, query,
		feedback.CustomerID,
		bookingID,
		feedback.Rating,
		feedback.Comments,
		feedback.FeedbackDate,
	).Scan(&feedback.FeedbackID)
	if err != nil {
		r.logger.Error("failed to add feedback",
			slog.Int("customer_id", feedback.CustomerID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to add feedback: %w", err)
	}

	return nil
}
