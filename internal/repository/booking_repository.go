package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/hoteldesk/internal/domain"
)

// PostgresBookingRepository implements domain.BookingRepository using PostgreSQL
type PostgresBookingRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBookingRepository creates a new booking repository
func NewPostgresBookingRepository(db *sql.DB, logger *slog.Logger) *PostgresBookingRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookingRepository{
		db:     db,
		logger: logger,
	}
}

// List returns all bookings with customer and room details joined in
func (r *PostgresBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	query := `
		SELECT b.booking_id, b.customer_id, b.room_id,
		       c.first_name || ' ' || c.last_name,
		       rm.room_number,
		       b.check_in_date, b.check_out_date, b.status, b.total_price
		FROM bookings b
		JOIN customers c ON c.customer_id = b.customer_id
		JOIN rooms rm ON rm.room_id = b.room_id
		ORDER BY b.check_in_date DESC, b.booking_id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list bookings",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		err := rows.Scan(
			&b.BookingID,
			&b.CustomerID,
			&b.RoomID,
			&b.CustomerName,
			&b.RoomNumber,
			&b.CheckInDate,
			&b.CheckOutDate,
			&b.Status,
			&b.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, rows.Err()
}

// AvailableRooms returns rooms that are in service and have no overlapping
// active booking for the requested stay
func (r *PostgresBookingRepository) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]domain.Room, error) {
	query := `
		SELECT rm.room_id, rm.room_number, rm.room_type, rm.price, rm.status,
		       rm.floor, COALESCE(rm.description, '')
		FROM rooms rm
		WHERE rm.status != $1
		  AND rm.room_id NOT IN (
			SELECT b.room_id FROM bookings b
			WHERE b.status IN ($2, $3)
			  AND b.check_in_date < $4
			  AND b.check_out_date > $5
		  )
		ORDER BY rm.room_number
	`

	rows, err := r.db.QueryContext(ctx, query,
		domain.RoomMaintenance,
		domain.BookingConfirmed, domain.BookingCheckedIn,
		checkOut, checkIn,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query available rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		err := rows.Scan(
			&rm.RoomID,
			&rm.RoomNumber,
			&rm.Type,
			&rm.Price,
			&rm.Status,
			&rm.Floor,
			&rm.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room row: %w", err)
		}
		rooms = append(rooms, rm)
	}

	return rooms, rows.Err()
}

// CheckedInGuests counts bookings currently in the checked-in state
func (r *PostgresBookingRepository) CheckedInGuests(ctx context.Context) (int, error) {
	return r.countBookings(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = $1`,
		domain.BookingCheckedIn)
}

// ExpectedCheckIns counts confirmed bookings arriving on the given day
func (r *PostgresBookingRepository) ExpectedCheckIns(ctx context.Context, day time.Time) (int, error) {
	return r.countBookings(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = $1 AND check_in_date = $2`,
		domain.BookingConfirmed, dateOnly(day))
}

// ExpectedCheckOuts counts checked-in bookings leaving on the given day
func (r *PostgresBookingRepository) ExpectedCheckOuts(ctx context.Context, day time.Time) (int, error) {
	return r.countBookings(ctx,
		`SELECT COUNT(*) FROM bookings WHERE status = $1 AND check_out_date = $2`,
		domain.BookingCheckedIn, dateOnly(day))
}

// NewBookings counts bookings created on the given day
func (r *PostgresBookingRepository) NewBookings(ctx context.Context, day time.Time) (int, error) {
	return r.countBookings(ctx,
		`SELECT COUNT(*) FROM bookings WHERE booking_date = $1`,
		dateOnly(day))
}

// Revenue sums the total price of bookings created on the given day
func (r *PostgresBookingRepository) Revenue(ctx context.Context, day time.Time) (float64, error) {
	var revenue float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE booking_date = $1`,
		dateOnly(day),
	).Scan(&revenue)
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}

// ReleaseExpired checks out bookings whose check-out date has passed and
// marks their rooms available again. Both updates run in one transaction
// so a booking is never closed while its room stays occupied.
func (r *PostgresBookingRepository) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE rooms SET status = $1
		WHERE room_id IN (
			SELECT room_id FROM bookings
			WHERE status = $2 AND check_out_date < $3
		)
	`, domain.RoomAvailable, domain.BookingCheckedIn, dateOnly(now))
	if err != nil {
		return 0, fmt.Errorf("failed to release rooms: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE bookings SET status = $1
		WHERE status = $2 AND check_out_date < $3
	`, domain.BookingCheckedOut, domain.BookingCheckedIn, dateOnly(now))
	if err != nil {
		return 0, fmt.Errorf("failed to close expired bookings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit expired booking release: %w", err)
	}

	if rows > 0 {
		r.logger.Info("released expired bookings", slog.Int64("count", rows))
	}

	return int(rows), nil
}

func (r *PostgresBookingRepository) countBookings(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

// dateOnly truncates a timestamp to its calendar day so date columns compare
// by day regardless of the time of day the query runs.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
