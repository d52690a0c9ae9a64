package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/listing"
	"github.com/yourorg/hoteldesk/internal/observability/metrics"
	"github.com/yourorg/hoteldesk/pkg/cache"
)

const dashboardCacheKey = "dashboard:stats"

// bookingFields wires bookings into the list engine: free-text search scans
// the guest name and room number; the categorical filter is the booking
// status.
var bookingFields = listing.Fields[domain.Booking]{
	Search: []func(domain.Booking) string{
		func(b domain.Booking) string { return b.CustomerName },
		func(b domain.Booking) string { return b.RoomNumber },
	},
	Category: func(b domain.Booking) string { return b.Status },
}

// BookingService handles bookings, room availability and the front-desk
// dashboard
type BookingService struct {
	bookingRepo domain.BookingRepository
	cache       *cache.Cache
	cacheTTL    time.Duration
	logger      *slog.Logger
}

// NewBookingService creates a new booking service. The dashboard counters
// are cached for cacheTTL to keep the dashboard from hammering the store.
func NewBookingService(bookingRepo domain.BookingRepository, statsCache *cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *BookingService {
	if logger == nil {
		logger = slog.Default()
	}

	return &BookingService{
		bookingRepo: bookingRepo,
		cache:       statsCache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// List returns one page of bookings, filtered by search term and status
func (s *BookingService) List(ctx context.Context, req listing.Request) (listing.Page[domain.Booking], error) {
	bookings, err := s.bookingRepo.List(ctx)
	if err != nil {
		return listing.Page[domain.Booking]{}, err
	}

	metrics.ObserveListRequest("bookings")
	return listing.Paginate(bookings, bookingFields, req), nil
}

// AvailableRooms returns rooms free for the requested stay
func (s *BookingService) AvailableRooms(ctx context.Context, checkIn, checkOut time.Time) ([]domain.Room, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return nil, &domain.ValidationError{Field: "check_in_date", Reason: "check-in and check-out dates are required"}
	}
	if !checkOut.After(checkIn) {
		return nil, &domain.ValidationError{Field: "check_out_date", Reason: "check-out must be after check-in"}
	}

	return s.bookingRepo.AvailableRooms(ctx, checkIn, checkOut)
}

// Dashboard returns today's front-desk counters, cached briefly
func (s *BookingService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	if cached, ok := s.cache.Get(dashboardCacheKey); ok {
		stats := cached.(domain.DashboardStats)
		return &stats, nil
	}

	now := time.Now()
	stats := domain.DashboardStats{}

	var err error
	if stats.CheckedInGuests, err = s.bookingRepo.CheckedInGuests(ctx); err != nil {
		return nil, err
	}
	if stats.ExpectedCheckIns, err = s.bookingRepo.ExpectedCheckIns(ctx, now); err != nil {
		return nil, err
	}
	if stats.ExpectedCheckOuts, err = s.bookingRepo.ExpectedCheckOuts(ctx, now); err != nil {
		return nil, err
	}
	if stats.NewBookingsToday, err = s.bookingRepo.NewBookings(ctx, now); err != nil {
		return nil, err
	}
	if stats.RevenueToday, err = s.bookingRepo.Revenue(ctx, now); err != nil {
		return nil, err
	}

	s.cache.Set(dashboardCacheKey, stats, s.cacheTTL)
	return &stats, nil
}

// ReleaseExpired closes out stays whose check-out date has passed. The
// background worker calls this on a schedule; the dashboard cache is
// invalidated when anything changed.
func (s *BookingService) ReleaseExpired(ctx context.Context, now time.Time) (int, error) {
	released, err := s.bookingRepo.ReleaseExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	if released > 0 {
		s.cache.Delete(dashboardCacheKey)
		metrics.ObserveAutoCheckouts(released)
	}
	return released, nil
}
