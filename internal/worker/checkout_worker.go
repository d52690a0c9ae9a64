package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yourorg/hoteldesk/internal/service"
)

// Notifier receives desk events for connected clients. A nil Notifier is
// allowed; events are simply not published.
type Notifier interface {
	Publish(eventType, message string)
}

// CheckoutWorker periodically closes out stays whose check-out date has
// passed so their rooms return to the available pool without a receptionist
// touching every booking.
type CheckoutWorker struct {
	bookingService *service.BookingService
	notifier       Notifier
	logger         *slog.Logger
	interval       time.Duration
}

// NewCheckoutWorker creates a new checkout worker
func NewCheckoutWorker(
	bookingService *service.BookingService,
	notifier Notifier,
	logger *slog.Logger,
	interval time.Duration,
) *CheckoutWorker {
	if logger == nil {
		logger = slog.Default()
	}

	return &CheckoutWorker{
		bookingService: bookingService,
		notifier:       notifier,
		logger:         logger,
		interval:       interval,
	}
}

// Start begins the checkout worker loop. It runs until the context is
// cancelled.
func (w *CheckoutWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("checkout worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("checkout worker stopped")
			return
		case <-ticker.C:
			w.releaseExpired(ctx)
		}
	}
}

func (w *CheckoutWorker) releaseExpired(ctx context.Context) {
	released, err := w.bookingService.ReleaseExpired(ctx, time.Now())
	if err != nil {
		w.logger.Error("failed to release expired bookings",
			slog.String("error", err.Error()),
		)
		return
	}

	if released == 0 {
		return
	}

	w.logger.Info("auto checkout completed", slog.Int("released", released))

	if w.notifier != nil {
		w.notifier.Publish("auto_checkout",
			fmt.Sprintf("%d stay(s) checked out automatically", released))
	}
}
