package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yourorg/hoteldesk/internal/service"
)

// BookingsHandler handles the booking list and room availability endpoints
type BookingsHandler struct {
	bookingService *service.BookingService
	logger         *slog.Logger
}

// NewBookingsHandler creates a new bookings handler
func NewBookingsHandler(bookingService *service.BookingService, logger *slog.Logger) *BookingsHandler {
	return &BookingsHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// List handles GET /api/bookings
func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := h.bookingService.List(r.Context(), parseListRequest(r))
	if err != nil {
		h.logger.Error("failed to list bookings", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse(page))
}

// AvailableRooms handles GET /api/rooms/available?check_in=YYYY-MM-DD&check_out=YYYY-MM-DD
func (h *BookingsHandler) AvailableRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	checkIn, err := time.Parse("2006-01-02", q.Get("check_in"))
	if err != nil {
		http.Error(w, "invalid check_in date", http.StatusBadRequest)
		return
	}
	checkOut, err := time.Parse("2006-01-02", q.Get("check_out"))
	if err != nil {
		http.Error(w, "invalid check_out date", http.StatusBadRequest)
		return
	}

	rooms, err := h.bookingService.AvailableRooms(r.Context(), checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}
