package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/hoteldesk/internal/access"
	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/service"
)

// DashboardResponse represents the front-desk dashboard. RevenueToday is
// only present for roles allowed to see the financial section.
type DashboardResponse struct {
	CheckedInGuests   int      `json:"checked_in_guests"`
	ExpectedCheckIns  int      `json:"expected_check_ins"`
	ExpectedCheckOuts int      `json:"expected_check_outs"`
	NewBookingsToday  int      `json:"new_bookings_today"`
	RevenueToday      *float64 `json:"revenue_today,omitempty"`
}

// DashboardHandler handles GET /api/dashboard
type DashboardHandler struct {
	bookingService *service.BookingService
	policy         *access.Policy
	logger         *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(bookingService *service.BookingService, policy *access.Policy, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		bookingService: bookingService,
		policy:         policy,
		logger:         logger,
	}
}

func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
		return
	}

	stats, err := h.bookingService.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("failed to load dashboard", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	resp := DashboardResponse{
		CheckedInGuests:   stats.CheckedInGuests,
		ExpectedCheckIns:  stats.ExpectedCheckIns,
		ExpectedCheckOuts: stats.ExpectedCheckOuts,
		NewBookingsToday:  stats.NewBookingsToday,
	}

	role := access.ParseRole(claims.Role)
	if h.policy.Allows(role, access.ViewFinancialSection) {
		revenue := stats.RevenueToday
		resp.RevenueToday = &revenue
	}

	writeJSON(w, http.StatusOK, resp)
}
