package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/service"
)

// LogoutHandler handles POST /api/logout
type LogoutHandler struct {
	authService *service.AuthService
	logger      *slog.Logger
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(authService *service.AuthService, logger *slog.Logger) *LogoutHandler {
	return &LogoutHandler{
		authService: authService,
		logger:      logger,
	}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		h.logger.Error("logout failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
