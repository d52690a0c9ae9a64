package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/service"
)

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler handles POST /api/login
type LoginHandler struct {
	authService *service.AuthService
	auditLog    *audit.Logger
	logger      *slog.Logger
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(authService *service.AuthService, auditLog *audit.Logger, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		authService: authService,
		auditLog:    auditLog,
		logger:      logger,
	}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode login request", slog.String("error", err.Error()))
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.auditLog.LogLogin(r.Context(), req.Username, "failure", err.Error())
		writeError(w, err)
		return
	}

	h.auditLog.LogLogin(r.Context(), req.Username, "success", "")
	writeJSON(w, http.StatusOK, result)
}
