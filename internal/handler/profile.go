package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/service"
)

// ProfileResponse represents the signed-in user's profile. The password
// hash never leaves the server.
type ProfileResponse struct {
	UserID      int    `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Position    string `json:"position"`
}

// ProfileHandler handles GET and PUT /api/profile. The profile always
// belongs to the signed-in user; there is no way to address someone else's.
type ProfileHandler struct {
	profileService *service.ProfileService
	auditLog       *audit.Logger
	logger         *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, auditLog *audit.Logger, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		auditLog:       auditLog,
		logger:         logger,
	}
}

func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, claims.UserID)
	case http.MethodPut:
		h.update(w, r, claims.UserID, claims.Username)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, userID int) {
	user, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load profile",
			slog.Int("user_id", userID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse(user))
}

func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, userID int, username string) {
	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode profile request", slog.String("error", err.Error()))
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.profileService.Update(r.Context(), userID, req); err != nil {
		h.auditLog.LogMutation(r.Context(), userID, username, "update", "profile", "", "failure")
		writeError(w, err)
		return
	}

	h.auditLog.LogMutation(r.Context(), userID, username, "update", "profile", "", "success")

	user, err := h.profileService.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse(user))
}

func profileResponse(user *domain.User) ProfileResponse {
	return ProfileResponse{
		UserID:      user.UserID,
		Username:    user.Username,
		Role:        user.Role,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		PhoneNumber: user.PhoneNumber,
		Email:       user.Email,
		Position:    user.Position,
	}
}
