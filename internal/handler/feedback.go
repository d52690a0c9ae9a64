package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/service"
)

// FeedbackRequest represents the feedback submission body
type FeedbackRequest struct {
	CustomerID int    `json:"customer_id"`
	BookingID  int    `json:"booking_id,omitempty"`
	Rating     int    `json:"rating"`
	Comments   string `json:"comments"`
}

// FeedbackHandler handles the guest feedback endpoints
type FeedbackHandler struct {
	feedbackService *service.FeedbackService
	auditLog        *audit.Logger
	notifier        Notifier
	logger          *slog.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackService *service.FeedbackService, auditLog *audit.Logger, notifier Notifier, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		auditLog:        auditLog,
		notifier:        notifier,
		logger:          logger,
	}
}

// List handles GET /api/feedback
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := h.feedbackService.List(r.Context(), parseListRequest(r))
	if err != nil {
		h.logger.Error("failed to list feedback", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse(page))
}

// Submit handles POST /api/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode feedback request", slog.String("error", err.Error()))
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	feedback := &domain.Feedback{
		CustomerID: req.CustomerID,
		BookingID:  req.BookingID,
		Rating:     req.Rating,
		Comments:   req.Comments,
	}

	if err := h.feedbackService.Submit(r.Context(), feedback); err != nil {
		writeError(w, err)
		return
	}

	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		h.auditLog.LogMutation(r.Context(), claims.UserID, claims.Username,
			"add", "feedback", strconv.Itoa(feedback.FeedbackID), "success")
	}
	if h.notifier != nil {
		h.notifier.Publish("feedback_submitted",
			fmt.Sprintf("new %d-star feedback received", feedback.Rating))
	}

	writeJSON(w, http.StatusCreated, feedback)
}
