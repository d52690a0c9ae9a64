package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/security/audit"
	"github.com/yourorg/hoteldesk/internal/security/middleware"
	"github.com/yourorg/hoteldesk/internal/service"
)

// StaffRequest represents the staff create/update body
type StaffRequest struct {
	UserID      int     `json:"user_id,omitempty"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Email       string  `json:"email"`
	Position    string  `json:"position"`
	HireDate    string  `json:"hire_date,omitempty"` // YYYY-MM-DD
	Salary      float64 `json:"salary,omitempty"`
	Address     string  `json:"address,omitempty"`
}

// StaffHandler handles the staff directory endpoints
type StaffHandler struct {
	staffService *service.StaffService
	auditLog     *audit.Logger
	notifier     Notifier
	logger       *slog.Logger
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService, auditLog *audit.Logger, notifier Notifier, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{
		staffService: staffService,
		auditLog:     auditLog,
		notifier:     notifier,
		logger:       logger,
	}
}

// List handles GET /api/staff
func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := h.staffService.List(r.Context(), parseListRequest(r))
	if err != nil {
		h.logger.Error("failed to list staff", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse(page))
}

// Add handles POST /api/staff
func (h *StaffHandler) Add(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	staff, err := h.decodeStaff(r, 0)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.staffService.Add(r.Context(), staff); err != nil {
		h.audit(r, "add", staff.UserID, "failure")
		writeError(w, err)
		return
	}

	h.audit(r, "add", staff.UserID, "success")
	h.notify("staff_added", staff)
	writeJSON(w, http.StatusCreated, staff)
}

// Update handles PUT /api/staff/{id}
func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid staff id", http.StatusBadRequest)
		return
	}

	staff, err := h.decodeStaff(r, userID)
	if err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.staffService.Update(r.Context(), staff); err != nil {
		h.audit(r, "update", userID, "failure")
		writeError(w, err)
		return
	}

	h.audit(r, "update", userID, "success")
	h.notify("staff_updated", staff)
	writeJSON(w, http.StatusOK, staff)
}

// Delete handles DELETE /api/staff/{id}
func (h *StaffHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid staff id", http.StatusBadRequest)
		return
	}

	if err := h.staffService.Delete(r.Context(), userID); err != nil {
		h.audit(r, "delete", userID, "failure")
		writeError(w, err)
		return
	}

	h.audit(r, "delete", userID, "success")
	if h.notifier != nil {
		h.notifier.Publish("staff_deleted", "staff record "+strconv.Itoa(userID)+" removed")
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *StaffHandler) decodeStaff(r *http.Request, userID int) (*domain.Staff, error) {
	var req StaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode staff request", slog.String("error", err.Error()))
		return nil, err
	}

	if userID == 0 {
		userID = req.UserID
	}

	staff := &domain.Staff{
		UserID:      userID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Position:    req.Position,
		Salary:      req.Salary,
		Address:     req.Address,
	}

	if req.HireDate != "" {
		hireDate, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return nil, err
		}
		staff.HireDate = hireDate
	}

	return staff, nil
}

func (h *StaffHandler) notify(eventType string, staff *domain.Staff) {
	if h.notifier == nil {
		return
	}
	h.notifier.Publish(eventType, staff.FirstName+" "+staff.LastName)
}

func (h *StaffHandler) audit(r *http.Request, action string, targetID int, status string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return
	}
	h.auditLog.LogMutation(r.Context(), claims.UserID, claims.Username, action, "staff", strconv.Itoa(targetID), status)
}
