package handler

import (
	"log/slog"
	"net/http"

	"github.com/yourorg/hoteldesk/internal/service"
)

// CustomersHandler handles GET /api/customers
type CustomersHandler struct {
	customerService *service.CustomerService
	logger          *slog.Logger
}

// NewCustomersHandler creates a new customers handler
func NewCustomersHandler(customerService *service.CustomerService, logger *slog.Logger) *CustomersHandler {
	return &CustomersHandler{
		customerService: customerService,
		logger:          logger,
	}
}

func (h *CustomersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	page, err := h.customerService.List(r.Context(), parseListRequest(r))
	if err != nil {
		h.logger.Error("failed to list customers", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageResponse(page))
}
