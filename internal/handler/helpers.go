package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/yourorg/hoteldesk/internal/access"
	"github.com/yourorg/hoteldesk/internal/domain"
	"github.com/yourorg/hoteldesk/internal/listing"
	"github.com/yourorg/hoteldesk/internal/service"
)

// ErrorResponse is the JSON body for all error replies
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// PageResponse is the JSON envelope for paginated list replies
type PageResponse struct {
	Items       any    `json:"items"`
	CurrentPage int    `json:"current_page"`
	TotalPages  int    `json:"total_pages"`
	TotalItems  int    `json:"total_items"`
	From        int    `json:"from"`
	To          int    `json:"to"`
	RangeLabel  string `json:"range_label"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps domain errors onto HTTP status codes
func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ve.Reason, Field: ve.Field})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, access.ErrDenied):
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "permission denied"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "service unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// parseListRequest reads the shared list query parameters: ?search=,
// ?category=, ?page= and ?page_size=. Missing or malformed numbers fall
// back to the first page and the default size.
func parseListRequest(r *http.Request) listing.Request {
	q := r.URL.Query()
	req := listing.Request{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Page:     1,
		PageSize: listing.DefaultPageSize,
	}
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		req.Page = p
	}
	if s, err := strconv.Atoi(q.Get("page_size")); err == nil && s > 0 {
		req.PageSize = s
	}
	return req
}

// pageResponse wraps a computed page in the JSON envelope
func pageResponse[T any](page listing.Page[T]) PageResponse {
	label := "No entries to display"
	if page.TotalItems > 0 {
		label = "Showing " + strconv.Itoa(page.From) + " to " + strconv.Itoa(page.To) +
			" of " + strconv.Itoa(page.TotalItems) + " entries"
	}
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return PageResponse{
		Items:       items,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		From:        page.From,
		To:          page.To,
		RangeLabel:  label,
	}
}
