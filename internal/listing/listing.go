// Package listing implements the paginated filtered list views shared by
// the feedback, staff and booking screens. Filtering and paging both happen
// over the fully materialized collection, so a page is always a stable,
// order-preserving slice of the caller's snapshot.
package listing

import "strings"

// DefaultPageSize is used when a request carries no usable page size.
const DefaultPageSize = 10

// PageSizes are the selectable page sizes offered to list views.
var PageSizes = []int{5, 10, 25, 50, 100}

// Fields maps an entity type onto the engine: which string fields the
// free-text search scans, and which field (if any) the categorical filter
// compares against. Build one per entity type and reuse it.
type Fields[T any] struct {
	Search   []func(T) string
	Category func(T) string
}

// Request describes one page computation.
type Request struct {
	Search   string
	Category string // empty means no categorical filter
	Page     int
	PageSize int
}

// Page is one bounded page plus its pagination metadata. From and To are
// the 1-based display range ("showing 11 to 20 of 47"); both are 0 when the
// filtered collection is empty.
type Page[T any] struct {
	Items       []T
	CurrentPage int
	TotalPages  int
	TotalItems  int
	From        int
	To          int
}

// Filter applies the free-text and categorical predicates, preserving the
// original relative order. The search term matches when any of the entity's
// search fields contains it case-insensitively.
func Filter[T any](items []T, fields Fields[T], search, category string) []T {
	term := strings.ToLower(strings.TrimSpace(search))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if term != "" && !matchesTerm(item, fields.Search, term) {
			continue
		}
		if category != "" && (fields.Category == nil || fields.Category(item) != category) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesTerm[T any](item T, accessors []func(T) string, term string) bool {
	for _, field := range accessors {
		if strings.Contains(strings.ToLower(field(item)), term) {
			return true
		}
	}
	return false
}

// Paginate filters the collection and slices out the requested page. The
// requested page number is clamped into [1, TotalPages], or to 1 when the
// filtered collection is empty; it is never clamped below 1.
func Paginate[T any](items []T, fields Fields[T], req Request) Page[T] {
	filtered := Filter(items, fields, req.Search, req.Category)

	size := req.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(filtered)
	totalPages := (total + size - 1) / size

	page := req.Page
	if totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	from := (page - 1) * size
	to := from + size
	if to > total {
		to = total
	}
	if from > total {
		from = total
	}

	result := Page[T]{
		Items:       filtered[from:to],
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
	}
	if total > 0 {
		result.From = from + 1
		result.To = to
	}
	return result
}
