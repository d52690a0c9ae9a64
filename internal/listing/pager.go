package listing

import "fmt"

// Pager keeps the navigation state of one list view: current page, page
// size and the active filters. It holds no data; the caller re-supplies a
// fresh snapshot of the collection on every Compute.
type Pager[T any] struct {
	fields     Fields[T]
	search     string
	category   string
	page       int
	pageSize   int
	totalPages int // from the last Compute
}

// NewPager creates a pager positioned on page 1.
func NewPager[T any](fields Fields[T], pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{fields: fields, page: 1, pageSize: pageSize}
}

// SetSearch replaces the free-text term and resets to page 1.
func (p *Pager[T]) SetSearch(term string) {
	p.search = term
	p.page = 1
}

// SetCategory replaces the categorical filter and resets to page 1.
func (p *Pager[T]) SetCategory(category string) {
	p.category = category
	p.page = 1
}

// SetPageSize replaces the page size and resets to page 1.
func (p *Pager[T]) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	p.pageSize = size
	p.page = 1
}

// First moves to page 1. No-op when already there or when there is no data.
func (p *Pager[T]) First() {
	if p.page != 1 && p.totalPages > 0 {
		p.page = 1
	}
}

// Prev moves one page back. No-op on page 1.
func (p *Pager[T]) Prev() {
	if p.page > 1 {
		p.page--
	}
}

// Next moves one page forward. No-op on the last page.
func (p *Pager[T]) Next() {
	if p.page < p.totalPages {
		p.page++
	}
}

// Last moves to the last page. No-op when already there or when there is
// no data.
func (p *Pager[T]) Last() {
	if p.page != p.totalPages && p.totalPages > 0 {
		p.page = p.totalPages
	}
}

// CurrentPage returns the page the pager is positioned on.
func (p *Pager[T]) CurrentPage() int {
	return p.page
}

// Compute runs the filter and slice over a fresh snapshot and records the
// resulting page bounds for subsequent navigation.
func (p *Pager[T]) Compute(items []T) Page[T] {
	result := Paginate(items, p.fields, Request{
		Search:   p.search,
		Category: p.category,
		Page:     p.page,
		PageSize: p.pageSize,
	})
	p.page = result.CurrentPage
	p.totalPages = result.TotalPages
	return result
}

// RangeLabel renders the display range, e.g. "Showing 11 to 20 of 47 entries".
func (p Page[T]) RangeLabel() string {
	if p.TotalItems == 0 {
		return "No entries to display"
	}
	return fmt.Sprintf("Showing %d to %d of %d entries", p.From, p.To, p.TotalItems)
}

// PageLabel renders the page position, e.g. "Page 2 of 5".
func (p Page[T]) PageLabel() string {
	if p.TotalPages == 0 {
		return "No data available"
	}
	return fmt.Sprintf("Page %d of %d", p.CurrentPage, p.TotalPages)
}
