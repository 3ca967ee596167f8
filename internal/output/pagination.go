package output

import (
	"fmt"
	"strings"
)

type Pagination struct {
	Total      int
	PerPage    int
	Current    int
	Offset     int
	TotalPages int
}

// NewPagination clamps current into [1, TotalPages]. A non-positive perPage
// puts everything on one page.
func NewPagination(total, perPage, current int) *Pagination {
	if perPage <= 0 {
		perPage = max(total, 1)
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	current = min(max(current, 1), totalPages)

	return &Pagination{
		Total:      total,
		PerPage:    perPage,
		Current:    current,
		Offset:     (current - 1) * perPage,
		TotalPages: totalPages,
	}
}

// Bounds returns the half-open slice range of the current page.
func (p *Pagination) Bounds() (start, end int) {
	start = min(p.Offset, p.Total)
	end = min(p.Offset+p.PerPage, p.Total)
	return start, end
}

func (p *Pagination) HasNext() bool { return p.Current < p.TotalPages }
func (p *Pagination) HasPrev() bool { return p.Current > 1 }

func (p *Pagination) FormatSummary() string {
	if p.Total == 0 {
		return "no entries"
	}
	start, end := p.Bounds()
	return fmt.Sprintf("Showing %d-%d of %d entries (page %d of %d)",
		start+1, end, p.Total, p.Current, p.TotalPages)
}

// FormatNavigation hints at the --page flag for neighbouring pages.
func (p *Pagination) FormatNavigation() string {
	if p.TotalPages <= 1 {
		return ""
	}
	var parts []string
	if p.HasPrev() {
		parts = append(parts, fmt.Sprintf("← --page %d", p.Current-1))
	}
	parts = append(parts, fmt.Sprintf("page %d/%d", p.Current, p.TotalPages))
	if p.HasNext() {
		parts = append(parts, fmt.Sprintf("--page %d →", p.Current+1))
	}
	return strings.Join(parts, "  ")
}
