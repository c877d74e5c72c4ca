package pagination

import (
	"fmt"
	"math"
)

// DefaultRowsPerPage is the page size of the interactive table view.
const DefaultRowsPerPage = 500

// Pager tracks the current page over a fixed number of rows.
//
// TotalPages is ceil(rows/pageSize). CurrentPage is always within
// [1, max(1, TotalPages)]; with zero rows it stays at 1 and navigation is a no-op.
type Pager struct {
	rowCount    int
	pageSize    int
	currentPage int
}

// NewPager creates a pager positioned on page 1.
// A page size below 1 falls back to DefaultRowsPerPage; a negative row count is treated as 0.
func NewPager(rowCount, pageSize int) *Pager {
	if pageSize < MinPageSize {
		pageSize = DefaultRowsPerPage
	}
	p := &Pager{pageSize: pageSize}
	p.Reset(rowCount)
	return p
}

// Reset replaces the row count and returns to page 1.
func (p *Pager) Reset(rowCount int) {
	if rowCount < 0 {
		rowCount = 0
	}
	p.rowCount = rowCount
	p.currentPage = DefaultPage
}

// RowCount returns the number of rows being paged.
func (p *Pager) RowCount() int { return p.rowCount }

// PageSize returns the rows per page.
func (p *Pager) PageSize() int { return p.pageSize }

// CurrentPage returns the 1-based current page.
func (p *Pager) CurrentPage() int { return p.currentPage }

// TotalPages returns ceil(rows/pageSize).
func (p *Pager) TotalPages() int {
	return int(math.Ceil(float64(p.rowCount) / float64(p.pageSize)))
}

// lastPage is the highest page the cursor may rest on.
func (p *Pager) lastPage() int {
	return max(DefaultPage, p.TotalPages())
}

// Bounds returns the half-open row range [start, end) of the current page.
func (p *Pager) Bounds() (start, end int) { //nolint:nonamedreturns // Range endpoints read best named.
	start = (p.currentPage - 1) * p.pageSize
	end = min(start+p.pageSize, p.rowCount)
	if start > end {
		start = end
	}
	return start, end
}

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool { return p.currentPage < p.TotalPages() }

// HasPrevious reports whether Prev would move.
func (p *Pager) HasPrevious() bool { return p.currentPage > DefaultPage }

// Next advances one page if possible and reports whether it moved.
func (p *Pager) Next() bool {
	if !p.HasNext() {
		return false
	}
	p.currentPage++
	return true
}

// Prev goes back one page if possible and reports whether it moved.
func (p *Pager) Prev() bool {
	if !p.HasPrevious() {
		return false
	}
	p.currentPage--
	return true
}

// GoTo jumps to page, clamped into range.
func (p *Pager) GoTo(page int) {
	p.currentPage = min(max(page, DefaultPage), p.lastPage())
}

// Label renders the page indicator, e.g. "Page 2 of 7".
func (p *Pager) Label() string {
	return fmt.Sprintf("Page %d of %d", p.currentPage, p.TotalPages())
}

// Status renders the visible row range, e.g. "Displaying rows 501-1000 of 1234".
func (p *Pager) Status() string {
	start, end := p.Bounds()
	if p.rowCount == 0 {
		return "Displaying rows 0-0 of 0"
	}
	return fmt.Sprintf("Displaying rows %d-%d of %d", start+1, end, p.rowCount)
}

// Meta converts the pager state to JSON metadata.
func (p *Pager) Meta() PaginationMeta {
	return PaginationMeta{
		CurrentPage: p.currentPage,
		PageSize:    p.pageSize,
		TotalPages:  p.TotalPages(),
		TotalItems:  p.rowCount,
		HasPrevious: p.HasPrevious(),
		HasNext:     p.HasNext(),
	}
}
