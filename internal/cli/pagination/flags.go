package pagination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Pagination modes and validation limits.
const (
	DefaultLimit     = 0
	MaxLimit         = 10000
	DefaultPageSize  = DefaultRowsPerPage
	MinPageSize      = 1
	MaxPageSize      = 100000
	DefaultOffset    = 0
	DefaultPage      = 1
	DefaultSortField = ""
	DefaultSortOrder = "asc"
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// Common validation errors.
var (
	ErrInvalidLimit         = errors.New("limit must be between 0 and 10000")
	ErrInvalidPageSize      = errors.New("page-size must be between 1 and 100000")
	ErrInvalidOffset        = errors.New("offset must be non-negative")
	ErrInvalidPage          = errors.New("page must be >= 0")
	ErrInvalidSortOrder     = errors.New("sort order must be 'asc' or 'desc'")
	ErrMixedPaginationModes = errors.New("cannot use both offset-based (--offset) and page-based (--page) pagination")
	ErrPageSizeWithoutPage  = errors.New("--page-size requires --page to be set")
	ErrPageWithoutPageSize  = errors.New("--page requires a page size")
	ErrInvalidSortFormat    = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'salary:desc')")
	ErrEmptySortField       = errors.New("sort field cannot be empty")
	ErrInvalidSortField     = errors.New("invalid sort field")
)

// PaginationParams holds CLI pagination flags and provides validation.
// Supports two pagination modes:
//   - Offset-based: --limit and --offset
//   - Page-based: --page and --page-size
//
// These modes are mutually exclusive.
//
//nolint:revive // PaginationParams is the canonical name for this exported type.
type PaginationParams struct {
	// Limit is the maximum number of results to return (offset-based mode).
	Limit int

	// Offset is the number of results to skip (offset-based mode).
	Offset int

	// Page is the 1-based page number (page-based mode).
	Page int

	// PageSize is the number of results per page (page-based mode).
	PageSize int

	// SortField is the column to sort by.
	SortField string

	// SortOrder is the sort direction: "asc" or "desc".
	SortOrder string
}

// NewPaginationParams creates a PaginationParams with default values.
func NewPaginationParams() *PaginationParams {
	return &PaginationParams{
		Limit:     0, // 0 means all rows
		Offset:    DefaultOffset,
		Page:      0, // 0 means page-based mode not active
		PageSize:  0, // Requires Page > 0 to be valid
		SortField: DefaultSortField,
		SortOrder: DefaultSortOrder,
	}
}

// Validate checks that the pagination parameters are in range and use one mode only.
func (p PaginationParams) Validate() error {
	switch {
	case p.Limit < 0 || p.Limit > MaxLimit:
		return fmt.Errorf("%w: got %d", ErrInvalidLimit, p.Limit)
	case p.Offset < 0:
		return fmt.Errorf("%w: got %d", ErrInvalidOffset, p.Offset)
	case p.Page < 0:
		return fmt.Errorf("%w: got %d", ErrInvalidPage, p.Page)
	case p.PageSize < 0 || p.PageSize > MaxPageSize:
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, p.PageSize)
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedPaginationModes
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeWithoutPage
	case p.Page > 0 && p.PageSize == 0:
		return ErrPageWithoutPageSize
	}
	return nil
}

// sortPartsMax is the maximum number of parts in a sort string (field:order).
const sortPartsMax = 2

// ParseSort parses a sort string in the format "field" or "field:order".
// Examples: "age", "salary:desc", "name:asc"
// Returns the field name and order, or an error if invalid.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSort(sortStr string) (field, order string, err error) {
	if sortStr == "" {
		return DefaultSortField, DefaultSortOrder, nil
	}

	parts := strings.Split(sortStr, ":")
	switch len(parts) {
	case 1:
		// Just field name, use default order
		field = strings.TrimSpace(parts[0])
		order = DefaultSortOrder
	case sortPartsMax:
		// Field and order specified
		field = strings.TrimSpace(parts[0])
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, sortStr)
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	return field, order, nil
}

// IsPageBased returns true if page-based pagination is active.
func (p PaginationParams) IsPageBased() bool {
	return p.Page > 0
}

// IsEnabled returns true if any pagination parameters are set.
func (p PaginationParams) IsEnabled() bool {
	return p.Limit > 0 || p.Page > 0 || p.PageSize > 0 || p.Offset > 0
}

// CalculateOffsetLimit returns the effective offset and limit for pagination.
// Handles both page-based and offset-based pagination modes.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func (p PaginationParams) CalculateOffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		offset = (p.Page - 1) * p.PageSize
		// Use explicit limit if set, otherwise use page size
		if p.Limit > 0 {
			limit = p.Limit
		} else {
			limit = p.PageSize
		}
	} else {
		offset = p.Offset
		limit = p.Limit
	}

	return offset, limit
}

// ApplyToRange returns the half-open row range [start, end) selected over totalRows.
// For page-based pagination, a page beyond the end is capped to the last page.
// For offset-based pagination, an offset beyond the end yields an empty range.
// A zero limit selects everything from the offset onward.
//
//nolint:nonamedreturns // Range endpoints read best named.
func (p PaginationParams) ApplyToRange(totalRows int) (start, end int) {
	if totalRows <= 0 {
		return 0, 0
	}

	offset, limit := p.CalculateOffsetLimit()

	if p.IsPageBased() && offset >= totalRows {
		pageSize := p.PageSize
		if pageSize <= 0 {
			pageSize = totalRows
		}
		offset = ((totalRows - 1) / pageSize) * pageSize
	}

	if offset >= totalRows {
		return totalRows, totalRows
	}

	end = offset + limit
	if limit == 0 || end > totalRows {
		end = totalRows
	}
	return offset, end
}

// AddFlags registers --limit, --offset, --page and --page-size on cmd, bound to p.
func (p *PaginationParams) AddFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.Limit, "limit", p.Limit, "maximum rows to print (offset mode, 0 = all)")
	cmd.Flags().IntVar(&p.Offset, "offset", p.Offset, "rows to skip before printing (offset mode)")
	cmd.Flags().IntVar(&p.Page, "page", p.Page, "1-based page to print (page mode)")
	cmd.Flags().IntVar(&p.PageSize, "page-size", p.PageSize, "rows per page (page mode)")
}
