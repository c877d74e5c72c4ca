package pagination

import (
	"fmt"
	"slices"
	"strings"
)

// ColumnSorter validates sort expressions against the columns of a table.
type ColumnSorter struct {
	columns []string
}

// NewColumnSorter creates a sorter for the given column names.
func NewColumnSorter(columns []string) *ColumnSorter {
	return &ColumnSorter{columns: slices.Clone(columns)}
}

// IsValidField reports whether field names one of the columns.
func (s *ColumnSorter) IsValidField(field string) bool {
	return slices.Contains(s.columns, field)
}

// GetValidFields returns the sortable columns in table order.
func (s *ColumnSorter) GetValidFields() []string {
	return slices.Clone(s.columns)
}

// Resolve parses a "column[:asc|desc]" expression and checks the column exists.
// It returns the column and whether the order is ascending.
func (s *ColumnSorter) Resolve(expr string) (string, bool, error) {
	field, order, err := ParseSort(expr)
	if err != nil {
		return "", false, err
	}
	if field == "" {
		return "", true, nil
	}
	if !s.IsValidField(field) {
		return "", false, fmt.Errorf("%w: %q (valid: %s)",
			ErrInvalidSortField, field, strings.Join(s.columns, ", "))
	}
	return field, order == SortOrderAsc, nil
}
