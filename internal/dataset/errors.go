package dataset

import "errors"

// Sentinel errors returned by dataset operations. Callers should match them
// with errors.Is since most are wrapped with the offending column or value.
var (
	// ErrNoDataset is returned when an operation runs before anything is loaded.
	ErrNoDataset = errors.New("no dataset loaded")
	// ErrColumnNotFound is returned for column names absent from the table.
	ErrColumnNotFound = errors.New("invalid column")
	// ErrInvalidDtype is returned for unknown or impossible type conversions.
	ErrInvalidDtype = errors.New("invalid dtype")
	// ErrInvalidJoin is returned for join methods other than inner, left, right, outer.
	ErrInvalidJoin = errors.New("invalid join method")
	// ErrInvalidAggregation is returned for unknown aggregation functions.
	ErrInvalidAggregation = errors.New("invalid aggregation function")
	// ErrNotNumeric is returned when a numeric operation targets a non-numeric column.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrInvalidExpression is returned when a query or formula fails to compile or run.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrDuplicateColumn is returned when a new column name is already taken.
	ErrDuplicateColumn = errors.New("column already exists")
)
