// Package pagination provides page bookkeeping, CLI pagination flags, and sort parsing.
//
// This package contains shared pagination logic used by the menu, the TUI, and
// the one-shot commands, including:
//   - Pager: a page cursor over R rows with clamped navigation
//   - PaginationParams: CLI flag parsing and validation
//   - PaginationMeta: response metadata for paginated JSON output
//   - ColumnSorter: sort expression parsing validated against table columns
package pagination
