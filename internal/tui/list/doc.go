// Package listview provides a virtually scrolled list for Bubble Tea views.
//
// Only the rows inside the viewport are rendered, so popups showing long
// summaries (column lists, dtype and null-count reports, describe tables)
// stay responsive regardless of length.
package listview
