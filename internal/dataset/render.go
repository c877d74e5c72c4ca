package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/series"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultMaxColWidth bounds table cells when RenderTable is given no limit.
const DefaultMaxColWidth = 24

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// ellipsis marks truncated table cells.
const ellipsis = "..."

//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// FormatCount formats n with thousand separators, e.g. 12,500.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// ShapeString renders the shape as "(rows, columns)".
func (d *Dataset) ShapeString() string {
	rows, cols := d.Shape()
	return fmt.Sprintf("(%d, %d)", rows, cols)
}

// RenderTable writes rows [start, end) as an aligned text table with a
// leading row-position column. Cells wider than maxWidth are truncated.
func (d *Dataset) RenderTable(w io.Writer, start, end, maxWidth int) error {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxColWidth
	}
	start, end = clampRange(start, end, d.df.Nrow())
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	header := make([]string, 0, d.df.Ncol()+1)
	header = append(header, "")
	for _, name := range d.df.Names() {
		header = append(header, truncate(name, maxWidth))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range d.Rows(start, end) {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.Itoa(start+i))
		for _, c := range row {
			cells = append(cells, truncate(c, maxWidth))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= len(ellipsis) {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-len(ellipsis)]) + ellipsis
}

// Objects returns rows [start, end) as column-name keyed maps with typed
// values. Missing values are nil.
func (d *Dataset) Objects(start, end int) []map[string]any {
	start, end = clampRange(start, end, d.df.Nrow())
	names := d.df.Names()
	cols := make([][]any, len(names))
	for j, name := range names {
		cols[j] = jsonValues(d.df.Col(name))
	}
	out := make([]map[string]any, 0, end-start)
	for i := start; i < end; i++ {
		obj := make(map[string]any, len(names))
		for j, name := range names {
			obj[name] = cols[j][i]
		}
		out = append(out, obj)
	}
	return out
}

func jsonValues(s series.Series) []any {
	nan := s.IsNaN()
	cells := cellStrings(s)
	out := make([]any, len(cells))
	for i, c := range cells {
		if nan[i] {
			continue
		}
		switch s.Type() {
		case series.Int:
			v, _ := strconv.Atoi(c)
			out[i] = v
		case series.Float:
			v, _ := strconv.ParseFloat(c, 64)
			if !math.IsNaN(v) {
				out[i] = v
			}
		case series.Bool:
			out[i] = c == "true"
		default:
			out[i] = c
		}
	}
	return out
}

// RenderNDJSON writes rows [start, end) as one JSON object per line.
func (d *Dataset) RenderNDJSON(w io.Writer, start, end int) error {
	enc := json.NewEncoder(w)
	for _, obj := range d.Objects(start, end) {
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("encoding row: %w", err)
		}
	}
	return nil
}
