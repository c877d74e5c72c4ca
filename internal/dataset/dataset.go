// Package dataset wraps a gota DataFrame with the load, inspect, clean,
// transform and export operations exposed by the datalens menu and TUI.
//
// A Dataset is treated as immutable: every operation returns a new Dataset
// and leaves the receiver untouched, so a failed operation can never leave a
// half-modified table behind.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/rshade/datalens/internal/logging"
)

// nullMarkers are the cell values read as missing.
var nullMarkers = []string{"", "NA", "NaN", "N/A", "null", "<nil>"}

// naText is how gota renders a missing element.
const naText = "NaN"

// Dtype names as reported by Dtypes and accepted by Convert.
const (
	DtypeInt    = "int"
	DtypeFloat  = "float"
	DtypeString = "str"
	DtypeBool   = "bool"
)

// Dataset is a named-column table.
type Dataset struct {
	df dataframe.DataFrame
}

// New wraps an existing DataFrame.
func New(df dataframe.DataFrame) (*Dataset, error) {
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(nullMarkers),
	}
}

// Load reads a CSV file from path.
func Load(ctx context.Context, path string) (*Dataset, error) {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "dataset").
		Str("operation", "load").
		Str("path", path).
		Msg("reading csv")

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Read(ctx, f)
	if err != nil {
		log.Warn().
			Str("component", "dataset").
			Str("path", path).
			Err(err).
			Msg("csv load failed")
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	rows, cols := ds.Shape()
	log.Info().
		Str("component", "dataset").
		Str("path", path).
		Int("rows", rows).
		Int("columns", cols).
		Msg("csv loaded")
	return ds, nil
}

// Read parses CSV from r. The first row is the header.
func Read(ctx context.Context, r io.Reader) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	df := dataframe.ReadCSV(r, loadOptions()...)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// Write encodes the table as CSV with a header row and no index column.
// Missing cells are written as empty fields.
func (d *Dataset) Write(w io.Writer) error {
	names := d.df.Names()
	cols := make([][]string, len(names))
	for i, name := range names {
		s := d.df.Col(name)
		cells := cellStrings(s)
		float := s.Type() == series.Float
		for j, missing := range s.IsNaN() {
			if missing || (float && cells[j] == naText) {
				cells[j] = ""
			}
		}
		cols[i] = cells
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(names); err != nil {
		return err
	}
	record := make([]string, len(names))
	for r := range d.df.Nrow() {
		for c := range cols {
			record[c] = cols[c][r]
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes the table to path as CSV.
func (d *Dataset) Save(ctx context.Context, path string) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err = d.Write(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logging.FromContext(ctx).Info().
		Str("component", "dataset").
		Str("operation", "save").
		Str("path", path).
		Int("rows", d.df.Nrow()).
		Msg("csv saved")
	return nil
}

// DataFrame exposes the underlying gota frame.
func (d *Dataset) DataFrame() dataframe.DataFrame {
	return d.df
}

// Nrow returns the number of rows.
func (d *Dataset) Nrow() int { return d.df.Nrow() }

// Ncol returns the number of columns.
func (d *Dataset) Ncol() int { return d.df.Ncol() }

// Rows returns the display strings of rows [start, end) clamped to the table.
func (d *Dataset) Rows(start, end int) [][]string {
	start, end = clampRange(start, end, d.df.Nrow())
	cols := d.columnStrings()
	out := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		out = append(out, row)
	}
	return out
}

// columnStrings renders every column, one slice per column.
func (d *Dataset) columnStrings() [][]string {
	names := d.df.Names()
	out := make([][]string, len(names))
	for i, name := range names {
		out[i] = cellStrings(d.df.Col(name))
	}
	return out
}

// cellStrings renders a series with floats in shortest round-trip form and
// missing values as NaN. The output can be fed back into series.New without
// losing precision.
func cellStrings(s series.Series) []string {
	nan := s.IsNaN()
	out := make([]string, s.Len())
	if s.Type() == series.Float {
		for i, v := range s.Float() {
			if nan[i] || math.IsNaN(v) {
				out[i] = naText
				continue
			}
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return out
	}
	for i, v := range s.Records() {
		if nan[i] {
			out[i] = naText
			continue
		}
		out[i] = v
	}
	return out
}

func (d *Dataset) hasColumn(name string) bool {
	for _, n := range d.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

func (d *Dataset) requireColumns(names ...string) error {
	for _, name := range names {
		if !d.hasColumn(name) {
			return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
	}
	return nil
}

// take returns the rows at the given positions in order.
func (d *Dataset) take(idx []int) (*Dataset, error) {
	if len(idx) == 0 {
		return d.empty(), nil
	}
	df := d.df.Subset(idx)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// empty returns a zero-row table with the same columns and types.
func (d *Dataset) empty() *Dataset {
	names := d.df.Names()
	types := d.df.Types()
	cols := make([]series.Series, len(names))
	for i, name := range names {
		cols[i] = series.New([]string{}, types[i], name)
	}
	return &Dataset{df: dataframe.New(cols...)}
}

// replace swaps in a column with the same name or appends a new one,
// keeping column order.
func (d *Dataset) replace(s series.Series) (*Dataset, error) {
	df := d.df.Mutate(s)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

func isNumeric(t series.Type) bool {
	return t == series.Int || t == series.Float
}

// clampRange applies slice semantics to [start, end) over n rows, counting
// negative bounds from the end.
func clampRange(start, end, n int) (int, int) {
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	start = min(max(start, 0), n)
	end = min(max(end, 0), n)
	if end < start {
		end = start
	}
	return start, end
}
