package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPreviewRows is the row count used by Head and Tail when n <= 0.
const DefaultPreviewRows = 5

// ColumnInfo pairs a column name with a per-column value.
type ColumnInfo struct {
	Name  string `json:"name"`
	Dtype string `json:"dtype"`
	Nulls int    `json:"nulls"`
}

// describeStats lists the Describe rows in output order.
var describeStats = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Head returns the first n rows.
func (d *Dataset) Head(n int) (*Dataset, error) {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	return d.ILoc(0, n)
}

// Tail returns the last n rows.
func (d *Dataset) Tail(n int) (*Dataset, error) {
	if n <= 0 {
		n = DefaultPreviewRows
	}
	rows := d.df.Nrow()
	return d.ILoc(max(rows-n, 0), rows)
}

// Shape returns (rows, columns).
func (d *Dataset) Shape() (int, int) {
	return d.df.Dims()
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return d.df.Names()
}

// Dtypes reports the type of every column.
func (d *Dataset) Dtypes() []ColumnInfo {
	names := d.df.Names()
	types := d.df.Types()
	out := make([]ColumnInfo, len(names))
	for i, name := range names {
		out[i] = ColumnInfo{Name: name, Dtype: dtypeName(types[i])}
	}
	return out
}

// NullCounts reports the number of missing values per column.
func (d *Dataset) NullCounts() []ColumnInfo {
	names := d.df.Names()
	out := make([]ColumnInfo, len(names))
	for i, name := range names {
		col := d.df.Col(name)
		n := 0
		for _, isNaN := range col.IsNaN() {
			if isNaN {
				n++
			}
		}
		out[i] = ColumnInfo{Name: name, Dtype: dtypeName(col.Type()), Nulls: n}
	}
	return out
}

// Describe summarizes every numeric column. The result has a leading
// "stat" column followed by one float column per numeric input column.
func (d *Dataset) Describe() (*Dataset, error) {
	var cols []series.Series
	for _, name := range d.df.Names() {
		col := d.df.Col(name)
		if !isNumeric(col.Type()) {
			continue
		}
		cols = append(cols, series.New(summarize(col), series.Float, name))
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no numeric columns to describe", ErrNotNumeric)
	}
	cols = append([]series.Series{series.New(describeStats, series.String, "stat")}, cols...)
	df := dataframe.New(cols...)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// summarize returns the describeStats values for one numeric series.
func summarize(s series.Series) []float64 {
	vals := present(s)
	out := make([]float64, len(describeStats))
	out[0] = float64(len(vals))
	if len(vals) == 0 {
		for i := 1; i < len(out); i++ {
			out[i] = math.NaN()
		}
		return out
	}
	sort.Float64s(vals)
	out[1] = stat.Mean(vals, nil)
	out[2] = stat.StdDev(vals, nil)
	out[3] = floats.Min(vals)
	out[4] = quantile(vals, 0.25)
	out[5] = quantile(vals, 0.5)
	out[6] = quantile(vals, 0.75)
	out[7] = floats.Max(vals)
	return out
}

// quantile interpolates linearly at rank (n-1)p over sorted values, so the
// 50% row agrees with the median aggregation.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// present returns the non-missing values of a numeric series.
func present(s series.Series) []float64 {
	nan := s.IsNaN()
	all := s.Float()
	vals := make([]float64, 0, len(all))
	for i, v := range all {
		if nan[i] || math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
	}
	return vals
}

// Column returns a single-column table.
func (d *Dataset) Column(name string) (*Dataset, error) {
	return d.Select([]string{name})
}

// Select returns the named columns in the given order. Every name must exist.
func (d *Dataset) Select(names []string) (*Dataset, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no columns given", ErrColumnNotFound)
	}
	if err := d.requireColumns(names...); err != nil {
		return nil, err
	}
	df := d.df.Select(names)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// ValueCount is one entry of ValueCounts.
type ValueCount struct {
	Value string
	Count int
}

// ValueCounts counts distinct non-missing values of col, most frequent first.
// Ties keep first-appearance order.
func (d *Dataset) ValueCounts(col string) ([]ValueCount, error) {
	if err := d.requireColumns(col); err != nil {
		return nil, err
	}
	s := d.df.Col(col)
	nan := s.IsNaN()
	index := make(map[string]int)
	var counts []ValueCount
	for i, v := range cellStrings(s) {
		if nan[i] {
			continue
		}
		pos, ok := index[v]
		if !ok {
			index[v] = len(counts)
			counts = append(counts, ValueCount{Value: v, Count: 1})
			continue
		}
		counts[pos].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts, nil
}

// NumericValues returns the non-missing values of a numeric column.
func (d *Dataset) NumericValues(col string) ([]float64, error) {
	if err := d.requireColumns(col); err != nil {
		return nil, err
	}
	s := d.df.Col(col)
	if !isNumeric(s.Type()) {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, col)
	}
	return present(s), nil
}

func dtypeName(t series.Type) string {
	switch t {
	case series.Int:
		return "int64"
	case series.Float:
		return "float64"
	case series.Bool:
		return "bool"
	default:
		return "object"
	}
}

// Floats returns every value of a numeric column in row order, NaN where
// missing.
func (d *Dataset) Floats(col string) ([]float64, error) {
	if err := d.requireColumns(col); err != nil {
		return nil, err
	}
	s := d.df.Col(col)
	if !isNumeric(s.Type()) {
		return nil, fmt.Errorf("%w: %q", ErrNotNumeric, col)
	}
	nan := s.IsNaN()
	out := s.Float()
	for i := range out {
		if nan[i] {
			out[i] = math.NaN()
		}
	}
	return out, nil
}
