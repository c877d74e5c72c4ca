package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// DropColumn removes a column. A missing column is ignored.
func (d *Dataset) DropColumn(name string) (*Dataset, error) {
	if !d.hasColumn(name) {
		return d, nil
	}
	df := d.df.Drop(name)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// DropRow removes the row at position i. A missing row is ignored.
func (d *Dataset) DropRow(i int) (*Dataset, error) {
	n := d.df.Nrow()
	if i < 0 || i >= n {
		return d, nil
	}
	idx := make([]int, 0, n-1)
	for j := 0; j < n; j++ {
		if j != i {
			idx = append(idx, j)
		}
	}
	return d.take(idx)
}

// Rename changes a column name.
func (d *Dataset) Rename(oldName, newName string) (*Dataset, error) {
	if err := d.requireColumns(oldName); err != nil {
		return nil, err
	}
	if newName == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrColumnNotFound)
	}
	if oldName == newName {
		return d, nil
	}
	if d.hasColumn(newName) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, newName)
	}
	df := d.df.Rename(newName, oldName)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// DropDuplicates removes rows identical to an earlier row and reports how
// many were dropped.
func (d *Dataset) DropDuplicates() (*Dataset, int, error) {
	cols := d.columnStrings()
	n := d.df.Nrow()
	seen := make(map[string]struct{}, n)
	idx := make([]int, 0, n)
	var key strings.Builder
	for i := 0; i < n; i++ {
		key.Reset()
		for j := range cols {
			key.WriteString(cols[j][i])
			key.WriteByte(0x1f)
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		idx = append(idx, i)
	}
	if len(idx) == n {
		return d, 0, nil
	}
	out, err := d.take(idx)
	if err != nil {
		return nil, 0, err
	}
	return out, n - len(idx), nil
}

// Convert casts col to dtype (int, float, str or bool). Missing values stay
// missing. Any value that cannot be converted fails the whole conversion.
func (d *Dataset) Convert(col, dtype string) (*Dataset, error) {
	if err := d.requireColumns(col); err != nil {
		return nil, err
	}
	s := d.df.Col(col)
	var (
		converted series.Series
		err       error
	)
	switch strings.ToLower(strings.TrimSpace(dtype)) {
	case DtypeInt, "int64":
		converted, err = toInt(s)
	case DtypeFloat, "float64":
		converted, err = toFloat(s)
	case DtypeString, "string", "object":
		converted = series.New(cellStrings(s), series.String, col)
	case DtypeBool:
		converted, err = toBool(s)
	default:
		return nil, fmt.Errorf("%w: %q (want int, float, str or bool)", ErrInvalidDtype, dtype)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: converting %q to %s: %w", ErrInvalidDtype, col, dtype, err)
	}
	return d.replace(converted)
}

func toInt(s series.Series) (series.Series, error) {
	nan := s.IsNaN()
	cells := cellStrings(s)
	out := make([]string, len(cells))
	for i, c := range cells {
		if nan[i] {
			if s.Type() == series.Float {
				return series.Series{}, fmt.Errorf("row %d: cannot convert NaN to int", i)
			}
			out[i] = naText
			continue
		}
		switch s.Type() {
		case series.Float:
			f, _ := strconv.ParseFloat(c, 64)
			out[i] = strconv.Itoa(int(f))
		case series.Bool:
			out[i] = boolDigit(c)
		default:
			v, err := strconv.Atoi(strings.TrimSpace(c))
			if err != nil {
				return series.Series{}, fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = strconv.Itoa(v)
		}
	}
	return series.New(out, series.Int, s.Name), nil
}

func toFloat(s series.Series) (series.Series, error) {
	nan := s.IsNaN()
	cells := cellStrings(s)
	out := make([]string, len(cells))
	for i, c := range cells {
		switch {
		case nan[i]:
			out[i] = naText
		case s.Type() == series.Bool:
			out[i] = boolDigit(c)
		default:
			v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
			if err != nil {
				return series.Series{}, fmt.Errorf("row %d: %w", i, err)
			}
			out[i] = formatNumber(v)
		}
	}
	return series.New(out, series.Float, s.Name), nil
}

func toBool(s series.Series) (series.Series, error) {
	nan := s.IsNaN()
	cells := cellStrings(s)
	out := make([]string, len(cells))
	for i, c := range cells {
		if nan[i] {
			out[i] = naText
			continue
		}
		if isNumeric(s.Type()) {
			f, _ := strconv.ParseFloat(c, 64)
			out[i] = strconv.FormatBool(f != 0)
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(c))
		if err != nil {
			return series.Series{}, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = strconv.FormatBool(b)
	}
	return series.New(out, series.Bool, s.Name), nil
}

func boolDigit(c string) string {
	if b, _ := strconv.ParseBool(c); b {
		return "1"
	}
	return "0"
}

// Sort orders rows by col.
func (d *Dataset) Sort(col string, ascending bool) (*Dataset, error) {
	if err := d.requireColumns(col); err != nil {
		return nil, err
	}
	order := dataframe.Sort(col)
	if !ascending {
		order = dataframe.RevSort(col)
	}
	df := d.df.Arrange(order)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

// FillValue replaces missing values in col with value. The column type is
// widened when value does not fit it (int to float, anything to string).
func (d *Dataset) FillValue(col, value string) (*Dataset, error) {
	if err := d.requireColumns(col); err != nil {
		return nil, err
	}
	s := d.df.Col(col)
	nan := s.IsNaN()
	cells := cellStrings(s)
	for i := range cells {
		if nan[i] {
			cells[i] = value
		}
	}
	return d.replace(series.New(cells, fillType(s.Type(), value), col))
}

func fillType(t series.Type, value string) series.Type {
	v := strings.TrimSpace(value)
	switch t {
	case series.Int:
		if _, err := strconv.Atoi(v); err == nil {
			return series.Int
		}
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return series.Float
		}
	case series.Float:
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return series.Float
		}
	case series.Bool:
		if _, err := strconv.ParseBool(v); err == nil {
			return series.Bool
		}
	}
	return series.String
}

// FillMean replaces missing values in a numeric column with the column mean.
func (d *Dataset) FillMean(col string) (*Dataset, error) {
	vals, err := d.NumericValues(col)
	if err != nil {
		return nil, err
	}
	mean := math.NaN()
	if len(vals) > 0 {
		mean = meanOf(vals)
	}
	s := d.df.Col(col)
	nan := s.IsNaN()
	filled := s.Float()
	for i := range filled {
		if nan[i] {
			filled[i] = mean
		}
	}
	cells := make([]string, len(filled))
	for i, v := range filled {
		cells[i] = formatNumber(v)
	}
	return d.replace(series.New(cells, series.Float, col))
}

// DropNA removes every row with a missing value in any column.
func (d *Dataset) DropNA() (*Dataset, error) {
	return d.dropNA(d.df.Names())
}

// DropNASubset removes rows with a missing value in any of cols.
func (d *Dataset) DropNASubset(cols ...string) (*Dataset, error) {
	if len(cols) == 0 {
		return d.DropNA()
	}
	if err := d.requireColumns(cols...); err != nil {
		return nil, err
	}
	return d.dropNA(cols)
}

func (d *Dataset) dropNA(cols []string) (*Dataset, error) {
	n := d.df.Nrow()
	drop := make([]bool, n)
	for _, name := range cols {
		for i, isNaN := range d.df.Col(name).IsNaN() {
			drop[i] = drop[i] || isNaN
		}
	}
	idx := make([]int, 0, n)
	for i, dropped := range drop {
		if !dropped {
			idx = append(idx, i)
		}
	}
	if len(idx) == n {
		return d, nil
	}
	return d.take(idx)
}
