package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/go-gota/gota/series"
)

// Row-level names bound in every expression environment alongside the
// columns themselves.
const (
	rowVarShort = "x"
	rowVar      = "row"
)

// Query keeps the rows for which the boolean expression holds. Columns are
// identifiers (Age > 30 and City == "Paris"); the row is also available as
// x and row for names that are not identifiers (x["first name"] != "").
func (d *Dataset) Query(code string) (*Dataset, error) {
	program, err := d.compile(code, expr.AsBool())
	if err != nil {
		return nil, err
	}
	var keep []int
	err = d.eachRow(func(i int, env map[string]any) error {
		out, runErr := expr.Run(program, env)
		if runErr != nil {
			return runErr
		}
		if ok, _ := out.(bool); ok {
			keep = append(keep, i)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidExpression, code, err)
	}
	return d.take(keep)
}

// QueryBoth keeps the rows matching both conditions.
func (d *Dataset) QueryBoth(first, second string) (*Dataset, error) {
	return d.Query("(" + first + ") and (" + second + ")")
}

// ILoc returns rows [start, end) by position with slice clamping.
func (d *Dataset) ILoc(start, end int) (*Dataset, error) {
	start, end = clampRange(start, end, d.df.Nrow())
	idx := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	return d.take(idx)
}

// Loc returns rows start through end inclusive. Row labels are positions.
func (d *Dataset) Loc(start, end int) (*Dataset, error) {
	start = max(start, 0)
	if end < start {
		return d.empty(), nil
	}
	return d.ILoc(start, end+1)
}

// Derive evaluates code for every row and stores the results in column name,
// replacing an existing column of that name. The result type follows the
// values produced: all numbers give a float column, all booleans a bool
// column, anything else a string column.
func (d *Dataset) Derive(code, name string) (*Dataset, error) {
	code = TrimLambda(code)
	if name == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrColumnNotFound)
	}
	program, err := d.compile(code)
	if err != nil {
		return nil, err
	}
	results := make([]any, 0, d.df.Nrow())
	err = d.eachRow(func(_ int, env map[string]any) error {
		out, runErr := expr.Run(program, env)
		if runErr != nil {
			return runErr
		}
		results = append(results, out)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidExpression, code, err)
	}
	return d.replace(resultSeries(results, name))
}

func (d *Dataset) compile(code string, opts ...expr.Option) (*vm.Program, error) {
	env := d.sampleEnv()
	program, err := expr.Compile(code, append([]expr.Option{expr.Env(env)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidExpression, err)
	}
	return program, nil
}

// sampleEnv declares every column with its Go type so the compiler can
// check identifiers before any row is evaluated.
func (d *Dataset) sampleEnv() map[string]any {
	names := d.df.Names()
	types := d.df.Types()
	row := make(map[string]any, len(names))
	for i, name := range names {
		row[name] = zeroValue(types[i])
	}
	return bindRow(row)
}

// eachRow calls fn with the environment of every row in order.
func (d *Dataset) eachRow(fn func(i int, env map[string]any) error) error {
	names := d.df.Names()
	cols := make([][]any, len(names))
	for j, name := range names {
		cols[j] = values(d.df.Col(name))
	}
	for i := 0; i < d.df.Nrow(); i++ {
		row := make(map[string]any, len(names))
		for j, name := range names {
			row[name] = cols[j][i]
		}
		if err := fn(i, bindRow(row)); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// bindRow builds the expression environment for one row. Column names win
// over the row aliases.
func bindRow(row map[string]any) map[string]any {
	env := make(map[string]any, len(row)+2)
	env[rowVarShort] = row
	env[rowVar] = row
	for k, v := range row {
		env[k] = v
	}
	return env
}

// values converts a series into expression values. Numbers are float64 with
// NaN for missing; missing strings are "" and missing booleans false.
func values(s series.Series) []any {
	nan := s.IsNaN()
	out := make([]any, s.Len())
	switch s.Type() {
	case series.Int, series.Float:
		for i, v := range s.Float() {
			if nan[i] {
				v = math.NaN()
			}
			out[i] = v
		}
	case series.Bool:
		for i, v := range s.Records() {
			b, _ := strconv.ParseBool(v)
			out[i] = !nan[i] && b
		}
	default:
		for i, v := range s.Records() {
			if nan[i] {
				v = ""
			}
			out[i] = v
		}
	}
	return out
}

func zeroValue(t series.Type) any {
	switch t {
	case series.Int, series.Float:
		return float64(0)
	case series.Bool:
		return false
	default:
		return ""
	}
}

// resultSeries infers a column type from expression results.
func resultSeries(results []any, name string) series.Series {
	allNumbers, allBools := true, true
	cells := make([]string, len(results))
	for i, r := range results {
		switch v := r.(type) {
		case nil:
			cells[i] = naText
		case float64:
			allBools = false
			cells[i] = formatNumber(v)
		case int:
			allBools = false
			cells[i] = strconv.Itoa(v)
		case bool:
			allNumbers = false
			cells[i] = strconv.FormatBool(v)
		default:
			allNumbers, allBools = false, false
			cells[i] = fmt.Sprint(v)
		}
	}
	switch {
	case len(results) == 0 || allNumbers:
		return series.New(cells, series.Float, name)
	case allBools:
		return series.New(cells, series.Bool, name)
	default:
		return series.New(cells, series.String, name)
	}
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return naText
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TrimLambda strips a leading "lambda x:" or "lambda row:" so formulas
// written as one-argument lambdas evaluate as plain expressions.
func TrimLambda(code string) string {
	trimmed := strings.TrimSpace(code)
	for _, prefix := range []string{"lambda " + rowVarShort + ":", "lambda " + rowVar + ":"} {
		if rest, ok := strings.CutPrefix(trimmed, prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return trimmed
}
