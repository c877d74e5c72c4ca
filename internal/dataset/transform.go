package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregation function names accepted by GroupBy.
const (
	AggMean   = "mean"
	AggSum    = "sum"
	AggCount  = "count"
	AggMin    = "min"
	AggMax    = "max"
	AggMedian = "median"
	AggStd    = "std"
)

// Join methods accepted by Merge.
const (
	JoinInner = "inner"
	JoinLeft  = "left"
	JoinRight = "right"
	JoinOuter = "outer"
)

// Aggregations lists the GroupBy functions in menu order.
var Aggregations = []string{AggMean, AggSum, AggCount, AggMin, AggMax, AggMedian, AggStd}

// JoinMethods lists the Merge methods in menu order.
var JoinMethods = []string{JoinInner, JoinLeft, JoinRight, JoinOuter}

// AddColumns stores first+second in a new column. Numeric columns are added
// (int stays int when both are int), string columns are concatenated.
func (d *Dataset) AddColumns(first, second, name string) (*Dataset, error) {
	if err := d.requireColumns(first, second); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: empty column name", ErrColumnNotFound)
	}
	a, b := d.df.Col(first), d.df.Col(second)
	switch {
	case isNumeric(a.Type()) && isNumeric(b.Type()):
		return d.replace(addNumeric(a, b, name))
	case a.Type() == series.String && b.Type() == series.String:
		return d.replace(concat(a, b, name))
	default:
		return nil, fmt.Errorf("%w: cannot add %s column %q to %s column %q",
			ErrInvalidDtype, dtypeName(a.Type()), first, dtypeName(b.Type()), second)
	}
}

func addNumeric(a, b series.Series, name string) series.Series {
	nanA, nanB := a.IsNaN(), b.IsNaN()
	fa, fb := a.Float(), b.Float()
	typ := series.Float
	if a.Type() == series.Int && b.Type() == series.Int {
		typ = series.Int
	}
	cells := make([]string, len(fa))
	for i := range fa {
		switch {
		case nanA[i] || nanB[i]:
			cells[i] = naText
		case typ == series.Int:
			cells[i] = strconv.FormatInt(int64(fa[i])+int64(fb[i]), 10)
		default:
			cells[i] = formatNumber(fa[i] + fb[i])
		}
	}
	return series.New(cells, typ, name)
}

func concat(a, b series.Series, name string) series.Series {
	nanA, nanB := a.IsNaN(), b.IsNaN()
	ra, rb := a.Records(), b.Records()
	cells := make([]string, len(ra))
	for i := range ra {
		if nanA[i] || nanB[i] {
			cells[i] = naText
			continue
		}
		cells[i] = ra[i] + rb[i]
	}
	return series.New(cells, series.String, name)
}

// GroupBy aggregates aggCol per distinct value of groupCol. The result has
// two columns, groupCol and aggCol, ordered by group key. Rows with a
// missing group key are left out.
func (d *Dataset) GroupBy(groupCol, aggCol, fn string) (*Dataset, error) {
	if err := d.requireColumns(groupCol, aggCol); err != nil {
		return nil, err
	}
	fn = strings.ToLower(strings.TrimSpace(fn))
	if !validAggregation(fn) {
		return nil, fmt.Errorf("%w: %q (want %s)", ErrInvalidAggregation, fn, strings.Join(Aggregations, ", "))
	}
	target := d.df.Col(aggCol)
	if fn != AggCount && !isNumeric(target.Type()) {
		return nil, fmt.Errorf("%w: cannot compute %s of %q", ErrNotNumeric, fn, aggCol)
	}
	keyType := d.df.Col(groupCol).Type()
	if d.df.Nrow() == 0 {
		return &Dataset{df: dataframe.New(
			series.New([]string{}, keyType, groupCol),
			series.New([]string{}, aggregateType(fn, target.Type()), aggCol),
		)}, nil
	}

	groups := d.df.GroupBy(groupCol)
	if groups.Err != nil {
		return nil, groups.Err
	}

	type bucket struct {
		key   string
		sortF float64
		value float64
	}
	var buckets []bucket
	for _, sub := range groups.GetGroups() {
		keyCol := sub.Col(groupCol)
		if keyCol.Len() == 0 || keyCol.IsNaN()[0] {
			continue
		}
		key := cellStrings(keyCol)[0]
		b := bucket{key: key, value: aggregate(fn, sub.Col(aggCol))}
		if isNumeric(keyType) {
			b.sortF = keyCol.Float()[0]
		}
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if isNumeric(keyType) {
			return buckets[i].sortF < buckets[j].sortF
		}
		return buckets[i].key < buckets[j].key
	})

	keys := make([]string, len(buckets))
	vals := make([]string, len(buckets))
	outType := aggregateType(fn, target.Type())
	for i, b := range buckets {
		keys[i] = b.key
		if outType == series.Int {
			vals[i] = strconv.Itoa(int(b.value))
			continue
		}
		vals[i] = formatNumber(b.value)
	}
	df := dataframe.New(
		series.New(keys, keyType, groupCol),
		series.New(vals, outType, aggCol),
	)
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}

func validAggregation(fn string) bool {
	for _, a := range Aggregations {
		if a == fn {
			return true
		}
	}
	return false
}

func aggregateType(fn string, in series.Type) series.Type {
	switch fn {
	case AggCount:
		return series.Int
	case AggSum, AggMin, AggMax:
		if in == series.Int {
			return series.Int
		}
	}
	return series.Float
}

func aggregate(fn string, s series.Series) float64 {
	if fn == AggCount {
		n := 0
		for _, isNaN := range s.IsNaN() {
			if !isNaN {
				n++
			}
		}
		return float64(n)
	}
	vals := present(s)
	if len(vals) == 0 {
		if fn == AggSum {
			return 0
		}
		return math.NaN()
	}
	switch fn {
	case AggSum:
		return floats.Sum(vals)
	case AggMin:
		return floats.Min(vals)
	case AggMax:
		return floats.Max(vals)
	case AggMedian:
		sort.Float64s(vals)
		return median(vals)
	case AggStd:
		return stat.StdDev(vals, nil)
	default:
		return meanOf(vals)
	}
}

func meanOf(vals []float64) float64 {
	return stat.Mean(vals, nil)
}

// median of sorted values, averaging the middle pair for even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Merge joins other onto d on key using how (inner, left, right, outer).
func (d *Dataset) Merge(other *Dataset, key, how string) (*Dataset, error) {
	if other == nil {
		return nil, ErrNoDataset
	}
	if err := d.requireColumns(key); err != nil {
		return nil, fmt.Errorf("left table: %w", err)
	}
	if err := other.requireColumns(key); err != nil {
		return nil, fmt.Errorf("right table: %w", err)
	}
	var df dataframe.DataFrame
	switch strings.ToLower(strings.TrimSpace(how)) {
	case JoinInner:
		df = d.df.InnerJoin(other.df, key)
	case JoinLeft:
		df = d.df.LeftJoin(other.df, key)
	case JoinRight:
		df = d.df.RightJoin(other.df, key)
	case JoinOuter:
		df = d.df.OuterJoin(other.df, key)
	default:
		return nil, fmt.Errorf("%w: %q (want %s)", ErrInvalidJoin, how, strings.Join(JoinMethods, ", "))
	}
	if df.Err != nil {
		return nil, df.Err
	}
	return &Dataset{df: df}, nil
}
