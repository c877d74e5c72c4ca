package dataset

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peopleCSV = `name,age,city,salary
Alice,30,Paris,5000.5
Bob,25,London,NA
Carol,35,Paris,7000
Dave,,Berlin,6500.25
Alice,30,Paris,5000.5
`

func people(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Read(context.Background(), strings.NewReader(peopleCSV))
	require.NoError(t, err)
	return ds
}

func column(t *testing.T, ds *Dataset, name string) []string {
	t.Helper()
	pos := -1
	for i, c := range ds.Columns() {
		if c == name {
			pos = i
		}
	}
	require.NotEqual(t, -1, pos, "column %q missing", name)
	var out []string
	for _, row := range ds.Rows(0, ds.Nrow()) {
		out = append(out, row[pos])
	}
	return out
}

func TestRead(t *testing.T) {
	ds := people(t)

	rows, cols := ds.Shape()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []string{"name", "age", "city", "salary"}, ds.Columns())
	assert.Equal(t, []ColumnInfo{
		{Name: "name", Dtype: "object"},
		{Name: "age", Dtype: "int64"},
		{Name: "city", Dtype: "object"},
		{Name: "salary", Dtype: "float64"},
	}, ds.Dtypes())
}

func TestNullCounts(t *testing.T) {
	counts := map[string]int{}
	for _, c := range people(t).NullCounts() {
		counts[c.Name] = c.Nulls
	}
	assert.Equal(t, map[string]int{"name": 0, "age": 1, "city": 0, "salary": 1}, counts)
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, people(t).Save(ctx, path))

	loaded, err := Load(ctx, path)
	require.NoError(t, err)
	rows, cols := loaded.Shape()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Alice"}, column(t, loaded, "name"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestWriteHasNoIndex(t *testing.T) {
	ds, err := people(t).Select([]string{"name", "city"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.Write(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "name,city", lines[0])
	assert.Equal(t, "Alice,Paris", lines[1])
	assert.Len(t, lines, 6)
}

func TestWriteLeavesMissingCellsEmpty(t *testing.T) {
	ds, err := Read(context.Background(), strings.NewReader("id,name,age\n1,a,30\n2,b,\n3,,41.5\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.Write(&buf))
	assert.Equal(t, "id,name,age\n1,a,30\n2,b,\n3,,41.5\n", buf.String())
	assert.NotContains(t, buf.String(), "NaN")
}

func TestHeadTail(t *testing.T) {
	ds := people(t)

	head, err := ds.Head(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, column(t, head, "name"))

	tail, err := ds.Tail(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dave", "Alice"}, column(t, tail, "name"))

	def, err := ds.Head(0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreviewRows, def.Nrow())

	big, err := ds.Tail(50)
	require.NoError(t, err)
	assert.Equal(t, 5, big.Nrow())
}

func TestSelect(t *testing.T) {
	ds := people(t)

	sel, err := ds.Select([]string{"city", "name"})
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "name"}, sel.Columns())

	_, err = ds.Select([]string{"name", "height"})
	require.ErrorIs(t, err, ErrColumnNotFound)

	col, err := ds.Column("age")
	require.NoError(t, err)
	assert.Equal(t, []string{"age"}, col.Columns())
}

func TestDescribe(t *testing.T) {
	desc, err := people(t).Describe()
	require.NoError(t, err)

	assert.Equal(t, []string{"stat", "age", "salary"}, desc.Columns())
	assert.Equal(t, describeStats, column(t, desc, "stat"))

	age := column(t, desc, "age")
	assert.Equal(t, "4", age[0])
	assert.Equal(t, "30", age[1])
	assert.Equal(t, "25", age[3])
	assert.Equal(t, "35", age[7])

	quartiles, err := Read(context.Background(), strings.NewReader("v\n1\n2\n3\n4\n"))
	require.NoError(t, err)
	desc, err = quartiles.Describe()
	require.NoError(t, err)
	v := column(t, desc, "v")
	assert.Equal(t, "1.75", v[4])
	assert.Equal(t, "2.5", v[5])
	assert.Equal(t, "3.25", v[6])

	onlyText, err := people(t).Select([]string{"name"})
	require.NoError(t, err)
	_, err = onlyText.Describe()
	require.ErrorIs(t, err, ErrNotNumeric)
}

func TestValueCounts(t *testing.T) {
	counts, err := people(t).ValueCounts("city")
	require.NoError(t, err)
	assert.Equal(t, []ValueCount{
		{Value: "Paris", Count: 3},
		{Value: "London", Count: 1},
		{Value: "Berlin", Count: 1},
	}, counts)

	_, err = people(t).ValueCounts("height")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestNumericValues(t *testing.T) {
	ds := people(t)

	vals, err := ds.NumericValues("age")
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 25, 35, 30}, vals)

	_, err = ds.NumericValues("city")
	require.ErrorIs(t, err, ErrNotNumeric)

	_, err = ds.NumericValues("height")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestFloats(t *testing.T) {
	vals, err := people(t).Floats("age")
	require.NoError(t, err)
	require.Len(t, vals, 5)
	assert.InDelta(t, 25.0, vals[1], 1e-9)
	assert.True(t, vals[3] != vals[3], "missing value must be NaN")

	_, err = people(t).Floats("name")
	require.ErrorIs(t, err, ErrNotNumeric)
}
