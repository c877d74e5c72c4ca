package dataset

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddColumns(t *testing.T) {
	ds := people(t)

	sum, err := ds.AddColumns("age", "age", "twice")
	require.NoError(t, err)
	assert.Equal(t, []string{"60", "50", "70", "NaN", "60"}, column(t, sum, "twice"))
	assert.Equal(t, "int64", sum.Dtypes()[4].Dtype)

	mixed, err := ds.AddColumns("age", "salary", "total")
	require.NoError(t, err)
	assert.Equal(t, "5030.5", column(t, mixed, "total")[0])

	joined, err := ds.AddColumns("name", "city", "where")
	require.NoError(t, err)
	assert.Equal(t, "AliceParis", column(t, joined, "where")[0])

	_, err = ds.AddColumns("name", "age", "bad")
	require.ErrorIs(t, err, ErrInvalidDtype)
}

func TestGroupBy(t *testing.T) {
	ds := people(t)

	mean, err := ds.GroupBy("city", "salary", "mean")
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "salary"}, mean.Columns())
	assert.Equal(t, []string{"Berlin", "London", "Paris"}, column(t, mean, "city"))
	assert.Equal(t, []string{"6500.25", "NaN", "5667"}, column(t, mean, "salary"))

	count, err := ds.GroupBy("city", "name", "count")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "1", "3"}, column(t, count, "name"))

	byAge, err := ds.GroupBy("age", "salary", "max")
	require.NoError(t, err)
	assert.Equal(t, []string{"25", "30", "35"}, column(t, byAge, "age"))
	assert.Equal(t, 4, ds.Ncol(), "receiver must not change")
}

func TestGroupByErrors(t *testing.T) {
	ds := people(t)

	_, err := ds.GroupBy("city", "salary", "mode")
	require.ErrorIs(t, err, ErrInvalidAggregation)

	_, err = ds.GroupBy("city", "name", "sum")
	require.ErrorIs(t, err, ErrNotNumeric)

	_, err = ds.GroupBy("region", "salary", "sum")
	require.ErrorIs(t, err, ErrColumnNotFound)
}

func TestMedian(t *testing.T) {
	assert.InDelta(t, 2.0, median([]float64{1, 2, 3}), 1e-9)
	assert.InDelta(t, 2.5, median([]float64{1, 2, 3, 4}), 1e-9)
}

func TestMerge(t *testing.T) {
	ds := people(t)
	countries, err := Read(context.Background(), strings.NewReader("city,country\nParis,France\nLondon,UK\n"))
	require.NoError(t, err)

	tests := []struct {
		how  string
		rows int
	}{
		{how: "inner", rows: 4},
		{how: "left", rows: 5},
		{how: "outer", rows: 5},
		{how: "RIGHT", rows: 4},
	}
	for _, tt := range tests {
		t.Run(tt.how, func(t *testing.T) {
			merged, err := ds.Merge(countries, "city", tt.how)
			require.NoError(t, err)
			assert.Equal(t, tt.rows, merged.Nrow())
			assert.Contains(t, merged.Columns(), "country")
		})
	}

	_, err = ds.Merge(countries, "city", "cross")
	require.ErrorIs(t, err, ErrInvalidJoin)

	_, err = ds.Merge(countries, "name", "inner")
	require.ErrorIs(t, err, ErrColumnNotFound)

	_, err = ds.Merge(nil, "city", "inner")
	require.ErrorIs(t, err, ErrNoDataset)
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	s := NewSession()

	_, err := s.Dataset()
	require.ErrorIs(t, err, ErrNoDataset)
	require.ErrorIs(t, s.Apply(ctx, "sort", func(d *Dataset) (*Dataset, error) { return d, nil }), ErrNoDataset)

	s.Set(people(t), "people.csv")
	assert.True(t, s.Loaded())
	assert.Equal(t, "people.csv", s.Path())

	boom := errors.New("boom")
	err = s.Apply(ctx, "fail", func(d *Dataset) (*Dataset, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	ds, err := s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 5, ds.Nrow())

	require.NoError(t, s.Apply(ctx, "drop_column", func(d *Dataset) (*Dataset, error) {
		return d.DropColumn("city")
	}))
	ds, err = s.Dataset()
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Ncol())
}
