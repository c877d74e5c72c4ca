package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForm_FocusAndSubmit(t *testing.T) {
	f := newForm("Sort", []field{
		{label: "Column"},
		{label: "Order", choices: []string{"asc", "desc"}, value: "asc"},
	}, []string{"a", "b"})

	require.Len(t, f.inputs, 2)
	assert.Equal(t, 0, f.focus)
	assert.True(t, f.inputs[0].Focused())
	assert.True(t, f.inputs[0].ShowSuggestions)

	_, submitted, cancelled := f.update(key("b"))
	assert.False(t, submitted)
	assert.False(t, cancelled)

	_, submitted, _ = f.update(key("enter"))
	assert.False(t, submitted)
	assert.Equal(t, 1, f.focus)

	_, submitted, _ = f.update(key("enter"))
	assert.True(t, submitted)
	assert.Equal(t, []string{"b", "asc"}, f.values())
}

func TestForm_Navigation(t *testing.T) {
	f := newForm("Plot", []field{{label: "A"}, {label: "B"}, {label: "C", free: true}}, nil)

	f.update(key("up"))
	assert.Equal(t, 2, f.focus)
	assert.False(t, f.inputs[2].ShowSuggestions)
	f.update(key("down"))
	assert.Equal(t, 0, f.focus)

	_, _, cancelled := f.update(key("esc"))
	assert.True(t, cancelled)
}

func TestForm_TrimsValues(t *testing.T) {
	f := newForm("Path", []field{{label: "Path", free: true, value: "  out.csv "}}, nil)
	assert.Equal(t, []string{"out.csv"}, f.values())
	assert.Contains(t, f.view(), "Path")
}
