package listview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("line %d", i)
	}
	return out
}

func render(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return "  " + item
}

func TestVirtualList_Navigation(t *testing.T) {
	m := NewVirtualListModel(lines(20), 5, 40, render)
	assert.Equal(t, 0, m.VisibleFrom())
	assert.Equal(t, 5, m.VisibleTo())
	assert.True(t, m.AtTop())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 6, m.Selected())
	assert.Equal(t, 2, m.VisibleFrom())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 19, m.Selected())
	assert.Equal(t, 15, m.VisibleFrom())
	assert.True(t, m.AtBottom())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 19, m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, m.Selected())
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Selected())
}

func TestVirtualList_View(t *testing.T) {
	m := NewVirtualListModel(lines(10), 3, 40, render)
	m.SetSelected(4)

	view := strings.Split(m.View(), "\n")
	require.Len(t, view, 3)
	assert.Equal(t, "  line 2", view[0])
	assert.Equal(t, "> line 4", view[2])
}

func TestVirtualList_Empty(t *testing.T) {
	m := NewVirtualListModel([]string{}, 5, 40, render)
	assert.Empty(t, m.View())
	assert.Nil(t, m.GetSelectedItem())
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Selected())
}

func TestVirtualList_SetItemsAndResize(t *testing.T) {
	m := NewVirtualListModel(lines(10), 3, 40, render)
	m.SetSelected(9)

	m.SetItems(lines(2))
	assert.Equal(t, 0, m.Selected())
	assert.Equal(t, 2, m.VisibleTo())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 0})
	assert.Equal(t, 1, m.Height())
	assert.Equal(t, 100, m.Width())
	assert.Equal(t, "line 0", *m.GetSelectedItem())
}
