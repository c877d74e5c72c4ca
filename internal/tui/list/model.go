package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderFunc renders one item. selected reports whether it is under the cursor.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel scrolls over items, keeping the cursor inside a viewport
// of height rows.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]
	selected   int
	offset     int
	height     int
	width      int
}

// NewVirtualListModel creates a list showing height rows at a time.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
		width:      width,
	}
	m.clamp()
	return m
}

// Init implements tea.Model.
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update moves the cursor on navigation keys and resizes on window changes.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

//nolint:exhaustive // Only navigation keys move the cursor.
func (m *VirtualListModel[T]) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		m.SetSelected(m.selected - 1)
	case tea.KeyDown:
		m.SetSelected(m.selected + 1)
	case tea.KeyPgUp:
		m.SetSelected(m.selected - m.height)
	case tea.KeyPgDown:
		m.SetSelected(m.selected + m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "j":
			m.SetSelected(m.selected + 1)
		case "k":
			m.SetSelected(m.selected - 1)
		case "g":
			m.SetSelected(0)
		case "G":
			m.SetSelected(len(m.items) - 1)
		}
	}
}

// clamp keeps the cursor on an item and the viewport around the cursor.
func (m *VirtualListModel[T]) clamp() {
	if len(m.items) == 0 {
		m.selected, m.offset = 0, 0
		return
	}
	m.selected = min(max(m.selected, 0), len(m.items)-1)
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
	m.offset = min(max(m.offset, 0), max(len(m.items)-m.height, 0))
}

// View renders the rows inside the viewport.
func (m *VirtualListModel[T]) View() string {
	from, to := m.VisibleFrom(), m.VisibleTo()
	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(lines, "\n")
}

// SetItems replaces the items and moves the cursor to the top.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.selected, m.offset = 0, 0
	m.clamp()
}

// SetSize changes the viewport dimensions.
func (m *VirtualListModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = max(height, 1)
	m.clamp()
}

// SetSelected moves the cursor, capping to the item range.
func (m *VirtualListModel[T]) SetSelected(index int) {
	m.selected = index
	m.clamp()
}

// ItemCount returns the number of items.
func (m *VirtualListModel[T]) ItemCount() int { return len(m.items) }

// Selected returns the cursor index.
func (m *VirtualListModel[T]) Selected() int { return m.selected }

// VisibleFrom returns the first visible index.
func (m *VirtualListModel[T]) VisibleFrom() int { return m.offset }

// VisibleTo returns one past the last visible index.
func (m *VirtualListModel[T]) VisibleTo() int { return min(m.offset+m.height, len(m.items)) }

// Height returns the viewport height.
func (m *VirtualListModel[T]) Height() int { return m.height }

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int { return m.width }

// AtTop reports whether the first item is visible.
func (m *VirtualListModel[T]) AtTop() bool { return m.offset == 0 }

// AtBottom reports whether the last item is visible.
func (m *VirtualListModel[T]) AtBottom() bool { return m.VisibleTo() >= len(m.items) }

// GetSelectedItem returns the item under the cursor, or nil for an empty list.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 {
		return nil
	}
	return &m.items[m.selected]
}
