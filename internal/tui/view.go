package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the model (Bubble Tea interface).
func (m Model) View() string {
	if m.state == ViewStateQuitting {
		return ""
	}
	if m.state == ViewStateDetail && m.popup != nil {
		return m.renderPopup()
	}

	left := m.renderPanel()
	right := m.renderTable()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusBar())
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, numTabs)
	for i, name := range tabNames {
		if i == m.tab {
			tabs = append(tabs, ActiveTabStyle.Render(name))
			continue
		}
		tabs = append(tabs, TabStyle.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderPanel() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.form != nil {
		b.WriteString(m.form.view())
	} else {
		for i, a := range tabActions(m.tab) {
			label := a.label
			if len(a.fields) > 0 {
				label += "..."
			}
			if i == m.cursor {
				b.WriteString(SelectedActionStyle.Render("> " + label))
			} else {
				b.WriteString(ActionStyle.Render(label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render("tab switch · enter run · o load · w export · q quit"))
	}
	return PanelStyle.Width(panelWidth).Render(b.String())
}

func (m Model) renderTable() string {
	var b strings.Builder
	if m.shown == nil {
		b.WriteString(SubtleStyle.Render("No data loaded."))
	} else {
		b.WriteString(m.table.View())
		b.WriteString("\n")
		b.WriteString(m.renderPaginationFooter())
	}
	return PanelStyle.Render(b.String())
}

// renderPaginationFooter shows the page label between the navigation
// buttons, greying out the ones that cannot move.
func (m Model) renderPaginationFooter() string {
	prev := ActionStyle.Render("<< Previous (p)")
	if !m.pager.HasPrevious() {
		prev = DisabledStyle.Render("<< Previous (p)")
	}
	next := ActionStyle.Render("Next (n) >>")
	if !m.pager.HasNext() {
		next = DisabledStyle.Render("Next (n) >>")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, "  ", ValueStyle.Render(m.pager.Label()), "  ", next)
}

func (m Model) renderStatusBar() string {
	text := m.status
	if m.state == ViewStateLoading {
		text = m.loading.View()
	}
	if m.err != nil {
		return StatusBarStyle.Width(m.width).Render(ErrorStyle.Render("Error: " + m.err.Error()))
	}
	return StatusBarStyle.Width(m.width).Render(text)
}

func (m Model) renderPopup() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.popup.title))
	b.WriteString("\n\n")
	b.WriteString(m.popup.list.View())
	b.WriteString("\n\n")
	b.WriteString(SubtleStyle.Render("↑/↓ scroll · esc close"))
	return PopupStyle.Render(b.String())
}
