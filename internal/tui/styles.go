package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	colorAccent   = lipgloss.Color("39")
	colorSelected = lipgloss.Color("57")
	colorText     = lipgloss.Color("229")
	colorSubtle   = lipgloss.Color("241")
	colorError    = lipgloss.Color("196")
	colorOK       = lipgloss.Color("42")
)

// Styles shared by the datalens views.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values used as constants.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	OKStyle = lipgloss.NewStyle().
		Foreground(colorOK)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAccent).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorSubtle)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorSelected)

	TabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(colorSubtle)

	ActiveTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(colorText).
			Background(colorSelected)

	ActionStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	SelectedActionStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Foreground(colorAccent)

	DisabledStyle = lipgloss.NewStyle().
			Foreground(colorSubtle).
			Faint(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)

	PopupStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)
