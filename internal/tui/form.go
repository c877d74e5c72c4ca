package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const formInputWidth = 32

// field describes one parameter of an action.
type field struct {
	label string
	// choices are fixed suggestions; when empty the column names are offered.
	choices []string
	// value is the initial text.
	value string
	// free disables suggestions entirely (paths, fill values, formulas).
	free bool
}

// form collects action parameters through a stack of text inputs.
type form struct {
	title  string
	fields []field
	inputs []textinput.Model
	focus  int
}

func newTextInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Width = formInputWidth
	return ti
}

func newForm(title string, fields []field, columns []string) *form {
	f := &form{title: title, fields: fields}
	for _, fd := range fields {
		ti := newTextInput()
		ti.SetValue(fd.value)
		if !fd.free {
			suggestions := fd.choices
			if len(suggestions) == 0 {
				suggestions = columns
			}
			ti.ShowSuggestions = true
			ti.SetSuggestions(suggestions)
		}
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

// update handles a key. It reports submitted when enter is pressed on the
// last field and cancelled on esc.
func (f *form) update(msg tea.Msg) (cmd tea.Cmd, submitted, cancelled bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyEsc:
			return nil, false, true
		case keyEnter:
			if f.focus == len(f.inputs)-1 {
				return nil, true, false
			}
			f.setFocus(f.focus + 1)
			return textinput.Blink, false, false
		case keyDown:
			f.setFocus(f.focus + 1)
			return textinput.Blink, false, false
		case keyUp:
			f.setFocus(f.focus - 1)
			return textinput.Blink, false, false
		}
	}
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd, false, false
}

// values returns the trimmed input values in field order.
func (f *form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

func (f *form) view() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, fd := range f.fields {
		b.WriteString(LabelStyle.Render(fd.label))
		if len(fd.choices) > 0 {
			b.WriteString(SubtleStyle.Render(" (" + strings.Join(fd.choices, ", ") + ")"))
		}
		b.WriteString("\n")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render("enter next/submit · tab accept suggestion · esc cancel"))
	return b.String()
}
