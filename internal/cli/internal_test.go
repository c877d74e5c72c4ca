package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/tui"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  PromptResult
	}{
		{input: "y\n", want: PromptResult{Accepted: true}},
		{input: "YES\n", want: PromptResult{Accepted: true}},
		{input: "n\n", want: PromptResult{}},
		{input: "\n", want: PromptResult{}},
		{input: "", want: PromptResult{}},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(&out, strings.NewReader(tt.input), "? overwrite [y/N] ")
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "? overwrite [y/N] ", out.String())
	}
}

func TestTUICmd_StartsProgram(t *testing.T) {
	t.Setenv("DATALENS_HOME", t.TempDir())
	t.Setenv("DATALENS_NO_PROJECT_CONFIG", "1")
	t.Cleanup(func() { config.SetGlobalConfig(nil) })

	origDetect, origRunner := detectMode, programRunner
	t.Cleanup(func() { detectMode, programRunner = origDetect, origRunner })

	var started tea.Model
	detectMode = func(bool) tui.OutputMode { return tui.OutputModeInteractive }
	programRunner = func(m tea.Model, _ ...tea.ProgramOption) (tea.Model, error) {
		started = m
		return m, nil
	}

	root := NewRootCmd("test")
	root.SetArgs([]string{"tui", "people.csv"})
	require.NoError(t, root.Execute())

	model, ok := started.(tui.Model)
	require.True(t, ok)
	assert.Equal(t, tui.ViewStateLoading, model.State())

	programRunner = func(m tea.Model, _ ...tea.ProgramOption) (tea.Model, error) {
		return m, errors.New("no tty")
	}
	root = NewRootCmd("test")
	root.SetArgs([]string{"tui"})
	root.SetErr(&bytes.Buffer{})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running interactive view")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Defaults()

	m := menuOptions(cfg)
	assert.Equal(t, config.DefaultPageSize, m.PageSize)
	assert.Equal(t, config.DefaultCLIHistBins, m.HistBins)

	u := tuiOptions(cfg, "x.csv")
	assert.Equal(t, "x.csv", u.Path)
	assert.Equal(t, config.DefaultHistBins, u.HistBins)
}
