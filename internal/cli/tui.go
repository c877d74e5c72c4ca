package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/tui"
)

// ErrNotInteractive is returned when the TUI is started without a terminal.
var ErrNotInteractive = errors.New("the interactive view requires a terminal; use 'datalens menu' or 'datalens view' instead")

// detectMode and programRunner are replaced in tests.
//
//nolint:gochecknoglobals // Required for test injection
var (
	detectMode    = tui.DetectOutputMode
	programRunner = func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
		return tea.NewProgram(m, opts...).Run()
	}
)

// newTUICmd creates the interactive view command.
func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [CSV]",
		Short: "Open the interactive table view",
		Long: `Opens a full-screen view with a tabbed control panel (Info, Cleaning,
Manipulation, Visualization) and a paginated table.

Keys: tab/shift+tab switch tabs, up/down pick an action, enter runs it,
n/right and p/left change page, o loads a file, w exports, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if detectMode(false) != tui.OutputModeInteractive {
				return ErrNotInteractive
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			model := tui.NewModel(commandContext(cmd), dataset.NewSession(), tuiOptions(config.GetGlobalConfig(), path))
			if _, err := programRunner(model.StartLoading(), tea.WithAltScreen()); err != nil {
				return fmt.Errorf("running interactive view: %w", err)
			}
			return nil
		},
	}
}
