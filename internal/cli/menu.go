package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/dataset"
	"github.com/rshade/datalens/internal/menu"
)

// newMenuCmd creates the numbered menu command. Without an argument the menu
// asks for a CSV path first.
func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu [CSV]",
		Short: "Explore a CSV file through the numbered menu",
		Example: `  # Prompt for the file
  datalens menu

  # Start with a file loaded
  datalens menu data/people.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			cfg := config.GetGlobalConfig()

			session := dataset.NewSession()
			m := menu.New(cmd.InOrStdin(), cmd.OutOrStdout(), session, menuOptions(cfg))
			if len(args) == 1 {
				if err := session.Load(ctx, args[0]); err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "❌ Error loading dataset: %v\n", err)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "✅ Dataset loaded successfully.")
				}
			}
			return m.Run(ctx)
		},
	}
}
