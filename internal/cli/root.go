package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the datalens CLI.
// It wires up configuration, logging with a per-run trace id, and the
// subcommands (menu, tui, view, describe, plot, merge, config).
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithEnv(ver, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for testability.
func NewRootCmdWithEnv(ver string, lookupEnv func(string) (string, bool)) *cobra.Command {
	var (
		logResult  *logging.LogPathResult
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "datalens",
		Short:   "Interactive CSV analysis",
		Long:    "datalens: load a CSV file, then inspect, clean, transform, aggregate, plot and export it",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(configPath, lookupEnv); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration file")
	cmd.AddCommand(
		newMenuCmd(), newTUICmd(), newViewCmd(), newDescribeCmd(),
		newPlotCmd(), newMergeCmd(), newConfigCmd(),
	)

	return cmd
}

// loadConfig resolves the global configuration once for the invocation.
// An explicit path must be readable; the default location may be absent.
func loadConfig(path string, lookupEnv func(string) (string, bool)) error {
	if path == "" {
		if env, ok := lookupEnv("DATALENS_CONFIG"); ok {
			path = env
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// commandContext returns the command context, never nil.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

const rootCmdExample = `  # Explore a CSV file with the numbered menu
  datalens menu sales.csv

  # Open the interactive table view
  datalens tui sales.csv

  # Print the second page of 50 rows sorted by revenue
  datalens view sales.csv --page 2 --page-size 50 --sort revenue:desc

  # Filter rows and emit JSON
  datalens view sales.csv --query "region == 'EU' and revenue > 1000" --output json

  # Summary statistics
  datalens describe sales.csv

  # Bar chart of the most common regions
  datalens plot sales.csv --kind bar --x region

  # Join two files on a key column
  datalens merge orders.csv customers.csv --on customer_id --how left --out joined.csv

  # Set configuration values
  datalens config set display.page_size 100`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
