package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
	"github.com/rshade/datalens/internal/logging"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the resolved configuration (global file, project .datalens.yaml
overlay and DATALENS_* environment overrides).

This includes:
- schema_version must satisfy ` + config.SupportedSchema + `
- display, plot and output values must be in range
- logging level and format must be known`,
		Example: `  # Validate current configuration
  datalens config validate

  # Validate and show detailed information
  datalens config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	cmd.Printf("  Config file: %s\n", cfg.ConfigPath())
	cmd.Printf("  Schema version: %s\n", cfg.SchemaVersion)
	cmd.Printf("  Page size: %d\n", cfg.Display.PageSize)
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Plot directory: %s\n", cfg.Plot.Dir)
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
	if cfg.Logging.File != "" {
		cmd.Print("  ")
		logging.PrintLogPathMessage(cmd.OutOrStderr(), cfg.Logging.File)
	}
}
