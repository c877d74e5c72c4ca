package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/datalens/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
// It writes the built-in defaults to the global config file
// ($DATALENS_HOME/config.yaml, default ~/.datalens/config.yaml) or to --config.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

An existing file is kept unless --force is given or the prompt is accepted.`,
		Example: `  # Create the global configuration
  datalens config init

  # Create configuration, overwriting existing
  datalens config init --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func initConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Defaults()
	cfg.SetConfigPath(config.GetGlobalConfig().ConfigPath())

	if !force {
		_, err := os.Stat(cfg.ConfigPath())
		switch {
		case err == nil:
			if !ConfirmOverwrite(cmd.ErrOrStderr(), cmd.InOrStdin(), cfg.ConfigPath()).Accepted {
				return fmt.Errorf("configuration file already exists, use --force to overwrite: %w", ErrOutputExists)
			}
		case !os.IsNotExist(err):
			return fmt.Errorf("cannot access config path %s: %w", cfg.ConfigPath(), err)
		}
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())

	return nil
}
