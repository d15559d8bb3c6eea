package cmd

import (
	"github.com/spf13/cobra"
)

// ConfigCmd is the top-level config command.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage openseason configuration",
	Long: `Provides commands for the user configuration at
<user config dir>/openseason/config.toml.

The [kdf] section holds the Argon2id cost parameters. They are written on
first use and must not change once the vault holds evidence, since a
different cost derives a different key.

Examples:
  # Write the defaults, or tune the KDF before the vault exists
  openseason config init --kdf-memory 65536

  # Show the configuration
  openseason config show`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(ConfigCmd)

	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// resetConfigCommandState resets every config subcommand's flags for testing.
func resetConfigCommandState() {
	resetConfigInitState()
	resetConfigShowState()
}
