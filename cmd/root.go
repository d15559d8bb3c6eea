package cmd

import (
	logger "github.com/open-season/openseason/internal/logging"
	"github.com/open-season/openseason/internal/vault"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// keyStore holds the session key for the lifetime of one command.
	keyStore = vault.NewKeyStore()
)

// initLogger is the PersistentPreRun shared by every command tree.
func initLogger(cmd *cobra.Command, args []string) {
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}
	Logger.Debugf("Initializing %s command with verbose=%t, debug=%t", cmd.CommandPath(), verbose, debug)
}

func addLoggingFlags(c *cobra.Command) {
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	c.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
}

// Purge wipes the session key and every guarded allocation. main calls it
// on exit.
func Purge() {
	keyStore.Purge()
}

// Helper functions for testing

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	keyStore.Clear()
	resetHuntCommandState()
	resetEvidenceCommandState()
	resetConfigCommandState()
	for _, c := range []*cobra.Command{VaultCmd, HuntCmd, EvidenceCmd, ConfigCmd} {
		resetCobraFlagState(c)
	}
}

// resetCobraFlagState clears the Changed bit on every flag below c to
// prevent test pollution.
func resetCobraFlagState(c *cobra.Command) {
	c.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		// cobra reads the help flag's value, not Changed
		if flag.Name == "help" {
			_ = flag.Value.Set("false")
		}
	})
	for _, sub := range c.Commands() {
		resetCobraFlagState(sub)
	}
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
