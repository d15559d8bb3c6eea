package cmd

import (
	"github.com/spf13/cobra"
)

var HuntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Create, list, export and import hunts",
	Long: `A hunt is an isolated case directory holding encrypted evidence and the
ledger that makes it decryptable. Hunts travel between machines as a single
case bundle archive.`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(HuntCmd)

	HuntCmd.AddCommand(huntCreateCmd)
	HuntCmd.AddCommand(huntListCmd)
	HuntCmd.AddCommand(huntShowCmd)
	HuntCmd.AddCommand(huntRenameCmd)
	HuntCmd.AddCommand(huntExportCmd)
	HuntCmd.AddCommand(huntImportCmd)
	HuntCmd.AddCommand(huntLogCmd)
}

// GetHuntCmd returns the HuntCmd for testing.
func GetHuntCmd() *cobra.Command {
	return HuntCmd
}

// resetHuntCommandState resets every hunt subcommand's flags for testing.
func resetHuntCommandState() {
	resetHuntExportCommandState()
	resetHuntImportCommandState()
	resetHuntLogCommandState()
}
