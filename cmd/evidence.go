package cmd

import (
	"github.com/spf13/cobra"
)

var EvidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Add, list and read encrypted evidence",
	Long: `Evidence is encrypted with the session key before it touches the disk.
Each payload is stored as evidence/<uuid>.enc inside its hunt and recorded in
the hunt's ledger together with the nonce needed to decrypt it.`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(EvidenceCmd)

	EvidenceCmd.AddCommand(evidenceAddCmd)
	EvidenceCmd.AddCommand(evidenceListCmd)
	EvidenceCmd.AddCommand(evidenceShowCmd)
}

// GetEvidenceCmd returns the EvidenceCmd for testing.
func GetEvidenceCmd() *cobra.Command {
	return EvidenceCmd
}

// resetEvidenceCommandState resets every evidence subcommand's flags for testing.
func resetEvidenceCommandState() {
	resetEvidenceAddCommandState()
	resetEvidenceShowCommandState()
}
