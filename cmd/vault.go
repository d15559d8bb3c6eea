package cmd

import (
	"github.com/spf13/cobra"
)

var VaultCmd = &cobra.Command{
	Use:              "vault",
	Short:            "Unlock, lock and inspect the evidence vault",
	Long: `Derives the session key from the vault password, wipes it again, and reports the state of the vault.

openseason runs one process per command. The session key only lives for the
duration of a single command: every command that needs it asks for the
password, unlocks, and wipes the key when it exits. 'vault unlock' does not
keep a session open for later commands.`,
	PersistentPreRun: initLogger,
}

func init() {
	addLoggingFlags(VaultCmd)

	VaultCmd.AddCommand(vaultUnlockCmd)
	VaultCmd.AddCommand(vaultLockCmd)
	VaultCmd.AddCommand(vaultStatusCmd)
}

// GetVaultCmd returns the VaultCmd for testing.
func GetVaultCmd() *cobra.Command {
	return VaultCmd
}
