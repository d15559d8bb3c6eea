package cmd

import (
	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/ui"
	"github.com/spf13/cobra"
)

var vaultUnlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Derive the session key, creating the vault on first use",
	Long: `Derives the session key from the vault password.

The first unlock creates the vault salt, so the password chosen then protects
every piece of evidence added afterwards. There is no way to recover evidence
if that password is lost.

The password is read from the OPENSEASON_PASSWORD environment variable when
set, otherwise from the terminal.

Unlocking does not start a session that later commands reuse. Every other
command unlocks the vault for its own duration and wipes the key when it
exits. Set OPENSEASON_PASSWORD to avoid typing the password each time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault unlock command")

		spinner, cleanup := startSpinner("Unlocking vault...", verbose)
		defer cleanup()

		result, release, err := unlockSession(spinner)
		defer release()
		if err != nil {
			return fail(spinner, "unlock the vault", err)
		}

		if result.SaltCreated {
			Logger.Infof("Created salt at %s", configs.VaultSettings.SaltPath)
			spinner.FinalMSG = ui.Success.Sprint("✓") + " Vault created at " + ui.Path.Sprint(configs.VaultSettings.AppRoot) + "\n" +
				ui.Warning.Sprint("⚠") + " Keep your password safe. Evidence cannot be recovered without it."
			return nil
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Vault unlocked"
		return nil
	},
}
