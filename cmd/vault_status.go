package cmd

import (
	"context"
	"fmt"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var vaultStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the vault exists and how many hunts it holds",
	Long: `Shows whether the vault has been created and how many hunts it holds.

The session is always reported as locked. Each command runs in its
own process and wipes the key when it exits, so no unlocked session
outlives the command that created it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault status command")

		spinner, cleanup := startSpinner("Reading vault status...", verbose)
		defer cleanup()

		result, err := workflows.Status(context.Background(), keyStore)
		if err != nil {
			return fail(spinner, "read the vault status", err)
		}

		Logger.Debugf("Status: initialized=%t locked=%t hunts=%d failed=%d",
			result.Initialized, result.Locked, result.HuntCount, result.FailedHunts)

		spinner.FinalMSG = formatVaultStatus(result)
		return nil
	},
}

func formatVaultStatus(result *workflows.StatusResult) string {
	msg := fmt.Sprintf("Vault: %s\n", ui.Path.Sprint(result.AppRoot))

	if !result.Initialized {
		return msg + ui.Info.Sprint("ℹ") + " The vault has not been created yet\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("openseason vault unlock") + " to create it"
	}

	state := ui.Warning.Sprint("locked")
	if !result.Locked {
		state = ui.Success.Sprint("unlocked")
	}
	msg += fmt.Sprintf("Session: %s %s\n", state, ui.Muted.Sprint("keys live only while a command runs"))
	msg += fmt.Sprintf("Hunts:   %d", result.HuntCount)

	if result.FailedHunts > 0 {
		msg += "\n" + ui.Warning.Sprint("⚠") + fmt.Sprintf(" %d hunt directories could not be read. Run ", result.FailedHunts) +
			ui.Code.Sprint("openseason hunt list") + " for details"
	}
	return msg
}
