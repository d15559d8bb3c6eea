package cmd

import (
	"context"
	"fmt"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var vaultLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Wipe the session key from memory",
	Long: `Wipes the session key held by this process.

Each command runs in its own process and wipes the key when it exits,
so there is never a session left behind by an earlier command. This
command exists for scripts that want an explicit lock step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting vault lock command")

		workflows.Lock(context.Background(), keyStore)

		Logger.Debugf("Key store cleared")
		fmt.Println(ui.Success.Sprint("✓") + " Vault locked")
		return nil
	},
}
