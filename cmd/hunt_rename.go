package cmd

import (
	"context"
	"strings"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var huntRenameCmd = &cobra.Command{
	Use:   "rename <hunt-id> <name>",
	Short: "Change a hunt's display name",
	Long: `Changes the display name stored in the hunt's ledger. The hunt id and its
directory stay the same, so exported bundles and audit entries keep
referring to the same hunt.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hunt rename command")

		spinner, cleanup := startSpinner("Renaming hunt...", verbose)
		defer cleanup()

		opts := workflows.RenameHuntOptions{
			HuntID: args[0],
			Name:   strings.Join(args[1:], " "),
		}
		h, err := workflows.RenameHunt(context.Background(), opts)
		if err != nil {
			return fail(spinner, "rename the hunt", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Renamed " + ui.CaseID.Sprint(h.ID) + " to " + ui.Highlight.Sprint(h.Name)
		return nil
	},
}
