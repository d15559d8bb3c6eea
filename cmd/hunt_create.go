package cmd

import (
	"context"
	"strings"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var huntCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new hunt",
	Long: `Creates a new hunt with a generated id and the given display name.

Creating a hunt requires the vault password, so hunts are only ever created
in a vault the caller can decrypt.

Examples:
  openseason hunt create "Harbor warehouse"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hunt create command")

		spinner, cleanup := startSpinner("Creating hunt...", verbose)
		defer cleanup()

		_, release, err := unlockSession(spinner)
		defer release()
		if err != nil {
			return fail(spinner, "unlock the vault", err)
		}

		name := strings.Join(args, " ")
		h, err := workflows.CreateHunt(context.Background(), keyStore, workflows.CreateHuntOptions{Name: name})
		if err != nil {
			return fail(spinner, "create the hunt", err)
		}

		Logger.Infof("Created hunt %s at %s", h.ID, h.Path)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Created hunt " + ui.Highlight.Sprint(h.Name) + " " + ui.CaseID.Sprint(h.ID)
		return nil
	},
}
