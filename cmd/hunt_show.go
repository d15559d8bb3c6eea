package cmd

import (
	"context"
	"fmt"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var huntShowCmd = &cobra.Command{
	Use:   "show <hunt-id>",
	Short: "Show a hunt's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hunt show command")

		spinner, cleanup := startSpinner("Reading hunt...", verbose)
		defer cleanup()

		h, err := workflows.ShowHunt(context.Background(), args[0])
		if err != nil {
			return fail(spinner, "read the hunt", err)
		}

		spinner.FinalMSG = fmt.Sprintf("Hunt:     %s\n", ui.CaseID.Sprint(h.ID)) +
			fmt.Sprintf("Name:     %s\n", h.Name) +
			fmt.Sprintf("Status:   %s\n", h.Status) +
			fmt.Sprintf("Created:  %s\n", h.CreatedAt.Local().Format("2006-01-02 15:04:05")) +
			fmt.Sprintf("Evidence: %d\n", h.EvidenceCount) +
			fmt.Sprintf("Path:     %s", ui.Path.Sprint(h.Path))
		return nil
	},
}
