package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-season/openseason/internal/hunts"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var huntListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every hunt in the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hunt list command")

		spinner, cleanup := startSpinner("Listing hunts...", verbose)
		defer cleanup()

		result, err := workflows.ListHunts(context.Background())
		if err != nil {
			return fail(spinner, "list hunts", err)
		}

		Logger.Debugf("Found %d hunts, %d unreadable", len(result.Hunts), len(result.Failed))
		spinner.FinalMSG = formatHuntList(result)
		return nil
	},
}

func formatHuntList(result *hunts.ListResult) string {
	if len(result.Hunts) == 0 && len(result.Failed) == 0 {
		return ui.Info.Sprint("ℹ") + " No hunts yet\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("openseason hunt create <name>") + " to start one"
	}

	var b strings.Builder
	for _, h := range result.Hunts {
		fmt.Fprintf(&b, "%s  %-30s  %-8s  %3d evidence  %s\n",
			h.ID, h.Name, h.Status, h.EvidenceCount, h.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	for _, f := range result.Failed {
		fmt.Fprintf(&b, "%s %s %s\n", ui.Warning.Sprint("⚠"), ui.CaseID.Sprint(f.ID), ui.Muted.Sprint(f.Err.Error()))
	}

	return b.String()
}
