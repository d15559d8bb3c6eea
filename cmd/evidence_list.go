package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-season/openseason/internal/ledger"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var evidenceListCmd = &cobra.Command{
	Use:   "list <hunt-id>",
	Short: "List the evidence recorded in a hunt",
	Long:  `Lists the ledger of a hunt. Listing reads metadata only and needs no password.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting evidence list command")

		spinner, cleanup := startSpinner("Reading ledger...", verbose)
		defer cleanup()

		records, err := workflows.ListEvidence(context.Background(), args[0])
		if err != nil {
			return fail(spinner, "list evidence", err)
		}

		Logger.Debugf("Ledger holds %d records", len(records))
		spinner.FinalMSG = formatEvidenceList(args[0], records)
		return nil
	},
}

func formatEvidenceList(huntID string, records []ledger.Evidence) string {
	if len(records) == 0 {
		return ui.Info.Sprint("ℹ") + " No evidence in " + ui.CaseID.Sprint(huntID) + " yet\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("openseason evidence add "+huntID+" <files>") + " to add some"
	}

	var b strings.Builder
	for _, e := range records {
		fmt.Fprintf(&b, "%4d  %s  %-40s  %s\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Description, ui.Muted.Sprint(e.FilePath))
	}
	return b.String()
}
