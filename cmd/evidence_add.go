package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/utils"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	addDescription string
	addStdin       bool
	addSourceName  string
	addDryRun      bool
)

func init() {
	evidenceAddCmd.Flags().StringVarP(&addDescription, "description", "m", "", "description recorded with the evidence (default: the file name)")
	evidenceAddCmd.Flags().BoolVar(&addStdin, "stdin", false, "read a single piece of evidence from stdin")
	evidenceAddCmd.Flags().StringVar(&addSourceName, "name", "stdin", "source name recorded for evidence read from stdin")
	evidenceAddCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "show what would be added without writing anything")
}

// resetEvidenceAddCommandState resets the add command's global state for testing.
func resetEvidenceAddCommandState() {
	addDescription = ""
	addStdin = false
	addSourceName = "stdin"
	addDryRun = false
}

var evidenceAddCmd = &cobra.Command{
	Use:   "add <hunt-id> [files...]",
	Short: "Encrypt files into a hunt",
	Long: `Encrypts each file under the session key and records it in the hunt's
ledger. Arguments may be files, directories (added recursively) or glob
patterns such as "photos/**/*.jpg". The original files are left untouched.

Examples:
  openseason evidence add 3f2a... notes.txt
  openseason evidence add 3f2a... "scans/**/*.pdf" -m "Dock manifests"
  pbpaste | openseason evidence add 3f2a... --stdin --name tip.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting evidence add command")

		huntID, patterns := args[0], args[1:]
		opts := workflows.AddEvidenceOptions{
			HuntID:       huntID,
			FilePatterns: patterns,
			Description:  addDescription,
			DryRun:       addDryRun,
		}

		if addStdin {
			if len(patterns) > 0 {
				fmt.Println(ui.Error.Sprint("✗") + " Files and --stdin cannot be combined")
				return nil
			}
			data, err := utils.ReadStdin()
			if err != nil {
				fmt.Println(ui.Error.Sprint("✗") + " " + err.Error())
				return nil
			}
			defer clear(data)
			opts.Data = data
			opts.SourceName = addSourceName
			Logger.Debugf("Read %d bytes from stdin", len(data))
		} else if len(patterns) == 0 {
			fmt.Println(ui.Error.Sprint("✗") + " No files given\n" +
				ui.Info.Sprint("→") + " Pass files, directories or glob patterns, or use " + ui.Code.Sprint("--stdin"))
			return nil
		}

		spinner, cleanup := startSpinner("Adding evidence...", verbose)
		defer cleanup()

		_, release, err := unlockSession(spinner)
		defer release()
		if err != nil {
			return fail(spinner, "unlock the vault", err)
		}

		result, err := workflows.AddEvidence(context.Background(), keyStore, opts)
		if err != nil {
			msg := formatError("add evidence", err)
			if result != nil && len(result.Added) > 0 {
				msg = formatAddResult(result) + "\n" + msg
			}
			spinner.FinalMSG = msg
			if isUnexpectedError(err) {
				return err
			}
			return nil
		}

		spinner.FinalMSG = formatAddResult(result)
		return nil
	},
}

func formatAddResult(result *workflows.AddEvidenceResult) string {
	var b strings.Builder
	if result.DryRun {
		sources := make([]string, len(result.Added))
		for i, a := range result.Added {
			sources[i] = a.Source
		}
		fmt.Fprintf(&b, "%s Would add %d items to %s:", ui.Info.Sprint("ℹ"), len(result.Added), ui.CaseID.Sprint(result.HuntID))
		b.WriteString(utils.FormatPaths(sources))
		b.WriteString(ui.Info.Sprint("→") + " Nothing was written")
		return b.String()
	}

	fmt.Fprintf(&b, "%s Added %d items to %s", ui.Success.Sprint("✓"), len(result.Added), ui.CaseID.Sprint(result.HuntID))
	for _, a := range result.Added {
		fmt.Fprintf(&b, "\n  #%d %s %s", a.ID, ui.Path.Sprint(a.Source), ui.Muted.Sprint(a.Description))
	}
	return b.String()
}
