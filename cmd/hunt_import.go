package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-season/openseason/internal/bundle"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var importDryRun bool

func init() {
	huntImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "preview the archive without importing it")
}

// resetHuntImportCommandState resets the import command's global state for testing.
func resetHuntImportCommandState() {
	importDryRun = false
}

var huntImportCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import a case bundle as a new hunt",
	Long: `Unpacks a case bundle into a new hunt named after the archive file.

An existing hunt is never overwritten: rename the archive to import it under
another id. Entries that would land outside the hunt directory, such as
absolute paths, '..' segments or symlinks, are skipped and listed.

Use --dry-run to list the entries without writing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hunt import command")

		spinner, cleanup := startSpinner("Importing hunt...", verbose)
		defer cleanup()

		opts := workflows.ImportOptions{
			ArchivePath: args[0],
			DryRun:      importDryRun,
		}
		result, err := workflows.ImportHunt(context.Background(), opts)
		if err != nil {
			return fail(spinner, "import the archive", err)
		}

		if result.DryRun {
			spinner.FinalMSG = formatImportPreview(result.Manifest)
			return nil
		}

		for _, name := range result.Import.Skipped {
			Logger.Warnf("Skipped unsafe archive entry %q", name)
		}

		spinner.FinalMSG = formatImportResult(result)
		return nil
	},
}

func formatImportPreview(m *bundle.Manifest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Would import %s\n", ui.Info.Sprint("ℹ"), ui.CaseID.Sprint(m.CaseID))
	for _, e := range m.Entries {
		switch {
		case e.Rejected:
			fmt.Fprintf(&b, "  %s %s %s\n", ui.Warning.Sprint("skip"), e.Name, ui.Muted.Sprint(e.Reason))
		case e.IsDir:
			fmt.Fprintf(&b, "  %s %s\n", ui.Success.Sprint("dir "), e.Name)
		default:
			fmt.Fprintf(&b, "  %s %s %s\n", ui.Success.Sprint("file"), e.Name, ui.Muted.Sprint(fmt.Sprintf("%d bytes", e.Size)))
		}
	}
	b.WriteString(ui.Info.Sprint("→") + " Nothing was written")
	return b.String()
}

func formatImportResult(result *workflows.ImportHuntResult) string {
	h := result.Hunt
	msg := ui.Success.Sprint("✓") + " Imported " + ui.Highlight.Sprint(h.Name) + " as " + ui.CaseID.Sprint(h.ID) + "\n" +
		ui.Muted.Sprint(fmt.Sprintf("%d files, %d evidence records", result.Import.Files, h.EvidenceCount))

	if n := len(result.Import.Skipped); n > 0 {
		msg += "\n" + ui.Warning.Sprint("⚠") + fmt.Sprintf(" Skipped %d unsafe entries:\n", n) +
			ui.Indent(strings.Join(result.Import.Skipped, "\n"), 2)
	}
	return msg
}
