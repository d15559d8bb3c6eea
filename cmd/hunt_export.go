package cmd

import (
	"context"
	"fmt"

	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var exportOutput string

func init() {
	huntExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "archive path (default: <name>.osb in the current directory)")
}

// resetHuntExportCommandState resets the export command's global state for testing.
func resetHuntExportCommandState() {
	exportOutput = ""
}

var huntExportCmd = &cobra.Command{
	Use:   "export <hunt-id>",
	Short: "Pack a hunt into a case bundle",
	Long: `Writes the hunt directory, encrypted evidence and ledger included, into a
single zip archive. The evidence stays encrypted inside the bundle and can
only be read with the vault password.

An existing file at the output path is never overwritten.

Examples:
  openseason hunt export 3f2a...                  # Writes harbor-warehouse.osb
  openseason hunt export 3f2a... -o /media/usb/case.osb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting hunt export command")

		spinner, cleanup := startSpinner("Exporting hunt...", verbose)
		defer cleanup()

		opts := workflows.ExportOptions{
			HuntID:     args[0],
			OutputPath: exportOutput,
		}
		result, err := workflows.ExportHunt(context.Background(), opts)
		if err != nil {
			return fail(spinner, "export the hunt", err)
		}

		Logger.Infof("Wrote %d files and %d directories (%d bytes)", result.Files, result.Directories, result.Bytes)
		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported " + ui.CaseID.Sprint(args[0]) + " to " + ui.Path.Sprint(result.OutputPath) + "\n" +
			ui.Muted.Sprint(fmt.Sprintf("%d files, %d directories", result.Files, result.Directories))
		return nil
	},
}
