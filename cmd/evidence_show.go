package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var showOutput string

func init() {
	evidenceShowCmd.Flags().StringVarP(&showOutput, "output", "o", "", "write the decrypted evidence to this file instead of stdout")
}

// resetEvidenceShowCommandState resets the show command's global state for testing.
func resetEvidenceShowCommandState() {
	showOutput = ""
}

var evidenceShowCmd = &cobra.Command{
	Use:   "show <hunt-id> <evidence-id>",
	Short: "Decrypt a piece of evidence",
	Long: `Decrypts a piece of evidence and writes it to stdout, or to a new file
readable only by the current user when --output is given. A wrong password
or a modified payload is reported as a decryption failure; no partial
plaintext is ever written.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting evidence show command")

		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || id < 1 {
			fmt.Println(ui.Error.Sprint("✗") + " Evidence id must be a positive number, got " + ui.Highlight.Sprint(args[1]))
			return nil
		}

		spinner, cleanup := startSpinner("Decrypting evidence...", verbose)
		defer cleanup()

		_, release, err := unlockSession(spinner)
		defer release()
		if err != nil {
			return fail(spinner, "unlock the vault", err)
		}

		result, err := workflows.ReadEvidence(context.Background(), keyStore, workflows.ReadEvidenceOptions{
			HuntID:     args[0],
			EvidenceID: id,
		})
		if err != nil {
			return fail(spinner, "read the evidence", err)
		}
		defer clear(result.Plaintext)

		if showOutput == "" {
			spinner.FinalMSG = ""
			if _, err := os.Stdout.Write(result.Plaintext); err != nil {
				return Logger.ErrorfAndReturn("failed to write evidence to stdout: %v", err)
			}
			return nil
		}

		if err := writePlaintext(showOutput, result.Plaintext); err != nil {
			return fail(spinner, "write the evidence", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Decrypted " + ui.Highlight.Sprint(result.Evidence.Description) +
			" to " + ui.Path.Sprint(showOutput)
		return nil
	},
}

// writePlaintext creates path with owner-only permissions. An existing file
// is never overwritten.
func writePlaintext(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", kerrors.ErrOutputExists, path)
		}
		return fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	}
	return nil
}
