package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/open-season/openseason/internal/audit"
	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logCase      string
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	huntLogCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	huntLogCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	huntLogCmd.Flags().StringVar(&logCase, "case", "", "filter by hunt id")
	huntLogCmd.Flags().StringVar(&logUser, "user", "", "filter by OS user")
	huntLogCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	huntLogCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	huntLogCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	huntLogCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	huntLogCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetHuntLogCommandState resets the log command's global state for testing.
func resetHuntLogCommandState() {
	logLimit = 0
	logReverse = false
	logCase = ""
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var huntLogCmd = &cobra.Command{
	Use:   "log",
	Short: "View the vault audit log",
	Long: `Displays the audit log of vault operations: unlocks, hunts created,
renamed, exported and imported, and evidence added or read.

Examples:
  openseason hunt log                              # View full log
  openseason hunt log -n 10                        # Last 10 entries
  openseason hunt log --case 3f2a...               # One hunt only
  openseason hunt log --operation evidence_read    # Who read evidence
  openseason hunt log --since 2024-01-01           # Filter by date
  openseason hunt log --json                       # JSON output`,
	RunE: runHuntLog,
}

func runHuntLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading audit log...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		CaseID:     logCase,
		User:       logUser,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}

	result, err := workflows.Log(context.Background(), opts)
	if err != nil {
		if errors.Is(err, kerrors.ErrNoFilesFound) {
			spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No audit log found. Operations are logged once the vault is used."
			return nil
		}
		return fail(spinner, "read the audit log", err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	spinner.FinalMSG = ""
	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			spinner.FinalMSG = "No audit log entries found."
		} else {
			spinner.FinalMSG = "No audit log entries found matching the filters."
		}
		return nil
	}

	if logJSON {
		return outputLogJSON(result.Entries)
	}
	if logOneline {
		outputLogOneline(result.Entries)
		return nil
	}
	outputLogDefault(result.Entries)
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s %s\n", workflows.FormatDate(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-19s  %-15s  %-13s  %s\n", workflows.FormatDateTime(e.Timestamp), e.User, e.Operation, workflows.FormatDetails(e))
	}
}
