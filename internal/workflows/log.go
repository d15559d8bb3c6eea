package workflows

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/open-season/openseason/internal/audit"
	kerrors "github.com/open-season/openseason/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// CaseID restricts entries to one hunt.
	CaseID string

	// User filters entries by OS user.
	User string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// entryFilter reports whether an audit entry should be shown.
type entryFilter func(audit.Entry) bool

// Log reads and filters the audit log. Entries whose timestamp cannot be
// parsed never match a date range.
//
// Returns ErrNoFilesFound if no audit log exists.
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	filters, err := logFilters(opts)
	if err != nil {
		return nil, err
	}

	logPath := audit.LogPath()
	if logPath == "" {
		return nil, kerrors.ErrNoFilesFound
	}
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		return nil, kerrors.ErrNoFilesFound
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{TotalEntriesBeforeFilter: len(entries)}

	if opts.CaseID != "" {
		entries = audit.Filter(entries, opts.CaseID)
	}
	for _, e := range entries {
		if matchesAll(e, filters) {
			result.Entries = append(result.Entries, e)
		}
	}

	// Limit keeps the most recent entries in either order.
	if opts.Limit > 0 && len(result.Entries) > opts.Limit {
		result.Entries = result.Entries[len(result.Entries)-opts.Limit:]
	}
	if opts.Reverse {
		slices.Reverse(result.Entries)
	}

	return result, nil
}

func logFilters(opts LogOptions) ([]entryFilter, error) {
	var filters []entryFilter

	if opts.User != "" {
		filters = append(filters, func(e audit.Entry) bool {
			return strings.EqualFold(e.User, opts.User)
		})
	}

	if opts.Operations != "" {
		ops := make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
		filters = append(filters, func(e audit.Entry) bool {
			return ops[strings.ToLower(e.Operation)]
		})
	}

	if opts.Since != "" {
		since, err := time.Parse(dateLayout, opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && !t.Before(since)
		})
	}

	if opts.Until != "" {
		until, err := time.Parse(dateLayout, opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// The whole day is included.
		end := until.AddDate(0, 0, 1)
		filters = append(filters, func(e audit.Entry) bool {
			t, ok := parseTimestamp(e.Timestamp)
			return ok && t.Before(end)
		})
	}

	return filters, nil
}

func matchesAll(e audit.Entry, filters []entryFilter) bool {
	for _, f := range filters {
		if !f(e) {
			return false
		}
	}
	return true
}

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000000Z"
)

func parseTimestamp(ts string) (time.Time, bool) {
	if t, err := time.Parse(timestampLayout, ts); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatDate renders an audit timestamp as YYYY-MM-DD in UTC.
func FormatDate(ts string) string {
	return formatTimestamp(ts, dateLayout)
}

// FormatDateTime renders an audit timestamp as YYYY-MM-DD HH:MM:SS in UTC.
func FormatDateTime(ts string) string {
	return formatTimestamp(ts, "2006-01-02 15:04:05")
}

// formatTimestamp falls back to the raw prefix for unparseable input.
func formatTimestamp(ts, layout string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		return ts[:min(len(ts), len(layout))]
	}
	return t.UTC().Format(layout)
}

// FormatDetails summarizes the operation-specific fields of an entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "unlock":
		if e.SaltCreated {
			return "new vault"
		}
		return ""
	case "hunt_create", "hunt_rename":
		return fmt.Sprintf("%s %q", e.CaseID, e.CaseName)
	case "evidence_add", "evidence_read":
		ids := make([]string, len(e.EvidenceIDs))
		for i, id := range e.EvidenceIDs {
			ids[i] = fmt.Sprintf("#%d", id)
		}
		if len(ids) > 3 {
			return fmt.Sprintf("%s, %d items", e.CaseID, len(ids))
		}
		return fmt.Sprintf("%s %s", e.CaseID, strings.Join(ids, ", "))
	case "hunt_export":
		return fmt.Sprintf("%s -> %s (%d files)", e.CaseID, e.ArchivePath, e.FilesCount)
	case "hunt_import":
		if e.Skipped > 0 {
			return fmt.Sprintf("%s <- %s (%d files, %d skipped)", e.CaseID, e.ArchivePath, e.FilesCount, e.Skipped)
		}
		return fmt.Sprintf("%s <- %s (%d files)", e.CaseID, e.ArchivePath, e.FilesCount)
	default:
		return e.CaseID
	}
}
