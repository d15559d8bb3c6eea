package audit

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/utils"
)

// maxEntrySize bounds a single log line.
const maxEntrySize = 1 << 20

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`   // RFC3339 with microseconds.
	User      string `json:"user"` // OS user performing the action.
	Host      string `json:"host"` // Machine the action ran on.
	Operation string `json:"op"`   // Operation name.

	// Optional fields depending on operation.
	CaseID      string   `json:"case_id,omitempty"`      // For hunt and evidence operations.
	CaseName    string   `json:"case_name,omitempty"`    // For create/rename.
	EvidenceIDs []int64  `json:"evidence_ids,omitempty"` // For evidence add/show.
	Files       []string `json:"files,omitempty"`        // Source files for evidence add.
	FilesCount  int      `json:"files_count,omitempty"`  // For export/import.
	Skipped     int      `json:"skipped,omitempty"`      // Archive entries rejected on import.
	ArchivePath string   `json:"archive_path,omitempty"` // For export/import.
	SaltCreated bool     `json:"salt_created,omitempty"` // For unlock.
}

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	// One write per entry keeps concurrent appenders from interleaving lines.
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	_, _ = f.Write(data)
}

// LogWithUser is a convenience function that populates the actor fields.
func LogWithUser(op string) Entry {
	entry := Entry{Operation: op}
	entry.User, entry.Host = utils.Actor()
	return entry
}

// LogPath returns the path to the audit log file.
// Returns empty string if no settings are loaded.
func LogPath() string {
	if configs.VaultSettings == nil {
		return ""
	}
	return configs.VaultSettings.AuditPath
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries. Malformed lines,
// such as a final line cut short by a crash, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxEntrySize)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("scanning audit log: %w", err)
	}

	return entries, nil
}

// Filter returns the entries recorded against caseID, in log order.
func Filter(entries []Entry, caseID string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out
}
