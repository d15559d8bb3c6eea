package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-season/openseason/internal/configs"
)

// withTempVault points the settings at a throwaway app root.
func withTempVault(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalSettings := configs.VaultSettings
	configs.VaultSettings = configs.NewSettings(filepath.Join(tempDir, "root"), filepath.Join(tempDir, "config"))
	t.Cleanup(func() {
		configs.VaultSettings = originalSettings
	})
	return configs.VaultSettings.AuditPath
}

func TestLog_CreatesFile(t *testing.T) {
	logPath := withTempVault(t)

	Log(Entry{
		User:      "investigator",
		Operation: "evidence_add",
		CaseID:    "case-A",
		Files:     []string{"notes.txt"},
	})

	info, err := os.Stat(logPath)
	if os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
	if err != nil {
		t.Fatalf("Failed to stat audit log: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected audit log permissions 0600, got %o", perm)
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	withTempVault(t)

	Log(Entry{User: "alice", Operation: "unlock"})
	Log(Entry{User: "bob", Operation: "hunt_create"})
	Log(Entry{User: "charlie", Operation: "hunt_export"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("Failed to read entries: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expectedOps := []string{"unlock", "hunt_create", "hunt_export"}
	for i, op := range expectedOps {
		if entries[i].Operation != op {
			t.Errorf("Entry %d: expected operation %s, got %s", i, op, entries[i].Operation)
		}
	}
}

func TestLog_ValidJSON(t *testing.T) {
	logPath := withTempVault(t)

	Log(Entry{
		User:        "investigator",
		Operation:   "evidence_add",
		CaseID:      "case-A",
		EvidenceIDs: []int64{1, 2},
		Files:       []string{"a.pdf", "b.png"},
	})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var parsed Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &parsed); err != nil {
		t.Fatalf("Entry is not valid JSON: %v", err)
	}

	if parsed.CaseID != "case-A" {
		t.Errorf("Expected case_id case-A, got %s", parsed.CaseID)
	}
	if len(parsed.EvidenceIDs) != 2 || parsed.EvidenceIDs[1] != 2 {
		t.Errorf("Expected evidence ids [1 2], got %v", parsed.EvidenceIDs)
	}
	if len(parsed.Files) != 2 {
		t.Errorf("Expected 2 files, got %d", len(parsed.Files))
	}
}

func TestLog_TimestampFormat(t *testing.T) {
	withTempVault(t)

	Log(Entry{Operation: "lock"})

	entries, err := ReadEntries()
	if err != nil || len(entries) != 1 {
		t.Fatalf("Expected one entry, got %d (err %v)", len(entries), err)
	}

	// Format: 2006-01-02T15:04:05.000000Z.
	ts := entries[0].Timestamp
	if ts == "" {
		t.Errorf("Timestamp should be auto-set")
	}
	if !strings.HasSuffix(ts, "Z") {
		t.Errorf("Timestamp should end with Z, got %s", ts)
	}
	if !strings.Contains(ts, ".") {
		t.Errorf("Timestamp should contain microseconds, got %s", ts)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	logPath := withTempVault(t)

	Log(Entry{User: "investigator", Operation: "lock"})

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}
	line := strings.TrimSpace(string(data))

	for _, field := range []string{`"files"`, `"case_id"`, `"archive_path"`, `"skipped"`, `"salt_created"`} {
		if strings.Contains(line, field) {
			t.Errorf("Empty %s field should be omitted", field)
		}
	}
}

func TestLog_NoSettings(t *testing.T) {
	originalSettings := configs.VaultSettings
	configs.VaultSettings = nil
	defer func() {
		configs.VaultSettings = originalSettings
	}()

	// Should silently do nothing.
	Log(Entry{Operation: "unlock"})

	if path := LogPath(); path != "" {
		t.Errorf("Expected empty path, got %s", path)
	}
}

func TestLogWithUser(t *testing.T) {
	entry := LogWithUser("unlock")
	if entry.Operation != "unlock" {
		t.Errorf("Expected operation unlock, got %s", entry.Operation)
	}
	if entry.User == "" {
		t.Errorf("Expected user to be populated")
	}
}

func TestParseEntries_ValidData(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"unlock"}
{"ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"hunt_create","case_id":"x"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].User != "alice" {
		t.Errorf("Expected first user alice, got %s", entries[0].User)
	}
	if entries[1].CaseID != "x" {
		t.Errorf("Expected second case_id x, got %s", entries[1].CaseID)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2024-01-15T10:30:00.123456Z","user":"alice","op":"unlock"}
this is not valid json
{"ts":"2024-01-15T10:35:00.456789Z","user":"bob","op":"lock"}
`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if len(entries) != 2 {
		t.Errorf("Expected 2 valid entries (malformed should be skipped), got %d", len(entries))
	}
}

func TestParseEntries_EmptyData(t *testing.T) {
	entries, err := ParseEntries([]byte{})
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}

	if entries != nil {
		t.Errorf("Expected nil entries for empty data, got %v", entries)
	}
}

func TestFilter(t *testing.T) {
	entries := []Entry{
		{Operation: "hunt_create", CaseID: "a"},
		{Operation: "unlock"},
		{Operation: "evidence_add", CaseID: "a"},
		{Operation: "hunt_create", CaseID: "b"},
	}

	got := Filter(entries, "a")
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries for case a, got %d", len(got))
	}
	if got[1].Operation != "evidence_add" {
		t.Errorf("Expected log order to be kept, got %s", got[1].Operation)
	}
}
