package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/utils"
	"github.com/open-season/openseason/internal/workflows"
)

// TestEvidenceCommands covers `openseason evidence add|list|show`.
func TestEvidenceCommands(t *testing.T) {
	t.Run("AddListShow", testEvidenceAddListShow)
	t.Run("AddGlob", testEvidenceAddGlob)
	t.Run("AddDryRun", testEvidenceAddDryRun)
	t.Run("AddNoFiles", testEvidenceAddNoFiles)
	t.Run("AddMissingFile", testEvidenceAddMissingFile)
	t.Run("ShowToStdout", testEvidenceShowToStdout)
	t.Run("ShowWrongPassword", testEvidenceShowWrongPassword)
	t.Run("ShowInvalidID", testEvidenceShowInvalidID)
	t.Run("ShowUnknownID", testEvidenceShowUnknownID)
	t.Run("ListEmpty", testEvidenceListEmpty)
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	return path
}

func testEvidenceAddListShow(t *testing.T) {
	tempDir := setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")
	src := writeTestFile(t, tempDir, "notes.txt", "container 7 was opened at 03:10")

	output, err := runCLI("evidence", "add", id, src, "-m", "Night shift notes")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Added 1 items") {
		t.Errorf("Expected add message, got: %s", output)
	}

	records, err := workflows.ListEvidence(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to list evidence: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	stored, err := os.ReadFile(filepath.Join(configs.VaultSettings.HuntsDir, id, records[0].FilePath))
	if err != nil {
		t.Fatalf("Failed to read payload: %v", err)
	}
	if strings.Contains(string(stored), "container 7") {
		t.Errorf("Payload is stored in plaintext")
	}

	output, err = runCLI("evidence", "list", id)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Night shift notes") {
		t.Errorf("Expected description in list, got: %s", output)
	}

	out := filepath.Join(tempDir, "decrypted.txt")
	output, err = runCLI("evidence", "show", id, "1", "-o", out)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Decrypted file missing: %v", err)
	}
	if string(data) != "container 7 was opened at 03:10" {
		t.Errorf("Decrypted content mismatch: %q", data)
	}
	info, _ := os.Stat(out)
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected decrypted file mode 0600, got %o", info.Mode().Perm())
	}

	output, err = runCLI("evidence", "show", id, "1", "-o", out)
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "Output file already exists") {
		t.Errorf("Expected overwrite refusal, got: %s", output)
	}
}

func testEvidenceAddGlob(t *testing.T) {
	tempDir := setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")
	writeTestFile(t, tempDir, "scans/a.pdf", "a")
	writeTestFile(t, tempDir, "scans/deep/b.pdf", "b")
	writeTestFile(t, tempDir, "scans/c.txt", "c")

	output, err := runCLI("evidence", "add", id, "scans/**/*.pdf")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Added 2 items") {
		t.Errorf("Expected two items added, got: %s", output)
	}
}

func testEvidenceAddDryRun(t *testing.T) {
	tempDir := setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")
	src := writeTestFile(t, tempDir, "notes.txt", "x")

	output, err := runCLI("evidence", "add", id, src, "--dry-run")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Would add 1 items") {
		t.Errorf("Expected dry run preview, got: %s", output)
	}

	records, err := workflows.ListEvidence(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to list evidence: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Dry run wrote %d records", len(records))
	}
}

func testEvidenceAddNoFiles(t *testing.T) {
	setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")

	output, err := runCLI("evidence", "add", id)
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "No files given") {
		t.Errorf("Expected usage hint, got: %s", output)
	}
}

func testEvidenceAddMissingFile(t *testing.T) {
	setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")

	output, err := runCLI("evidence", "add", id, "missing.txt")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "File not found") {
		t.Errorf("Expected missing file message, got: %s", output)
	}
}

func testEvidenceShowToStdout(t *testing.T) {
	tempDir := setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")
	src := writeTestFile(t, tempDir, "notes.txt", "ledger entry for pier 4")

	if output, err := runCLI("evidence", "add", id, src); err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	output, err := runCLI("evidence", "show", id, "1")
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "ledger entry for pier 4") {
		t.Errorf("Expected plaintext on stdout, got: %s", output)
	}
}

func testEvidenceShowWrongPassword(t *testing.T) {
	tempDir := setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")
	src := writeTestFile(t, tempDir, "notes.txt", "secret")

	if output, err := runCLI("evidence", "add", id, src); err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}

	t.Setenv(utils.PasswordEnv, "not the password")
	output, err := runCLI("evidence", "show", id, "1")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "Could not decrypt the evidence") {
		t.Errorf("Expected decryption failure, got: %s", output)
	}
	if strings.Contains(output, "secret") {
		t.Errorf("Plaintext leaked with the wrong password: %s", output)
	}
}

func testEvidenceShowInvalidID(t *testing.T) {
	setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")

	output, err := runCLI("evidence", "show", id, "abc")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "must be a positive number") {
		t.Errorf("Expected id validation message, got: %s", output)
	}
}

func testEvidenceShowUnknownID(t *testing.T) {
	setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")

	output, err := runCLI("evidence", "show", id, "42")
	if err != nil {
		t.Fatalf("Expected a handled error, got: %v", err)
	}
	if !strings.Contains(output, "Evidence not found") {
		t.Errorf("Expected not found message, got: %s", output)
	}
}

func testEvidenceListEmpty(t *testing.T) {
	setupTestVault(t)
	id := createTestHunt(t, "Harbor warehouse")

	output, err := runCLI("evidence", "list", id)
	if err != nil {
		t.Fatalf("Command failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "No evidence in") {
		t.Errorf("Expected empty message, got: %s", output)
	}
}
