// Package cmd contains testing utilities shared between the command tests.
// This file provides common functions for setting up a throwaway vault,
// capturing output, and running the CLI.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/open-season/openseason/internal/configs"
	logger "github.com/open-season/openseason/internal/logging"
	"github.com/open-season/openseason/internal/utils"
	"github.com/spf13/cobra"
)

const testPassword = "correct horse battery staple"

// setupTestVault points the settings at a fresh temporary vault, supplies
// the password through the environment and pins cheap KDF parameters.
func setupTestVault(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	originalSettings := configs.VaultSettings

	configs.VaultSettings = configs.NewSettings(filepath.Join(tempDir, "vault"), filepath.Join(tempDir, "config"))
	t.Setenv(utils.PasswordEnv, testPassword)

	config := configs.DefaultUserConfig()
	config.KDF = configs.KDFConfig{Time: 1, MemoryKiB: 64, Threads: 1}
	config.Vault.MinPasswordScore = 0
	if err := configs.SaveUserConfig(config); err != nil {
		t.Fatalf("Failed to save test config: %v", err)
	}

	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.VaultSettings = originalSettings
		ResetGlobalState()
	})

	return tempDir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI creates a complete CLI instance with every command tree,
// ready to run args.
func createTestCLI(args []string, verboseFlag, debugFlag bool) *cobra.Command {
	ResetGlobalState()

	verbose = verboseFlag
	debug = debugFlag
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	rootCmd := &cobra.Command{
		Use:   "openseason",
		Short: "openseason - a local-first evidence vault.",
	}
	rootCmd.AddCommand(VaultCmd)
	rootCmd.AddCommand(HuntCmd)
	rootCmd.AddCommand(EvidenceCmd)
	rootCmd.AddCommand(ConfigCmd)

	rootCmd.SetArgs(args)
	return rootCmd
}

// runCLI executes args against a fresh CLI and returns the combined output.
func runCLI(args ...string) (string, error) {
	return captureOutput(func() error {
		return createTestCLI(args, false, false).Execute()
	})
}
