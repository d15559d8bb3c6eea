package main

import (
	"fmt"
	"os"

	"github.com/awnumar/memguard"
	"github.com/common-nighthawk/go-figure"
	"github.com/open-season/openseason/cmd"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "openseason",
	Short: "openseason - a local-first evidence vault.",
	Long: `openseason keeps case files encrypted at rest inside isolated hunts, and
moves a whole hunt between machines as a single archive.

Features:
  - Argon2id key derivation from a single vault password
  - XChaCha20-Poly1305 encryption of every piece of evidence
  - An append-only evidence ledger per hunt
  - Portable case bundles, safe to import from untrusted sources

Usage:
  openseason <command> [flags]

Available Commands:
  vault      Unlock, lock and inspect the vault
  hunt       Create, list, export and import hunts
  evidence   Add, list and read encrypted evidence
  config     Manage configuration

Run 'openseason help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Open Season", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Welcome to openseason! Run 'openseason --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.VaultCmd)
	rootCmd.AddCommand(cmd.HuntCmd)
	rootCmd.AddCommand(cmd.EvidenceCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	// Wipe guarded key material on Ctrl-C as well as on a normal exit.
	memguard.CatchInterrupt()

	err := rootCmd.Execute()
	cmd.Purge()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
