package cmd

import (
	"fmt"

	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/ui"
	"github.com/open-season/openseason/internal/utils"
	"github.com/spf13/cobra"
)

var (
	configInitTime     uint32
	configInitMemory   uint32
	configInitThreads  uint8
	configInitMinScore int
)

func init() {
	configInitCmd.Flags().Uint32Var(&configInitTime, "kdf-time", 0, "Argon2id iterations")
	configInitCmd.Flags().Uint32Var(&configInitMemory, "kdf-memory", 0, "Argon2id memory in KiB")
	configInitCmd.Flags().Uint8Var(&configInitThreads, "kdf-threads", 0, "Argon2id parallelism")
	configInitCmd.Flags().IntVar(&configInitMinScore, "min-password-score", -1, "warn about new vault passwords scoring below this (0-4)")
}

// resetConfigInitState resets the config init command's global state for testing.
func resetConfigInitState() {
	configInitTime = 0
	configInitMemory = 0
	configInitThreads = 0
	configInitMinScore = -1
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the user configuration",
	Long: `Writes config.toml with the default settings, applying any flags given.

The KDF flags are refused once the vault salt exists, because evidence
encrypted under the old parameters could no longer be decrypted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config init command")

		kdfChanged := cmd.Flags().Changed("kdf-time") || cmd.Flags().Changed("kdf-memory") || cmd.Flags().Changed("kdf-threads")
		if kdfChanged {
			exists, err := utils.FileExists(configs.VaultSettings.SaltPath)
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to check the vault salt: %v", err)
			}
			if exists {
				fmt.Println(ui.Error.Sprint("✗") + " The KDF parameters cannot change once the vault exists\n" +
					ui.Info.Sprint("→") + " Evidence in " + ui.Path.Sprint(configs.VaultSettings.AppRoot) + " was encrypted under the current ones")
				return nil
			}
		}

		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		if cmd.Flags().Changed("kdf-time") {
			config.KDF.Time = configInitTime
		}
		if cmd.Flags().Changed("kdf-memory") {
			config.KDF.MemoryKiB = configInitMemory
		}
		if cmd.Flags().Changed("kdf-threads") {
			config.KDF.Threads = configInitThreads
		}
		if cmd.Flags().Changed("min-password-score") {
			config.Vault.MinPasswordScore = configInitMinScore
		}

		if msg := validateUserConfig(config); msg != "" {
			fmt.Println(ui.Error.Sprint("✗") + " " + msg)
			return nil
		}

		Logger.Debugf("Saving user config to %s", configs.UserConfigPath())
		if err := configs.SaveUserConfig(config); err != nil {
			return Logger.ErrorfAndReturn("Failed to save user config: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Configuration written to " + ui.Path.Sprint(configs.UserConfigPath()))
		return nil
	},
}

func validateUserConfig(config *configs.UserConfig) string {
	switch {
	case config.KDF.Time == 0:
		return "--kdf-time must be at least 1"
	case config.KDF.MemoryKiB < 8*uint32(config.KDF.Threads):
		return "--kdf-memory must be at least 8 KiB per thread"
	case config.KDF.Threads == 0:
		return "--kdf-threads must be at least 1"
	case config.Vault.MinPasswordScore < 0 || config.Vault.MinPasswordScore > 4:
		return "--min-password-score must be between 0 and 4"
	}
	return ""
}
