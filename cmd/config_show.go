package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting config show command")

		config, err := configs.LoadUserConfig()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to load user config: %v", err)
		}

		if configShowJSON {
			data, err := json.MarshalIndent(map[string]any{
				"path":  configs.UserConfigPath(),
				"root":  configs.VaultSettings.AppRoot,
				"kdf":   config.KDF,
				"vault": config.Vault,
			}, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to marshal config to JSON: %v", err)
			}
			fmt.Println(string(data))
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		fmt.Printf("%s %s\n", bold("Config:"), ui.Path.Sprint(configs.UserConfigPath()))
		fmt.Printf("%s %s\n\n", bold("Vault:"), ui.Path.Sprint(configs.VaultSettings.AppRoot))
		fmt.Println(bold("[kdf]"))
		fmt.Printf("  time:       %d\n", config.KDF.Time)
		fmt.Printf("  memory_kib: %d\n", config.KDF.MemoryKiB)
		fmt.Printf("  threads:    %d\n", config.KDF.Threads)
		fmt.Println(bold("[vault]"))
		fmt.Printf("  min_password_score: %d\n", config.Vault.MinPasswordScore)
		return nil
	},
}
