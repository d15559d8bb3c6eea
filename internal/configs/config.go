package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

type UserConfig struct {
	KDF   KDFConfig   `toml:"kdf"`
	Vault VaultConfig `toml:"vault"`
}

// KDFConfig mirrors the Argon2id cost parameters.
type KDFConfig struct {
	Time      uint32 `toml:"time" json:"time"`
	MemoryKiB uint32 `toml:"memory_kib" json:"memory_kib"`
	Threads   uint8  `toml:"threads" json:"threads"`
}

type VaultConfig struct {
	// MinPasswordScore is the zxcvbn score (0-4) below which a new vault
	// password triggers a warning.
	MinPasswordScore int `toml:"min_password_score" json:"min_password_score"`
}

// DefaultUserConfig matches the argon2 crate defaults (m=19456 KiB, t=2, p=1).
func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		KDF: KDFConfig{
			Time:      2,
			MemoryKiB: 19 * 1024,
			Threads:   1,
		},
		Vault: VaultConfig{
			MinPasswordScore: 3,
		},
	}
}

// UserConfigPath is the location of config.toml.
func UserConfigPath() string {
	return filepath.Join(VaultSettings.UserConfigsPath, "config.toml")
}

// LoadUserConfig loads the user configuration, falling back to defaults for
// a missing file or missing keys.
func LoadUserConfig() (*UserConfig, error) {
	config := DefaultUserConfig()

	if _, err := os.Stat(UserConfigPath()); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(UserConfigPath(), config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(UserConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}
	return nil
}

// EnsureUserConfig writes the defaults on first use so the KDF parameters
// that protect existing evidence are pinned on disk.
func EnsureUserConfig() (*UserConfig, error) {
	if _, err := os.Stat(UserConfigPath()); err == nil {
		return LoadUserConfig()
	}

	config := DefaultUserConfig()
	if err := SaveUserConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}
