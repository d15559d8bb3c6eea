package configs

import (
	"log"
	"os"
	"path/filepath"
)

// HomeEnv overrides the application root directory.
const HomeEnv = "OPENSEASON_HOME"

type Settings struct {
	AppRoot         string
	HuntsDir        string
	SaltPath        string
	AuditPath       string
	UserConfigsPath string
}

var VaultSettings *Settings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(homeDir, ".config")
	}

	appRoot := os.Getenv(HomeEnv)
	if appRoot == "" {
		appRoot = filepath.Join(homeDir, ".open-season")
	}

	VaultSettings = NewSettings(appRoot, filepath.Join(configDir, "openseason"))
}

// NewSettings derives every path from an application root and a config directory.
func NewSettings(appRoot, userConfigsPath string) *Settings {
	return &Settings{
		AppRoot:         appRoot,
		HuntsDir:        filepath.Join(appRoot, "hunts"),
		SaltPath:        filepath.Join(appRoot, "salt"),
		AuditPath:       filepath.Join(appRoot, "audit.jsonl"),
		UserConfigsPath: userConfigsPath,
	}
}

// EnsureHuntsDir creates the hunts root if it does not exist yet.
func (s *Settings) EnsureHuntsDir() error {
	return os.MkdirAll(s.HuntsDir, 0700)
}
