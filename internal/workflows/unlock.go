package workflows

import (
	"context"
	"fmt"

	"github.com/nbutton23/zxcvbn-go"

	"github.com/open-season/openseason/internal/audit"
	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/hunts"
	"github.com/open-season/openseason/internal/utils"
	"github.com/open-season/openseason/internal/vault"
)

// UnlockOptions configures the unlock workflow.
type UnlockOptions struct {
	// Password is the vault password. The workflow does not retain it; the
	// caller should wipe it afterwards.
	Password []byte
}

// UnlockResult contains the outcome of an unlock operation.
type UnlockResult struct {
	// SaltCreated is true when this unlock initialized a new vault.
	SaltCreated bool

	// PasswordScore is the zxcvbn score (0-4) of a new vault's password.
	// Only computed when SaltCreated is true.
	PasswordScore int

	// WeakPassword is true when PasswordScore is below the configured minimum.
	WeakPassword bool
}

// Unlock derives the session key from password and the vault salt and
// installs it in store, replacing any previous key. The salt is created on
// first use.
//
// There is no password check: a wrong password yields a different key, and
// the first ReadEvidence against existing evidence fails with
// ErrDecryptFailed.
//
// Returns ErrInvalidSalt if the salt file exists but is malformed.
// Returns ErrDerivationFailed if the password is empty or the KDF
// parameters are unusable.
func Unlock(ctx context.Context, store *vault.KeyStore, opts UnlockOptions) (*UnlockResult, error) {
	// The config is pinned on first use and read once, so a failure here
	// leaves the store untouched.
	config, err := configs.EnsureUserConfig()
	if err != nil {
		return nil, fmt.Errorf("loading user config: %w", err)
	}

	salt, created, err := vault.LoadOrCreateSalt(configs.VaultSettings.SaltPath)
	if err != nil {
		return nil, err
	}

	result := &UnlockResult{SaltCreated: created}
	if created {
		result.PasswordScore = zxcvbn.PasswordStrength(string(opts.Password), nil).Score
		result.WeakPassword = result.PasswordScore < config.Vault.MinPasswordScore
	}

	key, err := vault.DeriveKey(opts.Password, salt, kdfParams(config))
	if err != nil {
		return nil, err
	}
	if err := store.Set(key); err != nil {
		key.Destroy()
		return nil, fmt.Errorf("installing session key: %w", err)
	}

	entry := audit.LogWithUser("unlock")
	entry.SaltCreated = created
	audit.Log(entry)

	return result, nil
}

// Lock clears the session key.
func Lock(ctx context.Context, store *vault.KeyStore) {
	wasUnlocked := !store.IsLocked()
	store.Clear()

	if wasUnlocked {
		audit.Log(audit.LogWithUser("lock"))
	}
}

// StatusResult describes the vault without touching key material.
type StatusResult struct {
	// Locked reports whether store holds no session key.
	Locked bool

	// Initialized is true when a salt file exists.
	Initialized bool

	// AppRoot is the vault's root directory.
	AppRoot string

	// HuntCount is the number of readable hunts.
	HuntCount int

	// FailedHunts is the number of hunt directories that could not be read.
	FailedHunts int
}

// Status reports the lock state, whether the vault has been initialized and
// how many hunts it holds.
//
// Returns ErrInvalidSalt if the salt file exists but is malformed.
func Status(ctx context.Context, store *vault.KeyStore) (*StatusResult, error) {
	result := &StatusResult{
		Locked:  store.IsLocked(),
		AppRoot: configs.VaultSettings.AppRoot,
	}

	exists, err := utils.FileExists(configs.VaultSettings.SaltPath)
	if err != nil {
		return nil, fmt.Errorf("checking salt: %w", err)
	}
	if exists {
		if _, err := vault.LoadSalt(configs.VaultSettings.SaltPath); err != nil {
			return nil, err
		}
		result.Initialized = true
	}

	list, err := hunts.List(ctx, huntsRoot())
	if err != nil {
		return nil, err
	}
	result.HuntCount = len(list.Hunts)
	result.FailedHunts = len(list.Failed)

	return result, nil
}
