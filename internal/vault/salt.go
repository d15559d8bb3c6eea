package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/open-season/openseason/internal/errors"
)

// LoadSalt reads the persisted salt. A missing file is reported as
// ErrFileNotFound, a malformed one as ErrInvalidSalt.
func LoadSalt(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
		}
		return "", fmt.Errorf("%w: reading salt: %w", kerrors.ErrIO, err)
	}

	salt := strings.TrimSpace(string(data))
	if err := ValidateSalt(salt); err != nil {
		return "", err
	}
	return salt, nil
}

// LoadOrCreateSalt returns the persisted salt, generating and persisting a
// new one if none exists. An existing salt is never replaced, even when it
// fails validation: that would silently orphan every key derived from it.
func LoadOrCreateSalt(path string) (salt string, created bool, err error) {
	salt, err = LoadSalt(path)
	if err == nil {
		return salt, false, nil
	}
	if !errors.Is(err, kerrors.ErrFileNotFound) {
		return "", false, err
	}

	salt, err = GenerateSalt()
	if err != nil {
		return "", false, err
	}

	won, err := publishSalt(path, salt)
	if err != nil {
		return "", false, err
	}
	if !won {
		// Another process created the salt first; use theirs.
		salt, err = LoadSalt(path)
		return salt, false, err
	}
	return salt, true, nil
}

// publishSalt writes salt to a temp file and hard-links it into place, so
// readers never see a partial file and a concurrent writer cannot be
// overwritten. It reports false if path already existed.
func publishSalt(path, salt string) (bool, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, fmt.Errorf("%w: create salt directory: %w", kerrors.ErrIO, err)
	}

	tmp, err := os.CreateTemp(dir, ".salt-*")
	if err != nil {
		return false, fmt.Errorf("%w: create temp salt: %w", kerrors.ErrIO, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(salt); err != nil {
		tmp.Close()
		return false, fmt.Errorf("%w: write temp salt: %w", kerrors.ErrIO, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return false, fmt.Errorf("%w: chmod temp salt: %w", kerrors.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return false, fmt.Errorf("%w: fsync temp salt: %w", kerrors.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("%w: close temp salt: %w", kerrors.ErrIO, err)
	}

	if err := os.Link(tmpPath, path); err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: publish salt: %w", kerrors.ErrIO, err)
	}
	return true, nil
}
