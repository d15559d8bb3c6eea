package vault

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	kerrors "github.com/open-season/openseason/internal/errors"

	"golang.org/x/crypto/argon2"
)

const (
	// SaltSize is the number of random bytes behind a generated salt.
	SaltSize = 16

	minSaltLen = 8
	maxSaltLen = 64
)

// KDFParams are the Argon2id cost parameters.
type KDFParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultKDFParams returns t=2, m=19 MiB, p=1.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Time:      2,
		MemoryKiB: 19 * 1024,
		Threads:   1,
	}
}

func (p KDFParams) validate() error {
	if p.Time == 0 {
		return fmt.Errorf("%w: time parameter must be positive", kerrors.ErrDerivationFailed)
	}
	if p.Threads == 0 {
		return fmt.Errorf("%w: threads parameter must be positive", kerrors.ErrDerivationFailed)
	}
	if p.MemoryKiB < 8*uint32(p.Threads) {
		return fmt.Errorf("%w: memory must be at least 8 KiB per thread", kerrors.ErrDerivationFailed)
	}
	return nil
}

// GenerateSalt returns a fresh random salt as unpadded base64 text, which is
// safe to store in a plain file.
func GenerateSalt() (string, error) {
	raw := make([]byte, SaltSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(raw), nil
}

// ValidateSalt checks that salt is unpadded base64 text of a usable length.
func ValidateSalt(salt string) error {
	if len(salt) < minSaltLen || len(salt) > maxSaltLen {
		return fmt.Errorf("%w: length %d outside [%d, %d]", kerrors.ErrInvalidSalt, len(salt), minSaltLen, maxSaltLen)
	}
	if _, err := base64.RawStdEncoding.DecodeString(salt); err != nil {
		return fmt.Errorf("%w: %v", kerrors.ErrInvalidSalt, err)
	}
	return nil
}

// DeriveKey stretches password with Argon2id into a 32-byte session key.
// The salt's text form is the Argon2 salt input, so the same (password,
// salt) pair always yields the same key.
func DeriveKey(password []byte, salt string, params KDFParams) (*SessionKey, error) {
	if err := ValidateSalt(salt); err != nil {
		return nil, err
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", kerrors.ErrDerivationFailed)
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	derived := argon2.IDKey(password, []byte(salt), params.Time, params.MemoryKiB, params.Threads, KeySize)
	if len(derived) != KeySize {
		return nil, fmt.Errorf("%w: derived key has unexpected length %d", kerrors.ErrDerivationFailed, len(derived))
	}

	return NewSessionKey(derived)
}
