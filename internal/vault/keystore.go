package vault

import (
	"fmt"
	"sync"

	kerrors "github.com/open-season/openseason/internal/errors"

	"github.com/awnumar/memguard"
)

// KeyStore holds at most one session key. While set, the key is sealed in
// a memguard enclave; the plaintext only exists in locked buffers handed
// out by Get.
type KeyStore struct {
	mu   sync.Mutex
	slot *memguard.Enclave
}

func NewKeyStore() *KeyStore {
	return &KeyStore{}
}

// Set replaces the current key. The store takes ownership of key: its
// buffer is sealed and destroyed, so the caller must not use it afterwards.
func (s *KeyStore) Set(key *SessionKey) error {
	if key == nil || key.buf == nil {
		return fmt.Errorf("%w: key is empty", kerrors.ErrInvalidKeyLength)
	}

	enclave := key.buf.Seal()
	key.buf = nil
	if enclave == nil {
		return fmt.Errorf("%w: key buffer already destroyed", kerrors.ErrInvalidKeyLength)
	}

	s.mu.Lock()
	s.slot = enclave
	s.mu.Unlock()
	return nil
}

// Clear empties the slot. The previous enclave only ever held ciphertext
// under memguard's process key, so dropping it leaves no plaintext behind.
func (s *KeyStore) Clear() {
	s.mu.Lock()
	s.slot = nil
	s.mu.Unlock()
}

// Get returns a copy of the session key, or ErrVaultLocked when the slot is
// empty. The caller owns the copy and must Destroy it.
func (s *KeyStore) Get() (*SessionKey, error) {
	s.mu.Lock()
	enclave := s.slot
	s.mu.Unlock()

	if enclave == nil {
		return nil, kerrors.ErrVaultLocked
	}

	buf, err := enclave.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrVaultLocked, err)
	}
	return &SessionKey{buf: buf}, nil
}

// IsLocked reports whether the slot is empty.
func (s *KeyStore) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot == nil
}

// Purge clears the slot and wipes every memguard allocation in the process.
// Call it on shutdown.
func (s *KeyStore) Purge() {
	s.Clear()
	memguard.Purge()
}
