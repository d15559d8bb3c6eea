package vault

import (
	"fmt"

	kerrors "github.com/open-season/openseason/internal/errors"

	"github.com/awnumar/memguard"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the session key length in bytes.
const KeySize = chacha20poly1305.KeySize

// SessionKey is key material held in locked, guarded memory.
type SessionKey struct {
	buf *memguard.LockedBuffer
}

// NewSessionKey moves b into locked memory. b is wiped.
func NewSessionKey(b []byte) (*SessionKey, error) {
	if len(b) != KeySize {
		memguard.WipeBytes(b)
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidKeyLength, KeySize, len(b))
	}
	return &SessionKey{buf: memguard.NewBufferFromBytes(b)}, nil
}

// Bytes returns the key material, or nil once the key is destroyed.
// The slice must not be retained past Destroy.
func (k *SessionKey) Bytes() []byte {
	if k == nil || k.buf == nil {
		return nil
	}
	return k.buf.Bytes()
}

// Destroy zeroes and releases the key. Safe to call more than once.
func (k *SessionKey) Destroy() {
	if k == nil || k.buf == nil {
		return
	}
	k.buf.Destroy()
	k.buf = nil
}

// Equal reports whether two keys hold the same material, in constant time.
func (k *SessionKey) Equal(other *SessionKey) bool {
	if k == nil || other == nil || k.buf == nil || other.buf == nil {
		return false
	}
	return k.buf.EqualTo(other.buf.Bytes())
}
