package vault

import (
	"crypto/rand"
	"fmt"
	"io"

	kerrors "github.com/open-season/openseason/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

// NonceSize is the XChaCha20-Poly1305 nonce length. A 192-bit random nonce
// is safe to generate per call without tracking state across restarts.
const NonceSize = chacha20poly1305.NonceSizeX

// Encrypt seals plaintext under key with a fresh random nonce. The returned
// nonce must be stored next to the ciphertext; it is required to decrypt.
func Encrypt(plaintext, key []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != KeySize {
		return nil, nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidKeyLength, KeySize, len(key))
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", kerrors.ErrEncryptFailed, err)
	}

	nonce = make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, nil, fmt.Errorf("%w: generate nonce: %v", kerrors.ErrEncryptFailed, err)
	}

	ciphertext = aead.Seal(nil, nonce, plaintext, nil)
	return ciphertext, nonce, nil
}

// Decrypt opens ciphertext produced by Encrypt. Every failure, including a
// malformed nonce, is reported as the same ErrDecryptFailed and no
// plaintext is returned.
func Decrypt(ciphertext, nonce, key []byte) ([]byte, error) {
	if len(key) != KeySize || len(nonce) != NonceSize {
		return nil, kerrors.ErrDecryptFailed
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, kerrors.ErrDecryptFailed
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, kerrors.ErrDecryptFailed
	}
	return plaintext, nil
}
