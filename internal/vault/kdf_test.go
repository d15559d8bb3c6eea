package vault_test

import (
	"testing"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = vault.KDFParams{Time: 1, MemoryKiB: 64, Threads: 1}

func TestGenerateSalt_IsValidAndUnique(t *testing.T) {
	a, err := vault.GenerateSalt()
	require.NoError(t, err)
	b, err := vault.GenerateSalt()
	require.NoError(t, err)

	assert.NoError(t, vault.ValidateSalt(a))
	assert.Len(t, a, 22, "16 bytes of unpadded base64")
	assert.NotEqual(t, a, b)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	salt, err := vault.GenerateSalt()
	require.NoError(t, err)

	k1, err := vault.DeriveKey([]byte("correct horse"), salt, fastParams)
	require.NoError(t, err)
	defer k1.Destroy()
	k2, err := vault.DeriveKey([]byte("correct horse"), salt, fastParams)
	require.NoError(t, err)
	defer k2.Destroy()

	assert.Len(t, k1.Bytes(), vault.KeySize)
	assert.True(t, k1.Equal(k2))
}

func TestDeriveKey_DifferentInputsDiffer(t *testing.T) {
	salt, err := vault.GenerateSalt()
	require.NoError(t, err)
	otherSalt, err := vault.GenerateSalt()
	require.NoError(t, err)

	base, err := vault.DeriveKey([]byte("correct horse"), salt, fastParams)
	require.NoError(t, err)
	defer base.Destroy()

	otherPassword, err := vault.DeriveKey([]byte("battery staple"), salt, fastParams)
	require.NoError(t, err)
	defer otherPassword.Destroy()

	otherSaltKey, err := vault.DeriveKey([]byte("correct horse"), otherSalt, fastParams)
	require.NoError(t, err)
	defer otherSaltKey.Destroy()

	assert.False(t, base.Equal(otherPassword))
	assert.False(t, base.Equal(otherSaltKey))
}

func TestDeriveKey_InvalidSalt(t *testing.T) {
	for _, salt := range []string{"", "short", "not base64 at all!!", "===========", string(make([]byte, 100))} {
		_, err := vault.DeriveKey([]byte("pw"), salt, fastParams)
		require.ErrorIs(t, err, kerrors.ErrInvalidSalt, "salt %q", salt)
	}
}

func TestDeriveKey_DerivationFailures(t *testing.T) {
	salt, err := vault.GenerateSalt()
	require.NoError(t, err)

	_, err = vault.DeriveKey(nil, salt, fastParams)
	require.ErrorIs(t, err, kerrors.ErrDerivationFailed)

	bad := []vault.KDFParams{
		{Time: 0, MemoryKiB: 64, Threads: 1},
		{Time: 1, MemoryKiB: 64, Threads: 0},
		{Time: 1, MemoryKiB: 4, Threads: 1},
	}
	for _, p := range bad {
		_, err := vault.DeriveKey([]byte("pw"), salt, p)
		require.ErrorIs(t, err, kerrors.ErrDerivationFailed, "params %+v", p)
	}
}

func TestDefaultKDFParams(t *testing.T) {
	p := vault.DefaultKDFParams()
	assert.Equal(t, uint32(2), p.Time)
	assert.Equal(t, uint32(19456), p.MemoryKiB)
	assert.Equal(t, uint8(1), p.Threads)
}
