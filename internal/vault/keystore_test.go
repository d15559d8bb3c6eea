package vault_test

import (
	"sync"
	"testing"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T, fill byte) *vault.SessionKey {
	t.Helper()
	raw := make([]byte, vault.KeySize)
	for i := range raw {
		raw[i] = fill
	}
	key, err := vault.NewSessionKey(raw)
	require.NoError(t, err)
	for _, b := range raw {
		require.Zero(t, b, "source bytes must be wiped")
	}
	return key
}

func TestKeyStore_StartsLocked(t *testing.T) {
	store := vault.NewKeyStore()

	assert.True(t, store.IsLocked())
	_, err := store.Get()
	require.ErrorIs(t, err, kerrors.ErrVaultLocked)
}

func TestKeyStore_SetGetClear(t *testing.T) {
	store := vault.NewKeyStore()
	require.NoError(t, store.Set(newKey(t, 0x11)))
	assert.False(t, store.IsLocked())

	got, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, byte(0x11), got.Bytes()[0])
	got.Destroy()
	assert.Nil(t, got.Bytes())

	again, err := store.Get()
	require.NoError(t, err, "destroying a copy leaves the stored key intact")
	again.Destroy()

	store.Clear()
	assert.True(t, store.IsLocked())
	_, err = store.Get()
	require.ErrorIs(t, err, kerrors.ErrVaultLocked)
}

func TestKeyStore_SetReplaces(t *testing.T) {
	store := vault.NewKeyStore()
	require.NoError(t, store.Set(newKey(t, 0x01)))
	require.NoError(t, store.Set(newKey(t, 0x02)))

	got, err := store.Get()
	require.NoError(t, err)
	defer got.Destroy()
	assert.Equal(t, byte(0x02), got.Bytes()[0])
}

func TestKeyStore_SetConsumesKey(t *testing.T) {
	store := vault.NewKeyStore()
	key := newKey(t, 0x05)
	require.NoError(t, store.Set(key))
	assert.Nil(t, key.Bytes())

	require.Error(t, store.Set(key), "a consumed key cannot be stored twice")
	require.Error(t, store.Set(nil))
}

func TestNewSessionKey_RejectsWrongLength(t *testing.T) {
	_, err := vault.NewSessionKey(make([]byte, 16))
	require.ErrorIs(t, err, kerrors.ErrInvalidKeyLength)
}

func TestKeyStore_ConcurrentAccess(t *testing.T) {
	store := vault.NewKeyStore()
	require.NoError(t, store.Set(newKey(t, 0x07)))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := store.Get()
			if err != nil {
				return
			}
			defer key.Destroy()
			_, _, _ = vault.Encrypt([]byte("payload"), key.Bytes())
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		store.Clear()
	}()
	wg.Wait()

	assert.True(t, store.IsLocked())
}
