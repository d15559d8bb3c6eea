package workflows

import (
	"github.com/open-season/openseason/internal/configs"
	"github.com/open-season/openseason/internal/vault"
)

func huntsRoot() string {
	return configs.VaultSettings.HuntsDir
}

// kdfParams converts the [kdf] section of config into Argon2id parameters.
func kdfParams(config *configs.UserConfig) vault.KDFParams {
	return vault.KDFParams{
		Time:      config.KDF.Time,
		MemoryKiB: config.KDF.MemoryKiB,
		Threads:   config.KDF.Threads,
	}
}

// withSessionKey runs fn with a private copy of the session key.
func withSessionKey(store *vault.KeyStore, fn func(key []byte) error) error {
	key, err := store.Get()
	if err != nil {
		return err
	}
	defer key.Destroy()

	return fn(key.Bytes())
}
