// Package vault holds the cryptographic core of openseason: Argon2id key
// derivation from a password and the persisted salt, the single-slot
// session key store, and XChaCha20-Poly1305 payload encryption.
//
// The session key lives in a memguard enclave while the vault is unlocked.
// Readers receive a short-lived SessionKey backed by locked memory and must
// Destroy it when finished:
//
//	key, err := store.Get()
//	if err != nil {
//	    return err // errors.ErrVaultLocked
//	}
//	defer key.Destroy()
//	ciphertext, nonce, err := vault.Encrypt(payload, key.Bytes())
//
// Encrypt and Decrypt are pure functions of their inputs and may run
// concurrently. The store's mutex only guards the slot itself.
package vault
