// Package errors provides typed error values for the openseason vault.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
//   - Vault errors: session key state and derivation (ErrVaultLocked, ErrInvalidSalt)
//   - Crypto errors: authentication failures (ErrDecryptFailed)
//   - Case errors: hunt directory state (ErrCaseAlreadyExists, ErrCaseNotFound)
//   - Archive errors: bundle import/export (ErrPathTraversal, ErrPathEncoding)
//   - File errors: filesystem access (ErrIO, ErrFileNotFound)
//
// # Usage
//
// Return errors from internal packages:
//
//	if key == nil {
//	    return nil, errors.ErrVaultLocked
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.ImportHunt(ctx, opts)
//	if errors.Is(err, kerrors.ErrCaseAlreadyExists) {
//	    // Show user-friendly message
//	}
//
// Wrap I/O failures so the cause survives:
//
//	return fmt.Errorf("%w: reading %s: %w", errors.ErrIO, path, err)
package errors
