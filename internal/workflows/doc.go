// Package workflows provides high-level orchestration for openseason commands.
//
// Workflows coordinate the vault, ledger, bundle and hunts packages to
// implement complete user-facing features. Each workflow handles a single
// command's business logic, independent of CLI concerns like flag parsing,
// spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Loading configuration (paths and KDF parameters)
//   - Checking that the vault is unlocked where a key is needed
//   - Performing the core operation
//   - Recording audit trail entries
//
// # Available Workflows
//
//   - Unlock / Lock / Status: session key lifecycle
//   - CreateHunt / ListHunts / ShowHunt / RenameHunt: hunt management
//   - AddEvidence / ListEvidence / ReadEvidence: encrypted evidence
//   - ExportHunt / ImportHunt: portable case bundles
//   - Log: reads the audit trail
//
// # Key Handling
//
// Workflows that need the session key take the *vault.KeyStore explicitly.
// They fetch a copy with Get, use it for the duration of the operation and
// Destroy it before returning. The store itself is owned by the caller.
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.ReadEvidence(ctx, store, opts)
//	if errors.Is(err, kerrors.ErrDecryptFailed) {
//	    // Wrong password or tampered payload
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
package workflows
