package errors

import "errors"

// Vault errors indicate problems with the session key or its derivation.
var (
	// ErrVaultLocked indicates an operation needed a session key but none is set.
	ErrVaultLocked = errors.New("vault is locked")

	// ErrInvalidSalt indicates the persisted salt is malformed.
	ErrInvalidSalt = errors.New("invalid vault salt")

	// ErrDerivationFailed indicates the key derivation primitive rejected its input.
	ErrDerivationFailed = errors.New("key derivation failed")
)

// Cryptographic errors indicate failures during encryption or decryption operations.
var (
	// ErrEncryptFailed indicates payload encryption failed.
	ErrEncryptFailed = errors.New("failed to encrypt payload")

	// ErrDecryptFailed indicates the payload could not be authenticated.
	// It always means "wrong key or corrupted data" and is never narrowed further.
	ErrDecryptFailed = errors.New("decryption failed: wrong key or corrupted data")

	// ErrInvalidKeyLength indicates the session key has an unexpected length.
	ErrInvalidKeyLength = errors.New("invalid session key length")
)

// Case errors indicate issues with hunt directories and their ledgers.
var (
	// ErrCaseAlreadyExists indicates a hunt with the same identifier already exists.
	ErrCaseAlreadyExists = errors.New("case already exists")

	// ErrCaseNotFound indicates the requested hunt does not exist.
	ErrCaseNotFound = errors.New("case not found")

	// ErrInvalidCaseName indicates a hunt name or identifier is unusable.
	ErrInvalidCaseName = errors.New("invalid case name")

	// ErrEvidenceNotFound indicates no ledger row matches the requested evidence id.
	ErrEvidenceNotFound = errors.New("evidence not found")
)

// Archive errors indicate issues with case bundles.
var (
	// ErrPathTraversal indicates an archive entry resolves outside the destination case.
	ErrPathTraversal = errors.New("archive entry escapes destination")

	// ErrPathEncoding indicates a path segment is not representable as portable text.
	ErrPathEncoding = errors.New("path is not valid UTF-8")

	// ErrInvalidArchive indicates the archive structure is invalid.
	ErrInvalidArchive = errors.New("invalid archive structure")
)

// File errors indicate issues with file discovery or access.
var (
	// ErrIO indicates a filesystem access failure. The underlying cause is wrapped alongside it.
	ErrIO = errors.New("i/o error")

	// ErrNoFilesFound indicates no files matched the provided patterns.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrFileNotFound indicates a specific file could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrOutputExists indicates an output path is already taken and will not be overwritten.
	ErrOutputExists = errors.New("output file already exists")
)

// Input errors indicate malformed command-line input.
var (
	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
