package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/open-season/openseason/internal/audit"
	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/hunts"
	"github.com/open-season/openseason/internal/ledger"
	"github.com/open-season/openseason/internal/vault"
)

// AddEvidenceOptions configures the add workflow.
type AddEvidenceOptions struct {
	// HuntID identifies the target hunt.
	HuntID string

	// FilePatterns lists files, directories or glob patterns to ingest.
	FilePatterns []string

	// Data, when set, is ingested as a single item instead of FilePatterns
	// (e.g. evidence piped on stdin). SourceName labels it.
	Data       []byte
	SourceName string

	// Description is stored with every record. When empty, the source file
	// name is used.
	Description string

	// DryRun resolves the inputs without encrypting or writing anything.
	DryRun bool
}

// AddedEvidence describes one ingested item.
type AddedEvidence struct {
	ID          int64
	Source      string
	StoredPath  string
	Description string
	Size        int
}

// AddEvidenceResult contains the outcome of an add operation.
type AddEvidenceResult struct {
	HuntID string
	Added  []AddedEvidence
	DryRun bool
}

// AddEvidence encrypts each input under the session key, writes the
// ciphertext to evidence/<uuid>.enc inside the hunt and records the nonce
// in the ledger. The payload file is written before its ledger row, so a
// row never points at a missing file; a payload whose insert fails is
// removed again.
//
// Returns ErrVaultLocked if store holds no session key.
// Returns ErrCaseNotFound if no hunt has that id.
// Returns ErrNoFilesFound / ErrFileNotFound if the inputs do not resolve.
func AddEvidence(ctx context.Context, store *vault.KeyStore, opts AddEvidenceOptions) (*AddEvidenceResult, error) {
	if store.IsLocked() {
		return nil, errVaultLocked()
	}

	var sources []string
	if opts.Data == nil {
		var err error
		sources, err = resolveFiles(opts.FilePatterns)
		if err != nil {
			return nil, err
		}
	}

	l, dir, err := hunts.OpenLedger(ctx, huntsRoot(), opts.HuntID)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	result := &AddEvidenceResult{HuntID: opts.HuntID, DryRun: opts.DryRun}

	if opts.DryRun {
		for _, src := range sources {
			result.Added = append(result.Added, AddedEvidence{Source: src, Description: describeSource(opts.Description, src)})
		}
		if opts.Data != nil {
			result.Added = append(result.Added, AddedEvidence{Source: opts.SourceName, Description: describeSource(opts.Description, opts.SourceName), Size: len(opts.Data)})
		}
		return result, nil
	}

	err = withSessionKey(store, func(key []byte) error {
		if opts.Data != nil {
			added, err := ingest(ctx, l, dir, key, opts.Data, opts.SourceName, describeSource(opts.Description, opts.SourceName))
			if err != nil {
				return err
			}
			result.Added = append(result.Added, *added)
			return nil
		}

		for _, src := range sources {
			plaintext, err := os.ReadFile(src)
			if err != nil {
				return fmt.Errorf("%w: reading %s: %w", kerrors.ErrIO, src, err)
			}
			added, err := ingest(ctx, l, dir, key, plaintext, src, describeSource(opts.Description, src))
			clear(plaintext)
			if err != nil {
				return err
			}
			result.Added = append(result.Added, *added)
		}
		return nil
	})

	// Records already committed stay committed; report them either way.
	if len(result.Added) > 0 {
		entry := audit.LogWithUser("evidence_add")
		entry.CaseID = opts.HuntID
		for _, a := range result.Added {
			entry.EvidenceIDs = append(entry.EvidenceIDs, a.ID)
			entry.Files = append(entry.Files, a.Source)
		}
		audit.Log(entry)
	}
	if err != nil {
		return result, err
	}

	return result, nil
}

func ingest(ctx context.Context, l *ledger.Ledger, huntDir string, key, plaintext []byte, source, description string) (*AddedEvidence, error) {
	ciphertext, nonce, err := vault.Encrypt(plaintext, key)
	if err != nil {
		return nil, err
	}

	rel := path.Join(hunts.EvidenceDir, uuid.New().String()+".enc")
	dest := filepath.Join(huntDir, filepath.FromSlash(rel))

	if err := writePayload(dest, ciphertext); err != nil {
		return nil, err
	}

	id, err := l.InsertEvidence(ctx, description, rel, nonce)
	if err != nil {
		if rmErr := os.Remove(dest); rmErr != nil {
			err = errors.Join(err, rmErr)
		}
		return nil, fmt.Errorf("recording evidence: %w", err)
	}

	return &AddedEvidence{
		ID:          id,
		Source:      source,
		StoredPath:  rel,
		Description: description,
		Size:        len(plaintext),
	}, nil
}

// writePayload creates dest exclusively and syncs it before returning.
func writePayload(dest string, ciphertext []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return fmt.Errorf("%w: creating evidence directory: %w", kerrors.ErrIO, err)
	}

	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", kerrors.ErrIO, dest, err)
	}
	if _, err := f.Write(ciphertext); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("%w: writing %s: %w", kerrors.ErrIO, dest, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(dest)
		return fmt.Errorf("%w: syncing %s: %w", kerrors.ErrIO, dest, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return fmt.Errorf("%w: closing %s: %w", kerrors.ErrIO, dest, err)
	}
	return nil
}

func describeSource(description, source string) string {
	if description != "" {
		return description
	}
	if source == "" {
		return "stdin"
	}
	return filepath.Base(source)
}

// ListEvidence returns the ledger rows of a hunt. No key is needed.
//
// Returns ErrCaseNotFound if no hunt has that id.
func ListEvidence(ctx context.Context, huntID string) ([]ledger.Evidence, error) {
	l, _, err := hunts.OpenLedger(ctx, huntsRoot(), huntID)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	return l.ListEvidence(ctx)
}

// ReadEvidenceOptions configures the read workflow.
type ReadEvidenceOptions struct {
	HuntID     string
	EvidenceID int64
}

// ReadEvidenceResult holds the decrypted payload. The caller should clear
// Plaintext once done with it.
type ReadEvidenceResult struct {
	Evidence  ledger.Evidence
	Plaintext []byte
}

// ReadEvidence loads a record, reads its ciphertext and decrypts it with
// the session key and the recorded nonce.
//
// Returns ErrVaultLocked if store holds no session key.
// Returns ErrCaseNotFound / ErrEvidenceNotFound for unknown ids.
// Returns ErrDecryptFailed for a wrong key or tampered payload.
func ReadEvidence(ctx context.Context, store *vault.KeyStore, opts ReadEvidenceOptions) (*ReadEvidenceResult, error) {
	if store.IsLocked() {
		return nil, errVaultLocked()
	}

	l, dir, err := hunts.OpenLedger(ctx, huntsRoot(), opts.HuntID)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	record, err := l.Evidence(ctx, opts.EvidenceID)
	if err != nil {
		return nil, err
	}

	if !filepath.IsLocal(filepath.FromSlash(record.FilePath)) {
		return nil, fmt.Errorf("%w: ledger path %q", kerrors.ErrPathTraversal, record.FilePath)
	}
	ciphertext, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(record.FilePath)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: payload %s", kerrors.ErrFileNotFound, record.FilePath)
		}
		return nil, fmt.Errorf("%w: reading payload: %w", kerrors.ErrIO, err)
	}

	var plaintext []byte
	err = withSessionKey(store, func(key []byte) error {
		var err error
		plaintext, err = vault.Decrypt(ciphertext, record.Nonce, key)
		return err
	})
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("evidence_read")
	entry.CaseID = opts.HuntID
	entry.EvidenceIDs = []int64{record.ID}
	audit.Log(entry)

	return &ReadEvidenceResult{Evidence: *record, Plaintext: plaintext}, nil
}
