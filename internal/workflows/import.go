package workflows

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-season/openseason/internal/audit"
	"github.com/open-season/openseason/internal/bundle"
	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/hunts"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// ArchivePath is the case bundle to import. Its base name, minus the
	// extension, becomes the new hunt's id.
	ArchivePath string

	// DryRun lists what would be written or skipped without extracting.
	DryRun bool
}

// ImportHuntResult contains the outcome of an import operation.
type ImportHuntResult struct {
	// Hunt is the imported hunt. Nil for a dry run.
	Hunt *hunts.Hunt

	// Import holds the extraction counts. Nil for a dry run.
	Import *bundle.ImportResult

	// Manifest is the archive preview. Only set for a dry run.
	Manifest *bundle.Manifest

	DryRun bool
}

// ImportHunt materializes a case bundle as a new hunt. It never overwrites
// an existing hunt, and archive entries that would escape the hunt
// directory are skipped and reported.
//
// Returns ErrFileNotFound if the archive doesn't exist.
// Returns ErrInvalidCaseName if the archive name cannot be a hunt id.
// Returns ErrCaseAlreadyExists if a hunt with that id exists.
// Returns ErrInvalidArchive if the archive is not a zip or has no ledger.
func ImportHunt(ctx context.Context, opts ImportOptions) (*ImportHuntResult, error) {
	if _, err := os.Stat(opts.ArchivePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, opts.ArchivePath)
	}

	if opts.DryRun {
		manifest, err := bundle.Inspect(opts.ArchivePath)
		if err != nil {
			return nil, err
		}
		if !manifest.HasLedger {
			return nil, fmt.Errorf("%w: no %s at archive root", kerrors.ErrInvalidArchive, bundle.LedgerName)
		}
		if _, err := os.Lstat(filepath.Join(huntsRoot(), manifest.CaseID)); err == nil {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrCaseAlreadyExists, manifest.CaseID)
		}
		return &ImportHuntResult{Manifest: manifest, DryRun: true}, nil
	}

	imported, err := bundle.Import(opts.ArchivePath, huntsRoot())
	if err != nil {
		return nil, err
	}

	// A ledger that cannot be opened makes the hunt unusable; take it back
	// out rather than report a half-working import.
	h, err := hunts.Get(ctx, huntsRoot(), imported.CaseID)
	if err != nil {
		if rmErr := os.RemoveAll(imported.Path); rmErr != nil {
			return nil, errors.Join(fmt.Errorf("%w: unreadable ledger: %w", kerrors.ErrInvalidArchive, err), rmErr)
		}
		return nil, fmt.Errorf("%w: unreadable ledger: %w", kerrors.ErrInvalidArchive, err)
	}

	entry := audit.LogWithUser("hunt_import")
	entry.CaseID = imported.CaseID
	entry.ArchivePath = opts.ArchivePath
	entry.FilesCount = imported.Files
	entry.Skipped = len(imported.Skipped)
	audit.Log(entry)

	return &ImportHuntResult{Hunt: h, Import: imported}, nil
}
