package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-season/openseason/internal/audit"
	"github.com/open-season/openseason/internal/bundle"
	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/hunts"
	"github.com/open-season/openseason/internal/utils"
)

// BundleExt is the default extension of exported case bundles.
const BundleExt = ".osb"

// ExportOptions configures the export workflow.
type ExportOptions struct {
	// HuntID identifies the hunt to export.
	HuntID string

	// OutputPath is where the archive is written. If empty, a name derived
	// from the hunt's display name is used in the current directory.
	OutputPath string
}

// ExportHunt packs a hunt into a case bundle. No key is needed: the bundle
// carries ciphertext and the ledger as they are on disk.
//
// Returns ErrCaseNotFound if no hunt has that id.
// Returns ErrOutputExists if OutputPath already exists.
// Returns ErrPathEncoding if a path in the hunt is not valid UTF-8.
func ExportHunt(ctx context.Context, opts ExportOptions) (*bundle.ExportResult, error) {
	h, err := hunts.Get(ctx, huntsRoot(), opts.HuntID)
	if err != nil {
		return nil, err
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		name := h.Name
		if name == "" {
			name = h.ID
		}
		outputPath = utils.SanitizeName(name) + BundleExt
	}
	outputPath, err = filepath.Abs(outputPath)
	if err != nil {
		return nil, fmt.Errorf("resolving output path: %w", err)
	}

	if _, err := os.Stat(outputPath); err == nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrOutputExists, outputPath)
	}

	result, err := bundle.Export(h.Path, outputPath)
	if err != nil {
		return nil, err
	}

	entry := audit.LogWithUser("hunt_export")
	entry.CaseID = h.ID
	entry.ArchivePath = outputPath
	entry.FilesCount = result.Files
	audit.Log(entry)

	return result, nil
}
