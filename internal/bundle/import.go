package bundle

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/utils"
)

// LedgerName is the file an archive must carry at its root to count as a
// hunt.
const LedgerName = "hunt.db"

// ImportResult describes a finished import.
type ImportResult struct {
	// CaseID is the identifier of the new hunt (the archive base name).
	CaseID string

	// Path is the directory the hunt was materialized at.
	Path string

	// Files is the number of file entries written.
	Files int

	// Directories is the number of directory entries created.
	Directories int

	// Skipped lists entry names that were rejected and not written.
	Skipped []string
}

// Entry is one archive member as seen by Inspect.
type Entry struct {
	Name  string
	Size  uint64
	IsDir bool

	// Rejected is set when the entry would be skipped on import, with the
	// reason in Reason.
	Rejected bool
	Reason   string
}

// Manifest is a read-only preview of an archive.
type Manifest struct {
	CaseID    string
	Entries   []Entry
	HasLedger bool
}

// CaseIDFromArchive derives the hunt identifier from an archive path: the
// base name with its extension stripped.
func CaseIDFromArchive(archivePath string) (string, error) {
	base := filepath.Base(archivePath)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	if err := utils.ValidateSegment(id); err != nil {
		return "", fmt.Errorf("%w: archive name %q: %v", kerrors.ErrInvalidCaseName, base, err)
	}
	return id, nil
}

// Inspect lists the entries of the archive at archivePath without writing
// anything, flagging those Import would skip.
func Inspect(archivePath string) (*Manifest, error) {
	caseID, err := CaseIDFromArchive(archivePath)
	if err != nil {
		return nil, err
	}

	zr, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	manifest := &Manifest{CaseID: caseID}
	probeRoot := filepath.Join(string(filepath.Separator), "probe")
	for _, f := range zr.File {
		entry := Entry{Name: f.Name, Size: f.UncompressedSize64, IsDir: isDirEntry(f)}
		if reason := rejectReason(probeRoot, f); reason != "" {
			entry.Rejected = true
			entry.Reason = reason
		} else if !entry.IsDir && strings.TrimSuffix(f.Name, "/") == LedgerName {
			manifest.HasLedger = true
		}
		manifest.Entries = append(manifest.Entries, entry)
	}
	return manifest, nil
}

// Import materializes the archive at archivePath as a new hunt directory
// under destRoot. It never overwrites: an existing target fails with
// ErrCaseAlreadyExists and is left untouched.
func Import(archivePath, destRoot string) (*ImportResult, error) {
	caseID, err := CaseIDFromArchive(archivePath)
	if err != nil {
		return nil, err
	}

	target := filepath.Join(destRoot, caseID)
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrCaseAlreadyExists, caseID)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: stat %s: %w", kerrors.ErrIO, target, err)
	}

	zr, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	if err := os.MkdirAll(destRoot, 0700); err != nil {
		return nil, fmt.Errorf("%w: create destination: %w", kerrors.ErrIO, err)
	}
	staging, err := os.MkdirTemp(destRoot, ".import-"+caseID+"-")
	if err != nil {
		return nil, fmt.Errorf("%w: create staging directory: %w", kerrors.ErrIO, err)
	}

	committed := false
	defer func() {
		if !committed {
			os.RemoveAll(staging)
		}
	}()

	result := &ImportResult{CaseID: caseID, Path: target}
	for _, f := range zr.File {
		if reason := rejectReason(staging, f); reason != "" {
			result.Skipped = append(result.Skipped, f.Name)
			continue
		}
		if err := extractEntry(staging, f, result); err != nil {
			return nil, err
		}
	}

	if ok, err := utils.FileExists(filepath.Join(staging, LedgerName)); err != nil {
		return nil, fmt.Errorf("%w: %w", kerrors.ErrIO, err)
	} else if !ok {
		return nil, fmt.Errorf("%w: no %s at archive root", kerrors.ErrInvalidArchive, LedgerName)
	}

	// Someone may have created the target while we were extracting.
	if _, err := os.Lstat(target); err == nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrCaseAlreadyExists, caseID)
	}
	if err := os.Rename(staging, target); err != nil {
		return nil, fmt.Errorf("%w: move hunt into place: %w", kerrors.ErrIO, err)
	}
	committed = true

	return result, nil
}

func openArchive(archivePath string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		// Insecure names are handled entry by entry; the reader is still usable.
		if errors.Is(err, zip.ErrInsecurePath) && zr != nil {
			return zr, nil
		}
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, archivePath)
		}
		return nil, fmt.Errorf("%w: %w", kerrors.ErrInvalidArchive, err)
	}
	return zr, nil
}

func isDirEntry(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.Mode().IsDir()
}

// rejectReason returns why an entry must not be written, or "".
func rejectReason(root string, f *zip.File) string {
	mode := f.Mode()
	if mode&fs.ModeSymlink != 0 {
		return "symlink entry"
	}
	if !isDirEntry(f) && !mode.IsRegular() {
		return "not a regular file"
	}
	if _, err := SafeJoin(root, f.Name); err != nil {
		return err.Error()
	}
	return ""
}

func extractEntry(root string, f *zip.File, result *ImportResult) error {
	dest, err := SafeJoin(root, f.Name)
	if err != nil {
		return err
	}

	if isDirEntry(f) {
		if err := os.MkdirAll(dest, 0700); err != nil {
			return fmt.Errorf("%w: create directory %s: %w", kerrors.ErrIO, f.Name, err)
		}
		result.Directories++
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return fmt.Errorf("%w: create parent of %s: %w", kerrors.ErrIO, f.Name, err)
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: open entry %s: %w", kerrors.ErrInvalidArchive, f.Name, err)
	}
	defer src.Close()

	// O_EXCL: a duplicate entry name must not overwrite an earlier one.
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", kerrors.ErrIO, f.Name, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) {
			return fmt.Errorf("%w: entry %s: %w", kerrors.ErrInvalidArchive, f.Name, err)
		}
		return fmt.Errorf("%w: write %s: %w", kerrors.ErrIO, f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", kerrors.ErrIO, f.Name, err)
	}

	result.Files++
	return nil
}
