package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	kerrors "github.com/open-season/openseason/internal/errors"
)

// ExportResult describes a finished export.
type ExportResult struct {
	// OutputPath is where the archive was written.
	OutputPath string

	// Files is the number of regular file entries.
	Files int

	// Directories is the number of directory entries.
	Directories int

	// Bytes is the total uncompressed size of the file entries.
	Bytes int64
}

// Export writes every file and directory below huntDir into a zip archive
// at outputPath. The walk is lexical, so the same tree always yields the
// same entry order. The archive is assembled in a temporary file next to
// outputPath and renamed into place once complete.
func Export(huntDir, outputPath string) (*ExportResult, error) {
	info, err := os.Stat(huntDir)
	if err != nil {
		return nil, fmt.Errorf("%w: stat hunt directory: %w", kerrors.ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", kerrors.ErrIO, huntDir)
	}

	outDir := filepath.Dir(outputPath)
	tmp, err := os.CreateTemp(outDir, ".export-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("%w: create temporary archive: %w", kerrors.ErrIO, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	result := &ExportResult{OutputPath: outputPath}
	zw := zip.NewWriter(tmp)

	if err := writeTree(zw, huntDir, tmpPath, result); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finish archive: %w", kerrors.ErrIO, err)
	}
	if err := tmp.Sync(); err != nil {
		return nil, fmt.Errorf("%w: sync archive: %w", kerrors.ErrIO, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("%w: close archive: %w", kerrors.ErrIO, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return nil, fmt.Errorf("%w: move archive into place: %w", kerrors.ErrIO, err)
	}
	committed = true

	return result, nil
}

func writeTree(zw *zip.Writer, root, skipPath string, result *ExportResult) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("%w: walk %s: %w", kerrors.ErrIO, p, walkErr)
		}
		if p == root || p == skipPath {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("%w: relative path for %s: %w", kerrors.ErrIO, p, err)
		}
		if !utf8.ValidString(rel) {
			return fmt.Errorf("%w: %q", kerrors.ErrPathEncoding, rel)
		}
		name := filepath.ToSlash(rel)

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("%w: stat %s: %w", kerrors.ErrIO, p, err)
		}

		switch {
		case d.IsDir():
			header, err := zip.FileInfoHeader(info)
			if err != nil {
				return fmt.Errorf("%w: header for %s: %w", kerrors.ErrIO, name, err)
			}
			header.Name = name + "/"
			header.Method = zip.Store
			if _, err := zw.CreateHeader(header); err != nil {
				return fmt.Errorf("%w: add directory %s: %w", kerrors.ErrIO, name, err)
			}
			result.Directories++
			return nil

		case info.Mode().IsRegular():
			n, err := addFile(zw, p, name, info)
			if err != nil {
				return err
			}
			result.Files++
			result.Bytes += n
			return nil

		default:
			// Symlinks, sockets and devices have no place in a hunt tree.
			return nil
		}
	})
}

func addFile(zw *zip.Writer, src, name string, info fs.FileInfo) (int64, error) {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, fmt.Errorf("%w: header for %s: %w", kerrors.ErrIO, name, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return 0, fmt.Errorf("%w: add file %s: %w", kerrors.ErrIO, name, err)
	}

	f, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", kerrors.ErrIO, src, err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return 0, fmt.Errorf("%w: copy %s: %w", kerrors.ErrIO, src, err)
	}
	return n, nil
}
