package bundle_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/open-season/openseason/internal/bundle"
	kerrors "github.com/open-season/openseason/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeHunt lays out a minimal hunt tree with opaque ledger and payload bytes.
func makeHunt(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "case-A")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "evidence"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, bundle.LedgerName), []byte("ledger-bytes"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "evidence", "notes.enc"), []byte{0x01, 0x02, 0xff, 0x00}, 0600))
	return dir
}

type rawEntry struct {
	name string
	body string
	mode os.FileMode
}

// writeArchive builds an archive with arbitrary entry names, bypassing the
// export path.
func writeArchive(t *testing.T, path string, entries []rawEntry) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		h := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		if e.mode != 0 {
			h.SetMode(e.mode)
		}
		w, err := zw.CreateHeader(h)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func entryNames(t *testing.T, path string) []string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestExport_EntriesMirrorTree(t *testing.T) {
	hunt := makeHunt(t)
	out := filepath.Join(t.TempDir(), "out.bundle")

	result, err := bundle.Export(hunt, out)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Files)
	assert.Equal(t, 1, result.Directories)
	assert.Equal(t, int64(len("ledger-bytes")+4), result.Bytes)

	assert.Equal(t, []string{"evidence/", "evidence/notes.enc", "hunt.db"}, entryNames(t, out))
}

func TestExport_Deterministic(t *testing.T) {
	hunt := makeHunt(t)
	dir := t.TempDir()

	_, err := bundle.Export(hunt, filepath.Join(dir, "one.bundle"))
	require.NoError(t, err)
	_, err = bundle.Export(hunt, filepath.Join(dir, "two.bundle"))
	require.NoError(t, err)

	assert.Equal(t, entryNames(t, filepath.Join(dir, "one.bundle")), entryNames(t, filepath.Join(dir, "two.bundle")))
}

func TestExport_UnwritableDestinationLeavesNothing(t *testing.T) {
	hunt := makeHunt(t)
	out := filepath.Join(t.TempDir(), "missing-dir", "out.bundle")

	_, err := bundle.Export(hunt, out)
	assert.ErrorIs(t, err, kerrors.ErrIO)
	assert.NoFileExists(t, out)
}

func TestExport_MissingHunt(t *testing.T) {
	_, err := bundle.Export(filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "out.bundle"))
	assert.ErrorIs(t, err, kerrors.ErrIO)
}

func TestExport_NonUTF8Path(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("only Linux filesystems accept arbitrary byte names")
	}
	hunt := makeHunt(t)
	require.NoError(t, os.WriteFile(filepath.Join(hunt, "evidence", "bad\xff.enc"), []byte("x"), 0600))

	outDir := t.TempDir()
	out := filepath.Join(outDir, "out.bundle")
	_, err := bundle.Export(hunt, out)
	assert.ErrorIs(t, err, kerrors.ErrPathEncoding)
	assert.NoFileExists(t, out)

	leftovers, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, leftovers, "temporary archive must be cleaned up")
}

func TestExportImport_RoundTripByteIdentical(t *testing.T) {
	hunt := makeHunt(t)
	out := filepath.Join(t.TempDir(), "out.bundle")
	_, err := bundle.Export(hunt, out)
	require.NoError(t, err)

	dest := t.TempDir()
	result, err := bundle.Import(out, dest)
	require.NoError(t, err)
	assert.Equal(t, "out", result.CaseID)
	assert.Equal(t, filepath.Join(dest, "out"), result.Path)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, 2, result.Files)

	for _, rel := range []string{bundle.LedgerName, filepath.Join("evidence", "notes.enc")} {
		want, err := os.ReadFile(filepath.Join(hunt, rel))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(result.Path, rel))
		require.NoError(t, err)
		assert.Equal(t, want, got, rel)
	}
}

func TestImport_EmptyEvidenceDirSurvives(t *testing.T) {
	hunt := makeHunt(t)
	require.NoError(t, os.Remove(filepath.Join(hunt, "evidence", "notes.enc")))

	out := filepath.Join(t.TempDir(), "empty.osb")
	_, err := bundle.Export(hunt, out)
	require.NoError(t, err)

	result, err := bundle.Import(out, t.TempDir())
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(result.Path, "evidence"))
}

func TestImport_ExistingCaseUntouched(t *testing.T) {
	hunt := makeHunt(t)
	out := filepath.Join(t.TempDir(), "out.bundle")
	_, err := bundle.Export(hunt, out)
	require.NoError(t, err)

	dest := t.TempDir()
	existing := filepath.Join(dest, "out")
	require.NoError(t, os.MkdirAll(existing, 0700))
	marker := filepath.Join(existing, "keep.txt")
	require.NoError(t, os.WriteFile(marker, []byte("mine"), 0600))

	_, err = bundle.Import(out, dest)
	assert.ErrorIs(t, err, kerrors.ErrCaseAlreadyExists)

	got, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(got))
	assert.NoFileExists(t, filepath.Join(existing, bundle.LedgerName))
}

func TestImport_ZipSlipEntriesSkipped(t *testing.T) {
	base := t.TempDir()
	dest := filepath.Join(base, "vault")
	archive := filepath.Join(base, "evil.zip")

	writeArchive(t, archive, []rawEntry{
		{name: "hunt.db", body: "ledger"},
		{name: "../escape.txt", body: "pwned"},
		{name: "evidence/../../../escape2.txt", body: "pwned"},
		{name: "/etc/evil.txt", body: "pwned"},
		{name: `..\windows.txt`, body: "pwned"},
		{name: "C:/evil.txt", body: "pwned"},
		{name: "evidence/link", body: "/etc/passwd", mode: os.ModeSymlink | 0777},
		{name: "evidence/ok.enc", body: "cipher"},
	})

	result, err := bundle.Import(archive, dest)
	require.NoError(t, err)
	assert.Len(t, result.Skipped, 6)
	assert.Equal(t, 2, result.Files)

	assert.NoFileExists(t, filepath.Join(base, "escape.txt"))
	assert.NoFileExists(t, filepath.Join(dest, "escape.txt"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(base), "escape2.txt"))
	assert.NoFileExists(t, filepath.Join(result.Path, "evidence", "link"))
	assert.FileExists(t, filepath.Join(result.Path, "evidence", "ok.enc"))

	// Only the new hunt directory may appear under the destination.
	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "evil", entries[0].Name())
}

func TestImport_MissingLedgerLeavesNoCase(t *testing.T) {
	base := t.TempDir()
	dest := filepath.Join(base, "vault")
	archive := filepath.Join(base, "noledger.zip")
	writeArchive(t, archive, []rawEntry{{name: "evidence/a.enc", body: "x"}})

	_, err := bundle.Import(archive, dest)
	assert.ErrorIs(t, err, kerrors.ErrInvalidArchive)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries, "staging directory must be removed")
}

func TestImport_DuplicateEntryFailsClean(t *testing.T) {
	base := t.TempDir()
	dest := filepath.Join(base, "vault")
	archive := filepath.Join(base, "dup.zip")
	writeArchive(t, archive, []rawEntry{
		{name: "hunt.db", body: "first"},
		{name: "hunt.db", body: "second"},
	})

	_, err := bundle.Import(archive, dest)
	assert.ErrorIs(t, err, kerrors.ErrIO)
	assert.NoDirExists(t, filepath.Join(dest, "dup"))
}

func TestImport_NotAnArchive(t *testing.T) {
	base := t.TempDir()
	archive := filepath.Join(base, "junk.osb")
	require.NoError(t, os.WriteFile(archive, []byte("definitely not a zip"), 0600))

	_, err := bundle.Import(archive, filepath.Join(base, "vault"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidArchive)
}

func TestImport_MissingArchive(t *testing.T) {
	_, err := bundle.Import(filepath.Join(t.TempDir(), "gone.osb"), t.TempDir())
	assert.ErrorIs(t, err, kerrors.ErrFileNotFound)
}

func TestImport_UnsafeArchiveName(t *testing.T) {
	base := t.TempDir()
	archive := filepath.Join(base, ".hidden.osb")
	writeArchive(t, archive, []rawEntry{{name: "hunt.db", body: "x"}})

	_, err := bundle.Import(archive, filepath.Join(base, "vault"))
	assert.ErrorIs(t, err, kerrors.ErrInvalidCaseName)
}

func TestInspect_FlagsRejectedEntries(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "preview.osb")
	writeArchive(t, archive, []rawEntry{
		{name: "hunt.db", body: "ledger"},
		{name: "../escape.txt", body: "pwned"},
	})

	manifest, err := bundle.Inspect(archive)
	require.NoError(t, err)
	assert.Equal(t, "preview", manifest.CaseID)
	assert.True(t, manifest.HasLedger)
	require.Len(t, manifest.Entries, 2)
	assert.False(t, manifest.Entries[0].Rejected)
	assert.True(t, manifest.Entries[1].Rejected)
	assert.NotEmpty(t, manifest.Entries[1].Reason)
}
