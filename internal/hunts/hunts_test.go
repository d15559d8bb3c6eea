package hunts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_LaysOutHunt(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "hunts")

	h, err := Create(ctx, root, "  Harbor Street  ")
	require.NoError(t, err)

	assert.Equal(t, "Harbor Street", h.Name)
	assert.Equal(t, "active", h.Status)
	assert.Equal(t, filepath.Join(root, h.ID), h.Path)
	assert.DirExists(t, filepath.Join(h.Path, EvidenceDir))
	assert.FileExists(t, filepath.Join(h.Path, ledger.FileName))
	assert.Len(t, h.ID, 36)
}

func TestCreate_EmptyName(t *testing.T) {
	root := t.TempDir()

	_, err := Create(context.Background(), root, "   ")
	assert.ErrorIs(t, err, kerrors.ErrInvalidCaseName)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCreate_NormalizesToNFC(t *testing.T) {
	// "e" followed by a combining acute accent.
	h, err := Create(context.Background(), t.TempDir(), "Cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", h.Name)
}

func TestCreate_RollsBackOnLedgerFailure(t *testing.T) {
	root := t.TempDir()

	original := openLedger
	openLedger = func(context.Context, string) (*ledger.Ledger, error) {
		return nil, errors.New("disk full")
	}
	t.Cleanup(func() { openLedger = original })

	_, err := Create(context.Background(), root, "Doomed")
	require.Error(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial hunt directory may remain")
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	h, err := Create(ctx, root, "Case")
	require.NoError(t, err)

	dir, err := Resolve(root, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.Path, dir)

	for _, id := range []string{"missing", "", "..", "../etc", ".import-x"} {
		_, err := Resolve(root, id)
		assert.ErrorIs(t, err, kerrors.ErrCaseNotFound, id)
	}
}

func TestList_ReportsFailuresSeparately(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	first, err := Create(ctx, root, "First")
	require.NoError(t, err)
	second, err := Create(ctx, root, "Second")
	require.NoError(t, err)

	// A directory without a ledger, a staging directory and a stray file.
	require.NoError(t, os.Mkdir(filepath.Join(root, "broken"), 0700))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".import-x-123"), 0700))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0600))

	result, err := List(ctx, root)
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, h := range result.Hunts {
		ids[h.ID] = true
	}
	assert.Len(t, result.Hunts, 2)
	assert.True(t, ids[first.ID])
	assert.True(t, ids[second.ID])

	require.Len(t, result.Failed, 1)
	assert.Equal(t, "broken", result.Failed[0].ID)
	assert.ErrorIs(t, result.Failed[0].Err, kerrors.ErrInvalidArchive)
	assert.NoFileExists(t, filepath.Join(root, "broken", ledger.FileName), "listing must not create ledgers")
}

func TestList_MissingRoot(t *testing.T) {
	result, err := List(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, result.Hunts)
	assert.Empty(t, result.Failed)
}

func TestRename_KeepsID(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	h, err := Create(ctx, root, "Old")
	require.NoError(t, err)

	renamed, err := Rename(ctx, root, h.ID, "New")
	require.NoError(t, err)
	assert.Equal(t, h.ID, renamed.ID)
	assert.Equal(t, "New", renamed.Name)

	got, err := Get(ctx, root, h.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)

	_, err = Rename(ctx, root, h.ID, "")
	assert.ErrorIs(t, err, kerrors.ErrInvalidCaseName)
	_, err = Rename(ctx, root, "missing", "X")
	assert.ErrorIs(t, err, kerrors.ErrCaseNotFound)
}
