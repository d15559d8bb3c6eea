package hunts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/ledger"
	"github.com/open-season/openseason/internal/utils"
)

// EvidenceDir is the subdirectory holding encrypted payloads.
const EvidenceDir = "evidence"

// openLedger is swapped in tests to simulate ledger failures.
var openLedger = ledger.Open

// Hunt is a case directory together with its ledger metadata.
type Hunt struct {
	ID            string
	Path          string
	Name          string
	Status        string
	CreatedAt     time.Time
	EvidenceCount int
}

// FailedHunt is a directory under the hunts root that could not be read.
type FailedHunt struct {
	ID  string
	Err error
}

// ListResult holds every readable hunt plus those that could not be read.
type ListResult struct {
	Hunts  []Hunt
	Failed []FailedHunt
}

// NormalizeName trims a display name and puts it in Unicode NFC, so that
// the same name typed on different platforms compares equal.
func NormalizeName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%w: name must not be empty", kerrors.ErrInvalidCaseName)
	}
	return name, nil
}

// Create makes a new hunt with a generated id under root.
func Create(ctx context.Context, root, name string) (*Hunt, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("%w: create hunts directory: %w", kerrors.ErrIO, err)
	}

	id := uuid.New().String()
	dir := filepath.Join(root, id)
	if err := os.Mkdir(dir, 0700); err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrCaseAlreadyExists, id)
		}
		return nil, fmt.Errorf("%w: create hunt directory: %w", kerrors.ErrIO, err)
	}

	hunt, err := initHunt(ctx, dir, id, name)
	if err != nil {
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			return nil, errors.Join(err, fmt.Errorf("remove partial hunt %s: %w", dir, rmErr))
		}
		return nil, err
	}
	return hunt, nil
}

func initHunt(ctx context.Context, dir, id, name string) (*Hunt, error) {
	if err := os.Mkdir(filepath.Join(dir, EvidenceDir), 0700); err != nil {
		return nil, fmt.Errorf("%w: create evidence directory: %w", kerrors.ErrIO, err)
	}

	l, err := openLedger(ctx, filepath.Join(dir, ledger.FileName))
	if err != nil {
		return nil, fmt.Errorf("initialize ledger: %w", err)
	}
	defer l.Close()

	if err := l.RenameCase(ctx, name); err != nil {
		return nil, err
	}
	info, err := l.Info(ctx)
	if err != nil {
		return nil, err
	}

	return &Hunt{
		ID:        id,
		Path:      dir,
		Name:      info.Name,
		Status:    info.Status,
		CreatedAt: info.CreatedAt,
	}, nil
}

// Resolve returns the directory of hunt id under root, or ErrCaseNotFound.
func Resolve(root, id string) (string, error) {
	if err := utils.ValidateSegment(id); err != nil {
		return "", fmt.Errorf("%w: %q: %v", kerrors.ErrCaseNotFound, id, err)
	}

	dir := filepath.Join(root, id)
	ok, err := utils.DirExists(dir)
	if err != nil {
		return "", fmt.Errorf("%w: stat hunt: %w", kerrors.ErrIO, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", kerrors.ErrCaseNotFound, id)
	}
	return dir, nil
}

// OpenLedger resolves hunt id and opens its ledger. A hunt directory
// without a ledger is reported as ErrInvalidArchive rather than silently
// given a fresh one.
func OpenLedger(ctx context.Context, root, id string) (*ledger.Ledger, string, error) {
	dir, err := Resolve(root, id)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(dir, ledger.FileName)
	ok, err := utils.FileExists(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: stat ledger: %w", kerrors.ErrIO, err)
	}
	if !ok {
		return nil, "", fmt.Errorf("%w: hunt %s has no ledger", kerrors.ErrInvalidArchive, id)
	}

	l, err := openLedger(ctx, path)
	if err != nil {
		return nil, "", err
	}
	return l, dir, nil
}

// Get loads a single hunt.
func Get(ctx context.Context, root, id string) (*Hunt, error) {
	l, dir, err := OpenLedger(ctx, root, id)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	return describe(ctx, l, id, dir)
}

// List reads every hunt under root. Hidden entries (such as import staging
// directories) and plain files are ignored. A missing root yields an empty
// result.
func List(ctx context.Context, root string) (*ListResult, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return &ListResult{}, nil
		}
		return nil, fmt.Errorf("%w: read hunts directory: %w", kerrors.ErrIO, err)
	}

	result := &ListResult{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		h, err := Get(ctx, root, entry.Name())
		if err != nil {
			result.Failed = append(result.Failed, FailedHunt{ID: entry.Name(), Err: err})
			continue
		}
		result.Hunts = append(result.Hunts, *h)
	}

	sort.SliceStable(result.Hunts, func(i, j int) bool {
		a, b := result.Hunts[i], result.Hunts[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return result, nil
}

// Rename changes a hunt's display name. The id and directory never change.
func Rename(ctx context.Context, root, id, name string) (*Hunt, error) {
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}

	l, dir, err := OpenLedger(ctx, root, id)
	if err != nil {
		return nil, err
	}
	defer l.Close()

	if err := l.RenameCase(ctx, name); err != nil {
		return nil, err
	}
	return describe(ctx, l, id, dir)
}

func describe(ctx context.Context, l *ledger.Ledger, id, dir string) (*Hunt, error) {
	info, err := l.Info(ctx)
	if err != nil {
		return nil, err
	}
	count, err := l.CountEvidence(ctx)
	if err != nil {
		return nil, err
	}

	return &Hunt{
		ID:            id,
		Path:          dir,
		Name:          info.Name,
		Status:        info.Status,
		CreatedAt:     info.CreatedAt,
		EvidenceCount: count,
	}, nil
}
