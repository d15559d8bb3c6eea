package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	kerrors "github.com/open-season/openseason/internal/errors"
	"github.com/open-season/openseason/internal/vault"

	_ "modernc.org/sqlite" // SQLite driver
)

// FileName is the ledger's file name inside a hunt directory.
const FileName = "hunt.db"

// sqliteTimeLayout is the format of CURRENT_TIMESTAMP.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// Ledger wraps the SQLite handle of a single hunt.
type Ledger struct {
	sql  *sql.DB
	path string
}

// Evidence is one immutable ledger row.
type Evidence struct {
	ID          int64
	Description string
	FilePath    string
	Nonce       []byte
	CreatedAt   time.Time
}

// Info is the hunt's singleton display row.
type Info struct {
	Name      string
	CreatedAt time.Time
	Status    string
}

// Open opens or creates the ledger at path and ensures the schema exists.
// Calling it again on an existing ledger changes nothing.
func Open(ctx context.Context, path string) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("ledger path is required")
	}

	source, err := dsn(path)
	if err != nil {
		return nil, err
	}
	handle, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("%w: ping ledger %s: %w", kerrors.ErrIO, path, err)
	}

	if err := ensureSchema(ctx, handle); err != nil {
		handle.Close()
		return nil, err
	}

	if err := ensurePerm0600(path); err != nil {
		handle.Close()
		return nil, err
	}

	return &Ledger{sql: handle, path: path}, nil
}

// dsn builds a file URI for path. The path is percent-escaped so that '?',
// '#' and '%' in a directory name stay part of the file name.
func dsn(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve ledger path: %w", err)
	}
	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		// C:/x becomes file:///C:/x
		slashed = "/" + slashed
	}
	u := url.URL{
		Scheme:   "file",
		Path:     slashed,
		RawQuery: "_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
	}
	return u.String(), nil
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	if l == nil || l.sql == nil {
		return nil
	}
	return l.sql.Close()
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// InsertEvidence appends one record and returns its identifier. filePath
// must be relative to the hunt root; nonce must be the exact nonce that
// produced the ciphertext stored there.
func (l *Ledger) InsertEvidence(ctx context.Context, description, filePath string, nonce []byte) (int64, error) {
	if !filepath.IsLocal(filepath.FromSlash(filePath)) {
		return 0, fmt.Errorf("evidence path must be relative to the hunt root: %q", filePath)
	}
	if len(nonce) != vault.NonceSize {
		return 0, fmt.Errorf("nonce must be %d bytes, got %d", vault.NonceSize, len(nonce))
	}

	res, err := l.sql.ExecContext(ctx,
		`INSERT INTO evidence (description, file_path, nonce) VALUES (?, ?, ?)`,
		description, filepath.ToSlash(filePath), nonce,
	)
	if err != nil {
		return 0, fmt.Errorf("insert evidence: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("fetch insert id: %w", err)
	}
	return id, nil
}

// Evidence returns the row with the given id, or ErrEvidenceNotFound.
func (l *Ledger) Evidence(ctx context.Context, id int64) (*Evidence, error) {
	row := l.sql.QueryRowContext(ctx,
		`SELECT id, description, file_path, nonce, created_at FROM evidence WHERE id = ?`, id)

	e, err := scanEvidence(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %d", kerrors.ErrEvidenceNotFound, id)
		}
		return nil, err
	}
	return e, nil
}

// ListEvidence returns every row in insertion order.
func (l *Ledger) ListEvidence(ctx context.Context) ([]Evidence, error) {
	rows, err := l.sql.QueryContext(ctx,
		`SELECT id, description, file_path, nonce, created_at FROM evidence ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select evidence: %w", err)
	}
	defer rows.Close()

	var results []Evidence
	for rows.Next() {
		e, err := scanEvidence(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence rows: %w", err)
	}
	return results, nil
}

// CountEvidence returns the number of evidence rows.
func (l *Ledger) CountEvidence(ctx context.Context) (int, error) {
	var n int
	if err := l.sql.QueryRowContext(ctx, `SELECT COUNT(*) FROM evidence`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count evidence: %w", err)
	}
	return n, nil
}

// Info returns the singleton info row.
func (l *Ledger) Info(ctx context.Context) (*Info, error) {
	var (
		info    Info
		created string
	)
	err := l.sql.QueryRowContext(ctx,
		`SELECT name, created_at, status FROM info WHERE id = 1`,
	).Scan(&info.Name, &created, &info.Status)
	if err != nil {
		return nil, fmt.Errorf("select info: %w", err)
	}

	info.CreatedAt, err = parseTimestamp(created)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// RenameCase updates the display name only.
func (l *Ledger) RenameCase(ctx context.Context, name string) error {
	if _, err := l.sql.ExecContext(ctx, `UPDATE info SET name = ? WHERE id = 1`, name); err != nil {
		return fmt.Errorf("rename case: %w", err)
	}
	return nil
}

// SetStatus updates the hunt's status label (e.g. "active", "closed").
func (l *Ledger) SetStatus(ctx context.Context, status string) error {
	if _, err := l.sql.ExecContext(ctx, `UPDATE info SET status = ? WHERE id = 1`, status); err != nil {
		return fmt.Errorf("set case status: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvidence(r rowScanner) (*Evidence, error) {
	var (
		e       Evidence
		created string
	)
	if err := r.Scan(&e.ID, &e.Description, &e.FilePath, &e.Nonce, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan evidence row: %w", err)
	}

	var err error
	e.CreatedAt, err = parseTimestamp(created)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(sqliteTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

// ensurePerm0600 restricts the ledger to its owner on Unix systems.
func ensurePerm0600(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, 0600); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: chmod ledger: %w", kerrors.ErrIO, err)
	}
	return nil
}
