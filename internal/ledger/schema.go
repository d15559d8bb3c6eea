package ledger

import (
	"context"
	"database/sql"
	"fmt"
)

const createEvidenceTable = `
CREATE TABLE IF NOT EXISTS evidence (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	description TEXT    NOT NULL,
	file_path   TEXT    NOT NULL,
	nonce       BLOB    NOT NULL,
	created_at  TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE(file_path, nonce)
);

CREATE TRIGGER IF NOT EXISTS evidence_no_update
BEFORE UPDATE ON evidence
BEGIN
	SELECT RAISE(ABORT, 'evidence rows are immutable');
END;

CREATE TRIGGER IF NOT EXISTS evidence_no_delete
BEFORE DELETE ON evidence
BEGIN
	SELECT RAISE(ABORT, 'evidence rows are immutable');
END;`

const createInfoTable = `
CREATE TABLE IF NOT EXISTS info (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	name       TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	status     TEXT NOT NULL DEFAULT 'active'
);

INSERT OR IGNORE INTO info (id) VALUES (1);`

func ensureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, createEvidenceTable); err != nil {
		return fmt.Errorf("ensure evidence table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, createInfoTable); err != nil {
		return fmt.Errorf("ensure info table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}
