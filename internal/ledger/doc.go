// Package ledger is the per-hunt evidence ledger: a SQLite database
// (modernc.org/sqlite, no cgo) recording, for every encrypted evidence
// file, its description, its path relative to the hunt root and the nonce
// needed to decrypt it.
//
// Evidence rows are append-only. Triggers reject UPDATE and DELETE, so a
// (file_path, nonce) pair can never be rebound once written. The ledger
// also keeps a singleton info row with the hunt's display metadata.
//
// The database runs in WAL mode with synchronous=FULL: an insert is durable
// once InsertEvidence returns, and readers are not blocked by the writer.
package ledger
