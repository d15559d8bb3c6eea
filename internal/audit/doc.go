// Package audit provides the audit trail of vault operations.
//
// Every operation that changes the vault (unlock, hunt creation, evidence
// ingestion, export, import, etc.) is recorded in an append-only log under
// the application root. It lets an investigator reconstruct who touched a
// case and when.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<app root>/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - OS user and host
//   - Operation name
//   - Operation-specific details (case id, evidence ids, archive paths, etc.)
//
// Entries never contain key material, passwords or plaintext.
//
// # Usage
//
// Create an entry with the actor pre-populated:
//
//	entry := audit.LogWithUser("evidence_add")
//	entry.CaseID = huntID
//	audit.Log(entry)
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit
