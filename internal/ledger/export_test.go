package ledger

import "context"

// Tamper runs raw SQL against the ledger. Tests use it to check that the
// immutability triggers hold.
func (l *Ledger) Tamper(ctx context.Context, query string, args ...any) error {
	_, err := l.sql.ExecContext(ctx, query, args...)
	return err
}

// DSN exposes the connection string builder.
var DSN = dsn
