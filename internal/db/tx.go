package db

import (
	"database/sql"
)

// WithTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// NullInt64Or returns the value, or def if NULL.
func NullInt64Or(n sql.NullInt64, def int64) int64 {
	if !n.Valid {
		return def
	}
	return n.Int64
}

// NullInt64Ptr converts a sql.NullInt64 to *int64 (nil if NULL).
func NullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// NullStringOr returns the string, or def if NULL.
func NullStringOr(n sql.NullString, def string) string {
	if !n.Valid {
		return def
	}
	return n.String
}

// NullableString maps "" to NULL for inserts.
func NullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
