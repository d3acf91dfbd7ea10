package errors

// SQLite helpers for classifying driver errors from modernc.org/sqlite.
// The pure-Go driver surfaces the SQLite result text in the error string, so
// classification matches on the stable constraint/busy markers

import (
	"context"
	"database/sql"
	stderrs "errors"
	"strings"
)

// IsNoRows reports whether err is the empty-result sentinel
func IsNoRows(err error) bool { return stderrs.Is(err, sql.ErrNoRows) }

// IsUniqueViolation reports whether err is a unique or primary key constraint failure
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE constraint failed") ||
		strings.Contains(s, "PRIMARY KEY constraint failed")
}

// IsBusy reports whether err is a transient lock contention failure
func IsBusy(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "database is locked") || strings.Contains(s, "database table is locked")
}

// IsRetryable reports whether a retry may succeed
// busy/locked are retryable; cancellations and constraint failures are not
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if e, ok := As(err); ok && e.code == ErrorCodeUnavailable {
		return true
	}
	return IsBusy(err)
}

// MapSQLite converts a raw driver error into a project *Error
// callers may attach op/field afterwards
func MapSQLite(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case IsNoRows(err):
		return Wrap(err, ErrorCodeNotFound, msg)
	case IsUniqueViolation(err):
		return Wrap(err, ErrorCodeDuplicateKey, msg)
	case IsBusy(err):
		return Wrap(err, ErrorCodeUnavailable, msg)
	default:
		return Wrap(err, ErrorCodeDB, msg)
	}
}
