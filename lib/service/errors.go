package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Persistence failure kinds, for logs and error tracking only.
const (
	KindForeignKey   = "foreign_key"
	KindInvalidInput = "invalid_input"
	KindNotFound     = "not_found"
	KindTimeout      = "timeout"
	KindCanceled     = "canceled"
	KindInternal     = "internal"
)

const (
	CreateFailedMessage = "Database Error: Failed to Create Invoice."
	UpdateFailedMessage = "Database Error: Failed to Update Invoice."
	DeleteFailedMessage = "Database Error: Failed to Delete Invoice."
	DeletedMessage      = "Deleted Invoice."
)

// ActionError is a failed store call: Kind classifies the cause, Message is
// safe to show to the user.
type ActionError struct {
	Kind    string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Message, e.Kind, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func newActionError(message string, err error) *ActionError {
	return &ActionError{Kind: Kind(err), Message: message, Err: err}
}

// Kind classifies a store error.
func Kind(err error) string {
	var pgErr pgdriver.Error
	var sqliteErr sqlite3.Error
	switch {
	case err == nil:
		return ""

	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout

	case errors.Is(err, context.Canceled):
		return KindCanceled

	case errors.Is(err, sql.ErrNoRows):
		return KindNotFound

	case errors.As(err, &pgErr):
		return pgKind(pgErr)

	case errors.As(err, &sqliteErr):
		return sqliteKind(sqliteErr)

	default:
		return KindInternal
	}
}

func pgKind(err pgdriver.Error) string {
	switch code := err.Field('C'); {
	case code == "23503":
		return KindForeignKey
	case code == "57014":
		// query_canceled, raised when statement_timeout fires
		return KindTimeout
	case len(code) == 5 && (code[:2] == "22" || code == "23514"):
		// data exception class, check_violation
		return KindInvalidInput
	default:
		return KindInternal
	}
}

func sqliteKind(err sqlite3.Error) string {
	switch err.ExtendedCode {
	case sqlite3.ErrConstraintForeignKey:
		return KindForeignKey
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintNotNull:
		return KindInvalidInput
	}
	if err.Code == sqlite3.ErrBusy || err.Code == sqlite3.ErrLocked {
		return KindTimeout
	}
	return KindInternal
}

// IsNotFound reports whether a lookup failed because no row matches. An id
// the database cannot even parse counts as missing.
func IsNotFound(err error) bool {
	switch Kind(err) {
	case KindNotFound, KindInvalidInput:
		return true
	}
	return false
}
