package dberr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound: no row matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrConflict: uniqueness or foreign-key violation on write.
	ErrConflict = errors.New("conflict")
	// ErrValidation: caller-supplied fields fail a check constraint.
	ErrValidation = errors.New("validation failed")
	// ErrConnection: pool exhausted or database unreachable.
	ErrConnection = errors.New("connection failed")
	// ErrTransient: deadlock/serialization failure; caller may retry.
	ErrTransient = errors.New("transient failure")
)

// Error ties a taxonomy sentinel to the originating storage error.
// errors.Is matches the sentinel, errors.As still reaches the driver error.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Err.Error())
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

func wrap(kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

func NotFound(err error) error   { return wrap(ErrNotFound, err) }
func Conflict(err error) error   { return wrap(ErrConflict, err) }
func Validation(err error) error { return wrap(ErrValidation, err) }

// Translate maps a storage-layer error onto the repository error taxonomy.
// Errors that are already classified pass through unchanged; unclassifiable
// errors are returned as-is so nothing is ever swallowed.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return wrap(ErrConflict, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return wrap(ErrConnection, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return wrap(ErrConnection, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return wrap(ErrConflict, err)
		case "23503": // foreign_key_violation
			return wrap(ErrConflict, err)
		case "23514", "23502", "22P02", "22001", "22003":
			return wrap(ErrValidation, err)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return wrap(ErrTransient, err)
		case "53300", "57P01", "57P02", "57P03":
			return wrap(ErrConnection, err)
		}
		if strings.HasPrefix(pgErr.Code, "08") { // connection exception class
			return wrap(ErrConnection, err)
		}
	}
	return err
}
