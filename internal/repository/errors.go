package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Every error returned by a repository matches exactly one of
// them with errors.Is.
var (
	ErrConnectionUnavailable = errors.New("connection unavailable")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNotFound              = errors.New("not found")
	ErrConstraintViolation   = errors.New("constraint violation")
	ErrExecution             = errors.New("execution failure")
)

// SQLSTATE codes reported as ErrConstraintViolation.
const (
	notNullViolation    = "23502"
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	checkViolation      = "23514"
)

// Error carries the failed operation, the key values it was called with and
// the underlying cause.
type Error struct {
	Op         string
	Key        string
	Kind       error
	Constraint string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Key != "" {
		b.WriteString(" [")
		b.WriteString(e.Key)
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Constraint != "" {
		b.WriteString(" on ")
		b.WriteString(e.Constraint)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func invalidArgument(op, key, msg string) error {
	return &Error{Op: op, Key: key, Kind: ErrInvalidArgument, Err: errors.New(msg)}
}

// NotFound reports that op found no row for key.
func NotFound(op, key string) error {
	return &Error{Op: op, Key: key, Kind: ErrNotFound}
}

func connectionUnavailable(op, key string, err error) error {
	return &Error{Op: op, Key: key, Kind: ErrConnectionUnavailable, Err: err}
}

// classify turns a driver error into a repository error. Errors that are
// already classified pass through untouched.
func classify(op, key string, err error) error {
	if err == nil {
		return nil
	}

	var repoErr *Error
	if errors.As(err, &repoErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation, foreignKeyViolation, checkViolation, notNullViolation:
			return &Error{Op: op, Key: key, Kind: ErrConstraintViolation, Constraint: pgErr.ConstraintName, Err: err}
		}
	}
	return &Error{Op: op, Key: key, Kind: ErrExecution, Err: err}
}

func idKey(id int64) string {
	return fmt.Sprintf("id=%d", id)
}
