package repository

import (
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrDuplicate reports a uniqueness violation (username/email/mobile on users,
// the open-loan pair on borrows).
var ErrDuplicate = errors.New("duplicate key")

// ErrNotFound reports that the referenced row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports malformed or missing input. It is user-correctable
// and maps to a 400 at the HTTP boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}
