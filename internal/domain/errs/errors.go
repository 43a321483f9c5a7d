// Package errs holds the failure taxonomy shared by use cases and record stores.
package errs

import (
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

var (
	// ErrInput marks malformed or missing fields in a feed row.
	ErrInput = crerr.New("invalid input")
	// ErrReferential marks a geometric or membership invariant violation.
	ErrReferential = crerr.New("referential invariant violated")
	// ErrDuplicateKey marks a create that collides with a unique key.
	ErrDuplicateKey = crerr.New("duplicate key")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = crerr.New("resource not found")
	// ErrTransaction marks a multi-row mutation that was rolled back.
	ErrTransaction = crerr.New("transaction aborted")
)

func Input(format string, args ...any) error {
	return mark(ErrInput, format, args...)
}

func Referential(format string, args ...any) error {
	return mark(ErrReferential, format, args...)
}

func DuplicateKey(format string, args ...any) error {
	return mark(ErrDuplicateKey, format, args...)
}

func NotFound(format string, args ...any) error {
	return mark(ErrNotFound, format, args...)
}

// Transaction wraps the cause of an aborted unit of work. The cause stays
// reachable through errors.Is, so a rolled back referential violation still
// matches ErrReferential.
func Transaction(cause error, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if cause == nil {
		return crerr.WithStackDepth(fmt.Errorf("%w: %s", ErrTransaction, msg), 1)
	}
	return crerr.WithStackDepth(fmt.Errorf("%w: %s: %w", ErrTransaction, msg, cause), 1)
}

// Kind names the taxonomy bucket of err for logs and reports.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrReferential):
		return "referential"
	case errors.Is(err, ErrDuplicateKey):
		return "duplicate_key"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInput):
		return "input"
	case errors.Is(err, ErrTransaction):
		return "transaction"
	default:
		return "internal"
	}
}

func mark(sentinel error, format string, args ...any) error {
	return crerr.WithStackDepth(fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)), 2)
}
