package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the target record does not exist. For lookups this
// is a valid "no result" outcome; for mutations it aborts before any write.
var ErrNotFound = errors.New("record not found")

// ErrUnavailable indicates the backing store could not be reached.
var ErrUnavailable = errors.New("backing store unavailable")

// ConstraintError reports a write that was expected to affect exactly one
// row but affected none. Inside a transaction it triggers a full rollback.
type ConstraintError struct {
	Table string
	Op    string
	Key   int
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s %s affected no rows for id %d", e.Op, e.Table, e.Key)
}

// ValidationError reports caller-supplied fields that fail format checks.
// It is returned before any store access happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
