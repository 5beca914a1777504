package rowstore

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the identified row doesn't exist.
var ErrNotFound = errors.New("row not found")

// OpError reports a failed backend operation against a table. It is the
// single error kind surfaced by every Store implementation; callers that
// care about missing rows check errors.Is(err, ErrNotFound).
type OpError struct {
	Table string
	Op    string
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// NewOpError wraps err with the table and operation that produced it.
func NewOpError(table, op string, err error) *OpError {
	return &OpError{Table: table, Op: op, Err: err}
}
