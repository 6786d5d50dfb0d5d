package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvariantViolation reports internal state that can only come from a
// programming error. The engine panics with it and never recovers.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated in %s: %s", e.Op, e.Detail)
}

func violation(op, format string, args ...interface{}) error {
	return errors.WithStack(&InvariantViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
