package meistercharts

import (
	"errors"
	"fmt"
)

var (
	// ErrTransformStackOverflow is raised by Save when the stack is full,
	// which means a Restore is missing somewhere.
	ErrTransformStackOverflow = errors.New("transform stack overflow")
	// ErrTransformStackUnderflow is raised by Restore without a matching Save.
	ErrTransformStackUnderflow = errors.New("transform stack underflow")
	// ErrUnbalancedTransform is raised when a paint pass returns with a
	// different stack depth than it started with.
	ErrUnbalancedTransform = errors.New("unbalanced transform stack")
	// ErrDisposed is raised when a disposed render loop is ticked.
	ErrDisposed = errors.New("render loop disposed")
	// ErrAlreadyDisposed is raised by a second Dispose call.
	ErrAlreadyDisposed = errors.New("already disposed")
)

// UsageError describes a violated invariant. It is always delivered through
// panic: the caller has a bug, and continuing would desynchronise every
// subsequent frame.
type UsageError struct {
	Op     string
	Err    error
	Detail string
}

func (e *UsageError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("meistercharts: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("meistercharts: %s: %v (%s)", e.Op, e.Err, e.Detail)
}

func (e *UsageError) Unwrap() error { return e.Err }

// usagePanic panics with a *UsageError.
func usagePanic(op string, err error, format string, args ...any) {
	detail := ""
	if format != "" {
		detail = fmt.Sprintf(format, args...)
	}
	panic(&UsageError{Op: op, Err: err, Detail: detail})
}
