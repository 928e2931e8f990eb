package observe

import (
	"errors"
	"fmt"
)

// Usage errors. They are reported at the call that broke the precondition and
// are never retried.
var (
	ErrNilObservable  = errors.New("observable must not be nil")
	ErrNilListener    = errors.New("listener must not be nil")
	ErrSelfBinding    = errors.New("cannot bind a value to itself")
	ErrBound          = errors.New("a bound value cannot be set")
	ErrAlreadyBound   = errors.New("value is already bound to a different source")
	ErrUnidentifiable = errors.New("value has no identity, use a pointer")
)

// EvaluationError is returned when a binding fails to compute its value.
type EvaluationError struct {
	// Source is the binding that failed.
	Source Observable
	// Err is the error returned by the compute function.
	Err error
}

func (e *EvaluationError) Error() string {
	if s, ok := e.Source.(fmt.Stringer); ok {
		return fmt.Sprintf("binding evaluation failed [%s]: %v", s, e.Err)
	}
	return fmt.Sprintf("binding evaluation failed: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// SyncError is returned when a bidirectional binding could not push a value
// from one side to the other.
type SyncError struct {
	// Source is the cell whose change could not be propagated.
	Source any
	// Target is the cell that rejected the value.
	Target any
	// Err is the error that made the forced write fail.
	Err error
	// RollbackErr is set when restoring the previous value also failed.
	RollbackErr error
	// Unbound reports that the link was removed because the two cells could
	// not be brought back to a consistent state.
	Unbound bool
}

func (e *SyncError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("bidirectional binding failed together with an attempt to restore the source to the previous value, binding removed: %v (restore: %v)", e.Err, e.RollbackErr)
	}
	return fmt.Sprintf("bidirectional binding failed, setting to the previous value: %v", e.Err)
}

func (e *SyncError) Unwrap() []error {
	if e.RollbackErr != nil {
		return []error{e.Err, e.RollbackErr}
	}
	return []error{e.Err}
}

// ConfinementError is returned when a confined value is touched from a
// goroutine other than its owner.
type ConfinementError struct {
	Op     string
	Owner  int64
	Caller int64
}

func (e *ConfinementError) Error() string {
	return fmt.Sprintf("%s: called from goroutine %d, value is confined to goroutine %d", e.Op, e.Caller, e.Owner)
}
