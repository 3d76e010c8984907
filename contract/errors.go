// Package contract provides the failure kinds raised by precondition,
// postcondition and invariant checks across names and filesystem.
//
// Callers match a kind with errors.Is:
//
//	if errors.Is(err, contract.ErrInvalidState) { ... }
package contract

import (
	"errors"
	"fmt"
)

// Kind classifies a contract failure.
type Kind int

const (
	// IllegalArgument indicates the caller supplied invalid input.
	// Always raised before any mutation happens.
	IllegalArgument Kind = iota + 1

	// InvalidState indicates an object invariant does not hold, or the
	// object is in a state that does not permit the operation.
	InvalidState

	// MethodFailed indicates a postcondition did not hold after an
	// operation that should have succeeded.
	MethodFailed

	// ServiceFailure wraps lower-level failures at a service boundary
	// such as tree search.
	ServiceFailure
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case IllegalArgument:
		return "IllegalArgument"
	case InvalidState:
		return "InvalidState"
	case MethodFailed:
		return "MethodFailed"
	case ServiceFailure:
		return "ServiceFailure"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error is a contract failure of a given Kind with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Sentinels for errors.Is matching. They carry no message.
var (
	ErrIllegalArgument = &Error{Kind: IllegalArgument}
	ErrInvalidState    = &Error{Kind: InvalidState}
	ErrMethodFailed    = &Error{Kind: MethodFailed}
	ErrServiceFailure  = &Error{Kind: ServiceFailure}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the sentinel of the same kind. Only the
// kind is compared, so a ServiceFailure wrapping an InvalidState matches
// both ErrServiceFailure (here) and ErrInvalidState (through Unwrap).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Cause == nil && t.Kind == e.Kind
}

// New returns a contract failure of kind k.
func New(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the outermost contract failure in err's chain.
func KindOf(err error) (Kind, bool) {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

// CheckArgument returns an IllegalArgument failure unless cond holds.
func CheckArgument(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return New(IllegalArgument, format, args...)
}

// CheckState returns an InvalidState failure unless cond holds.
func CheckState(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return New(InvalidState, format, args...)
}

// CheckResult returns a MethodFailed failure unless cond holds.
func CheckResult(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return New(MethodFailed, format, args...)
}

// Escalate wraps err as a ServiceFailure carrying it as the cause.
// A ServiceFailure is returned unchanged and nil stays nil.
func Escalate(err error, message string) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Kind == ServiceFailure {
		return err
	}
	return &Error{Kind: ServiceFailure, Message: message, Cause: err}
}
