package wip

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal workflow error for diagnostics. Every kind aborts
// the whole command; the distinction only tells the operator whether the
// tree was touched and whether a retry is safe.
type Kind int

const (
	// KindBackend is a non-zero exit (or missing binary) from git or patch.
	// May occur after mutating steps have run; there is no automatic rollback.
	KindBackend Kind = iota
	// KindPrecondition is a failed entry check. The tree is untouched.
	KindPrecondition
	// KindAncestry means local and remote histories have diverged in a way
	// that would lose commits. Reported before any mutation; safe to retry
	// after the operator reconciles history.
	KindAncestry
	// KindNotFound is an expected branch missing.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindAncestry:
		return "ancestry"
	case KindNotFound:
		return "not found"
	default:
		return "backend"
	}
}

// Error is the single fatal error type used throughout the workflows.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // underlying tool error, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg == "" {
			return e.Err.Error()
		}
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Backendf formats a backend-failure error.
func Backendf(format string, args ...any) error {
	return &Error{Kind: KindBackend, Msg: fmt.Sprintf(format, args...)}
}

// Preconditionf formats a precondition-violation error.
func Preconditionf(format string, args ...any) error {
	return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

// Ancestryf formats an ancestry-violation error.
func Ancestryf(format string, args ...any) error {
	return &Error{Kind: KindAncestry, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf formats a missing-branch error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, defaulting to KindBackend for errors
// that did not originate in a workflow (plain tool failures, I/O errors).
func KindOf(err error) Kind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return KindBackend
}

// wrap attaches context and a kind to an underlying error, preserving the
// original Kind if err is already a workflow error.
func wrap(err error, format string, args ...any) error {
	var we *Error
	if errors.As(err, &we) {
		return &Error{Kind: we.Kind, Msg: fmt.Sprintf(format, args...), Err: err}
	}
	return &Error{Kind: KindBackend, Msg: fmt.Sprintf(format, args...), Err: err}
}
