package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad    Phase = "load"    // module loading and compilation
	PhaseRuntime Phase = "runtime" // instantiation and invocation
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidData Kind = "invalid_data"
	KindNotFound    Kind = "not_found"
	KindNotLoaded   Kind = "not_loaded"
	KindAllocation  Kind = "allocation"
	KindCallFailed  Kind = "call_failed"
	KindCanceled    Kind = "canceled"
)

// Error is the structured error type used throughout the shell
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NotLoaded reports a run attempted before the module reference exists
func NotLoaded() *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindNotLoaded,
		Detail: "uasat library not loaded",
	}
}

// AllocationFailed creates a guest allocation failure error
func AllocationFailed(size uint32, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes in guest memory", size),
		Cause:  cause,
	}
}

// CallFailed wraps a fault raised inside the computation entry point
func CallFailed(fn string, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindCallFailed,
		Detail: fmt.Sprintf("call %s", fn),
		Cause:  cause,
	}
}

// Canceled reports a run aborted by the user
func Canceled(fn string, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindCanceled,
		Detail: fmt.Sprintf("call %s canceled", fn),
		Cause:  cause,
	}
}
