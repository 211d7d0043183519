package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "compile failed",
			},
			contains: []string{"[load]", "invalid_data", "compile failed"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRuntime,
				Kind:  KindNotLoaded,
			},
			contains: []string{"[runtime]", "not_loaded"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseRuntime,
				Kind:   KindCallFailed,
				Detail: "call test",
				Cause:  errors.New("wasm trap: unreachable"),
			},
			contains: []string{"[runtime]", "call_failed", "call test", "caused by", "unreachable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := CallFailed("test", errors.New("trap"))

	if !errors.Is(err, &Error{Phase: PhaseRuntime, Kind: KindCallFailed}) {
		t.Error("expected Is to match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseLoad, Kind: KindCallFailed}) {
		t.Error("expected Is to reject mismatched phase")
	}
	if errors.Is(err, &Error{Phase: PhaseRuntime, Kind: KindCanceled}) {
		t.Error("expected Is to reject mismatched kind")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("read failed")
	err := Load("read wasm file", cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
}

func TestNotLoaded(t *testing.T) {
	err := NotLoaded()
	if err.Kind != KindNotLoaded {
		t.Errorf("Kind = %q, want %q", err.Kind, KindNotLoaded)
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("Error() = %q, want mention of not loaded", err.Error())
	}
}
