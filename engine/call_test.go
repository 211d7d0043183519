package engine

import (
	"context"
	goerrors "errors"
	"testing"

	"github.com/uasat/shell/errors"
)

func TestInstance_Call_RoundTrip(t *testing.T) {
	ctx := context.Background()

	e, err := New(ctx, Config{})
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	mod, err := e.Load(ctx, echoModule)
	if err != nil {
		t.Fatalf("load echo module: %v", err)
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	defer inst.Close(ctx)

	tests := []string{
		"1+1",
		"",
		"p(x,y) = p(y,x)",
		"∀x∃y: x∧y = ⊥", // multi-byte input survives the memory round-trip
	}

	for _, input := range tests {
		out, err := inst.Call(ctx, input)
		if err != nil {
			t.Fatalf("Call(%q): %v", input, err)
		}
		if out != input {
			t.Errorf("Call(%q) = %q, want echo", input, out)
		}
	}
}

func TestRunner_CallRoundTrip(t *testing.T) {
	ctx := context.Background()

	e, err := New(ctx, Config{})
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	mod, err := e.Load(ctx, echoModule)
	if err != nil {
		t.Fatalf("load echo module: %v", err)
	}

	r := NewRunner(mod)
	defer r.Close(ctx)

	// Repeated calls reuse the lazily created instance.
	for i := 0; i < 3; i++ {
		out, err := r.Call(ctx, "1+1")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if out != "1+1" {
			t.Errorf("call %d = %q, want %q", i, out, "1+1")
		}
	}
	if r.inst == nil {
		t.Error("runner dropped its instance after successful calls")
	}
}

func TestInstance_Call_VoidAllocator(t *testing.T) {
	ctx := context.Background()

	e, err := New(ctx, Config{})
	if err != nil {
		t.Fatalf("create engine: %v", err)
	}
	defer e.Close(ctx)

	mod, err := e.Load(ctx, voidAllocModule)
	if err != nil {
		t.Fatalf("load module: %v", err)
	}

	inst, err := mod.Instantiate(ctx)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	defer inst.Close(ctx)

	// A resultless allocator must surface as an error, not a panic.
	_, err = inst.Call(ctx, "x")
	if err == nil {
		t.Fatal("expected error from allocator without result")
	}
	if !goerrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindInvalidData}) {
		t.Errorf("unexpected error: %v", err)
	}
}
