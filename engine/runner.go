package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Runner invokes a Module's entry point, creating instances on demand.
//
// A canceled or trapped call leaves the underlying instance unusable, so the
// Runner drops it and instantiates a fresh one on the next call. The Module
// handle itself never goes away, which keeps the load-once contract: once
// the library is loaded it stays loaded for the life of the process.
type Runner struct {
	mu     sync.Mutex
	module *Module
	inst   *Instance
}

// NewRunner wraps a loaded module
func NewRunner(m *Module) *Runner {
	return &Runner{module: m}
}

// Call invokes the entry point, instantiating first if needed.
func (r *Runner) Call(ctx context.Context, input string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inst == nil {
		inst, err := r.module.Instantiate(ctx)
		if err != nil {
			return "", err
		}
		r.inst = inst
	}

	out, err := r.inst.Call(ctx, input)
	if err != nil {
		// Instance state is unknown after a trap or cancellation.
		if closeErr := r.inst.Close(context.WithoutCancel(ctx)); closeErr != nil {
			Logger().Warn("close failed instance", zap.Error(closeErr))
		}
		r.inst = nil
		return "", err
	}

	return out, nil
}

// Close releases the current instance, if any. The module stays loaded.
func (r *Runner) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.inst == nil {
		return nil
	}
	err := r.inst.Close(ctx)
	r.inst = nil
	return err
}
