package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/uasat/shell/errors"
)

// DefaultEntryFunc is the single operation the uasat library exposes.
const DefaultEntryFunc = "test"

// Config holds configuration for engine creation
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means the wazero default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// CloseOnCancel aborts an in-flight call when its context is canceled.
	// The instance is closed as a side effect and must be re-created.
	CloseOnCancel bool

	// EntryFunc is the exported function to invoke. Empty means DefaultEntryFunc.
	EntryFunc string
}

// Engine owns the wazero runtime. One engine hosts any number of modules;
// all of them share the WASI host module registered on first load.
type Engine struct {
	runtime  wazero.Runtime
	cfg      Config
	wasiMu   sync.Mutex
	wasiDone bool
}

// New creates a wazero-backed engine
func New(ctx context.Context, cfg Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	if cfg.CloseOnCancel {
		runtimeCfg = runtimeCfg.WithCloseOnContextDone(true)
	}

	if cfg.EntryFunc == "" {
		cfg.EntryFunc = DefaultEntryFunc
	}

	Logger().Debug("engine created",
		zap.Uint32("memory_limit_pages", cfg.MemoryLimitPages),
		zap.Bool("close_on_cancel", cfg.CloseOnCancel),
		zap.String("entry_func", cfg.EntryFunc))

	return &Engine{
		runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg),
		cfg:     cfg,
	}, nil
}

// Close releases all engine resources.
// All instances must be closed before calling this.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// initWASI instantiates the WASI host module for this engine's runtime.
// Safe for concurrent calls from multiple modules sharing the same engine.
func (e *Engine) initWASI(ctx context.Context) error {
	e.wasiMu.Lock()
	defer e.wasiMu.Unlock()

	if e.wasiDone {
		return nil
	}

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, e.runtime); err != nil {
		return errors.Load("instantiate WASI", err)
	}

	e.wasiDone = true
	return nil
}

// Load compiles a core WebAssembly module. The bytes are validated by the
// compiler; anything that is not a wasm binary fails here, not at call time.
func (e *Engine) Load(ctx context.Context, wasmBytes []byte) (*Module, error) {
	if len(wasmBytes) == 0 {
		return nil, errors.InvalidData(errors.PhaseLoad, "empty module")
	}

	if err := e.initWASI(ctx); err != nil {
		return nil, err
	}

	compiled, err := e.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	Logger().Info("module compiled",
		zap.Int("size_bytes", len(wasmBytes)),
		zap.Int("exports", len(compiled.ExportedFunctions())))

	return &Module{
		engine:   e,
		compiled: compiled,
	}, nil
}
