package engine

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"

	"github.com/uasat/shell/errors"
)

// Allocator export names, in lookup order.
var (
	allocNames = []string{"allocate", "alloc"}
	freeNames  = []string{"deallocate", "dealloc", "free"}
)

// initializeFunc is the WASI reactor initialization convention.
const initializeFunc = "_initialize"

// Module is a compiled uasat module. Instantiate may be called repeatedly;
// each Instance has independent linear memory.
type Module struct {
	engine   *Engine
	compiled wazero.CompiledModule
}

// ExportNames returns the names of all exported functions, sorted.
func (m *Module) ExportNames() []string {
	defs := m.compiled.ExportedFunctions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Instantiate creates a running instance and caches its memory, entry
// function and allocator exports.
func (m *Module) Instantiate(ctx context.Context) (*Instance, error) {
	// Library modules must not run a command _start; reactor-style guests
	// are initialized explicitly below.
	modConfig := wazero.NewModuleConfig().
		WithName("").
		WithStartFunctions()

	mod, err := m.engine.runtime.InstantiateModule(ctx, m.compiled, modConfig)
	if err != nil {
		return nil, errors.Load("instantiate module", err)
	}

	if initFn := mod.ExportedFunction(initializeFunc); initFn != nil {
		if _, err := initFn.Call(ctx); err != nil {
			mod.Close(ctx)
			return nil, errors.Load("run _initialize", err)
		}
	}

	entryName := m.engine.cfg.EntryFunc
	entry := mod.ExportedFunction(entryName)
	if entry == nil {
		mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", entryName)
	}

	mem := mod.Memory()
	if mem == nil {
		mod.Close(ctx)
		return nil, errors.InvalidData(errors.PhaseLoad, "module exports no memory")
	}

	inst := &Instance{
		module:    m,
		mod:       mod,
		mem:       mem,
		entry:     entry,
		entryName: entryName,
	}

	for _, name := range allocNames {
		if fn := mod.ExportedFunction(name); fn != nil {
			inst.allocFn = fn
			break
		}
	}
	for _, name := range freeNames {
		if fn := mod.ExportedFunction(name); fn != nil {
			inst.freeFn = fn
			break
		}
	}

	if inst.allocFn == nil {
		mod.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "export", allocNames[0])
	}

	return inst, nil
}
