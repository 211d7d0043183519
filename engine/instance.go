package engine

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/uasat/shell/errors"
)

// Instance is a running uasat module.
// It is NOT safe for concurrent use from multiple goroutines.
type Instance struct {
	module    *Module
	mod       api.Module
	mem       api.Memory
	entry     api.Function
	allocFn   api.Function
	freeFn    api.Function
	entryName string
}

// Call invokes the entry point with the input text and returns the result
// text. The computation is a black box: the shell does not interpret the
// returned string.
//
// If ctx is canceled mid-call (CloseOnCancel engines only) the instance is
// closed by wazero and a Canceled error is returned; create a fresh
// Instance before calling again.
func (i *Instance) Call(ctx context.Context, input string) (string, error) {
	inPtr, err := i.alloc(ctx, uint32(len(input)))
	if err != nil {
		return "", err
	}

	if len(input) > 0 {
		if !i.mem.Write(inPtr, []byte(input)) {
			i.free(ctx, inPtr, uint32(len(input)))
			return "", errors.InvalidData(errors.PhaseRuntime, "input write out of bounds")
		}
	}

	stack, err := i.entry.Call(ctx, uint64(inPtr), uint64(len(input)))
	if err != nil {
		if ctx.Err() != nil {
			return "", errors.Canceled(i.entryName, err)
		}
		return "", errors.CallFailed(i.entryName, err)
	}
	i.free(ctx, inPtr, uint32(len(input)))

	if len(stack) == 0 {
		return "", errors.InvalidData(errors.PhaseRuntime, "entry point returned no result")
	}

	outPtr, outLen := unpackResult(stack[0])
	out, ok := i.mem.Read(outPtr, outLen)
	if !ok {
		return "", errors.InvalidData(errors.PhaseRuntime, "result read out of bounds")
	}

	// Copy before freeing: Read aliases guest memory.
	result := string(out)
	i.free(ctx, outPtr, outLen)

	Logger().Debug("call finished",
		zap.String("func", i.entryName),
		zap.Int("input_len", len(input)),
		zap.Int("output_len", len(result)))

	return result, nil
}

// Close releases the instance
func (i *Instance) Close(ctx context.Context) error {
	return i.mod.Close(ctx)
}

func (i *Instance) alloc(ctx context.Context, size uint32) (uint32, error) {
	stack, err := i.allocFn.Call(ctx, uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(size, err)
	}
	if len(stack) == 0 {
		return 0, errors.InvalidData(errors.PhaseRuntime, "allocator returned no result")
	}
	return uint32(stack[0]), nil
}

// free is best-effort: modules without a deallocator leak the buffers into
// their own linear memory, which dies with the instance.
func (i *Instance) free(ctx context.Context, ptr, size uint32) {
	if i.freeFn == nil || ptr == 0 {
		return
	}
	if _, err := i.freeFn.Call(ctx, uint64(ptr), uint64(size)); err != nil {
		Logger().Warn("guest deallocation failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}

// unpackResult splits the entry point's packed i64 return into ptr and len
func unpackResult(packed uint64) (ptr, length uint32) {
	return uint32(packed >> 32), uint32(packed)
}
