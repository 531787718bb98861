package wasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	swephruntime "github.com/astroveda/sweph-runtime"
	"github.com/astroveda/sweph-runtime/errors"
)

// Exported allocator names. Emscripten builds prefix exports with an
// underscore depending on toolchain version, so lookups try both forms.
const (
	exportMalloc = "malloc"
	exportFree   = "free"
)

// guestModule wraps one instantiated engine module: its linear memory, its
// allocator exports, and name-based function calls.
type guestModule struct {
	instance api.Module
	memory   *guestMemory
	alloc    *guestAllocator
	funcs    map[string]api.Function
}

func newGuestModule(instance api.Module) (*guestModule, error) {
	mem := instance.Memory()
	if mem == nil {
		return nil, errors.Load("module exports no linear memory", nil)
	}

	mallocFn := lookupExport(instance, exportMalloc)
	freeFn := lookupExport(instance, exportFree)
	if mallocFn == nil || freeFn == nil {
		return nil, errors.Load("module exports no malloc/free allocator", nil)
	}

	return &guestModule{
		instance: instance,
		memory:   &guestMemory{mem: mem},
		alloc:    &guestAllocator{mallocFn: mallocFn, freeFn: freeFn},
		funcs: resolveExports(func(name string) api.Function {
			return lookupExport(instance, name)
		}),
	}, nil
}

// resolveExports resolves every known engine entry point up front, so the
// function table is immutable once the module is constructed. A missing
// export stays absent and surfaces as a not-found error on first use.
func resolveExports(lookup func(string) api.Function) map[string]api.Function {
	funcs := make(map[string]api.Function, len(engineExports))
	for _, name := range engineExports {
		if fn := lookup(name); fn != nil {
			funcs[name] = fn
		}
	}
	return funcs
}

// lookupExport resolves an exported function, trying the plain name first
// and the underscore-prefixed alias second.
func lookupExport(instance api.Module, name string) api.Function {
	if fn := instance.ExportedFunction(name); fn != nil {
		return fn
	}
	return instance.ExportedFunction("_" + name)
}

// Call invokes an exported engine function by name. Results are the raw
// wasm stack values. The function table is populated at construction and
// only read here.
func (g *guestModule) Call(name string, args ...uint64) ([]uint64, error) {
	fn, ok := g.funcs[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseCalc, "exported function", name)
	}
	return fn.Call(context.Background(), args...)
}

func (g *guestModule) Memory() swephruntime.Memory {
	return g.memory
}

func (g *guestModule) Allocator() swephruntime.Allocator {
	return g.alloc
}

func (g *guestModule) Close(ctx context.Context) error {
	return g.instance.Close(ctx)
}

// guestMemory adapts wazero memory to the root Memory interface.
type guestMemory struct {
	mem api.Memory
}

func (m *guestMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("read out of bounds: offset=%d, length=%d", offset, length)
	}
	return data, nil
}

func (m *guestMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return fmt.Errorf("write out of bounds: offset=%d, length=%d", offset, len(data))
	}
	return nil
}

func (m *guestMemory) ReadU32(offset uint32) (uint32, error) {
	val, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return val, nil
}

func (m *guestMemory) ReadU64(offset uint32) (uint64, error) {
	val, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return val, nil
}

func (m *guestMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *guestMemory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

func (m *guestMemory) ReadF64(offset uint32) (float64, error) {
	val, ok := m.mem.ReadFloat64Le(offset)
	if !ok {
		return 0, fmt.Errorf("read out of bounds: offset=%d", offset)
	}
	return val, nil
}

func (m *guestMemory) WriteF64(offset uint32, value float64) error {
	if !m.mem.WriteFloat64Le(offset, value) {
		return fmt.Errorf("write out of bounds: offset=%d", offset)
	}
	return nil
}

// guestAllocator adapts the module's malloc/free exports to the root
// Allocator interface.
type guestAllocator struct {
	mallocFn api.Function
	freeFn   api.Function
}

func (a *guestAllocator) Alloc(size uint32) (uint32, error) {
	results, err := a.mallocFn.Call(context.Background(), uint64(size))
	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseMarshal, size)
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseMarshal, size)
	}
	return ptr, nil
}

func (a *guestAllocator) Free(ptr uint32) {
	if ptr == 0 {
		return
	}
	if _, err := a.freeFn.Call(context.Background(), uint64(ptr)); err != nil {
		Logger().Warn("free failed in guest allocator", zap.Uint32("ptr", ptr), zap.Error(err))
	}
}

// Compile-time checks against the root interfaces.
var _ swephruntime.Memory = (*guestMemory)(nil)
var _ swephruntime.Allocator = (*guestAllocator)(nil)
