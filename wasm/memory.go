package wasm

import (
	"sync"

	swephruntime "github.com/astroveda/sweph-runtime"
)

// Allocation is one scratch buffer in the guest's linear memory.
type Allocation struct {
	Ptr  uint32
	Size uint32
}

// AllocationList tracks every guest allocation made during a single call so
// Free can run unconditionally on all exit paths.
type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 8)}
	},
}

// NewAllocationList takes a list from the pool.
func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 64

// Release returns to pool. Must call after Free(); list invalid after Release.
func (al *AllocationList) Release() {
	// Only pool small allocations to prevent memory bloat
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

// FreeAndRelease frees every tracked allocation, then returns the list to
// the pool.
func (al *AllocationList) FreeAndRelease(allocator swephruntime.Allocator) {
	al.Free(allocator)
	al.Release()
}

// Alloc allocates size bytes in the guest and tracks the result.
func (al *AllocationList) Alloc(allocator swephruntime.Allocator, size uint32) (uint32, error) {
	ptr, err := allocator.Alloc(size)
	if err != nil {
		return 0, err
	}
	al.allocations = append(al.allocations, Allocation{Ptr: ptr, Size: size})
	return ptr, nil
}

// Free releases every tracked allocation.
func (al *AllocationList) Free(allocator swephruntime.Allocator) {
	if allocator == nil {
		return
	}
	for _, a := range al.allocations {
		if a.Ptr != 0 {
			allocator.Free(a.Ptr)
		}
	}
	al.allocations = al.allocations[:0]
}

// Reset drops tracking without freeing.
func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

// Count returns the number of tracked allocations.
func (al *AllocationList) Count() int {
	return len(al.allocations)
}
