package swephruntime

// Memory represents the linear memory of a sandboxed engine module.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
	ReadF64(offset uint32) (float64, error)
	WriteF64(offset uint32, value float64) error
}

// Allocator allocates scratch buffers in a sandboxed module's linear memory.
// The module has no garbage collector for its linear memory; every Alloc
// must be paired with a Free or the allocation is permanent for the life of
// the module instance.
type Allocator interface {
	Alloc(size uint32) (uint32, error)
	Free(ptr uint32)
}
