package frameseq

// MemoryLocation selects which class of allocations a memory report covers.
type MemoryLocation int

const (
	// MemoryHeap counts blocks on the process heap.
	MemoryHeap MemoryLocation = iota
	// MemoryNonHeap counts pinned or mapped blocks outside the heap.
	MemoryNonHeap
	// MemoryAny counts both.
	MemoryAny
)

// SizerFunc reports the allocated size of one heap block. A malloc-aware
// sizer can round up to the allocator's bucket size; SliceSizer is the
// plain capacity-based fallback.
type SizerFunc func(block []byte) uintptr

// SliceSizer reports cap(block) bytes. Nil blocks report zero.
func SliceSizer(block []byte) uintptr {
	return uintptr(cap(block))
}

// Frame is the contract the container requires of one decoded image frame.
// The frame owns its pixel buffer; the container only pins it.
//
// Retain and Release must be safe to call from any thread. LockImageData
// pins the pixel buffer and may fail when the backing memory has been
// reclaimed; every successful lock must be paid back by exactly one
// UnlockImageData. The data accessors are valid only while locked.
type Frame interface {
	Retain()
	Release()

	// LockImageData pins the frame's buffer. An error means the data is
	// currently unavailable (for example, discarded under memory pressure);
	// no unlock is owed for a failed lock.
	LockImageData() error

	// UnlockImageData releases one prior successful lock. Unlocking an
	// unlocked frame is a programming error.
	UnlockImageData()

	// IsPaletted reports whether the pixels are palette indices. It decides
	// which accessor a data view points at.
	IsPaletted() bool

	// PaletteData returns the palette block for paletted frames.
	PaletteData() []byte

	// ImageData returns the raw pixel block for direct-color frames.
	ImageData() []byte

	// SizeOfDecoded reports the bytes of decoded data at loc, applying sizer
	// to heap blocks the frame owns.
	SizeOfDecoded(loc MemoryLocation, sizer SizerFunc) uintptr
}
