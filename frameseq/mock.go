package frameseq

import (
	"fmt"
	"sync/atomic"
)

// MockFrame implements Frame for testing, counting every lock, unlock and
// reference-count transition.
//
// Lock and unlock counters are plain ints because slots are single-threaded
// by contract; the reference count is atomic because Retain and Release
// must be callable from any thread.
type MockFrame struct {
	Pixels   []byte
	Palette  []byte
	Paletted bool
	LockErr  error // returned by LockImageData when non-nil

	LockCalls   int
	UnlockCalls int

	refs atomic.Int32
}

var _ Frame = (*MockFrame)(nil)

// NewMockFrame returns a direct-color mock holding pixels, with one
// reference for the caller.
func NewMockFrame(pixels []byte) *MockFrame {
	m := &MockFrame{Pixels: pixels}
	m.refs.Store(1)
	return m
}

// NewMockPalettedFrame returns a paletted mock whose data view is the
// palette block, with one reference for the caller.
func NewMockPalettedFrame(palette, indices []byte) *MockFrame {
	m := &MockFrame{Pixels: indices, Palette: palette, Paletted: true}
	m.refs.Store(1)
	return m
}

func (m *MockFrame) Retain() {
	m.refs.Add(1)
}

func (m *MockFrame) Release() {
	if m.refs.Add(-1) < 0 {
		panic("frameseq: MockFrame released below zero")
	}
}

// RefCount returns the current reference count.
func (m *MockFrame) RefCount() int {
	return int(m.refs.Load())
}

// OutstandingLocks returns successful locks not yet paid back.
func (m *MockFrame) OutstandingLocks() int {
	return m.LockCalls - m.UnlockCalls
}

func (m *MockFrame) LockImageData() error {
	if m.LockErr != nil {
		return fmt.Errorf("mock lock: %w", m.LockErr)
	}
	m.LockCalls++
	return nil
}

func (m *MockFrame) UnlockImageData() {
	if m.UnlockCalls >= m.LockCalls {
		panic("frameseq: MockFrame unlock without a matching lock")
	}
	m.UnlockCalls++
}

func (m *MockFrame) IsPaletted() bool {
	return m.Paletted
}

func (m *MockFrame) PaletteData() []byte {
	return m.Palette
}

func (m *MockFrame) ImageData() []byte {
	return m.Pixels
}

func (m *MockFrame) SizeOfDecoded(loc MemoryLocation, sizer SizerFunc) uintptr {
	if loc == MemoryNonHeap {
		return 0
	}
	var total uintptr
	if m.Pixels != nil {
		total += sizer(m.Pixels)
	}
	if m.Palette != nil {
		total += sizer(m.Palette)
	}
	return total
}
