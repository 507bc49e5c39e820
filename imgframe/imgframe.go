// Package imgframe provides the decoded raster frame stored by frameseq
// containers: a reference-counted pixel-buffer owner with an optional
// palette and optionally discardable backing memory.
//
// A frame's buffers are valid between LockImageData and UnlockImageData.
// Volatile frames may have their pixel block reclaimed by Discard while
// unlocked; a later lock then fails with ErrDataDiscarded, which the
// containing slot surfaces as an inactive data view.
package imgframe

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/banshee-data/imgseq/frameseq"
)

// ErrDataDiscarded is returned by LockImageData after a volatile frame's
// pixel block has been reclaimed. Recovery requires a re-decode, which is
// the decoder's business, not ours.
var ErrDataDiscarded = errors.New("imgframe: pixel data discarded")

const bytesPerPixel = 4 // BGRA

var _ frameseq.Frame = (*Frame)(nil)

// Frame is one decoded raster frame. It implements frameseq.Frame.
//
// The reference count is atomic; everything else is guarded by mu. A frame
// whose count reaches zero returns its buffers to the shared pool and must
// not be used again.
type Frame struct {
	id   uuid.UUID
	refs atomic.Int32

	mu        sync.Mutex
	locks     int
	volatile  bool
	discarded bool

	pixels  []byte // BGRA for direct-color frames, indices for paletted
	palette []byte // nil for direct-color frames

	width, height, stride int
}

// Option configures a new frame.
type Option func(*Frame)

// Volatile marks the frame's pixel block discardable under memory pressure
// while no lock is outstanding.
func Volatile() Option {
	return func(f *Frame) {
		f.volatile = true
	}
}

// New allocates a direct-color BGRA frame of width x height.
// The caller holds the initial reference.
func New(width, height int, opts ...Option) *Frame {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("imgframe: invalid dimensions %dx%d", width, height))
	}
	f := &Frame{
		id:     uuid.New(),
		width:  width,
		height: height,
		stride: width * bytesPerPixel,
	}
	f.refs.Store(1)
	for _, opt := range opts {
		opt(f)
	}
	f.pixels = getBuffer(f.stride * height)
	return f
}

// NewPaletted allocates a paletted frame of width x height whose pixels are
// indices into a paletteSize-entry BGRA palette. The caller holds the
// initial reference.
func NewPaletted(width, height, paletteSize int, opts ...Option) *Frame {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("imgframe: invalid dimensions %dx%d", width, height))
	}
	if paletteSize <= 0 || paletteSize > 256 {
		panic(fmt.Sprintf("imgframe: invalid palette size %d", paletteSize))
	}
	f := &Frame{
		id:     uuid.New(),
		width:  width,
		height: height,
		stride: width,
	}
	f.refs.Store(1)
	for _, opt := range opts {
		opt(f)
	}
	f.pixels = getBuffer(f.stride * height)
	f.palette = getBuffer(paletteSize * bytesPerPixel)
	return f
}

// ID returns the frame's identity, used for trace logging and memory
// reports.
func (f *Frame) ID() uuid.UUID {
	return f.id
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Stride returns the byte width of one pixel row.
func (f *Frame) Stride() int { return f.stride }

// Retain adds a reference. Thread-safe.
func (f *Frame) Retain() {
	f.refs.Add(1)
}

// Release drops one reference. The final release returns the frame's
// buffers to the shared pool; releasing a frame that still holds a lock is
// a programming error.
func (f *Frame) Release() {
	n := f.refs.Add(-1)
	if n < 0 {
		panic("imgframe: unbalanced Frame Release")
	}
	if n > 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks != 0 {
		panic("imgframe: final release with outstanding lock")
	}
	putBuffer(f.pixels)
	putBuffer(f.palette)
	f.pixels = nil
	f.palette = nil
	f.discarded = true
}

// LockImageData pins the pixel buffer. It fails with ErrDataDiscarded once
// the block has been reclaimed.
func (f *Frame) LockImageData() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.discarded {
		return fmt.Errorf("lock frame %s: %w", f.id, ErrDataDiscarded)
	}
	f.locks++
	return nil
}

// UnlockImageData releases one prior successful lock.
func (f *Frame) UnlockImageData() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks == 0 {
		panic("imgframe: UnlockImageData without a matching lock")
	}
	f.locks--
}

// Discard reclaims a volatile frame's pixel block, returning true on
// success. Non-volatile frames and frames with an outstanding lock are left
// untouched.
func (f *Frame) Discard() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.volatile || f.discarded || f.locks != 0 {
		return false
	}
	putBuffer(f.pixels)
	f.pixels = nil
	f.discarded = true
	return true
}

// IsPaletted reports whether the pixels are palette indices.
func (f *Frame) IsPaletted() bool {
	return f.palette != nil
}

// PaletteData returns the palette block. Valid only while locked.
func (f *Frame) PaletteData() []byte {
	return f.palette
}

// ImageData returns the pixel block. Valid only while locked.
func (f *Frame) ImageData() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pixels
}

// SizeOfDecoded reports the frame's decoded bytes. All blocks live on the
// Go heap, so the non-heap report is always zero.
func (f *Frame) SizeOfDecoded(loc frameseq.MemoryLocation, sizer frameseq.SizerFunc) uintptr {
	if loc == frameseq.MemoryNonHeap {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var total uintptr
	if f.pixels != nil {
		total += sizer(f.pixels)
	}
	if f.palette != nil {
		total += sizer(f.palette)
	}
	return total
}
