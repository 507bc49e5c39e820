package frameseq

import (
	"fmt"
	"sync/atomic"
)

// FrameSequence stores the decoded frames of a multi-frame image in display
// order. It is little more than a smart array.
//
// The sequence itself is shared: Retain and Release are safe from any
// thread. The element set is not internally synchronized; one role mutates
// and another observes, with a happens-before edge supplied by the caller.
type FrameSequence struct {
	refs   atomic.Int32
	frames []FrameSlot
}

// NewFrameSequence returns an empty sequence holding one reference for the
// caller.
func NewFrameSequence() *FrameSequence {
	seq := &FrameSequence{}
	seq.refs.Store(1)
	return seq
}

// Retain adds a reference. Thread-safe.
func (seq *FrameSequence) Retain() {
	if seq.refs.Add(1) <= 1 {
		panic("frameseq: Retain on a released FrameSequence")
	}
}

// Release drops one reference; the last release clears every slot,
// paying back any outstanding view locks. Thread-safe.
func (seq *FrameSequence) Release() {
	n := seq.refs.Add(-1)
	if n < 0 {
		panic("frameseq: unbalanced FrameSequence Release")
	}
	if n == 0 {
		seq.ClearFrames()
	}
}

// Frame returns the read-only slot at index. The pointer stays valid until
// the next mutation of the sequence. Out-of-range indices are fatal.
func (seq *FrameSequence) Frame(index int) *FrameSlot {
	seq.mustContain(index)
	return &seq.frames[index]
}

// InsertFrame inserts a slot bound to frame at index, shifting later slots
// up. index may equal NumFrames to append. The sequence takes its own
// reference on the frame.
func (seq *FrameSequence) InsertFrame(index int, frame Frame) {
	if index < 0 || index > len(seq.frames) {
		panic(fmt.Sprintf("frameseq: insert index %d outside [0, %d]", index, len(seq.frames)))
	}
	seq.frames = append(seq.frames, FrameSlot{})
	copy(seq.frames[index+1:], seq.frames[index:])
	// The shifted-up copy at index+1 now owns the old state; the stale
	// duplicate left at index is overwritten without releasing.
	seq.frames[index] = NewFrameSlot(frame)
}

// RemoveFrame releases the slot at index and shifts later slots down.
func (seq *FrameSequence) RemoveFrame(index int) {
	seq.mustContain(index)
	seq.frames[index].Release()
	last := len(seq.frames) - 1
	copy(seq.frames[index:], seq.frames[index+1:])
	// Zero the vacated tail so no stale handle copy lingers in the
	// backing array.
	seq.frames[last] = FrameSlot{}
	seq.frames = seq.frames[:last]
}

// SwapFrame replaces the frame at index with frame and returns the
// previously held handle. Any active view lock on the displaced frame is
// paid back before it is handed over; the slot ends with an inactive view.
// The caller owns the returned frame's reference.
func (seq *FrameSequence) SwapFrame(index int, frame Frame) Frame {
	seq.mustContain(index)
	slot := &seq.frames[index]
	old := slot.Forget()
	slot.SetFrame(frame)
	return old
}

// ClearFrames releases every slot in order. Idempotent.
func (seq *FrameSequence) ClearFrames() {
	if len(seq.frames) == 0 {
		return
	}
	Tracef("clearing %d frames", len(seq.frames))
	for i := range seq.frames {
		seq.frames[i].Release()
	}
	seq.frames = seq.frames[:0]
}

// NumFrames returns the number of slots.
func (seq *FrameSequence) NumFrames() int {
	return len(seq.frames)
}

// SizeOfDecoded sums each frame's decoded bytes at loc across the sequence,
// applying sizer to heap blocks. Per-slot bookkeeping overhead is not
// counted unless a frame attributes it to its own report.
func (seq *FrameSequence) SizeOfDecoded(loc MemoryLocation, sizer SizerFunc) uintptr {
	var total uintptr
	for i := range seq.frames {
		if f := seq.frames[i].frame; f != nil {
			total += f.SizeOfDecoded(loc, sizer)
		}
	}
	return total
}

func (seq *FrameSequence) mustContain(index int) {
	if index < 0 || index >= len(seq.frames) {
		panic(fmt.Sprintf("frameseq: index %d outside [0, %d)", index, len(seq.frames)))
	}
}
