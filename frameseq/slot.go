package frameseq

// FrameSlot is a slightly-smart pair of (frame handle, raw data view) where
// the view is allowed to be (and is, initially) inactive.
//
// LockData pins the frame and captures a view of its bytes; the slot pays
// the pin back on every exit path: Release, CopyFrom over a live slot,
// MoveFrom over a live slot, SetFrame, or Forget. The zero value is an
// empty slot with no handle and no view.
//
// Slots are not safe for concurrent use; at most one goroutine may touch a
// slot at a time.
type FrameSlot struct {
	frame Frame
	data  []byte
}

// NewFrameSlot returns a slot bound to f with an inactive view. The slot
// takes its own reference on f.
func NewFrameSlot(f Frame) FrameSlot {
	if f != nil {
		f.Retain()
	}
	return FrameSlot{frame: f}
}

// reset is the single exit path for slot state: it pays back an active
// view's lock and drops the handle reference.
func (s *FrameSlot) reset() {
	if s.data != nil {
		s.frame.UnlockImageData()
	}
	if s.frame != nil {
		s.frame.Release()
	}
	s.frame = nil
	s.data = nil
}

// Release unlocks the view if one is active, drops the handle reference,
// and leaves the slot empty. Releasing an empty slot is a no-op.
func (s *FrameSlot) Release() {
	s.reset()
}

// CopyFrom makes this slot share other's handle. The view does not copy:
// locks never duplicate, so the destination always starts inactive.
// Self-copy is a no-op.
func (s *FrameSlot) CopyFrom(other *FrameSlot) {
	if s == other {
		return
	}
	if other.frame != nil {
		other.frame.Retain()
	}
	f := other.frame
	s.reset()
	s.frame = f
}

// MoveFrom transfers other's handle and active view into this slot; other
// ends empty with no outstanding lock. Moving a slot onto itself is a
// programming error.
func (s *FrameSlot) MoveFrom(other *FrameSlot) {
	if s == other {
		panic("frameseq: FrameSlot move onto itself")
	}
	s.reset()
	s.frame = other.frame
	s.data = other.data
	other.frame = nil
	other.data = nil
}

// LockData pins the frame and stores a view of its bytes: the palette block
// for paletted frames, the raw image block otherwise. On an empty slot this
// is a no-op. A failed pin leaves the view inactive and owes nothing;
// callers observe the outcome through HasData.
func (s *FrameSlot) LockData() {
	if s.frame == nil {
		return
	}
	if err := s.frame.LockImageData(); err != nil {
		Tracef("frame lock failed: %v", err)
		return
	}
	if s.frame.IsPaletted() {
		s.data = s.frame.PaletteData()
	} else {
		s.data = s.frame.ImageData()
	}
}

// Forget unlocks the view if active and hands the frame handle, with the
// slot's reference, back to the caller. The slot ends empty; the caller is
// responsible for releasing the returned frame.
func (s *FrameSlot) Forget() Frame {
	if s.data != nil {
		s.frame.UnlockImageData()
	}
	f := s.frame
	s.frame = nil
	s.data = nil
	return f
}

// SetFrame retargets the slot at f, unlocking and releasing whatever it
// held before. Rebinding the same frame is allowed and still cycles the
// lock. The view ends inactive.
func (s *FrameSlot) SetFrame(f Frame) {
	if f != nil {
		f.Retain()
	}
	s.reset()
	s.frame = f
}

// HasData reports whether the view is active. Only then is Data meaningful.
func (s *FrameSlot) HasData() bool {
	return s.data != nil
}

// Data returns the active view's bytes. The view stays valid until the slot
// is released, reassigned, retargeted, or forgotten.
func (s *FrameSlot) Data() []byte {
	return s.data
}

// Frame returns the bound frame handle, or nil for an empty slot. The
// slot's reference is not transferred.
func (s *FrameSlot) Frame() Frame {
	return s.frame
}

// Bound reports whether the slot holds a frame.
func (s *FrameSlot) Bound() bool {
	return s.frame != nil
}

// Is reports whether the slot holds exactly f.
func (s *FrameSlot) Is(f Frame) bool {
	return s.frame == f
}
