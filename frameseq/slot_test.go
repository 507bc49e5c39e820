package frameseq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFrameSlotZeroValue verifies that the zero value is a usable empty slot.
func TestFrameSlotZeroValue(t *testing.T) {
	t.Parallel()

	var slot FrameSlot
	assert.False(t, slot.Bound())
	assert.False(t, slot.HasData())
	assert.Nil(t, slot.Frame())

	// LockData on an empty slot is a no-op, not an error.
	slot.LockData()
	assert.False(t, slot.HasData())

	// Release and Forget are safe on an empty slot.
	slot.Release()
	assert.Nil(t, slot.Forget())
}

// TestFrameSlotLockLifecycle covers the lock/unlock discipline across the
// slot's exit paths.
func TestFrameSlotLockLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("release pays the lock back exactly once", func(t *testing.T) {
		t.Parallel()
		pixels := []byte{0x10, 0x20, 0x30, 0x40}
		mock := NewMockFrame(pixels)

		slot := NewFrameSlot(mock)
		slot.LockData()
		require.True(t, slot.HasData())
		assert.Equal(t, pixels, slot.Data())
		assert.Equal(t, 1, mock.LockCalls)

		slot.Release()
		assert.Equal(t, 1, mock.UnlockCalls)
		assert.Equal(t, 0, mock.OutstandingLocks())
		assert.False(t, slot.Bound())

		// A second release owes nothing further.
		slot.Release()
		assert.Equal(t, 1, mock.UnlockCalls)
	})

	t.Run("paletted frames expose the palette block", func(t *testing.T) {
		t.Parallel()
		palette := []byte{0xAA, 0xBB, 0xCC}
		mock := NewMockPalettedFrame(palette, []byte{0, 1, 2, 1})

		slot := NewFrameSlot(mock)
		slot.LockData()
		require.True(t, slot.HasData())
		assert.Equal(t, palette, slot.Data())

		slot.Release()
		assert.Equal(t, 1, mock.UnlockCalls)
	})

	t.Run("failed lock owes no unlock", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{1})
		mock.LockErr = errors.New("buffer reclaimed")

		slot := NewFrameSlot(mock)
		slot.LockData()
		assert.False(t, slot.HasData())
		assert.True(t, slot.Bound(), "failed lock must not unbind the frame")

		slot.Release()
		assert.Equal(t, 0, mock.LockCalls)
		assert.Equal(t, 0, mock.UnlockCalls)
	})

	t.Run("forget hands the handle back with the lock paid", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{1, 2})
		slot := NewFrameSlot(mock)
		require.Equal(t, 2, mock.RefCount())

		slot.LockData()
		got := slot.Forget()
		assert.Same(t, mock, got)
		assert.Equal(t, 1, mock.UnlockCalls)
		assert.False(t, slot.Bound())
		assert.False(t, slot.HasData())

		// The slot's reference travelled with the return value.
		assert.Equal(t, 2, mock.RefCount())
		got.Release()
		assert.Equal(t, 1, mock.RefCount())
	})
}

// TestFrameSlotSetFrame covers retargeting, including the same-frame case.
func TestFrameSlotSetFrame(t *testing.T) {
	t.Parallel()

	t.Run("retarget releases the old frame and its lock", func(t *testing.T) {
		t.Parallel()
		first := NewMockFrame([]byte{1})
		second := NewMockFrame([]byte{2})

		slot := NewFrameSlot(first)
		slot.LockData()
		require.Equal(t, 1, first.OutstandingLocks())

		slot.SetFrame(second)
		assert.Equal(t, 0, first.OutstandingLocks())
		assert.Equal(t, 1, first.RefCount())
		assert.Equal(t, 2, second.RefCount())
		assert.False(t, slot.HasData())
		assert.True(t, slot.Is(second))

		slot.Release()
	})

	t.Run("rebinding the same frame still cycles the lock", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{1})
		slot := NewFrameSlot(mock)
		slot.LockData()

		slot.SetFrame(mock)
		assert.Equal(t, 1, mock.LockCalls)
		assert.Equal(t, 1, mock.UnlockCalls)
		assert.False(t, slot.HasData())
		assert.True(t, slot.Is(mock))
		assert.Equal(t, 2, mock.RefCount(), "same-frame rebind must not leak or drop a reference")

		slot.Release()
		assert.Equal(t, 1, mock.RefCount())
	})

	t.Run("retarget to nil empties the slot", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{1})
		slot := NewFrameSlot(mock)
		slot.LockData()

		slot.SetFrame(nil)
		assert.False(t, slot.Bound())
		assert.Equal(t, 1, mock.UnlockCalls)
		assert.Equal(t, 1, mock.RefCount())
	})
}

// TestFrameSlotCopySemantics verifies that copies share the handle but
// never the lock.
func TestFrameSlotCopySemantics(t *testing.T) {
	t.Parallel()

	t.Run("copy shares handle without duplicating the lock", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{1, 2, 3})
		src := NewFrameSlot(mock)
		src.LockData()
		require.Equal(t, 1, mock.OutstandingLocks())

		var dst FrameSlot
		dst.CopyFrom(&src)
		assert.True(t, dst.Is(mock))
		assert.False(t, dst.HasData(), "locks must not duplicate on copy")
		assert.Equal(t, 1, mock.OutstandingLocks())
		assert.Equal(t, 3, mock.RefCount())

		dst.Release()
		assert.Equal(t, 1, mock.OutstandingLocks(), "copy owed no unlock")

		src.Release()
		assert.Equal(t, 0, mock.OutstandingLocks())
		assert.Equal(t, 1, mock.RefCount())
	})

	t.Run("copy over a live slot releases the old state", func(t *testing.T) {
		t.Parallel()
		old := NewMockFrame([]byte{1})
		next := NewMockFrame([]byte{2})

		dst := NewFrameSlot(old)
		dst.LockData()
		src := NewFrameSlot(next)

		dst.CopyFrom(&src)
		assert.Equal(t, 1, old.UnlockCalls)
		assert.Equal(t, 1, old.RefCount())
		assert.True(t, dst.Is(next))

		dst.Release()
		src.Release()
		assert.Equal(t, 1, next.RefCount())
	})

	t.Run("self-copy is a no-op", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{1})
		slot := NewFrameSlot(mock)
		slot.LockData()

		slot.CopyFrom(&slot)
		assert.True(t, slot.HasData(), "self-copy must not disturb the view")
		assert.Equal(t, 2, mock.RefCount())
		assert.Equal(t, 1, mock.OutstandingLocks())

		slot.Release()
	})
}

// TestFrameSlotMoveSemantics verifies that moves transfer handle and lock
// atomically.
func TestFrameSlotMoveSemantics(t *testing.T) {
	t.Parallel()

	t.Run("move transfers the active lock", func(t *testing.T) {
		t.Parallel()
		mock := NewMockFrame([]byte{5, 6})
		src := NewFrameSlot(mock)
		src.LockData()

		var dst FrameSlot
		dst.MoveFrom(&src)
		assert.False(t, src.Bound())
		assert.False(t, src.HasData())
		assert.True(t, dst.Is(mock))
		assert.True(t, dst.HasData())
		assert.Equal(t, 1, mock.OutstandingLocks(), "move must not change the lock balance")
		assert.Equal(t, 2, mock.RefCount(), "move must not change the reference count")

		// Releasing the source after a move-out owes nothing.
		src.Release()
		assert.Equal(t, 1, mock.OutstandingLocks())

		dst.Release()
		assert.Equal(t, 0, mock.OutstandingLocks())
		assert.Equal(t, 1, mock.RefCount())
	})

	t.Run("move over a live slot releases the old state", func(t *testing.T) {
		t.Parallel()
		old := NewMockFrame([]byte{1})
		next := NewMockFrame([]byte{2})

		dst := NewFrameSlot(old)
		dst.LockData()
		src := NewFrameSlot(next)
		src.LockData()

		dst.MoveFrom(&src)
		assert.Equal(t, 1, old.UnlockCalls)
		assert.Equal(t, 1, old.RefCount())
		assert.True(t, dst.HasData())

		dst.Release()
		assert.Equal(t, 0, next.OutstandingLocks())
		assert.Equal(t, 1, next.RefCount())
	})

	t.Run("self-move panics", func(t *testing.T) {
		t.Parallel()
		slot := NewFrameSlot(NewMockFrame([]byte{1}))
		assert.Panics(t, func() {
			slot.MoveFrom(&slot)
		})
	})
}
