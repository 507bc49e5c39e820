// Package frameseq owns the ordered frame store of a multi-frame raster
// image (an animation).
//
// Responsibilities: holding decoded frames in display order, scoped access
// to each frame's raw pixel (or palette) bytes under the frame's buffer-pin
// lock, and aggregate memory accounting across the sequence.
// Key types: Frame, FrameSlot, FrameSequence.
//
// Concurrency rule: a FrameSequence's reference count is safe to touch from
// any thread; its element set is not, and callers must serialize mutations
// against readers.
package frameseq
