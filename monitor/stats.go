// Package monitor aggregates decoded-image memory across registered frame
// sequences, for surfacing in memory reports and diagnostics.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/banshee-data/imgseq/frameseq"
)

// Snapshot is one aggregate reading across all registered sequences.
type Snapshot struct {
	Sequences    int
	Frames       int
	DecodedBytes uintptr
	Timestamp    time.Time
}

// String renders the snapshot for logs and diagnostics pages.
func (s Snapshot) String() string {
	return fmt.Sprintf("%d sequences, %d frames, %s decoded",
		s.Sequences, s.Frames, humanize.Bytes(uint64(s.DecodedBytes)))
}

// Tracker holds references to live frame sequences and reports their
// aggregate memory use. Registration is thread-safe; Snapshot reads the
// element sets of registered sequences, so callers must serialize it
// against sequence mutators, same as any other sequence reader.
type Tracker struct {
	mu        sync.Mutex
	sequences map[uuid.UUID]*frameseq.FrameSequence
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		sequences: make(map[uuid.UUID]*frameseq.FrameSequence),
	}
}

// Register adds seq to the tracker and returns the token to unregister it
// with. The tracker holds its own reference until then.
func (t *Tracker) Register(seq *frameseq.FrameSequence) uuid.UUID {
	seq.Retain()
	id := uuid.New()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sequences[id] = seq
	return id
}

// Unregister drops the tracker's reference on the sequence registered under
// id. Unknown tokens are a no-op.
func (t *Tracker) Unregister(id uuid.UUID) {
	t.mu.Lock()
	seq, ok := t.sequences[id]
	delete(t.sequences, id)
	t.mu.Unlock()
	if ok {
		seq.Release()
	}
}

// Snapshot sums frame counts and decoded bytes at loc across every
// registered sequence, applying sizer to heap blocks.
func (t *Tracker) Snapshot(loc frameseq.MemoryLocation, sizer frameseq.SizerFunc) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := Snapshot{
		Sequences: len(t.sequences),
		Timestamp: time.Now(),
	}
	for _, seq := range t.sequences {
		snap.Frames += seq.NumFrames()
		snap.DecodedBytes += seq.SizeOfDecoded(loc, sizer)
	}
	return snap
}
