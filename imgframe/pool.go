package imgframe

import "sync"

// bufferPool recycles pixel and palette blocks between frames. Decoders
// churn through frames at animation rate, so buffers go back to the pool on
// the final release instead of straight to the garbage collector.
var bufferPool sync.Pool

// getBuffer returns a zeroed block of length n, reusing a pooled block when
// one is large enough.
func getBuffer(n int) []byte {
	if v := bufferPool.Get(); v != nil {
		b := *(v.(*[]byte))
		if cap(b) >= n {
			b = b[:n]
			clear(b)
			return b
		}
	}
	return make([]byte, n)
}

// putBuffer returns a block to the pool. Nil and zero-capacity blocks are
// dropped.
func putBuffer(b []byte) {
	if cap(b) == 0 {
		return
	}
	b = b[:0]
	bufferPool.Put(&b)
}
