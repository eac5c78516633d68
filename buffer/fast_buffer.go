package buffer

// FastBuffer is a write-only buffer with a fixed capacity that is computed before
// encoding starts. It never grows: writing past the capacity panics with
// ErrCapacityExceeded, because it means the caller's size computation was wrong.
type FastBuffer struct {
	cursor
}

var _ Writer = (*FastBuffer)(nil)

// NewFastBuffer allocates a buffer of exactly size bytes.
func NewFastBuffer(size int) *FastBuffer {
	return &FastBuffer{cursor: cursor{data: make([]byte, size), fixed: true}}
}

// Cap returns the fixed capacity.
func (b *FastBuffer) Cap() int {
	return len(b.data)
}

// Full reports whether every reserved byte has been written.
func (b *FastBuffer) Full() bool {
	return b.size == len(b.data)
}
