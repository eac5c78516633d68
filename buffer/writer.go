package buffer

import (
	"fmt"
	"math"
)

// cursor implements Writer over a byte slice. A fixed cursor never reallocates and
// panics with ErrCapacityExceeded instead.
type cursor struct {
	data  []byte
	pos   int
	size  int // high-water mark of written bytes
	fixed bool
}

func (c *cursor) reserve(n int) []byte {
	end := c.pos + n
	if end > len(c.data) {
		if c.fixed {
			panic(fmt.Errorf("%w: writing %d bytes at %d, capacity %d", ErrCapacityExceeded, n, c.pos, len(c.data)))
		}
		c.grow(end)
	}
	if end > c.size {
		c.size = end
	}
	s := c.data[c.pos:end]
	c.pos = end
	return s
}

func (c *cursor) grow(end int) {
	if end <= cap(c.data) {
		c.data = c.data[:end]
		return
	}
	nd := make([]byte, end, max(end, 2*cap(c.data), 64))
	copy(nd, c.data)
	c.data = nd
}

func (c *cursor) WriteU8(v uint8) {
	c.reserve(1)[0] = v
}

func (c *cursor) WriteU16(v uint16) {
	_order.PutUint16(c.reserve(2), v)
}

func (c *cursor) WriteU32(v uint32) {
	_order.PutUint32(c.reserve(4), v)
}

func (c *cursor) WriteU64(v uint64) {
	_order.PutUint64(c.reserve(8), v)
}

func (c *cursor) WriteI8(v int8)   { c.WriteU8(uint8(v)) }
func (c *cursor) WriteI16(v int16) { c.WriteU16(uint16(v)) }
func (c *cursor) WriteI32(v int32) { c.WriteU32(uint32(v)) }
func (c *cursor) WriteI64(v int64) { c.WriteU64(uint64(v)) }

func (c *cursor) WriteF32(v float32) {
	c.WriteU32(math.Float32bits(v))
}

func (c *cursor) WriteF64(v float64) {
	c.WriteU64(math.Float64bits(v))
}

func (c *cursor) WriteBool(v bool) {
	if v {
		c.WriteU8(1)
		return
	}
	c.WriteU8(0)
}

func (c *cursor) WriteBytes(b []byte) {
	copy(c.reserve(len(b)), b)
}

func (c *cursor) WriteZeros(n int) {
	clear(c.reserve(n))
}

func (c *cursor) Pos() int {
	return c.pos
}

func (c *cursor) SetPos(pos int) {
	if pos < 0 || pos > c.size {
		panic(fmt.Sprintf("buffer: position %d out of range [0, %d]", pos, c.size))
	}
	c.pos = pos
}

// Len returns the number of bytes written so far, independent of the cursor.
func (c *cursor) Len() int {
	return c.size
}

// Bytes returns the written bytes. The slice aliases the buffer.
func (c *cursor) Bytes() []byte {
	return c.data[:c.size]
}
