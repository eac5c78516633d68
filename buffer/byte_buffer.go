package buffer

import "math"

// ByteBuffer is a growable byte sequence with independent read and write cursors.
type ByteBuffer struct {
	cursor
	rpos int
}

var (
	_ Writer = (*ByteBuffer)(nil)
	_ Reader = (*ByteBuffer)(nil)
)

// NewByteBuffer creates an empty buffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{cursor: cursor{data: make([]byte, 0, capacity)}}
}

// FromBytes creates a buffer whose readable content is data. The slice is not copied.
func FromBytes(data []byte) *ByteBuffer {
	return &ByteBuffer{cursor: cursor{data: data, size: len(data), pos: len(data)}}
}

func (b *ByteBuffer) readable() []byte {
	return b.data[:b.size]
}

func (b *ByteBuffer) ReadU8() (uint8, error) {
	s, err := take(b.readable(), &b.rpos, 1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (b *ByteBuffer) ReadU16() (uint16, error) {
	s, err := take(b.readable(), &b.rpos, 2)
	if err != nil {
		return 0, err
	}
	return _order.Uint16(s), nil
}

func (b *ByteBuffer) ReadU32() (uint32, error) {
	s, err := take(b.readable(), &b.rpos, 4)
	if err != nil {
		return 0, err
	}
	return _order.Uint32(s), nil
}

func (b *ByteBuffer) ReadU64() (uint64, error) {
	s, err := take(b.readable(), &b.rpos, 8)
	if err != nil {
		return 0, err
	}
	return _order.Uint64(s), nil
}

func (b *ByteBuffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err
}

func (b *ByteBuffer) ReadI16() (int16, error) {
	v, err := b.ReadU16()
	return int16(v), err
}

func (b *ByteBuffer) ReadI32() (int32, error) {
	v, err := b.ReadU32()
	return int32(v), err
}

func (b *ByteBuffer) ReadI64() (int64, error) {
	v, err := b.ReadU64()
	return int64(v), err
}

func (b *ByteBuffer) ReadF32() (float32, error) {
	v, err := b.ReadU32()
	return math.Float32frombits(v), err
}

func (b *ByteBuffer) ReadF64() (float64, error) {
	v, err := b.ReadU64()
	return math.Float64frombits(v), err
}

func (b *ByteBuffer) ReadBytes(n int) ([]byte, error) {
	return take(b.readable(), &b.rpos, n)
}

func (b *ByteBuffer) ReadRemaining() []byte {
	s := b.data[b.rpos:b.size]
	b.rpos = b.size
	return s
}

func (b *ByteBuffer) Skip(n int) error {
	_, err := take(b.readable(), &b.rpos, n)
	return err
}

func (b *ByteBuffer) Remaining() int {
	return b.size - b.rpos
}

// ReadPos returns the read cursor.
func (b *ByteBuffer) ReadPos() int {
	return b.rpos
}

// SetReadPos moves the read cursor.
func (b *ByteBuffer) SetReadPos(pos int) {
	if pos < 0 || pos > b.size {
		panic("buffer: read position out of range")
	}
	b.rpos = pos
}

// Reset empties the buffer and keeps its storage.
func (b *ByteBuffer) Reset() {
	b.data = b.data[:0]
	b.pos, b.size, b.rpos = 0, 0, 0
}
