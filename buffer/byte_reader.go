package buffer

import "math"

// ByteReader is a read-only cursor over a borrowed slice.
type ByteReader struct {
	data []byte
	pos  int
}

// NewByteReader wraps data without copying it.
func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

func (r *ByteReader) ReadU8() (uint8, error) {
	b, err := take(r.data, &r.pos, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ByteReader) ReadU16() (uint16, error) {
	b, err := take(r.data, &r.pos, 2)
	if err != nil {
		return 0, err
	}
	return _order.Uint16(b), nil
}

func (r *ByteReader) ReadU32() (uint32, error) {
	b, err := take(r.data, &r.pos, 4)
	if err != nil {
		return 0, err
	}
	return _order.Uint32(b), nil
}

func (r *ByteReader) ReadU64() (uint64, error) {
	b, err := take(r.data, &r.pos, 8)
	if err != nil {
		return 0, err
	}
	return _order.Uint64(b), nil
}

func (r *ByteReader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

func (r *ByteReader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err
}

func (r *ByteReader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err
}

func (r *ByteReader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err
}

func (r *ByteReader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	return math.Float32frombits(v), err
}

func (r *ByteReader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	return math.Float64frombits(v), err
}

func (r *ByteReader) ReadBytes(n int) ([]byte, error) {
	return take(r.data, &r.pos, n)
}

func (r *ByteReader) ReadRemaining() []byte {
	b := r.data[r.pos:]
	r.pos = len(r.data)
	return b
}

func (r *ByteReader) Skip(n int) error {
	_, err := take(r.data, &r.pos, n)
	return err
}

func (r *ByteReader) Remaining() int {
	return len(r.data) - r.pos
}

// Pos returns the read position.
func (r *ByteReader) Pos() int {
	return r.pos
}
