// Package buffer provides the byte cursors used by the wire codec.
//
// ByteBuffer is a growable read/write buffer. FastBuffer is a write-only buffer
// preallocated to an exact, precomputed capacity and is meant for hot paths where
// the encoded size is already known. ByteReader is a read-only cursor over a
// borrowed slice. All multi-byte values are big-endian.
package buffer

import (
	"encoding/binary"
	"errors"
)

var (
	// ErrEndOfBuffer is returned by every read that would run past the written data.
	ErrEndOfBuffer = errors.New("buffer: unexpected end of data")

	// ErrCapacityExceeded is the panic value raised when a FastBuffer write overruns
	// its capacity. It means a size computation was wrong and is never recovered.
	ErrCapacityExceeded = errors.New("buffer: fast buffer capacity exceeded")
)

var _order = binary.BigEndian

// Writer is the write side shared by ByteBuffer and FastBuffer.
type Writer interface {
	WriteU8(v uint8)
	WriteU16(v uint16)
	WriteU32(v uint32)
	WriteU64(v uint64)
	WriteI8(v int8)
	WriteI16(v int16)
	WriteI32(v int32)
	WriteI64(v int64)
	WriteF32(v float32)
	WriteF64(v float64)
	WriteBool(v bool)
	WriteBytes(b []byte)
	WriteZeros(n int)

	// Pos returns the current write position.
	Pos() int
	// SetPos moves the write cursor. Later writes overwrite existing bytes.
	SetPos(pos int)
}

// Reader is the read side shared by ByteBuffer and ByteReader.
// Every method fails with ErrEndOfBuffer instead of panicking on truncated input.
type Reader interface {
	ReadU8() (uint8, error)
	ReadU16() (uint16, error)
	ReadU32() (uint32, error)
	ReadU64() (uint64, error)
	ReadI8() (int8, error)
	ReadI16() (int16, error)
	ReadI32() (int32, error)
	ReadI64() (int64, error)
	ReadF32() (float32, error)
	ReadF64() (float64, error)

	// ReadBytes returns the next n bytes. The slice aliases the underlying buffer.
	ReadBytes(n int) ([]byte, error)
	// ReadRemaining consumes and returns every unread byte.
	ReadRemaining() []byte
	// Skip advances the read cursor by n bytes.
	Skip(n int) error
	// Remaining reports the number of unread bytes.
	Remaining() int
}

// take returns data[*pos:*pos+n] and advances pos.
func take(data []byte, pos *int, n int) ([]byte, error) {
	if n < 0 || len(data)-*pos < n {
		return nil, ErrEndOfBuffer
	}
	b := data[*pos : *pos+n]
	*pos += n
	return b, nil
}
