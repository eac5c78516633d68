// Package codec defines the capabilities a type can implement to travel on the wire:
// encoding, decoding, a width known at compile time, or a width computed per value.
//
// Types implement the capabilities explicitly, one hand-written method set per type.
// Composite types derive their static width from their fields' width constants.
package codec

import (
	"github.com/lcx/levelsync/buffer"
)

// Encoder writes a value into a growable or fast buffer.
type Encoder interface {
	Encode(w buffer.Writer)
}

// Decoder parses a value from a buffer. Implementations return a *DecodeError on
// truncated or invalid input and never panic.
type Decoder interface {
	Decode(r buffer.Reader) error
}

// StaticSizer reports an encoded width that does not depend on the value.
type StaticSizer interface {
	StaticSize() int
}

// DynamicSizer reports the encoded width of this particular value.
type DynamicSizer interface {
	EncodedSize() int
}

// Codec is implemented by pointers to types that can be both encoded and decoded.
type Codec interface {
	Encoder
	Decoder
}

// DecoderPtr constrains P to be *T with a Decode method.
type DecoderPtr[T any] interface {
	*T
	Decoder
}

// StaticPtr constrains P to be *T for a statically sized codec type T.
type StaticPtr[T any] interface {
	*T
	Codec
	StaticSizer
}

// SizeOf returns the encoded width of v: the static width when the type has one,
// otherwise the dynamic width. ok is false when neither is known.
func SizeOf(v Encoder) (size int, ok bool) {
	switch s := v.(type) {
	case StaticSizer:
		return s.StaticSize(), true
	case DynamicSizer:
		return s.EncodedSize(), true
	}
	return 0, false
}

// Encode serializes v into a new growable buffer.
func Encode(v Encoder) []byte {
	size, _ := SizeOf(v)
	b := buffer.NewByteBuffer(size)
	v.Encode(b)
	return b.Bytes()
}

// EncodeFast serializes v into a buffer allocated to exactly its computed width.
// It panics with buffer.ErrCapacityExceeded if the width was computed wrong, and
// falls back to a growable buffer when v has no known width.
func EncodeFast(v Encoder) []byte {
	size, ok := SizeOf(v)
	if !ok {
		return Encode(v)
	}
	b := buffer.NewFastBuffer(size)
	v.Encode(b)
	return b.Bytes()
}

// Decode parses data into v.
func Decode(data []byte, v Decoder) error {
	return v.Decode(buffer.NewByteReader(data))
}
