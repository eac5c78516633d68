package codec

import (
	"fmt"

	"github.com/lcx/levelsync/buffer"
)

// EncodeSlice writes a 4-byte element count followed by every element.
func EncodeSlice[T Encoder](w buffer.Writer, s []T) {
	w.WriteU32(uint32(len(s)))
	for i := range s {
		s[i].Encode(w)
	}
}

// DecodeSlice reads a count-prefixed sequence.
func DecodeSlice[T any, P DecoderPtr[T]](r buffer.Reader) ([]T, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, Wrap("len", err)
	}
	// every element takes at least one byte, so a count above the remaining
	// length is truncated input and must not drive the allocation
	if int64(n) > int64(r.Remaining()) {
		return nil, Wrap("len", ErrUnexpectedEOF)
	}
	out := make([]T, n)
	for i := range out {
		if err := P(&out[i]).Decode(r); err != nil {
			return nil, Wrap(fmt.Sprintf("[%d]", i), err)
		}
	}
	return out, nil
}

// SliceSize returns the encoded width of a count-prefixed sequence.
func SliceSize[T Encoder](s []T) int {
	size := SizeLenPrefix
	for i := range s {
		n, ok := SizeOf(s[i])
		if !ok {
			panic(fmt.Sprintf("codec: element %T has no known size", s[i]))
		}
		size += n
	}
	return size
}

// EncodeSliceWith writes a count-prefixed sequence of primitives.
func EncodeSliceWith[T any](w buffer.Writer, s []T, write func(buffer.Writer, T)) {
	w.WriteU32(uint32(len(s)))
	for _, v := range s {
		write(w, v)
	}
}

// DecodeSliceWith reads a count-prefixed sequence of primitives, refusing counts
// above limit.
func DecodeSliceWith[T any](r buffer.Reader, limit int, read func(buffer.Reader) (T, error)) ([]T, error) {
	n, err := r.ReadU32()
	if err != nil {
		return nil, Wrap("len", err)
	}
	if int64(n) > int64(limit) {
		return nil, Wrap("len", ErrInvalidValue)
	}
	if int64(n) > int64(r.Remaining()) {
		return nil, Wrap("len", ErrUnexpectedEOF)
	}
	out := make([]T, n)
	for i := range out {
		if out[i], err = read(r); err != nil {
			return nil, Wrap(fmt.Sprintf("[%d]", i), err)
		}
	}
	return out, nil
}

// EncodeArray writes the elements of a fixed-width array with no count.
// Pass arr[:] for a Go array.
func EncodeArray[T Encoder](w buffer.Writer, arr []T) {
	for i := range arr {
		arr[i].Encode(w)
	}
}

// DecodeArray fills every element of dst in order.
func DecodeArray[T any, P DecoderPtr[T]](r buffer.Reader, dst []T) error {
	for i := range dst {
		if err := P(&dst[i]).Decode(r); err != nil {
			return Wrap(fmt.Sprintf("[%d]", i), err)
		}
	}
	return nil
}

// EncodeArrayWith writes a fixed-width array of primitives, e.g.
// EncodeArrayWith(w, ids[:], buffer.Writer.WriteI32).
func EncodeArrayWith[T any](w buffer.Writer, arr []T, write func(buffer.Writer, T)) {
	for _, v := range arr {
		write(w, v)
	}
}

// DecodeArrayWith fills a fixed-width array of primitives, e.g.
// DecodeArrayWith(r, ids[:], buffer.Reader.ReadI32).
func DecodeArrayWith[T any](r buffer.Reader, dst []T, read func(buffer.Reader) (T, error)) error {
	var err error
	for i := range dst {
		if dst[i], err = read(r); err != nil {
			return Wrap(fmt.Sprintf("[%d]", i), err)
		}
	}
	return nil
}

// ArraySize is the width of n elements of the given width.
func ArraySize(n, elemSize int) int {
	return n * elemSize
}
