package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/lcx/levelsync/buffer"
)

// InlineStringCap is the number of text bytes an InlineString can hold.
const InlineStringCap = 16

// SizeInlineString is the fixed encoded width: one length byte plus the full region.
const SizeInlineString = SizeU8 + InlineStringCap

// InlineString is short text with a fixed encoded width, so records that carry a
// name can stay statically sized. Unused bytes are written as zeros.
type InlineString struct {
	n   uint8
	buf [InlineStringCap]byte
}

// NewInlineString fails if s is longer than InlineStringCap bytes or not UTF-8.
func NewInlineString(s string) (InlineString, error) {
	var is InlineString
	if len(s) > InlineStringCap {
		return is, fmt.Errorf("inline string %q longer than %d bytes", s, InlineStringCap)
	}
	if !utf8.ValidString(s) {
		return is, ErrInvalidUTF8
	}
	is.n = uint8(copy(is.buf[:], s))
	return is, nil
}

// MustInlineString is NewInlineString for constants and tests.
func MustInlineString(s string) InlineString {
	is, err := NewInlineString(s)
	if err != nil {
		panic(err)
	}
	return is
}

func (s InlineString) String() string {
	return string(s.buf[:s.n])
}

func (s InlineString) Len() int {
	return int(s.n)
}

func (InlineString) StaticSize() int {
	return SizeInlineString
}

func (s InlineString) Encode(w buffer.Writer) {
	w.WriteU8(s.n)
	w.WriteBytes(s.buf[:])
}

func (s *InlineString) Decode(r buffer.Reader) error {
	n, err := r.ReadU8()
	if err != nil {
		return Wrap("InlineString", err)
	}
	b, err := r.ReadBytes(InlineStringCap)
	if err != nil {
		return Wrap("InlineString", err)
	}
	if n > InlineStringCap {
		return Wrap("InlineString", ErrInvalidValue)
	}
	if !utf8.Valid(b[:n]) {
		return Wrap("InlineString", ErrInvalidUTF8)
	}
	s.n = n
	copy(s.buf[:], b)
	clear(s.buf[n:])
	return nil
}
