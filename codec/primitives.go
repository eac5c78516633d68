package codec

import (
	"unicode/utf8"

	"github.com/lcx/levelsync/buffer"
)

// Widths of the primitive encodings.
const (
	SizeBool = 1
	SizeU8   = 1
	SizeU16  = 2
	SizeU32  = 4
	SizeU64  = 8
	SizeI8   = 1
	SizeI16  = 2
	SizeI32  = 4
	SizeI64  = 8
	SizeF32  = 4
	SizeF64  = 8

	// SizeLenPrefix is the width of the count in front of text and sequences.
	SizeLenPrefix = SizeU32
)

// ReadBool reads one byte and rejects anything other than 0 or 1.
func ReadBool(r buffer.Reader) (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, Wrap("bool", err)
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, Wrap("bool", ErrInvalidValue)
}

// WriteString writes s with a 4-byte length prefix.
func WriteString(w buffer.Writer, s string) {
	w.WriteU32(uint32(len(s)))
	w.WriteBytes([]byte(s))
}

// ReadString reads a length-prefixed string and validates it as UTF-8.
func ReadString(r buffer.Reader) (string, error) {
	n, err := r.ReadU32()
	if err != nil {
		return "", Wrap("len", err)
	}
	if int64(n) > int64(r.Remaining()) {
		return "", Wrap("len", ErrUnexpectedEOF)
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", Wrap("text", err)
	}
	if !utf8.Valid(b) {
		return "", Wrap("text", ErrInvalidUTF8)
	}
	return string(b), nil
}

// StringSize returns the encoded width of s.
func StringSize(s string) int {
	return SizeLenPrefix + len(s)
}
