package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcx/levelsync/buffer"
)

// point is a small statically sized record used across the tests.
type point struct {
	X, Y float32
}

const sizePoint = SizeF32 * 2

func (point) StaticSize() int { return sizePoint }

func (p point) Encode(w buffer.Writer) {
	w.WriteF32(p.X)
	w.WriteF32(p.Y)
}

func (p *point) Decode(r buffer.Reader) (err error) {
	if p.X, err = r.ReadF32(); err != nil {
		return Wrap("point.x", err)
	}
	if p.Y, err = r.ReadF32(); err != nil {
		return Wrap("point.y", err)
	}
	return nil
}

// label is a dynamically sized record.
type label struct {
	Text string
}

func (l label) EncodedSize() int      { return StringSize(l.Text) }
func (l label) Encode(w buffer.Writer) { WriteString(w, l.Text) }
func (l *label) Decode(r buffer.Reader) (err error) {
	l.Text, err = ReadString(r)
	return Wrap("label", err)
}

func TestEncodeWidthMatchesSize(t *testing.T) {
	tests := []struct {
		name string
		v    Encoder
	}{
		{"static record", point{1, 2}},
		{"dynamic record", label{"hello"}},
		{"empty text", label{""}},
		{"bits", Bits(5)},
		{"public key", PublicKey{1, 2, 3}},
		{"inline string", MustInlineString("abc")},
		{"present option", Some[point](point{3, 4})},
		{"absent option", None[point]()},
		{"remainder", NewRemainderBytes([]byte{9, 8, 7})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			size, ok := SizeOf(tt.v)
			require.True(t, ok)
			assert.Len(t, Encode(tt.v), size)
			assert.Len(t, EncodeFast(tt.v), size)
		})
	}
}

func TestStaticRoundTrip(t *testing.T) {
	in := point{X: 1.25, Y: -7}
	var out point
	require.NoError(t, Decode(Encode(in), &out))
	assert.Equal(t, in, out)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"", "chat message", "ünïcødé ✓"} {
		var out label
		require.NoError(t, Decode(Encode(label{s}), &out))
		assert.Equal(t, s, out.Text)
	}
}

func TestStringInvalidUTF8(t *testing.T) {
	b := buffer.NewByteBuffer(0)
	b.WriteU32(2)
	b.WriteBytes([]byte{0xff, 0xfe})

	var out label
	err := Decode(b.Bytes(), &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "label.text", de.Field)
}

func TestStringLengthBeyondInput(t *testing.T) {
	b := buffer.NewByteBuffer(0)
	b.WriteU32(1 << 30)
	b.WriteBytes([]byte("short"))

	var out label
	assert.ErrorIs(t, Decode(b.Bytes(), &out), ErrUnexpectedEOF)
}

func TestTruncatedStaticRecord(t *testing.T) {
	data := Encode(point{1, 2})
	var out point
	err := Decode(data[:5], &out)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "point.y")
}

func TestReadBool(t *testing.T) {
	for in, want := range map[byte]bool{0: false, 1: true} {
		v, err := ReadBool(buffer.NewByteReader([]byte{in}))
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := ReadBool(buffer.NewByteReader([]byte{2}))
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestSliceRoundTrip(t *testing.T) {
	in := []point{{1, 2}, {3, 4}, {5, 6}}
	b := buffer.NewByteBuffer(0)
	EncodeSlice(b, in)
	assert.Equal(t, SliceSize(in), b.Len())
	assert.Equal(t, SizeLenPrefix+3*sizePoint, b.Len())

	out, err := DecodeSlice[point](b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSliceDynamicElements(t *testing.T) {
	in := []label{{"a"}, {"bcd"}}
	b := buffer.NewByteBuffer(0)
	EncodeSlice(b, in)
	assert.Equal(t, SliceSize(in), b.Len())

	out, err := DecodeSlice[label](b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSliceHugeCount(t *testing.T) {
	b := buffer.NewByteBuffer(0)
	b.WriteU32(0xFFFFFFFF)
	_, err := DecodeSlice[point](b)
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestSliceTruncatedElement(t *testing.T) {
	b := buffer.NewByteBuffer(0)
	EncodeSlice(b, []point{{1, 2}, {3, 4}})
	data := b.Bytes()[:b.Len()-2]

	_, err := DecodeSlice[point](buffer.NewByteReader(data))
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "[1]")
}

func TestPrimitiveSlice(t *testing.T) {
	b := buffer.NewByteBuffer(0)
	EncodeSliceWith(b, []int32{4, -5, 6}, buffer.Writer.WriteI32)

	out, err := DecodeSliceWith(b, 16, buffer.Reader.ReadI32)
	require.NoError(t, err)
	assert.Equal(t, []int32{4, -5, 6}, out)

	b.Reset()
	EncodeSliceWith(b, make([]int32, 20), buffer.Writer.WriteI32)
	_, err = DecodeSliceWith(b, 16, buffer.Reader.ReadI32)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFixedArray(t *testing.T) {
	in := [3]point{{1, 1}, {2, 2}, {3, 3}}
	b := buffer.NewByteBuffer(0)
	EncodeArray(b, in[:])
	assert.Equal(t, ArraySize(3, sizePoint), b.Len())

	var out [3]point
	require.NoError(t, DecodeArray(b, out[:]))
	assert.Equal(t, in, out)
}

func TestFixedPrimitiveArray(t *testing.T) {
	in := [4]int32{1, 2, 0, 0}
	b := buffer.NewByteBuffer(0)
	EncodeArrayWith(b, in[:], buffer.Writer.WriteI32)
	assert.Equal(t, ArraySize(4, SizeI32), b.Len())

	var out [4]int32
	require.NoError(t, DecodeArrayWith(b, out[:], buffer.Reader.ReadI32))
	assert.Equal(t, in, out)

	var short [5]int32
	b.SetReadPos(0)
	assert.ErrorIs(t, DecodeArrayWith(b, short[:], buffer.Reader.ReadI32), ErrUnexpectedEOF)
}

func TestOptionWidthInvariant(t *testing.T) {
	present := Some[point](point{1, 2})
	absent := None[point]()

	assert.Equal(t, SizeBool+sizePoint, present.StaticSize())
	assert.Equal(t, present.StaticSize(), absent.StaticSize())
	assert.Len(t, Encode(present), present.StaticSize())
	assert.Len(t, Encode(absent), absent.StaticSize())
	assert.Equal(t, len(Encode(present)), len(Encode(absent)))
}

func TestOptionRoundTrip(t *testing.T) {
	var out Option[point, *point]
	require.NoError(t, Decode(Encode(Some[point](point{5, 6})), &out))
	v, ok := out.Get()
	assert.True(t, ok)
	assert.Equal(t, point{5, 6}, v)

	// an absent option consumes the padding so following fields stay aligned
	b := buffer.NewByteBuffer(0)
	None[point]().Encode(b)
	b.WriteU8(42)

	require.NoError(t, out.Decode(b))
	assert.False(t, out.IsPresent())
	tail, err := b.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(42), tail)
}

func TestOptionInvalidFlag(t *testing.T) {
	data := Encode(Some[point](point{1, 1}))
	data[0] = 7
	var out Option[point, *point]
	assert.ErrorIs(t, Decode(data, &out), ErrInvalidValue)
}

func TestRemainderBytes(t *testing.T) {
	b := buffer.NewByteBuffer(0)
	b.WriteU16(3)
	b.WriteBytes([]byte{1, 2, 3, 4})

	_, _ = b.ReadU16()
	var rb RemainderBytes
	require.NoError(t, rb.Decode(b))
	assert.Equal(t, []byte{1, 2, 3, 4}, rb.Bytes())
	assert.Equal(t, 0, b.Remaining())

	src := []byte{5, 6}
	rb = NewRemainderBytes(src)
	src[0] = 0
	assert.Equal(t, []byte{5, 6}, rb.Bytes(), "construction copies the input")
}

func TestPublicKey(t *testing.T) {
	var in PublicKey
	for i := range in {
		in[i] = byte(i)
	}
	data := Encode(in)
	assert.Len(t, data, KeySize)
	assert.Equal(t, in[:], data, "keys are written raw")

	var out PublicKey
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, in, out)
	assert.ErrorIs(t, Decode(data[:KeySize-1], &out), ErrUnexpectedEOF)
}

func TestBits(t *testing.T) {
	var b Bits
	b.Set(0, true)
	b.Set(3, true)
	assert.True(t, b.Get(0))
	assert.False(t, b.Get(1))
	assert.True(t, b.Get(3))
	b.Set(0, false)
	assert.False(t, b.Get(0))

	var out Bits
	require.NoError(t, Decode(Encode(b), &out))
	assert.Equal(t, b, out)
}

func TestInlineString(t *testing.T) {
	s := MustInlineString("player one")
	data := Encode(s)
	assert.Len(t, data, SizeInlineString)

	var out InlineString
	require.NoError(t, Decode(data, &out))
	assert.Equal(t, "player one", out.String())

	_, err := NewInlineString("this name is far too long")
	assert.Error(t, err)

	data[0] = InlineStringCap + 1
	assert.ErrorIs(t, Decode(data, &out), ErrInvalidValue)
}

func TestWrapNilAndNested(t *testing.T) {
	assert.NoError(t, Wrap("x", nil))

	err := Wrap("outer", Wrap("inner", ErrInvalidValue))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "outer.inner", de.Field)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestPrimitiveDecodeFailuresAreDecodeErrors(t *testing.T) {
	i32s := func(r buffer.Reader) error {
		_, err := DecodeSliceWith(r, 4, buffer.Reader.ReadI32)
		return err
	}
	cases := []struct {
		name  string
		data  []byte
		read  func(buffer.Reader) error
		field string
		cause error
	}{
		{"bool out of range", []byte{2}, func(r buffer.Reader) error { _, err := ReadBool(r); return err }, "bool", ErrInvalidValue},
		{"bool missing", nil, func(r buffer.Reader) error { _, err := ReadBool(r); return err }, "bool", ErrUnexpectedEOF},
		{"string length missing", []byte{0, 0}, func(r buffer.Reader) error { _, err := ReadString(r); return err }, "len", ErrUnexpectedEOF},
		{"string length beyond input", []byte{0, 0, 0, 9, 'a'}, func(r buffer.Reader) error { _, err := ReadString(r); return err }, "len", ErrUnexpectedEOF},
		{"string not utf-8", []byte{0, 0, 0, 1, 0xff}, func(r buffer.Reader) error { _, err := ReadString(r); return err }, "text", ErrInvalidUTF8},
		{"slice count missing", []byte{0}, func(r buffer.Reader) error { _, err := DecodeSlice[point](r); return err }, "len", ErrUnexpectedEOF},
		{"slice count beyond input", []byte{0xff, 0xff, 0xff, 0xff}, func(r buffer.Reader) error { _, err := DecodeSlice[point](r); return err }, "len", ErrUnexpectedEOF},
		{"primitive count above limit", []byte{0, 0, 0, 5}, i32s, "len", ErrInvalidValue},
		{"primitive count beyond input", []byte{0, 0, 0, 3, 0, 0}, i32s, "len", ErrUnexpectedEOF},
		{"primitive element truncated", []byte{0, 0, 0, 2, 0, 0, 0, 1, 0, 0, 0}, i32s, "[1]", ErrUnexpectedEOF},
		{"array element truncated", []byte{0, 1, 0}, func(r buffer.Reader) error {
			var dst [2]int16
			return DecodeArrayWith(r, dst[:], buffer.Reader.ReadI16)
		}, "[1]", ErrUnexpectedEOF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read(buffer.NewByteReader(tc.data))
			var de *DecodeError
			require.True(t, errors.As(err, &de), "got %v", err)
			assert.Equal(t, tc.field, de.Field)
			assert.ErrorIs(t, err, tc.cause)
		})
	}
}
