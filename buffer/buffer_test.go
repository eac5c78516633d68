package buffer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBufferRoundTrip(t *testing.T) {
	b := NewByteBuffer(0)
	b.WriteU8(0xAB)
	b.WriteU16(0x1234)
	b.WriteU32(0xDEADBEEF)
	b.WriteU64(1 << 60)
	b.WriteI8(-3)
	b.WriteI16(-300)
	b.WriteI32(-70000)
	b.WriteI64(-1)
	b.WriteF32(1.5)
	b.WriteF64(-2.25)
	b.WriteBool(true)
	b.WriteBytes([]byte("hi"))
	b.WriteZeros(3)

	assert.Equal(t, 1+2+4+8+1+2+4+8+4+8+1+2+3, b.Len())

	u8, _ := b.ReadU8()
	u16, _ := b.ReadU16()
	u32, _ := b.ReadU32()
	u64, _ := b.ReadU64()
	i8, _ := b.ReadI8()
	i16, _ := b.ReadI16()
	i32, _ := b.ReadI32()
	i64, _ := b.ReadI64()
	f32, _ := b.ReadF32()
	f64, _ := b.ReadF64()
	bl, _ := b.ReadU8()
	bs, err := b.ReadBytes(2)
	require.NoError(t, err)

	assert.Equal(t, uint8(0xAB), u8)
	assert.Equal(t, uint16(0x1234), u16)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	assert.Equal(t, uint64(1<<60), u64)
	assert.Equal(t, int8(-3), i8)
	assert.Equal(t, int16(-300), i16)
	assert.Equal(t, int32(-70000), i32)
	assert.Equal(t, int64(-1), i64)
	assert.Equal(t, float32(1.5), f32)
	assert.Equal(t, -2.25, f64)
	assert.Equal(t, uint8(1), bl)
	assert.Equal(t, []byte("hi"), bs)
	assert.Equal(t, []byte{0, 0, 0}, b.ReadRemaining())
	assert.Equal(t, 0, b.Remaining())
}

func TestByteBufferBigEndian(t *testing.T) {
	b := NewByteBuffer(4)
	b.WriteU32(0x01020304)
	assert.Equal(t, []byte{1, 2, 3, 4}, b.Bytes())
}

func TestByteBufferTruncated(t *testing.T) {
	b := FromBytes([]byte{1, 2, 3})
	_, err := b.ReadU32()
	assert.True(t, errors.Is(err, ErrEndOfBuffer))

	// a failed read does not consume anything
	v, err := b.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)

	assert.ErrorIs(t, b.Skip(2), ErrEndOfBuffer)
	_, err = b.ReadBytes(-1)
	assert.ErrorIs(t, err, ErrEndOfBuffer)
}

func TestByteBufferOverwrite(t *testing.T) {
	b := NewByteBuffer(0)
	b.WriteU16(7)
	b.WriteU32(10)
	b.WriteU64(99)

	b.SetPos(2)
	b.WriteU32(4)

	assert.Equal(t, 14, b.Len(), "overwriting must not change the length")
	_ = b.Skip(2)
	v, _ := b.ReadU32()
	assert.Equal(t, uint32(4), v)
}

func TestByteBufferReset(t *testing.T) {
	b := NewByteBuffer(8)
	b.WriteU64(5)
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Remaining())
	b.WriteU8(1)
	assert.Equal(t, []byte{1}, b.Bytes())
}

func TestFastBufferExactCapacity(t *testing.T) {
	b := NewFastBuffer(6)
	b.WriteU16(1)
	b.WriteU32(2)
	assert.True(t, b.Full())
	assert.Equal(t, []byte{0, 1, 0, 0, 0, 2}, b.Bytes())
}

func TestFastBufferOverrunPanics(t *testing.T) {
	b := NewFastBuffer(3)
	b.WriteU16(1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
	}()
	b.WriteU16(2)
	t.Fatal("write past capacity must panic")
}

func TestFastBufferSeekBack(t *testing.T) {
	b := NewFastBuffer(11)
	b.WriteU8(9)
	b.WriteU16(0)
	b.WriteU32(2)
	b.WriteU32(0xFFFFFFFF)

	b.SetPos(3)
	b.WriteU32(1)

	assert.Equal(t, 11, b.Len())
	assert.Equal(t, []byte{9, 0, 0, 0, 0, 0, 1, 0xFF, 0xFF, 0xFF, 0xFF}, b.Bytes())
}

func TestByteReader(t *testing.T) {
	r := NewByteReader([]byte{0, 5, 'a', 'b', 'c'})
	v, err := r.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(5), v)
	assert.Equal(t, 3, r.Remaining())
	assert.Equal(t, []byte("abc"), r.ReadRemaining())
	_, err = r.ReadU8()
	assert.ErrorIs(t, err, ErrEndOfBuffer)
}
