package bitpack

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doe300/serialize"
)

func TestEncoderDecoderRoundTripPrimitives(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	require.NoError(t, enc.WriteBool(true))
	require.NoError(t, enc.WriteInt8(-42))
	require.NoError(t, enc.WriteUint8(200))
	require.NoError(t, enc.WriteInt16(-1000))
	require.NoError(t, enc.WriteUint16(60000))
	require.NoError(t, enc.WriteInt32(-123456))
	require.NoError(t, enc.WriteUint32(123456789))
	require.NoError(t, enc.WriteInt64(-987654321))
	require.NoError(t, enc.WriteUint64(9876543210))
	require.NoError(t, enc.WriteFloat32(3.5))
	require.NoError(t, enc.WriteFloat64(-2.25))
	require.NoError(t, enc.WriteLongDouble(serialize.LongDouble{Lo: 1, Hi: 2}))
	require.NoError(t, enc.WriteChar(serialize.Char('x')))
	require.NoError(t, enc.WriteWChar(serialize.WChar(-7)))
	require.NoError(t, enc.WriteChar8(serialize.Char8('y')))
	require.NoError(t, enc.WriteChar16(serialize.Char16(1000)))
	require.NoError(t, enc.WriteChar32(serialize.Char32(70000)))
	require.NoError(t, enc.Flush())

	dec := NewDecoder(&buf)

	b, err := dec.ReadBool()
	require.NoError(t, err)
	assert.True(t, b)

	i8, err := dec.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-42), i8)

	u8, err := dec.ReadUint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(200), u8)

	i16, err := dec.ReadInt16()
	require.NoError(t, err)
	assert.Equal(t, int16(-1000), i16)

	u16, err := dec.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(60000), u16)

	i32, err := dec.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456), i32)

	u32, err := dec.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(123456789), u32)

	i64, err := dec.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-987654321), i64)

	u64, err := dec.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(9876543210), u64)

	f32, err := dec.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)

	f64, err := dec.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -2.25, f64)

	ld, err := dec.ReadLongDouble()
	require.NoError(t, err)
	assert.Equal(t, serialize.LongDouble{Lo: 1, Hi: 2}, ld)

	ch, err := dec.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, serialize.Char('x'), ch)

	wc, err := dec.ReadWChar()
	require.NoError(t, err)
	assert.Equal(t, serialize.WChar(-7), wc)

	c8, err := dec.ReadChar8()
	require.NoError(t, err)
	assert.Equal(t, serialize.Char8('y'), c8)

	c16, err := dec.ReadChar16()
	require.NoError(t, err)
	assert.Equal(t, serialize.Char16(1000), c16)

	c32, err := dec.ReadChar32()
	require.NoError(t, err)
	assert.Equal(t, serialize.Char32(70000), c32)
}

func TestFloatRoundTripPreservesRoundValues(t *testing.T) {
	// Powers of two have long trailing-zero mantissas; after bit reversal
	// those become a long leading-zero run, which is exactly the case
	// Exp-Golomb codes shortest.
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.WriteFloat64(math.Ldexp(1, 10)))
	require.NoError(t, enc.Flush())
	assert.LessOrEqual(t, buf.Len(), 3)

	dec := NewDecoder(&buf)
	v, err := dec.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, math.Ldexp(1, 10), v)
}

func TestDecoderReportsUnexpectedEOF(t *testing.T) {
	dec := NewDecoder(bytes.NewReader(nil))
	_, err := dec.ReadUint32()
	require.Error(t, err)
	assert.ErrorIs(t, err, serialize.ErrUnexpectedEOF)
}

func TestDecoderReportsEOFMidValue(t *testing.T) {
	// A single zero byte announces a value with a large exponent but
	// supplies none of the promised payload bits.
	dec := NewDecoder(bytes.NewReader([]byte{0x00}))
	_, err := dec.ReadUint64()
	require.Error(t, err)
	assert.ErrorIs(t, err, serialize.ErrUnexpectedEOF)
}

func TestWriteUint64ZeroIsOneBitBeforeFlush(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.WriteUint64(0))

	assert.Equal(t, uint8(1), enc.cache.UsedBits)
	assert.Equal(t, uint64(1)<<63, enc.cache.Value)
	assert.Empty(t, buf.Bytes(), "a single buffered bit must not reach the sink yet")

	require.NoError(t, enc.Flush())
	assert.Equal(t, []byte{0x80}, buf.Bytes())
}

func TestFlushIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	require.NoError(t, enc.WriteUint32(42))
	require.NoError(t, enc.Flush())

	flushed := buf.Len()
	require.NoError(t, enc.Flush())
	assert.Equal(t, flushed, buf.Len(), "a second flush must emit no additional bytes")
}
