package typesafe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doe300/serialize"
	"github.com/doe300/serialize/pkg/bitpack"
	"github.com/doe300/serialize/pkg/bytepack"
	"github.com/doe300/serialize/pkg/fixedwidth"
)

func TestRoundTripAcrossAllBackends(t *testing.T) {
	backends := map[string]func(*bytes.Buffer) (serialize.Serializer, func() serialize.Deserializer){
		"bitpack": func(buf *bytes.Buffer) (serialize.Serializer, func() serialize.Deserializer) {
			return bitpack.NewEncoder(buf), func() serialize.Deserializer { return bitpack.NewDecoder(buf) }
		},
		"bytepack": func(buf *bytes.Buffer) (serialize.Serializer, func() serialize.Deserializer) {
			return bytepack.NewEncoder(buf), func() serialize.Deserializer { return bytepack.NewDecoder(buf) }
		},
		"fixedwidth": func(buf *bytes.Buffer) (serialize.Serializer, func() serialize.Deserializer) {
			return fixedwidth.NewEncoder(buf), func() serialize.Deserializer { return fixedwidth.NewDecoder(buf) }
		},
	}

	for name, makeBackend := range backends {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			backend, makeDecoder := makeBackend(&buf)

			switch enc := backend.(type) {
			case *bitpack.Encoder:
				tagged := NewEncoder[*bitpack.Encoder](enc)
				require.NoError(t, tagged.WriteUint32(123456))
				require.NoError(t, tagged.WriteBool(true))
				require.NoError(t, tagged.Flush())
			case *bytepack.Encoder:
				tagged := NewEncoder[*bytepack.Encoder](enc)
				require.NoError(t, tagged.WriteUint32(123456))
				require.NoError(t, tagged.WriteBool(true))
				require.NoError(t, tagged.Flush())
			case *fixedwidth.Encoder:
				tagged := NewEncoder[*fixedwidth.Encoder](enc)
				require.NoError(t, tagged.WriteUint32(123456))
				require.NoError(t, tagged.WriteBool(true))
				require.NoError(t, tagged.Flush())
			}

			dec := makeDecoder()
			switch d := dec.(type) {
			case *bitpack.Decoder:
				tagged := NewDecoder[*bitpack.Decoder](d)
				v, err := tagged.ReadUint32()
				require.NoError(t, err)
				assert.EqualValues(t, 123456, v)
				b, err := tagged.ReadBool()
				require.NoError(t, err)
				assert.True(t, b)
			case *bytepack.Decoder:
				tagged := NewDecoder[*bytepack.Decoder](d)
				v, err := tagged.ReadUint32()
				require.NoError(t, err)
				assert.EqualValues(t, 123456, v)
				b, err := tagged.ReadBool()
				require.NoError(t, err)
				assert.True(t, b)
			case *fixedwidth.Decoder:
				tagged := NewDecoder[*fixedwidth.Decoder](d)
				v, err := tagged.ReadUint32()
				require.NoError(t, err)
				assert.EqualValues(t, 123456, v)
				b, err := tagged.ReadBool()
				require.NoError(t, err)
				assert.True(t, b)
			}
		})
	}
}

func TestMismatchedReadReturnsTypeMismatchError(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder[*fixedwidth.Encoder](fixedwidth.NewEncoder(&buf))
	require.NoError(t, enc.WriteUint32(42))
	require.NoError(t, enc.Flush())

	dec := NewDecoder[*fixedwidth.Decoder](fixedwidth.NewDecoder(&buf))
	_, err := dec.ReadInt64()
	require.Error(t, err)
	assert.ErrorIs(t, err, serialize.ErrTypeMismatch)

	var mismatch *serialize.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, serialize.TagInt64, mismatch.Expected)
	assert.Equal(t, serialize.TagUint32, mismatch.Actual)
}

func TestMismatchedFloatReadRecoversAfterReset(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder[*fixedwidth.Encoder](fixedwidth.NewEncoder(&buf))
	require.NoError(t, enc.WriteFloat32(17.0))
	require.NoError(t, enc.Flush())
	wire := buf.Bytes()

	dec := NewDecoder[*fixedwidth.Decoder](fixedwidth.NewDecoder(bytes.NewReader(wire)))
	_, err := dec.ReadInt32()
	require.Error(t, err)
	assert.ErrorIs(t, err, serialize.ErrTypeMismatch)

	// Re-read from the start with a fresh decoder, the same idiom as
	// resetting the stream to offset 0 after a mismatch, and recover the
	// value under its actual type.
	recoverDec := NewDecoder[*fixedwidth.Decoder](fixedwidth.NewDecoder(bytes.NewReader(wire)))
	v, err := recoverDec.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(17.0), v)
}

func TestUnwrapReturnsUnderlyingBackend(t *testing.T) {
	var buf bytes.Buffer
	backend := fixedwidth.NewEncoder(&buf)
	enc := NewEncoder[*fixedwidth.Encoder](backend)
	assert.Same(t, backend, enc.Unwrap())
}
