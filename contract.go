package serialize

// Serializer is the write side of a wire backend. Every backend in
// pkg/bitpack, pkg/bytepack and pkg/fixedwidth implements it, as does the
// wrapper in pkg/typesafe.
//
// Implementations are not safe for concurrent use. Flush must be called
// exactly once, after the last write, before the underlying sink is
// released; a backend may buffer bits or bytes across writes and only
// guarantee a byte-aligned, complete output after Flush returns.
type Serializer interface {
	WriteBool(bool) error
	WriteInt8(int8) error
	WriteUint8(uint8) error
	WriteInt16(int16) error
	WriteUint16(uint16) error
	WriteInt32(int32) error
	WriteUint32(uint32) error
	WriteInt64(int64) error
	WriteUint64(uint64) error
	WriteFloat32(float32) error
	WriteFloat64(float64) error
	WriteLongDouble(LongDouble) error
	WriteChar(Char) error
	WriteWChar(WChar) error
	WriteChar8(Char8) error
	WriteChar16(Char16) error
	WriteChar32(Char32) error
	Flush() error
}

// BulkSerializer is implemented by backends that can append raw bytes
// without going through the bit/byte packing of individual primitive
// writes. The shape walker uses it as a fast path for byte-like sequences.
type BulkSerializer interface {
	Serializer
	WriteRaw(data []byte) error
}

// Deserializer is the read side of a wire backend, symmetric to
// Serializer. A failed Read call never leaves the addressed value
// partially written; the caller's zero value for that leaf is unchanged
// and the caller must treat the whole decode as failed.
type Deserializer interface {
	ReadBool() (bool, error)
	ReadInt8() (int8, error)
	ReadUint8() (uint8, error)
	ReadInt16() (int16, error)
	ReadUint16() (uint16, error)
	ReadInt32() (int32, error)
	ReadUint32() (uint32, error)
	ReadInt64() (int64, error)
	ReadUint64() (uint64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)
	ReadLongDouble() (LongDouble, error)
	ReadChar() (Char, error)
	ReadWChar() (WChar, error)
	ReadChar8() (Char8, error)
	ReadChar16() (Char16, error)
	ReadChar32() (Char32, error)
}

// BulkDeserializer is implemented by backends that can read raw bytes
// without going through per-primitive decoding.
type BulkDeserializer interface {
	Deserializer
	ReadRaw(n int) ([]byte, error)
}

// SelfEncoder is implemented by types that know how to serialize
// themselves. It takes priority over a Register-ed free function and over
// the built-in shape rules.
type SelfEncoder interface {
	EncodeSelf(e *Encoder) error
}

// SelfDecoder is the read-side counterpart of SelfEncoder.
type SelfDecoder interface {
	DecodeSelf(d *Decoder) error
}
