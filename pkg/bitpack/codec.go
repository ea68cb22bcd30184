package bitpack

import (
	"io"
	"math"
	"math/bits"

	"github.com/cockroachdb/errors"

	"github.com/doe300/serialize"
)

// Encoder writes values to w using the left-adjusted bit cache and
// Exp-Golomb coding in this package. It buffers partial bytes across
// writes; Flush must be called exactly once, after the last write.
//
// Not safe for concurrent use; independent Encoders share no state.
type Encoder struct {
	w     io.Writer
	cache Cache
}

var _ serialize.Serializer = (*Encoder)(nil)

// NewEncoder wraps w with the bit-packed codec.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) sink(b byte) error {
	if _, err := e.w.Write([]byte{b}); err != nil {
		return errors.Mark(err, serialize.ErrSinkFailure)
	}
	return nil
}

func (e *Encoder) writeUnsigned(v uint64) error {
	return WriteBits(&e.cache, e.sink, EncodeUnsigned(v))
}

func (e *Encoder) writeSigned(v int64) error {
	return WriteBits(&e.cache, e.sink, EncodeSigned(v))
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.writeUnsigned(1)
	}
	return e.writeUnsigned(0)
}

func (e *Encoder) WriteInt8(v int8) error   { return e.writeSigned(int64(v)) }
func (e *Encoder) WriteUint8(v uint8) error { return e.writeUnsigned(uint64(v)) }

func (e *Encoder) WriteInt16(v int16) error   { return e.writeSigned(int64(v)) }
func (e *Encoder) WriteUint16(v uint16) error { return e.writeUnsigned(uint64(v)) }

func (e *Encoder) WriteInt32(v int32) error   { return e.writeSigned(int64(v)) }
func (e *Encoder) WriteUint32(v uint32) error { return e.writeUnsigned(uint64(v)) }

func (e *Encoder) WriteInt64(v int64) error   { return e.writeSigned(v) }
func (e *Encoder) WriteUint64(v uint64) error { return e.writeUnsigned(v) }

// WriteFloat32 reverses val's bit pattern before coding it. Floating
// point values tend to have more of their high bits set than their low
// bits (the exponent sits high, and the low mantissa bits are often zero
// for "round" values like powers of two); reversing moves those zero runs
// to the front, where Exp-Golomb coding rewards them with a short code.
func (e *Encoder) WriteFloat32(v float32) error {
	return e.writeUnsigned(uint64(bits.Reverse32(math.Float32bits(v))))
}

func (e *Encoder) WriteFloat64(v float64) error {
	return e.writeUnsigned(bits.Reverse64(math.Float64bits(v)))
}

// WriteLongDouble reverses and codes each 64-bit chunk independently, Lo
// then Hi, the same way WriteFloat64 treats a double.
func (e *Encoder) WriteLongDouble(v serialize.LongDouble) error {
	if err := e.writeUnsigned(bits.Reverse64(v.Lo)); err != nil {
		return err
	}
	return e.writeUnsigned(bits.Reverse64(v.Hi))
}

func (e *Encoder) WriteChar(v serialize.Char) error     { return e.writeSigned(int64(v)) }
func (e *Encoder) WriteWChar(v serialize.WChar) error   { return e.writeSigned(int64(v)) }
func (e *Encoder) WriteChar8(v serialize.Char8) error   { return e.writeUnsigned(uint64(v)) }
func (e *Encoder) WriteChar16(v serialize.Char16) error { return e.writeUnsigned(uint64(v)) }
func (e *Encoder) WriteChar32(v serialize.Char32) error { return e.writeUnsigned(uint64(v)) }

// Flush empties whatever full bytes are cached, then pads the remaining
// partial byte, if any, with zero bits until it too can be flushed.
func (e *Encoder) Flush() error {
	if err := FlushFullBytes(&e.cache, e.sink); err != nil {
		return err
	}
	for e.cache.UsedBits != 0 {
		e.cache.UsedBits++
		if err := FlushFullBytes(&e.cache, e.sink); err != nil {
			return err
		}
	}
	return nil
}

// Decoder reads values written by Encoder back out of r.
//
// Not safe for concurrent use; independent Decoders share no state.
type Decoder struct {
	r     io.Reader
	cache Cache
}

var _ serialize.Deserializer = (*Decoder)(nil)

// NewDecoder wraps r with the bit-packed codec.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) source() (byte, bool, error) {
	var buf [1]byte
	n, err := d.r.Read(buf[:])
	if n == 1 {
		return buf[0], true, nil
	}
	if err == io.EOF || err == nil {
		return 0, false, nil
	}
	return 0, false, errors.Mark(err, serialize.ErrSinkFailure)
}

func (d *Decoder) readUnsigned() (uint64, error) {
	bv, err := ReadExpGolombBits(&d.cache, d.source)
	if err != nil {
		return 0, err
	}
	if bv.NumBits == 0 {
		return 0, serialize.ErrUnexpectedEOF
	}
	return DecodeUnsigned(bv.Value), nil
}

func (d *Decoder) readSigned() (int64, error) {
	bv, err := ReadExpGolombBits(&d.cache, d.source)
	if err != nil {
		return 0, err
	}
	if bv.NumBits == 0 {
		return 0, serialize.ErrUnexpectedEOF
	}
	return DecodeSigned(bv.Value), nil
}

func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.readUnsigned()
	return v != 0, err
}

func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.readSigned()
	return int8(v), err
}

func (d *Decoder) ReadUint8() (uint8, error) {
	v, err := d.readUnsigned()
	return uint8(v), err
}

func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.readSigned()
	return int16(v), err
}

func (d *Decoder) ReadUint16() (uint16, error) {
	v, err := d.readUnsigned()
	return uint16(v), err
}

func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.readSigned()
	return int32(v), err
}

func (d *Decoder) ReadUint32() (uint32, error) {
	v, err := d.readUnsigned()
	return uint32(v), err
}

func (d *Decoder) ReadInt64() (int64, error) { return d.readSigned() }

func (d *Decoder) ReadUint64() (uint64, error) { return d.readUnsigned() }

func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.readUnsigned()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits.Reverse32(uint32(v))), nil
}

func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.readUnsigned()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits.Reverse64(v)), nil
}

func (d *Decoder) ReadLongDouble() (serialize.LongDouble, error) {
	lo, err := d.readUnsigned()
	if err != nil {
		return serialize.LongDouble{}, err
	}
	hi, err := d.readUnsigned()
	if err != nil {
		return serialize.LongDouble{}, err
	}
	return serialize.LongDouble{Lo: bits.Reverse64(lo), Hi: bits.Reverse64(hi)}, nil
}

func (d *Decoder) ReadChar() (serialize.Char, error) {
	v, err := d.readSigned()
	return serialize.Char(v), err
}

func (d *Decoder) ReadWChar() (serialize.WChar, error) {
	v, err := d.readSigned()
	return serialize.WChar(v), err
}

func (d *Decoder) ReadChar8() (serialize.Char8, error) {
	v, err := d.readUnsigned()
	return serialize.Char8(v), err
}

func (d *Decoder) ReadChar16() (serialize.Char16, error) {
	v, err := d.readUnsigned()
	return serialize.Char16(v), err
}

func (d *Decoder) ReadChar32() (serialize.Char32, error) {
	v, err := d.readUnsigned()
	return serialize.Char32(v), err
}
