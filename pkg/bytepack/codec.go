// Package bytepack implements a byte-aligned, LEB128-style varint codec:
// 7 payload bits plus one continuation bit per byte, little-endian byte
// order. Signed values are written as the raw two's-complement bit
// pattern of their unsigned cast, not zigzag-folded, so small negative
// numbers cost as many bytes as large positive ones — the same trade this
// codec's reference implementation makes.
package bytepack

import (
	"io"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/doe300/serialize"
)

const (
	valueMask         = 0x7F
	continuationFlag  = 0x80
	continuationShift = 7
)

// Encoder writes values to w as byte-aligned varints. It buffers nothing
// across writes; Flush is a no-op kept only to satisfy
// serialize.Serializer.
//
// Not safe for concurrent use; independent Encoders share no state.
type Encoder struct {
	w io.Writer
}

var _ serialize.Serializer = (*Encoder)(nil)

// NewEncoder wraps w with the byte-packed codec.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) writeVarint(v uint64) error {
	buf := make([]byte, 0, 10)
	if v == 0 {
		buf = append(buf, 0)
	} else {
		for v != 0 {
			chunk := byte(v & valueMask)
			v >>= continuationShift
			if v != 0 {
				chunk |= continuationFlag
			}
			buf = append(buf, chunk)
		}
	}
	if _, err := e.w.Write(buf); err != nil {
		return errors.Mark(err, serialize.ErrSinkFailure)
	}
	return nil
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.writeVarint(1)
	}
	return e.writeVarint(0)
}

func (e *Encoder) WriteInt8(v int8) error     { return e.writeVarint(uint64(uint8(v))) }
func (e *Encoder) WriteUint8(v uint8) error   { return e.writeVarint(uint64(v)) }
func (e *Encoder) WriteInt16(v int16) error   { return e.writeVarint(uint64(uint16(v))) }
func (e *Encoder) WriteUint16(v uint16) error { return e.writeVarint(uint64(v)) }
func (e *Encoder) WriteInt32(v int32) error   { return e.writeVarint(uint64(uint32(v))) }
func (e *Encoder) WriteUint32(v uint32) error { return e.writeVarint(uint64(v)) }
func (e *Encoder) WriteInt64(v int64) error   { return e.writeVarint(uint64(v)) }
func (e *Encoder) WriteUint64(v uint64) error { return e.writeVarint(v) }

func (e *Encoder) WriteFloat32(v float32) error { return e.writeVarint(uint64(math.Float32bits(v))) }
func (e *Encoder) WriteFloat64(v float64) error { return e.writeVarint(math.Float64bits(v)) }

func (e *Encoder) WriteLongDouble(v serialize.LongDouble) error {
	if err := e.writeVarint(v.Lo); err != nil {
		return err
	}
	return e.writeVarint(v.Hi)
}

func (e *Encoder) WriteChar(v serialize.Char) error     { return e.writeVarint(uint64(uint8(v))) }
func (e *Encoder) WriteWChar(v serialize.WChar) error   { return e.writeVarint(uint64(uint32(v))) }
func (e *Encoder) WriteChar8(v serialize.Char8) error   { return e.writeVarint(uint64(v)) }
func (e *Encoder) WriteChar16(v serialize.Char16) error { return e.writeVarint(uint64(v)) }
func (e *Encoder) WriteChar32(v serialize.Char32) error { return e.writeVarint(uint64(v)) }

// Flush is a no-op: the codec never buffers bits across byte boundaries.
func (e *Encoder) Flush() error { return nil }

// Decoder reads values written by Encoder back out of r.
//
// Not safe for concurrent use; independent Decoders share no state.
type Decoder struct {
	r io.Reader
}

var _ serialize.Deserializer = (*Decoder)(nil)

// NewDecoder wraps r with the byte-packed codec.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) readByte() (byte, bool, error) {
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

func (d *Decoder) readVarint() (uint64, error) {
	var result uint64
	var offset uint
	for {
		b, ok, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, serialize.ErrUnexpectedEOF
		}
		result |= uint64(b&valueMask) << offset
		if b&continuationFlag == 0 {
			return result, nil
		}
		offset += continuationShift
	}
}

func (d *Decoder) ReadBool() (bool, error) {
	v, err := d.readVarint()
	return v != 0, err
}

func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.readVarint()
	return int8(uint8(v)), err
}

func (d *Decoder) ReadUint8() (uint8, error) {
	v, err := d.readVarint()
	return uint8(v), err
}

func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.readVarint()
	return int16(uint16(v)), err
}

func (d *Decoder) ReadUint16() (uint16, error) {
	v, err := d.readVarint()
	return uint16(v), err
}

func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.readVarint()
	return int32(uint32(v)), err
}

func (d *Decoder) ReadUint32() (uint32, error) {
	v, err := d.readVarint()
	return uint32(v), err
}

func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.readVarint()
	return int64(v), err
}

func (d *Decoder) ReadUint64() (uint64, error) { return d.readVarint() }

func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.readVarint()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (d *Decoder) ReadLongDouble() (serialize.LongDouble, error) {
	lo, err := d.readVarint()
	if err != nil {
		return serialize.LongDouble{}, err
	}
	hi, err := d.readVarint()
	if err != nil {
		return serialize.LongDouble{}, err
	}
	return serialize.LongDouble{Lo: lo, Hi: hi}, nil
}

func (d *Decoder) ReadChar() (serialize.Char, error) {
	v, err := d.readVarint()
	return serialize.Char(uint8(v)), err
}

func (d *Decoder) ReadWChar() (serialize.WChar, error) {
	v, err := d.readVarint()
	return serialize.WChar(uint32(v)), err
}

func (d *Decoder) ReadChar8() (serialize.Char8, error) {
	v, err := d.readVarint()
	return serialize.Char8(v), err
}

func (d *Decoder) ReadChar16() (serialize.Char16, error) {
	v, err := d.readVarint()
	return serialize.Char16(v), err
}

func (d *Decoder) ReadChar32() (serialize.Char32, error) {
	v, err := d.readVarint()
	return serialize.Char32(v), err
}
