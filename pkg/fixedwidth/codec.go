// Package fixedwidth implements a native byte-pattern passthrough codec:
// every primitive is written as its fixed-width little-endian byte
// pattern, with no bit packing and no compression. It is the fastest and
// largest of the three backends, and the only one offering a true bulk
// fast path — its primitive writes already are a raw memory copy, so a
// byte-like sequence can skip per-element encoding entirely.
package fixedwidth

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"

	"github.com/doe300/serialize"
)

// Encoder writes values to w as fixed-width little-endian byte patterns.
//
// Not safe for concurrent use; independent Encoders share no state.
type Encoder struct {
	w io.Writer
}

var (
	_ serialize.Serializer     = (*Encoder)(nil)
	_ serialize.BulkSerializer = (*Encoder)(nil)
)

// NewEncoder wraps w with the fixed-width codec.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

func (e *Encoder) write(b []byte) error {
	if _, err := e.w.Write(b); err != nil {
		return errors.Mark(err, serialize.ErrSinkFailure)
	}
	return nil
}

func (e *Encoder) WriteBool(v bool) error {
	if v {
		return e.write([]byte{1})
	}
	return e.write([]byte{0})
}

func (e *Encoder) WriteInt8(v int8) error   { return e.write([]byte{byte(v)}) }
func (e *Encoder) WriteUint8(v uint8) error { return e.write([]byte{v}) }

func (e *Encoder) WriteInt16(v int16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	return e.write(buf[:])
}

func (e *Encoder) WriteUint16(v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return e.write(buf[:])
}

func (e *Encoder) WriteInt32(v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	return e.write(buf[:])
}

func (e *Encoder) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return e.write(buf[:])
}

func (e *Encoder) WriteInt64(v int64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return e.write(buf[:])
}

func (e *Encoder) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return e.write(buf[:])
}

func (e *Encoder) WriteFloat32(v float32) error { return e.WriteUint32(math.Float32bits(v)) }
func (e *Encoder) WriteFloat64(v float64) error { return e.WriteUint64(math.Float64bits(v)) }

func (e *Encoder) WriteLongDouble(v serialize.LongDouble) error {
	if err := e.WriteUint64(v.Lo); err != nil {
		return err
	}
	return e.WriteUint64(v.Hi)
}

func (e *Encoder) WriteChar(v serialize.Char) error     { return e.write([]byte{byte(v)}) }
func (e *Encoder) WriteWChar(v serialize.WChar) error   { return e.WriteInt32(int32(v)) }
func (e *Encoder) WriteChar8(v serialize.Char8) error   { return e.write([]byte{byte(v)}) }
func (e *Encoder) WriteChar16(v serialize.Char16) error { return e.WriteUint16(uint16(v)) }
func (e *Encoder) WriteChar32(v serialize.Char32) error { return e.WriteUint32(uint32(v)) }

// WriteRaw appends data verbatim; any element count it describes is left
// to the caller (for strings and byte sequences the shape walker writes it
// as an ordinary WriteUint64 ahead of calling WriteRaw; a wide Bitset
// writes no count).
func (e *Encoder) WriteRaw(data []byte) error { return e.write(data) }

// Flush is a no-op: every write above is already a complete, byte-aligned
// copy with nothing buffered between calls.
func (e *Encoder) Flush() error { return nil }

// Decoder reads values written by Encoder back out of r.
//
// Not safe for concurrent use; independent Decoders share no state.
type Decoder struct {
	r io.Reader
}

var (
	_ serialize.Deserializer     = (*Decoder)(nil)
	_ serialize.BulkDeserializer = (*Decoder)(nil)
)

// NewDecoder wraps r with the fixed-width codec.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

func (d *Decoder) read(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, serialize.ErrUnexpectedEOF
		}
		return nil, errors.Mark(err, serialize.ErrSinkFailure)
	}
	return buf, nil
}

func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.read(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (d *Decoder) ReadInt8() (int8, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (d *Decoder) ReadUint8() (uint8, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadInt16() (int16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (d *Decoder) ReadInt32() (int32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) ReadInt64() (int64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

func (d *Decoder) ReadUint64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (d *Decoder) ReadLongDouble() (serialize.LongDouble, error) {
	lo, err := d.ReadUint64()
	if err != nil {
		return serialize.LongDouble{}, err
	}
	hi, err := d.ReadUint64()
	if err != nil {
		return serialize.LongDouble{}, err
	}
	return serialize.LongDouble{Lo: lo, Hi: hi}, nil
}

func (d *Decoder) ReadChar() (serialize.Char, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return serialize.Char(int8(b[0])), nil
}

func (d *Decoder) ReadWChar() (serialize.WChar, error) {
	v, err := d.ReadInt32()
	return serialize.WChar(v), err
}

func (d *Decoder) ReadChar8() (serialize.Char8, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return serialize.Char8(b[0]), nil
}

func (d *Decoder) ReadChar16() (serialize.Char16, error) {
	v, err := d.ReadUint16()
	return serialize.Char16(v), err
}

func (d *Decoder) ReadChar32() (serialize.Char32, error) {
	v, err := d.ReadUint32()
	return serialize.Char32(v), err
}

// ReadRaw reads n bytes verbatim; the caller is expected to have already
// read the element count that precedes them.
func (d *Decoder) ReadRaw(n int) ([]byte, error) { return d.read(n) }
