// Package typesafe wraps any backend from pkg/bitpack, pkg/bytepack or
// pkg/fixedwidth with a one-byte serialize.TypeTag ahead of every primitive
// write. The wrapped Decoder checks the tag it reads against the tag of the
// Read method the caller invoked and fails closed with a
// serialize.TypeMismatchError on disagreement, catching a reader and writer
// that drifted out of sync about what shape is on the wire.
package typesafe

import (
	"github.com/doe300/serialize"
)

// Encoder prepends a serialize.TypeTag to every primitive write before
// delegating to S.
//
// Not safe for concurrent use; independent Encoders share no state beyond
// whatever the wrapped S requires of its own callers.
type Encoder[S serialize.Serializer] struct {
	w S
}

var _ serialize.Serializer = (*Encoder[serialize.Serializer])(nil)

// NewEncoder wraps w with tagged primitive writes.
func NewEncoder[S serialize.Serializer](w S) *Encoder[S] {
	return &Encoder[S]{w: w}
}

// Unwrap returns the backend this Encoder writes tagged values to.
func (e *Encoder[S]) Unwrap() S { return e.w }

func (e *Encoder[S]) tag(t serialize.TypeTag) error {
	return e.w.WriteUint8(uint8(t))
}

func (e *Encoder[S]) WriteBool(v bool) error {
	if err := e.tag(serialize.TagBool); err != nil {
		return err
	}
	return e.w.WriteBool(v)
}

func (e *Encoder[S]) WriteInt8(v int8) error {
	if err := e.tag(serialize.TagInt8); err != nil {
		return err
	}
	return e.w.WriteInt8(v)
}

func (e *Encoder[S]) WriteUint8(v uint8) error {
	if err := e.tag(serialize.TagUint8); err != nil {
		return err
	}
	return e.w.WriteUint8(v)
}

func (e *Encoder[S]) WriteInt16(v int16) error {
	if err := e.tag(serialize.TagInt16); err != nil {
		return err
	}
	return e.w.WriteInt16(v)
}

func (e *Encoder[S]) WriteUint16(v uint16) error {
	if err := e.tag(serialize.TagUint16); err != nil {
		return err
	}
	return e.w.WriteUint16(v)
}

func (e *Encoder[S]) WriteInt32(v int32) error {
	if err := e.tag(serialize.TagInt32); err != nil {
		return err
	}
	return e.w.WriteInt32(v)
}

func (e *Encoder[S]) WriteUint32(v uint32) error {
	if err := e.tag(serialize.TagUint32); err != nil {
		return err
	}
	return e.w.WriteUint32(v)
}

func (e *Encoder[S]) WriteInt64(v int64) error {
	if err := e.tag(serialize.TagInt64); err != nil {
		return err
	}
	return e.w.WriteInt64(v)
}

func (e *Encoder[S]) WriteUint64(v uint64) error {
	if err := e.tag(serialize.TagUint64); err != nil {
		return err
	}
	return e.w.WriteUint64(v)
}

func (e *Encoder[S]) WriteFloat32(v float32) error {
	if err := e.tag(serialize.TagFloat32); err != nil {
		return err
	}
	return e.w.WriteFloat32(v)
}

func (e *Encoder[S]) WriteFloat64(v float64) error {
	if err := e.tag(serialize.TagFloat64); err != nil {
		return err
	}
	return e.w.WriteFloat64(v)
}

func (e *Encoder[S]) WriteLongDouble(v serialize.LongDouble) error {
	if err := e.tag(serialize.TagLongDouble); err != nil {
		return err
	}
	return e.w.WriteLongDouble(v)
}

func (e *Encoder[S]) WriteChar(v serialize.Char) error {
	if err := e.tag(serialize.TagChar); err != nil {
		return err
	}
	return e.w.WriteChar(v)
}

func (e *Encoder[S]) WriteWChar(v serialize.WChar) error {
	if err := e.tag(serialize.TagWChar); err != nil {
		return err
	}
	return e.w.WriteWChar(v)
}

func (e *Encoder[S]) WriteChar8(v serialize.Char8) error {
	if err := e.tag(serialize.TagChar8); err != nil {
		return err
	}
	return e.w.WriteChar8(v)
}

func (e *Encoder[S]) WriteChar16(v serialize.Char16) error {
	if err := e.tag(serialize.TagChar16); err != nil {
		return err
	}
	return e.w.WriteChar16(v)
}

func (e *Encoder[S]) WriteChar32(v serialize.Char32) error {
	if err := e.tag(serialize.TagChar32); err != nil {
		return err
	}
	return e.w.WriteChar32(v)
}

func (e *Encoder[S]) Flush() error { return e.w.Flush() }

// Decoder reads values written by Encoder, rejecting a read whose tag on
// the wire does not match the tag of the method called.
//
// Not safe for concurrent use.
type Decoder[D serialize.Deserializer] struct {
	r D
}

var _ serialize.Deserializer = (*Decoder[serialize.Deserializer])(nil)

// NewDecoder wraps r to read tagged values written by Encoder.
func NewDecoder[D serialize.Deserializer](r D) *Decoder[D] {
	return &Decoder[D]{r: r}
}

// Unwrap returns the backend this Decoder reads tagged values from.
func (d *Decoder[D]) Unwrap() D { return d.r }

func (d *Decoder[D]) expect(want serialize.TypeTag) error {
	got, err := d.r.ReadUint8()
	if err != nil {
		return err
	}
	if serialize.TypeTag(got) != want {
		return &serialize.TypeMismatchError{Expected: want, Actual: serialize.TypeTag(got)}
	}
	return nil
}

func (d *Decoder[D]) ReadBool() (bool, error) {
	if err := d.expect(serialize.TagBool); err != nil {
		return false, err
	}
	return d.r.ReadBool()
}

func (d *Decoder[D]) ReadInt8() (int8, error) {
	if err := d.expect(serialize.TagInt8); err != nil {
		return 0, err
	}
	return d.r.ReadInt8()
}

func (d *Decoder[D]) ReadUint8() (uint8, error) {
	if err := d.expect(serialize.TagUint8); err != nil {
		return 0, err
	}
	return d.r.ReadUint8()
}

func (d *Decoder[D]) ReadInt16() (int16, error) {
	if err := d.expect(serialize.TagInt16); err != nil {
		return 0, err
	}
	return d.r.ReadInt16()
}

func (d *Decoder[D]) ReadUint16() (uint16, error) {
	if err := d.expect(serialize.TagUint16); err != nil {
		return 0, err
	}
	return d.r.ReadUint16()
}

func (d *Decoder[D]) ReadInt32() (int32, error) {
	if err := d.expect(serialize.TagInt32); err != nil {
		return 0, err
	}
	return d.r.ReadInt32()
}

func (d *Decoder[D]) ReadUint32() (uint32, error) {
	if err := d.expect(serialize.TagUint32); err != nil {
		return 0, err
	}
	return d.r.ReadUint32()
}

func (d *Decoder[D]) ReadInt64() (int64, error) {
	if err := d.expect(serialize.TagInt64); err != nil {
		return 0, err
	}
	return d.r.ReadInt64()
}

func (d *Decoder[D]) ReadUint64() (uint64, error) {
	if err := d.expect(serialize.TagUint64); err != nil {
		return 0, err
	}
	return d.r.ReadUint64()
}

func (d *Decoder[D]) ReadFloat32() (float32, error) {
	if err := d.expect(serialize.TagFloat32); err != nil {
		return 0, err
	}
	return d.r.ReadFloat32()
}

func (d *Decoder[D]) ReadFloat64() (float64, error) {
	if err := d.expect(serialize.TagFloat64); err != nil {
		return 0, err
	}
	return d.r.ReadFloat64()
}

func (d *Decoder[D]) ReadLongDouble() (serialize.LongDouble, error) {
	if err := d.expect(serialize.TagLongDouble); err != nil {
		return serialize.LongDouble{}, err
	}
	return d.r.ReadLongDouble()
}

func (d *Decoder[D]) ReadChar() (serialize.Char, error) {
	if err := d.expect(serialize.TagChar); err != nil {
		return 0, err
	}
	return d.r.ReadChar()
}

func (d *Decoder[D]) ReadWChar() (serialize.WChar, error) {
	if err := d.expect(serialize.TagWChar); err != nil {
		return 0, err
	}
	return d.r.ReadWChar()
}

func (d *Decoder[D]) ReadChar8() (serialize.Char8, error) {
	if err := d.expect(serialize.TagChar8); err != nil {
		return 0, err
	}
	return d.r.ReadChar8()
}

func (d *Decoder[D]) ReadChar16() (serialize.Char16, error) {
	if err := d.expect(serialize.TagChar16); err != nil {
		return 0, err
	}
	return d.r.ReadChar16()
}

func (d *Decoder[D]) ReadChar32() (serialize.Char32, error) {
	if err := d.expect(serialize.TagChar32); err != nil {
		return 0, err
	}
	return d.r.ReadChar32()
}
