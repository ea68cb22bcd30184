package serialize

import "reflect"

// Optional carries a value that may or may not be present. Its wire form
// is a presence flag followed by the payload when present, identical to
// the shape a nil-able pointer produces — an Optional[T] and a *T holding
// equivalent data serialize to the same bytes.
type Optional[T any] struct {
	Valid bool
	Value T
}

// Some builds a present Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Valid: true, Value: v}
}

// None builds an absent Optional of the given type.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// EncodeSelf implements SelfEncoder.
func (o Optional[T]) EncodeSelf(e *Encoder) error {
	if !o.Valid {
		return e.w.WriteBool(false)
	}
	if err := e.w.WriteBool(true); err != nil {
		return err
	}
	return e.encodeValue(reflect.ValueOf(o.Value))
}

// DecodeSelf implements SelfDecoder.
func (o *Optional[T]) DecodeSelf(d *Decoder) error {
	present, err := d.r.ReadBool()
	if err != nil {
		return err
	}
	if !present {
		var zero T
		o.Valid = false
		o.Value = zero
		return nil
	}
	o.Valid = true
	return d.decodeValue(reflect.ValueOf(&o.Value).Elem())
}
