package serialize

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// maxAggregateFields caps the plain-aggregate and tuple/pair shapes at 20
// fields, matching the structured-binding decomposition limit of the
// reference implementation this walker's shape rules are ported from.
const maxAggregateFields = 20

// Encoder drives the shape walker over a backend's Serializer. Create one
// per value graph; it is not safe for concurrent use.
type Encoder struct {
	w Serializer
}

// NewEncoder wraps a backend Serializer with the shape walker.
func NewEncoder(w Serializer) *Encoder {
	return &Encoder{w: w}
}

// Flush delegates to the wrapped backend. It must be called after the last
// Encode, before the backend's sink is released.
func (e *Encoder) Flush() error {
	return e.w.Flush()
}

// Encode walks v and writes every leaf it finds to the wrapped backend.
func (e *Encoder) Encode(v any) error {
	return e.encodeValue(reflect.ValueOf(v))
}

var (
	selfEncoderType = reflect.TypeOf((*SelfEncoder)(nil)).Elem()
	selfDecoderType = reflect.TypeOf((*SelfDecoder)(nil)).Elem()
	charType        = reflect.TypeOf(Char(0))
	wcharType       = reflect.TypeOf(WChar(0))
	char8Type       = reflect.TypeOf(Char8(0))
	char16Type      = reflect.TypeOf(Char16(0))
	char32Type      = reflect.TypeOf(Char32(0))
	longDoubleType  = reflect.TypeOf(LongDouble{})
)

func (e *Encoder) encodeValue(rv reflect.Value) error {
	if !rv.IsValid() {
		return errors.New("serialize: cannot encode an invalid value")
	}

	if rv.Type().Implements(selfEncoderType) {
		return rv.Interface().(SelfEncoder).EncodeSelf(e)
	}
	if reg, ok := registry[rv.Type()]; ok {
		return reg.encode(e, rv.Interface())
	}

	switch rv.Type() {
	case charType:
		return e.w.WriteChar(Char(rv.Int()))
	case wcharType:
		return e.w.WriteWChar(WChar(rv.Int()))
	case char8Type:
		return e.w.WriteChar8(Char8(rv.Uint()))
	case char16Type:
		return e.w.WriteChar16(Char16(rv.Uint()))
	case char32Type:
		return e.w.WriteChar32(Char32(rv.Uint()))
	case longDoubleType:
		return e.w.WriteLongDouble(rv.Interface().(LongDouble))
	}

	switch rv.Kind() {
	case reflect.Bool:
		return e.w.WriteBool(rv.Bool())
	case reflect.Int8:
		return e.w.WriteInt8(int8(rv.Int()))
	case reflect.Uint8:
		return e.w.WriteUint8(uint8(rv.Uint()))
	case reflect.Int16:
		return e.w.WriteInt16(int16(rv.Int()))
	case reflect.Uint16:
		return e.w.WriteUint16(uint16(rv.Uint()))
	case reflect.Int32:
		return e.w.WriteInt32(int32(rv.Int()))
	case reflect.Uint32:
		return e.w.WriteUint32(uint32(rv.Uint()))
	case reflect.Int64, reflect.Int:
		return e.w.WriteInt64(rv.Int())
	case reflect.Uint64, reflect.Uint:
		return e.w.WriteUint64(rv.Uint())
	case reflect.Float32:
		return e.w.WriteFloat32(float32(rv.Float()))
	case reflect.Float64:
		return e.w.WriteFloat64(rv.Float())
	case reflect.String:
		return e.encodeByteLike(rv.Len(), func(i int) byte { return rv.String()[i] })
	case reflect.Ptr:
		return e.encodePointer(rv)
	case reflect.Slice:
		return e.encodeSlice(rv)
	case reflect.Array:
		return e.encodeArray(rv)
	case reflect.Map:
		return e.encodeMap(rv)
	case reflect.Struct:
		return e.encodeAggregate(rv)
	default:
		return errors.Newf("serialize: cannot encode value of kind %s", rv.Kind())
	}
}

func isByteLikeKind(k reflect.Kind) bool { return k == reflect.Uint8 }

// encodeByteLike writes a count-prefixed run of n bytes, sourced one byte
// at a time from get. It is shared by the string and byte-slice fast
// paths.
func (e *Encoder) encodeByteLike(n int, get func(int) byte) error {
	if err := e.w.WriteUint64(uint64(n)); err != nil {
		return err
	}
	if bs, ok := e.w.(BulkSerializer); ok {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = get(i)
		}
		return bs.WriteRaw(buf)
	}
	for i := 0; i < n; i++ {
		if err := e.w.WriteUint8(get(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodePointer(rv reflect.Value) error {
	if rv.IsNil() {
		return e.w.WriteBool(false)
	}
	if err := e.w.WriteBool(true); err != nil {
		return err
	}
	return e.encodeValue(rv.Elem())
}

func (e *Encoder) encodeSlice(rv reflect.Value) error {
	n := rv.Len()
	if isByteLikeKind(rv.Type().Elem().Kind()) {
		return e.encodeByteLike(n, func(i int) byte { return byte(rv.Index(i).Uint()) })
	}
	if err := e.w.WriteUint64(uint64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := e.encodeValue(rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeArray(rv reflect.Value) error {
	n := rv.Len()
	if isByteLikeKind(rv.Type().Elem().Kind()) {
		return e.encodeByteLike(n, func(i int) byte { return byte(rv.Index(i).Uint()) })
	}
	// The element count is redundant for a fixed-size array, but is kept on
	// the wire for symmetry with the general sequence shape.
	if err := e.w.WriteUint64(uint64(n)); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := e.encodeValue(rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeMap(rv reflect.Value) error {
	if err := e.w.WriteUint64(uint64(rv.Len())); err != nil {
		return err
	}
	iter := rv.MapRange()
	for iter.Next() {
		if err := e.encodeValue(iter.Key()); err != nil {
			return err
		}
		if err := e.encodeValue(iter.Value()); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) encodeAggregate(rv reflect.Value) error {
	t := rv.Type()
	if t.NumField() > maxAggregateFields {
		return errors.Newf("serialize: struct %s has more than %d fields", t, maxAggregateFields)
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue // unexported, not part of the wire shape
		}
		if err := e.encodeValue(rv.Field(i)); err != nil {
			return err
		}
	}
	return nil
}

// Decoder drives the shape walker over a backend's Deserializer. Create
// one per value graph; it is not safe for concurrent use.
type Decoder struct {
	r Deserializer
}

// NewDecoder wraps a backend Deserializer with the shape walker.
func NewDecoder(r Deserializer) *Decoder {
	return &Decoder{r: r}
}

// Decode reads one value into *ptr. ptr must be a non-nil pointer. On
// error, *ptr is reset to its zero value, so no partially decoded result
// is left behind.
func (d *Decoder) Decode(ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("serialize: Decode requires a non-nil pointer")
	}
	if err := d.decodeValue(rv.Elem()); err != nil {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
		return err
	}
	return nil
}

func (d *Decoder) decodeValue(rv reflect.Value) error {
	if rv.CanAddr() && rv.Addr().Type().Implements(selfDecoderType) {
		return rv.Addr().Interface().(SelfDecoder).DecodeSelf(d)
	}
	if reg, ok := registry[rv.Type()]; ok {
		v, err := reg.decode(d)
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	switch rv.Type() {
	case charType:
		v, err := d.r.ReadChar()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case wcharType:
		v, err := d.r.ReadWChar()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case char8Type:
		v, err := d.r.ReadChar8()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case char16Type:
		v, err := d.r.ReadChar16()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case char32Type:
		v, err := d.r.ReadChar32()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case longDoubleType:
		v, err := d.r.ReadLongDouble()
		if err != nil {
			return err
		}
		rv.Set(reflect.ValueOf(v))
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		v, err := d.r.ReadBool()
		if err != nil {
			return err
		}
		rv.SetBool(v)
		return nil
	case reflect.Int8:
		v, err := d.r.ReadInt8()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case reflect.Uint8:
		v, err := d.r.ReadUint8()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case reflect.Int16:
		v, err := d.r.ReadInt16()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case reflect.Uint16:
		v, err := d.r.ReadUint16()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case reflect.Int32:
		v, err := d.r.ReadInt32()
		if err != nil {
			return err
		}
		rv.SetInt(int64(v))
		return nil
	case reflect.Uint32:
		v, err := d.r.ReadUint32()
		if err != nil {
			return err
		}
		rv.SetUint(uint64(v))
		return nil
	case reflect.Int64, reflect.Int:
		v, err := d.r.ReadInt64()
		if err != nil {
			return err
		}
		rv.SetInt(v)
		return nil
	case reflect.Uint64, reflect.Uint:
		v, err := d.r.ReadUint64()
		if err != nil {
			return err
		}
		rv.SetUint(v)
		return nil
	case reflect.Float32:
		v, err := d.r.ReadFloat32()
		if err != nil {
			return err
		}
		rv.SetFloat(float64(v))
		return nil
	case reflect.Float64:
		v, err := d.r.ReadFloat64()
		if err != nil {
			return err
		}
		rv.SetFloat(v)
		return nil
	case reflect.String:
		s, err := d.decodeByteLike()
		if err != nil {
			return err
		}
		rv.SetString(string(s))
		return nil
	case reflect.Ptr:
		return d.decodePointer(rv)
	case reflect.Slice:
		return d.decodeSlice(rv)
	case reflect.Array:
		return d.decodeArray(rv)
	case reflect.Map:
		return d.decodeMap(rv)
	case reflect.Struct:
		return d.decodeAggregate(rv)
	default:
		return errors.Newf("serialize: cannot decode value of kind %s", rv.Kind())
	}
}

func (d *Decoder) readCount() (int, error) {
	n, err := d.r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (d *Decoder) decodeByteLike() ([]byte, error) {
	n, err := d.readCount()
	if err != nil {
		return nil, err
	}
	if br, ok := d.r.(BulkDeserializer); ok {
		return br.ReadRaw(n)
	}
	buf := make([]byte, n)
	for i := range buf {
		b, err := d.r.ReadUint8()
		if err != nil {
			return nil, err
		}
		buf[i] = b
	}
	return buf, nil
}

func (d *Decoder) decodePointer(rv reflect.Value) error {
	present, err := d.r.ReadBool()
	if err != nil {
		return err
	}
	if !present {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}
	elem := reflect.New(rv.Type().Elem())
	if err := d.decodeValue(elem.Elem()); err != nil {
		return err
	}
	rv.Set(elem)
	return nil
}

func (d *Decoder) decodeSlice(rv reflect.Value) error {
	elemType := rv.Type().Elem()
	if isByteLikeKind(elemType.Kind()) {
		buf, err := d.decodeByteLike()
		if err != nil {
			return err
		}
		sl := reflect.MakeSlice(rv.Type(), len(buf), len(buf))
		for i, b := range buf {
			sl.Index(i).SetUint(uint64(b))
		}
		rv.Set(sl)
		return nil
	}
	n, err := d.readCount()
	if err != nil {
		return err
	}
	sl := reflect.MakeSlice(rv.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := d.decodeValue(sl.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(sl)
	return nil
}

func (d *Decoder) decodeArray(rv reflect.Value) error {
	elemType := rv.Type().Elem()
	if isByteLikeKind(elemType.Kind()) {
		buf, err := d.decodeByteLike()
		if err != nil {
			return err
		}
		if len(buf) != rv.Len() {
			return errors.Newf("serialize: array size mismatch: wire has %d, type has %d", len(buf), rv.Len())
		}
		for i, b := range buf {
			rv.Index(i).SetUint(uint64(b))
		}
		return nil
	}
	n, err := d.readCount()
	if err != nil {
		return err
	}
	if n != rv.Len() {
		return errors.Newf("serialize: array size mismatch: wire has %d, type has %d", n, rv.Len())
	}
	for i := 0; i < n; i++ {
		if err := d.decodeValue(rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) decodeMap(rv reflect.Value) error {
	n, err := d.readCount()
	if err != nil {
		return err
	}
	t := rv.Type()
	m := reflect.MakeMapWithSize(t, n)
	for i := 0; i < n; i++ {
		key := reflect.New(t.Key()).Elem()
		if err := d.decodeValue(key); err != nil {
			return err
		}
		val := reflect.New(t.Elem()).Elem()
		if err := d.decodeValue(val); err != nil {
			return err
		}
		m.SetMapIndex(key, val)
	}
	rv.Set(m)
	return nil
}

func (d *Decoder) decodeAggregate(rv reflect.Value) error {
	t := rv.Type()
	if t.NumField() > maxAggregateFields {
		return errors.Newf("serialize: struct %s has more than %d fields", t, maxAggregateFields)
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			continue
		}
		if err := d.decodeValue(rv.Field(i)); err != nil {
			return err
		}
	}
	return nil
}
