package serialize

// Char, WChar, Char8, Char16 and Char32 give the character primitives their
// own Go types, distinct from the plain integer types of the same width, so
// the shape walker and the type-safety wrapper can tell "this is a
// character" from "this is a number" at the reflect.Type level.
type (
	Char   int8
	WChar  int32
	Char8  uint8
	Char16 uint16
	Char32 uint32
)

// LongDouble stands in for the platform's extended-precision float. It is
// laid out as two 64-bit chunks, matching the x86-64 80-bit extended format
// padded to 16 bytes, which is the layout every profile this module ships
// targets. Chunks are stored and transmitted in declaration order: Lo first,
// Hi second.
type LongDouble struct {
	Lo uint64
	Hi uint64
}

// TypeTag is a one-byte, frozen identifier for one of the 17 primitive
// leaves. Values are part of the wire format produced by pkg/typesafe and
// must never be renumbered.
type TypeTag uint8

const (
	TagBool TypeTag = iota
	TagInt8
	TagUint8
	TagInt16
	TagUint16
	TagInt32
	TagUint32
	TagInt64
	TagUint64
	TagFloat32
	TagFloat64
	TagLongDouble
	TagChar
	TagWChar
	TagChar8
	TagChar16
	TagChar32
)

// tagNames gives each tag a human-readable name for TypeMismatch errors.
var tagNames = [...]string{
	TagBool:       "bool",
	TagInt8:       "i8",
	TagUint8:      "u8",
	TagInt16:      "i16",
	TagUint16:     "u16",
	TagInt32:      "i32",
	TagUint32:     "u32",
	TagInt64:      "i64",
	TagUint64:     "u64",
	TagFloat32:    "f32",
	TagFloat64:    "f64",
	TagLongDouble: "long double",
	TagChar:       "char",
	TagWChar:      "wchar",
	TagChar8:      "char8",
	TagChar16:     "char16",
	TagChar32:     "char32",
}

// String returns the tag's human-readable primitive name, or "unknown" for
// a value outside the frozen table.
func (t TypeTag) String() string {
	if int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "unknown"
}
