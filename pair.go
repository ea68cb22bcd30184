package serialize

// Pair and Triple are plain exported-field structs, not SelfEncoder types:
// the shape walker's struct case makes no distinction between a
// tuple-shaped aggregate and any other struct, so these serialize through
// the same reflect.Struct path as a user-defined record with the same
// field types, in field order.
type Pair[A, B any] struct {
	First  A
	Second B
}

// NewPair builds a Pair holding the two given values.
func NewPair[A, B any](first A, second B) Pair[A, B] {
	return Pair[A, B]{First: first, Second: second}
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// NewTriple builds a Triple holding the three given values.
func NewTriple[A, B, C any](first A, second B, third C) Triple[A, B, C] {
	return Triple[A, B, C]{First: first, Second: second, Third: third}
}
