package serialize

import "reflect"

// registration holds the pair of functions Register associates with a
// concrete Go type. It sits below SelfEncoder/SelfDecoder in the shape
// walker's priority order, for types that cannot implement methods
// themselves (types from another package, or builtins).
type registration struct {
	encode func(*Encoder, any) error
	decode func(*Decoder) (any, error)
}

var registry = map[reflect.Type]registration{}

// Register associates free-standing encode/decode functions with the exact
// type of zero. Call it from an init function, before any Encoder or
// Decoder touching that type is used concurrently; the registry itself is
// an unsynchronized map, matching the registration pattern of
// database/sql's driver registry.
func Register(zero any, encode func(*Encoder, any) error, decode func(*Decoder) (any, error)) {
	registry[reflect.TypeOf(zero)] = registration{encode: encode, decode: decode}
}
