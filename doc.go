// Package serialize provides a typed, binary object-graph walker on top of
// pluggable wire backends.
//
// The package does not itself choose a byte layout. Instead it walks a Go
// value by reflection, recognizes a fixed set of shapes (primitives,
// optionals, sequences, fixed arrays, structs, tagged unions, bitsets, and
// user-defined types), and forwards each leaf to a Serializer/Deserializer
// backend. Three backends ship in sibling packages:
//
//   - pkg/bitpack: Exponential-Golomb bit-packed encoding, smallest output
//     for small and "round" values, most CPU-expensive.
//   - pkg/bytepack: LEB128-style byte-aligned varints, a middle ground.
//   - pkg/fixedwidth: native byte-pattern passthrough, fastest, largest.
//
// pkg/typesafe wraps any of the three with a one-byte type tag ahead of
// every primitive write, turning silent type confusion into an explicit
// error at decode time.
//
// # Compatibility
//
// None of the backends promise cross-endian portability, wire compatibility
// with Protobuf/CBOR/gob, or schema evolution across struct field changes.
// A stream written by one version of a type must be read back by the same
// version.
//
// # Concurrency
//
// Encoder and Decoder values, and the backends they wrap, carry mutable
// cursor/cache state and must not be shared across goroutines. Independent
// instances have no shared state and may run concurrently.
package serialize
