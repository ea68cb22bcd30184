// Package bitpack implements an order-0 Exponential-Golomb bit-packed
// codec: a left-adjusted bit cache feeding Serializer/Deserializer backed
// by Exp-Golomb coded integers, with bit-reversal applied to
// floating-point values before coding.
package bitpack

import "math/bits"

// BitValue is a value together with the number of bits it occupies when
// written MSB-first into a Cache.
type BitValue struct {
	Value   uint64
	NumBits uint8
}

// EncodeUnsigned Exp-Golomb-codes value. Writing the result MSB-first
// produces ⌊log2(value+1)⌋ zero bits followed by the binary
// representation of value+1 in exactly ⌊log2(value+1)⌋+1 bits — the
// leading bit of that representation is always 1, which is what lets a
// reader find the boundary between the zero run and the payload.
func EncodeUnsigned(value uint64) BitValue {
	y := value + 1
	k := uint8(bits.Len64(y) - 1)
	return BitValue{Value: y, NumBits: k*2 + 1}
}

// DecodeUnsigned inverts EncodeUnsigned given the payload (y) a reader
// extracted from the stream.
func DecodeUnsigned(y uint64) uint64 {
	return y - 1
}

// EncodeSigned folds a signed value onto the non-negative number line
// (0 -> 0, 1 -> 1, -1 -> 2, 2 -> 3, -2 -> 4, ...) before handing it to
// EncodeUnsigned, so that small magnitudes of either sign get short
// codes.
func EncodeSigned(value int64) BitValue {
	var tmp uint64
	switch {
	case value < 0:
		tmp = uint64(-2 * value)
	case value > 0:
		tmp = uint64(2*value - 1)
	default:
		tmp = 0
	}
	return EncodeUnsigned(tmp)
}

// DecodeSigned inverts EncodeSigned.
func DecodeSigned(y uint64) int64 {
	tmp := DecodeUnsigned(y)
	sign := int64(1)
	if (tmp+1)&1 != 0 {
		sign = -1
	}
	val := int64(tmp/2 + (tmp & 1))
	return sign * val
}
