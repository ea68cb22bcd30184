package bitpack

import "github.com/doe300/serialize"

// CacheSize is the width, in bits, of the left-adjusted bit cache: the
// widest unsigned integer this module packs bits into.
const CacheSize = 64

// maxZeroRun bounds how many leading zero bits ReadExpGolombBits will
// tolerate before a code's payload would no longer fit in a BitValue's
// NumBits (a byte). A run this long can only come from a corrupt or
// adversarial source; EncodeUnsigned never emits one under CacheSize.
const maxZeroRun = 127

// Cache is a left-adjusted bit buffer. Bits accumulate from the high end
// (Value's most significant bit) downward; UsedBits counts how many of
// the top bits are currently occupied.
type Cache struct {
	Value    uint64
	UsedBits uint8
}

// ByteSink accepts one output byte at a time.
type ByteSink func(b byte) error

// ByteSource supplies one input byte at a time. ok is false once the
// underlying stream is exhausted.
type ByteSource func() (b byte, ok bool, err error)

// FlushFullBytes emits every complete high-order byte currently sitting in
// the cache, most significant byte first.
func FlushFullBytes(c *Cache, sink ByteSink) error {
	for c.UsedBits >= 8 {
		b := byte(c.Value >> (CacheSize - 8))
		if err := sink(b); err != nil {
			return err
		}
		c.Value <<= 8
		c.UsedBits -= 8
	}
	return nil
}

// WriteBits packs value's bits into the cache immediately after whatever
// is already buffered, flushing out full bytes as they accumulate. A
// value wider than the cache's remaining free space is split in half and
// written as two calls, most significant half first.
func WriteBits(c *Cache, sink ByteSink, value BitValue) error {
	if uint16(value.NumBits)+uint16(c.UsedBits) > CacheSize {
		lowerBits := value.NumBits / 2
		upperBits := value.NumBits - lowerBits
		upper := BitValue{Value: value.Value >> lowerBits, NumBits: upperBits}
		lower := BitValue{Value: value.Value & (uint64(1)<<lowerBits - 1), NumBits: lowerBits}
		if err := WriteBits(c, sink, upper); err != nil {
			return err
		}
		return WriteBits(c, sink, lower)
	}
	shift := CacheSize - uint16(c.UsedBits) - uint16(value.NumBits)
	c.Value |= value.Value << shift
	c.UsedBits += value.NumBits
	return FlushFullBytes(c, sink)
}

// FeedFullByte pulls one byte from source into the cache's lowest free
// byte position, if at least 8 bits of room remain. It reports false,
// without error, both when there is no room and when the source is
// exhausted.
func FeedFullByte(c *Cache, source ByteSource) (bool, error) {
	if CacheSize-c.UsedBits < 8 {
		return false, nil
	}
	b, ok, err := source()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	shift := CacheSize - uint16(c.UsedBits) - 8
	c.Value |= uint64(b) << shift
	c.UsedBits += 8
	return true, nil
}

// ReadExpGolombBits reads one Exp-Golomb code from the cache, refilling
// from source as needed. A zero NumBits in the result, with a nil error,
// means the stream ended — whether cleanly at a code boundary or mid-code
// is not distinguished, matching the reference decoder, which treats both
// as end-of-stream.
func ReadExpGolombBits(c *Cache, source ByteSource) (BitValue, error) {
	var zeros uint32
	for {
		for c.UsedBits == 0 {
			ok, err := FeedFullByte(c, source)
			if err != nil {
				return BitValue{}, err
			}
			if !ok {
				return BitValue{}, nil
			}
		}
		topBit := (c.Value >> (CacheSize - 1)) & 1
		if topBit == 1 {
			break
		}
		c.Value <<= 1
		c.UsedBits--
		zeros++
		if zeros > maxZeroRun {
			return BitValue{}, serialize.ErrUnexpectedEOF
		}
	}

	payloadBits := uint8(zeros + 1)
	if payloadBits > CacheSize {
		return BitValue{}, serialize.ErrUnexpectedEOF
	}
	var high uint64
	for c.UsedBits < payloadBits {
		if CacheSize-c.UsedBits < 8 {
			// No room for another byte: set the cached payload bits aside.
			high = high<<c.UsedBits | c.Value>>(CacheSize-uint16(c.UsedBits))
			payloadBits -= c.UsedBits
			c.Value, c.UsedBits = 0, 0
			continue
		}
		ok, err := FeedFullByte(c, source)
		if err != nil {
			return BitValue{}, err
		}
		if !ok {
			return BitValue{}, nil
		}
	}
	value := high<<payloadBits | c.Value>>(CacheSize-uint16(payloadBits))
	c.Value <<= payloadBits
	c.UsedBits -= payloadBits
	return BitValue{Value: value, NumBits: uint8(zeros*2 + 1)}, nil
}
