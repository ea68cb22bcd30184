package serialize

// Bitset holds a fixed-width run of bits. Its width is set once at
// construction and is never transmitted on the wire; a decoder must
// construct a Bitset of the expected width before decoding into it, the
// same way a fixed-size array's element type must already be known.
//
// Widths up to 64 bits serialize as a single unsigned integer in the
// smallest primitive that encloses the width (u8, u16, u32 or u64).
// Wider bitsets serialize as ceil(width/8) packed bytes.
type Bitset struct {
	bits []bool
}

// NewBitset allocates a Bitset of the given width, all bits clear.
func NewBitset(width int) Bitset {
	return Bitset{bits: make([]bool, width)}
}

// Len returns the bitset's width.
func (b Bitset) Len() int { return len(b.bits) }

// Test reports whether bit i is set.
func (b Bitset) Test(i int) bool { return b.bits[i] }

// Set assigns bit i.
func (b *Bitset) Set(i int, v bool) { b.bits[i] = v }

func (b Bitset) packedUint() uint64 {
	var v uint64
	for i, bit := range b.bits {
		if bit {
			v |= uint64(1) << uint(i)
		}
	}
	return v
}

func (b *Bitset) unpackUint(v uint64) {
	for i := range b.bits {
		b.bits[i] = (v>>uint(i))&1 != 0
	}
}

// EncodeSelf implements SelfEncoder.
func (b Bitset) EncodeSelf(e *Encoder) error {
	n := len(b.bits)
	switch {
	case n <= 8:
		return e.w.WriteUint8(uint8(b.packedUint()))
	case n <= 16:
		return e.w.WriteUint16(uint16(b.packedUint()))
	case n <= 32:
		return e.w.WriteUint32(uint32(b.packedUint()))
	case n <= 64:
		return e.w.WriteUint64(b.packedUint())
	default:
		nbytes := (n + 7) / 8
		buf := make([]byte, nbytes)
		for i, bit := range b.bits {
			if bit {
				buf[i/8] |= 1 << uint(i%8)
			}
		}
		if bs, ok := e.w.(BulkSerializer); ok {
			return bs.WriteRaw(buf)
		}
		for _, by := range buf {
			if err := e.w.WriteUint8(by); err != nil {
				return err
			}
		}
		return nil
	}
}

// DecodeSelf implements SelfDecoder. The receiver must already have its
// width set, typically via NewBitset.
func (b *Bitset) DecodeSelf(d *Decoder) error {
	n := len(b.bits)
	switch {
	case n <= 8:
		v, err := d.r.ReadUint8()
		if err != nil {
			return err
		}
		b.unpackUint(uint64(v))
	case n <= 16:
		v, err := d.r.ReadUint16()
		if err != nil {
			return err
		}
		b.unpackUint(uint64(v))
	case n <= 32:
		v, err := d.r.ReadUint32()
		if err != nil {
			return err
		}
		b.unpackUint(uint64(v))
	case n <= 64:
		v, err := d.r.ReadUint64()
		if err != nil {
			return err
		}
		b.unpackUint(v)
	default:
		nbytes := (n + 7) / 8
		var buf []byte
		if br, ok := d.r.(BulkDeserializer); ok {
			raw, err := br.ReadRaw(nbytes)
			if err != nil {
				return err
			}
			buf = raw
		} else {
			buf = make([]byte, nbytes)
			for i := range buf {
				v, err := d.r.ReadUint8()
				if err != nil {
					return err
				}
				buf[i] = v
			}
		}
		for i := range b.bits {
			b.bits[i] = buf[i/8]&(1<<uint(i%8)) != 0
		}
	}
	return nil
}
