//go:build fuzz
// +build fuzz

package bitpack

import (
	"bytes"
	"testing"
)

// FuzzUint64RoundTrip checks that every uint64 surviving an encode/decode
// round trip through the bit cache comes back unchanged.
func FuzzUint64RoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(42))
	f.Add(^uint64(0))
	f.Add(uint64(1) << 40)

	f.Fuzz(func(t *testing.T, v uint64) {
		var buf bytes.Buffer
		enc := NewEncoder(&buf)
		if err := enc.WriteUint64(v); err != nil {
			t.Fatalf("WriteUint64(%d): %v", v, err)
		}
		if err := enc.Flush(); err != nil {
			t.Fatalf("Flush: %v", err)
		}

		dec := NewDecoder(&buf)
		got, err := dec.ReadUint64()
		if err != nil {
			t.Fatalf("ReadUint64 for %d: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip mismatch: got %d, want %d", got, v)
		}
	})
}

// FuzzDecoderNeverPanics feeds arbitrary byte slices to the decoder and
// requires it to return, with a value or an error, rather than panic. The
// returned value and error themselves are not checked.
func FuzzDecoderNeverPanics(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x80})
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF})

	f.Fuzz(func(t *testing.T, data []byte) {
		dec := NewDecoder(bytes.NewReader(data))
		_, _ = dec.ReadUint64()
	})
}
