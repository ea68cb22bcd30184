package serialize

import "golang.org/x/text/encoding/unicode"

// ToChar16 re-encodes s as a sequence of char16 wire values (UTF-16LE code
// units), giving callers a way to exercise the char16/wchar primitive
// family with ordinary Go strings.
func ToChar16(s string) ([]Char16, error) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	raw, err := enc.String(s)
	if err != nil {
		return nil, err
	}
	units := make([]Char16, len(raw)/2)
	for i := range units {
		units[i] = Char16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
	}
	return units, nil
}

// FromChar16 is the inverse of ToChar16.
func FromChar16(units []Char16) (string, error) {
	raw := make([]byte, len(units)*2)
	for i, u := range units {
		raw[2*i] = byte(u)
		raw[2*i+1] = byte(u >> 8)
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	return dec.String(string(raw))
}
