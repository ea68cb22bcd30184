// Package profile loads the YAML-based settings that pick a default wire
// backend and describe the target platform's primitive widths, the way a
// project using this module would pin those choices once and share them
// across its encoder/decoder call sites.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names one of the three wire codecs this module ships.
type Backend string

const (
	BackendBitpack    Backend = "bitpack"
	BackendBytepack   Backend = "bytepack"
	BackendFixedWidth Backend = "fixedwidth"
)

// Profile pins the defaults a program built on this module uses when it
// does not choose a backend or primitive width explicitly at each call
// site.
type Profile struct {
	Backend          Backend `yaml:"backend"`
	WordWidthBits    int     `yaml:"word_width_bits"`
	LongDoubleChunks int     `yaml:"long_double_chunks"`
	TypeSafe         bool    `yaml:"type_safe"`
}

// DefaultProfile returns the settings this module assumes when no profile
// file is present: the byte-packed varint backend, a 64-bit word width, two
// 64-bit chunks for LongDouble, and type tagging disabled.
func DefaultProfile() *Profile {
	return &Profile{
		Backend:          BackendBytepack,
		WordWidthBits:    64,
		LongDoubleChunks: 2,
		TypeSafe:         false,
	}
}

// LoadProfile reads and parses a profile from the given path.
func LoadProfile(path string) (*Profile, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("profile file does not exist: %s", path)
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid profile path: %w", err)
		}
		path = absPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	profile := *DefaultProfile()
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile file: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return &profile, nil
}

// SaveProfile writes the profile to path as YAML.
func SaveProfile(profile *Profile, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	data, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write profile file: %w", err)
	}

	return nil
}

// Validate rejects a profile whose settings cannot describe a real wire
// layout: an unknown backend name, a word width that is not one of the
// sizes the primitive set actually uses, or a LongDouble chunk count other
// than the two 64-bit chunks LongDouble is defined with.
func (p *Profile) Validate() error {
	switch p.Backend {
	case BackendBitpack, BackendBytepack, BackendFixedWidth:
	default:
		return fmt.Errorf("profile: unknown backend %q", p.Backend)
	}

	switch p.WordWidthBits {
	case 8, 16, 32, 64:
	default:
		return fmt.Errorf("profile: unsupported word width %d", p.WordWidthBits)
	}

	if p.LongDoubleChunks != 2 {
		return fmt.Errorf("profile: long_double_chunks must be 2, got %d", p.LongDoubleChunks)
	}

	return nil
}
