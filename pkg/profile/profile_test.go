package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	assert.Equal(t, BackendBytepack, p.Backend)
	assert.Equal(t, 64, p.WordWidthBits)
	assert.Equal(t, 2, p.LongDoubleChunks)
	assert.False(t, p.TypeSafe)
	require.NoError(t, p.Validate())
}

func TestLoadProfile(t *testing.T) {
	t.Run("load existing profile", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "serialize_profile_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		profilePath := filepath.Join(tmpDir, "profile.yaml")
		want := &Profile{
			Backend:          BackendFixedWidth,
			WordWidthBits:    32,
			LongDoubleChunks: 2,
			TypeSafe:         true,
		}
		require.NoError(t, SaveProfile(want, profilePath))

		got, err := LoadProfile(profilePath)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	p := DefaultProfile()
	p.Backend = "rot13"
	assert.Error(t, p.Validate())
}

func TestValidateRejectsUnsupportedWordWidth(t *testing.T) {
	p := DefaultProfile()
	p.WordWidthBits = 17
	assert.Error(t, p.Validate())
}

func TestValidateRejectsWrongLongDoubleChunkCount(t *testing.T) {
	p := DefaultProfile()
	p.LongDoubleChunks = 1
	assert.Error(t, p.Validate())
}
