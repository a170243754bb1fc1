package settings

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/gigurra/chordtrainer/cmd/common/config"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_Table(t *testing.T) {
	s := config.Default()
	require.NoError(t, s.ApplyQualityPreset("none"))

	var out bytes.Buffer
	require.NoError(t, Show(s, false, &out))
	assert.Contains(t, out.String(), "C F Bb Eb Ab Db F# B E A D G")
	assert.Contains(t, out.String(), "(none)")
	assert.Contains(t, out.String(), "150 dpi")
}

func TestShow_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Show(config.Default(), true, &out))

	var decoded config.Settings
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, *config.Default(), decoded)
}

func TestSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	require.NoError(t, Set(path, "mode", "V-I"))
	require.NoError(t, Set(path, "tones", "7-9"))

	s, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, theory.ModeVI, s.CurrentMode())
	assert.Len(t, s.AvailablePitches(), 3)

	assert.ErrorIs(t, Set(path, "duration", "0"), config.ErrInvalid)
}
