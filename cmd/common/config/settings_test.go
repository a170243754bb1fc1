package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, theory.AllPitches(), s.AvailablePitches())
	assert.Equal(t, []theory.Quality{theory.Maj7, theory.Dom7, theory.Min7}, s.AvailableQualities())
	assert.Equal(t, theory.ModeChord, s.CurrentMode())
	assert.Equal(t, 5, s.DurationSeconds)
	assert.Equal(t, 150, s.ScoreResolution)
	assert.Equal(t, 64, s.FontSize)
	assert.True(t, s.SingleThread)
	assert.True(t, s.DisplayScore)
	assert.True(t, s.DisplayScale)
	assert.True(t, s.StayOn)
}

func TestDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHORDTRAINER_HOME", dir)
	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, "settings.json"), Path())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("CHORDTRAINER_HOME", t.TempDir())
	s, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("CHORDTRAINER_HOME", filepath.Join(t.TempDir(), "nested"))

	s := Default()
	require.NoError(t, s.ApplyTonePreset("1-3"))
	require.NoError(t, s.ApplyQualityPreset("dim"))
	s.SetMode(theory.ModeIIV)
	s.DurationSeconds = 8
	s.DisplayScore = false
	require.NoError(t, Save(s))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
	assert.Equal(t, []theory.Pitch{theory.MustParsePitch("C"), theory.MustParsePitch("F"), theory.MustParsePitch("Bb")}, loaded.AvailablePitches())
	assert.Equal(t, []theory.Quality{theory.Dim7, theory.Dom7b9}, loaded.AvailableQualities())
}

func TestLoadFile_PartialAndInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	content := `{
		"tones": {"C": true, "H": true, "F": false, "G": false},
		"qualities": {"alt": true, "sus4": true},
		"mode": "bebop",
		"duration_seconds": 42,
		"font_size": 13,
		"score_resolution": 72,
		"display_scale": false
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s, err := LoadFile(path)
	require.NoError(t, err)

	// listed entries override the defaults, the rest keep them
	assert.Len(t, s.AvailablePitches(), 10)
	assert.False(t, s.Tones["F"])
	assert.True(t, s.Tones["Bb"])
	assert.Equal(t, []theory.Quality{theory.Maj7, theory.Dom7, theory.Min7, theory.Alt}, s.AvailableQualities())
	assert.NotContains(t, s.Tones, "H")
	assert.NotContains(t, s.Qualities, "sus4")
	assert.Equal(t, "Chord", s.Mode)
	assert.Equal(t, 5, s.DurationSeconds)
	assert.Equal(t, 24, s.FontSize)
	assert.Equal(t, 100, s.ScoreResolution)
	assert.False(t, s.DisplayScale)
	assert.True(t, s.DisplayScore, "missing fields keep defaults")
}

func TestLoadFile_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestTonePresets(t *testing.T) {
	cases := map[string][]string{
		"all":   {"C", "F", "Bb", "Eb", "Ab", "Db", "F#", "B", "E", "A", "D", "G"},
		"none":  nil,
		"4-6":   {"Eb", "Ab", "Db"},
		"10-12": {"A", "D", "G"},
		"5-8":   {"Ab", "Db", "F#", "B"},
		"7-12":  {"F#", "B", "E", "A", "D", "G"},
	}
	for preset, want := range cases {
		t.Run(preset, func(t *testing.T) {
			s := Default()
			require.NoError(t, s.ApplyTonePreset(preset))
			var got []string
			for _, p := range s.AvailablePitches() {
				got = append(got, p.String())
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestTonePreset_Invert(t *testing.T) {
	s := Default()
	require.NoError(t, s.ApplyTonePreset("1-4"))
	require.NoError(t, s.ApplyTonePreset("invert"))
	assert.Len(t, s.AvailablePitches(), 8)
	assert.False(t, s.Tones["C"])
	assert.True(t, s.Tones["Db"])
}

func TestPresets_Unknown(t *testing.T) {
	s := Default()
	assert.ErrorIs(t, s.ApplyTonePreset("0-3"), ErrInvalid)
	assert.ErrorIs(t, s.ApplyTonePreset("5-2"), ErrInvalid)
	assert.ErrorIs(t, s.ApplyTonePreset("lots"), ErrInvalid)
	assert.ErrorIs(t, s.ApplyQualityPreset("aug"), ErrInvalid)
}

func TestQualityPresets(t *testing.T) {
	s := Default()
	require.NoError(t, s.ApplyQualityPreset("min"))
	assert.Equal(t, []theory.Quality{theory.MinMaj7, theory.Alt, theory.Min7b5}, s.AvailableQualities())
	require.NoError(t, s.ApplyQualityPreset("all"))
	assert.Equal(t, theory.AllQualities(), s.AvailableQualities())
	require.NoError(t, s.ApplyQualityPreset("none"))
	assert.Empty(t, s.AvailableQualities())
}

func TestSet(t *testing.T) {
	s := Default()
	require.NoError(t, s.Set("tones", "C, G ,Bb"))
	assert.Equal(t, []theory.Pitch{theory.MustParsePitch("C"), theory.MustParsePitch("Bb"), theory.MustParsePitch("G")}, s.AvailablePitches())
	require.NoError(t, s.Set("qualities", "alt,7b9"))
	assert.Equal(t, []theory.Quality{theory.Alt, theory.Dom7b9}, s.AvailableQualities())
	require.NoError(t, s.Set("mode", "ii-v-i"))
	assert.Equal(t, theory.ModeIIVI, s.CurrentMode())
	require.NoError(t, s.Set("duration", "3"))
	assert.Equal(t, 3, s.DurationSeconds)
	require.NoError(t, s.Set("stay_on", "false"))
	assert.False(t, s.StayOn)
	require.NoError(t, s.Set("tones", "1-3"))
	assert.Len(t, s.AvailablePitches(), 3)

	for _, bad := range [][2]string{
		{"duration", "11"},
		{"font_size", "50"},
		{"score_resolution", "abc"},
		{"stay_on", "maybe"},
		{"tones", "C,H"},
		{"mode", "bebop"},
		{"colour", "red"},
	} {
		assert.ErrorIs(t, s.Set(bad[0], bad[1]), ErrInvalid, "%s=%s", bad[0], bad[1])
	}
}

func TestSameSelection(t *testing.T) {
	a := Default()
	b := a.Clone()
	b.DurationSeconds = 9
	b.DisplayScore = false
	assert.True(t, a.SameSelection(b), "display settings do not affect generation")

	b.SetTone(theory.MustParsePitch("C"), false)
	assert.False(t, a.SameSelection(b))
	assert.True(t, a.Tones["C"], "clone is deep")

	c := a.Clone()
	c.SetMode(theory.ModeVI)
	assert.False(t, a.SameSelection(c))
}

func TestAdjustDuration(t *testing.T) {
	s := Default()
	s.AdjustDuration(100)
	assert.Equal(t, DurationMax, s.DurationSeconds)
	s.AdjustDuration(-100)
	assert.Equal(t, DurationMin, s.DurationSeconds)
}
