package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		pitch    string
		quality  Quality
		expected string
	}{
		{"C", Maj7, "C△"},
		{"Bb", Min7, "B♭-7"},
		{"F#", Min7b5, "F♯ø"},
		{"Db", Dom7b9, "D♭7♭9"},
		{"A", Dim7, "Adim"},
		{"E", MinMaj7, "E-△"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Name(MustParsePitch(tt.pitch), tt.quality))
	}
}

func TestName_Placeholder(t *testing.T) {
	assert.Equal(t, "--", Name(NoPitch, NoQuality))
	assert.Equal(t, "--", NameIn(NoPitch, NoQuality, ModeIIVI))
}

func TestCanonicalKey(t *testing.T) {
	bb := MustParsePitch("Bb")
	assert.Equal(t, "chord_bf_min7_chord", CanonicalKey(bb, Min7, ModeChord))
	assert.Equal(t, "chord_bf_min7_ii-v-i", CanonicalKey(bb, Min7, ModeIIVI))
	assert.Equal(t, CanonicalKey(bb, Min7, ModeIIV), CanonicalKey(bb, Min7, ModeIIV))
	assert.Panics(t, func() { CanonicalKey(bb, Min7, Mode(7)) })
}

func TestCanonicalKey_Unique(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range AllPitches() {
		for _, q := range AllQualities() {
			for _, m := range AllModes() {
				key := CanonicalKey(p, q, m)
				assert.False(t, seen[key], key)
				seen[key] = true
			}
		}
	}
	assert.Len(t, seen, CircleSize*len(AllQualities())*len(AllModes()))
}

func TestScaleKey(t *testing.T) {
	// D-7, G7 and C△ are all practised on C major
	assert.Equal(t, "scale_c_Major", ScaleKey(MustParsePitch("D"), Min7))
	assert.Equal(t, "scale_c_Major", ScaleKey(MustParsePitch("G"), Dom7))
	assert.Equal(t, "scale_c_Major", ScaleKey(MustParsePitch("C"), Maj7))
	assert.Equal(t, "scale_bf_Minor", ScaleKey(MustParsePitch("Bb"), MinMaj7))
}

func TestParseQuality(t *testing.T) {
	tests := []struct {
		input    string
		expected Quality
	}{
		{"Maj7", Maj7},
		{"maj7", Maj7},
		{"7", Dom7},
		{"min7", Min7},
		{"m7b5", Min7b5},
		{"7b9", Dom7b9},
		{"dim", Dim7},
		{"-", NoQuality},
	}

	for _, tt := range tests {
		q, err := ParseQuality(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, q, tt.input)
	}

	_, err := ParseQuality("sus4")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestParseMode(t *testing.T) {
	for _, m := range AllModes() {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	m, err := ParseMode("iivi")
	require.NoError(t, err)
	assert.Equal(t, ModeIIVI, m)

	_, err = ParseMode("blues")
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestModeSlots(t *testing.T) {
	assert.Equal(t, 1, ModeChord.Slots())
	assert.Equal(t, 3, ModeIIVI.Slots())
	assert.Equal(t, 2, ModeIIV.Slots())
	assert.Equal(t, 2, ModeVI.Slots())
	assert.Panics(t, func() { Mode(-3).Slots() })
}
