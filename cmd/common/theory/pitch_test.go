package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePitch(t *testing.T) {
	tests := []struct {
		input    string
		expected Pitch
	}{
		{"C", 0},
		{"F", 1},
		{"Bb", 2},
		{"F#", 6},
		{"G", 11},
		{" D ", 10},
		{"-", NoPitch},
	}

	for _, tt := range tests {
		p, err := ParsePitch(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, p, tt.input)
	}
}

func TestParsePitch_Unknown(t *testing.T) {
	for _, s := range []string{"", "H", "A#", "Gb", "c"} {
		_, err := ParsePitch(s)
		assert.ErrorIs(t, err, ErrUnknownPitch, s)
	}
}

func TestIndexOf_PanicsOutsideCircle(t *testing.T) {
	assert.Panics(t, func() { IndexOf(NoPitch) })
	assert.Panics(t, func() { IndexOf(Pitch(12)) })
	assert.NotPanics(t, func() { IndexOf(Pitch(11)) })
}

func TestPreviousAndNext(t *testing.T) {
	c := MustParsePitch("C")
	assert.Equal(t, "G", Previous(c).String(), "wraps backwards from C")
	assert.Equal(t, "D", Previous(Previous(c)).String())
	assert.Equal(t, "F", Next(c).String())
	assert.Equal(t, "C", Next(MustParsePitch("G")).String(), "wraps forwards from G")
}

func TestCircleInverseLaw(t *testing.T) {
	for _, p := range AllPitches() {
		assert.Equal(t, p, Previous(Next(p)), p.String())
		assert.Equal(t, p, Next(Previous(p)), p.String())
	}
}

func TestShift(t *testing.T) {
	c := MustParsePitch("C")
	assert.Equal(t, c, Shift(c, CircleSize))
	assert.Equal(t, c, Shift(c, -CircleSize))
	assert.Equal(t, "G", Shift(c, -1).String())
	assert.Equal(t, "Eb", Shift(c, 3).String())
	assert.Equal(t, "A", Shift(c, -27).String())
}

func TestPitchSpellings(t *testing.T) {
	tests := []struct {
		pitch string
		glyph string
		lily  string
	}{
		{"C", "C", "c"},
		{"Bb", "B♭", "bf"},
		{"Eb", "E♭", "ef"},
		{"F#", "F♯", "fs"},
		{"B", "B", "b"},
	}

	for _, tt := range tests {
		p := MustParsePitch(tt.pitch)
		assert.Equal(t, tt.glyph, p.Glyph())
		assert.Equal(t, tt.lily, p.LilyName())
	}
	assert.Equal(t, "-", NoPitch.Glyph())
	assert.Equal(t, "-", NoPitch.String())
}
