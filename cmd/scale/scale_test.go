package scale

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Single(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(&Params{Pitch: "Bb", Quality: "min7"}, &out))
	assert.Equal(t, "B♭-7: A♭ Major\n", out.String())

	out.Reset()
	require.NoError(t, Run(&Params{Pitch: "E", Quality: "alt"}, &out))
	assert.Equal(t, "Ealt: F Minor\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Run(&Params{}, &out))
	assert.Error(t, Run(&Params{Pitch: "H", Quality: "min7"}, &out))
	assert.Error(t, Run(&Params{Pitch: "C", Quality: "sus4"}, &out))
	assert.Error(t, Run(&Params{Pitch: "-", Quality: "min7"}, &out))
}

func TestRun_All(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Run(&Params{All: true}, &out))
	s := out.String()
	assert.Contains(t, s, "C Major")
	assert.Contains(t, s, "B♭ Diminished")
	// header and 12 rows, plus borders
	assert.GreaterOrEqual(t, strings.Count(s, "\n"), 13)
}
