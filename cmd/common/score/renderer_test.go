package score

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLilypond writes a script that behaves like lilypond -o <base>: it
// creates <base>.preview.png and <base>.preview.eps and counts its calls.
func fakeLilypond(t *testing.T) (string, string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	calls := filepath.Join(dir, "calls")
	script := `#!/bin/sh
while [ $# -gt 0 ]; do
  if [ "$1" = "-o" ]; then shift; base="$1"; fi
  shift
done
echo x >> "` + calls + `"
touch "$base.preview.png" "$base.preview.eps"
`
	path := filepath.Join(dir, "lilypond")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path, calls
}

func countCalls(t *testing.T, calls string) int {
	data, err := os.ReadFile(calls)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(data) / 2
}

func TestRenderChord(t *testing.T) {
	lily, calls := fakeLilypond(t)
	r := NewRenderer(t.TempDir(), lily, 150)
	assert.True(t, r.Available())

	c := theory.MustParsePitch("C")
	png, err := r.RenderChord(context.Background(), c, theory.Maj7, theory.ModeChord)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Dir, "res150", "chord_c_Maj7_chord.preview.png"), png)
	assert.Equal(t, r.ChordImage(c, theory.Maj7, theory.ModeChord), png)
	assert.FileExists(t, png)
	assert.FileExists(t, filepath.Join(r.Dir, "res150", "chord_c_Maj7_chord.ly"))
	assert.NoFileExists(t, filepath.Join(r.Dir, "res150", "chord_c_Maj7_chord.preview.eps"))
	assert.Equal(t, 1, countCalls(t, calls))

	// existing images are reused
	_, err = r.RenderChord(context.Background(), c, theory.Maj7, theory.ModeChord)
	require.NoError(t, err)
	assert.Equal(t, 1, countCalls(t, calls))

	r.Overwrite = true
	_, err = r.RenderChord(context.Background(), c, theory.Maj7, theory.ModeChord)
	require.NoError(t, err)
	assert.Equal(t, 2, countCalls(t, calls))
}

func TestRenderScale(t *testing.T) {
	lily, _ := fakeLilypond(t)
	r := NewRenderer(t.TempDir(), lily, 100)
	s := theory.ScaleOf(theory.MustParsePitch("F"), theory.Maj7)
	png, err := r.RenderScale(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.Dir, "res100", "scale_f_Major.preview.png"), png)
	assert.FileExists(t, png)
}

func TestRender_InFlight(t *testing.T) {
	lily, calls := fakeLilypond(t)
	r := NewRenderer(t.TempDir(), lily, 100)
	c := theory.MustParsePitch("C")
	key := theory.CanonicalKey(c, theory.Maj7, theory.ModeChord)

	require.True(t, r.acquire(key))
	png, err := r.RenderChord(context.Background(), c, theory.Maj7, theory.ModeChord)
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Empty(t, png)
	assert.Zero(t, countCalls(t, calls))

	r.release(key)
	png, err = r.RenderChord(context.Background(), c, theory.Maj7, theory.ModeChord)
	require.NoError(t, err)
	assert.FileExists(t, png)
	assert.Equal(t, 1, countCalls(t, calls))
}

func TestRender_Placeholder(t *testing.T) {
	r := NewRenderer(t.TempDir(), "lilypond", 100)
	_, err := r.RenderChord(context.Background(), theory.NoPitch, theory.NoQuality, theory.ModeChord)
	assert.ErrorIs(t, err, ErrNoChord)
	_, err = r.RenderScale(context.Background(), theory.ScaleOf(theory.NoPitch, theory.NoQuality))
	assert.ErrorIs(t, err, ErrNoScale)
}

func TestRender_MissingLilypond(t *testing.T) {
	r := NewRenderer(t.TempDir(), filepath.Join(t.TempDir(), "no-such-lilypond"), 100)
	assert.False(t, r.Available())
	_, err := r.RenderChord(context.Background(), theory.MustParsePitch("G"), theory.Dom7, theory.ModeChord)
	assert.Error(t, err)
}
