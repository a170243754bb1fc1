// Package score renders chord and scale notation images with LilyPond.
package score

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/GiGurra/cmder"
	"github.com/gigurra/chordtrainer/cmd/common/theory"
)

var (
	ErrNoChord = errors.New("no chord to render")
	ErrNoScale = errors.New("no scale to render")
	// ErrInFlight is returned while another call is rendering the same
	// image. Its result arrives through that call.
	ErrInFlight = errors.New("already being rendered")
)

const DefaultTimeout = 60 * time.Second

// Renderer writes LilyPond sources below Dir/res<Resolution>/ and turns them
// into <key>.preview.png images. Images that already exist are reused unless
// Overwrite is set. A Renderer may be used from several goroutines.
type Renderer struct {
	Dir        string
	Lilypond   string
	Resolution int
	Timeout    time.Duration
	Overwrite  bool

	mu       sync.Mutex
	inflight map[string]bool
}

func NewRenderer(dir, lilypond string, resolution int) *Renderer {
	return &Renderer{
		Dir:        dir,
		Lilypond:   lilypond,
		Resolution: resolution,
		Timeout:    DefaultTimeout,
	}
}

// Available reports whether the lilypond executable can be found.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.Lilypond)
	return err == nil
}

// ImageDir holds the sources and images for the configured resolution.
func (r *Renderer) ImageDir() string {
	return filepath.Join(r.Dir, "res"+strconv.Itoa(r.Resolution))
}

// ChordImage is where the image of the chord ends up.
func (r *Renderer) ChordImage(p theory.Pitch, q theory.Quality, m theory.Mode) string {
	return filepath.Join(r.ImageDir(), theory.CanonicalKey(p, q, m)+".preview.png")
}

// ScaleImage is where the image of the scale ends up.
func (r *Renderer) ScaleImage(s theory.Scale) string {
	return filepath.Join(r.ImageDir(), s.Key()+".preview.png")
}

// RenderChord makes sure the chord image exists and returns its path.
func (r *Renderer) RenderChord(ctx context.Context, p theory.Pitch, q theory.Quality, m theory.Mode) (string, error) {
	src, err := ChordSource(p, q)
	if err != nil {
		return "", err
	}
	return r.render(ctx, theory.CanonicalKey(p, q, m), src)
}

// RenderScale makes sure the scale image exists and returns its path.
func (r *Renderer) RenderScale(ctx context.Context, s theory.Scale) (string, error) {
	src, err := ScaleSource(s)
	if err != nil {
		return "", err
	}
	return r.render(ctx, s.Key(), src)
}

func (r *Renderer) render(ctx context.Context, key, src string) (string, error) {
	base := filepath.Join(r.ImageDir(), key)
	png := base + ".preview.png"

	if !r.Overwrite {
		if _, err := os.Stat(png); err == nil {
			return png, nil
		}
	}

	if !r.acquire(key) {
		return "", ErrInFlight
	}
	defer r.release(key)

	if err := os.MkdirAll(r.ImageDir(), 0755); err != nil {
		return "", fmt.Errorf("creating render dir: %w", err)
	}
	lyFile := base + ".ly"
	if err := os.WriteFile(lyFile, []byte(src), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", lyFile, err)
	}

	start := time.Now()
	result := cmder.New(r.Lilypond,
		"--png",
		"-dresolution="+strconv.Itoa(r.Resolution),
		"-dpreview",
		"-dno-print-pages",
		"-o", base,
		lyFile,
	).
		WithAttemptTimeout(r.Timeout).
		Run(ctx)
	if result.Err != nil {
		return "", fmt.Errorf("lilypond failed for %s: %w\n%s", key, result.Err, result.Combined)
	}
	slog.Debug("rendered score", "key", key, "resolution", r.Resolution, "took", time.Since(start))

	// only the preview image is needed
	_ = os.Remove(base + ".preview.eps")

	if _, err := os.Stat(png); err != nil {
		return "", fmt.Errorf("lilypond produced no image for %s: %w", key, err)
	}
	return png, nil
}

func (r *Renderer) acquire(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inflight == nil {
		r.inflight = map[string]bool{}
	}
	if r.inflight[key] {
		return false
	}
	r.inflight[key] = true
	return true
}

func (r *Renderer) release(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, key)
}
