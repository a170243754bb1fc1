// Package config provides the persisted trainer settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/samber/lo"
)

var ErrInvalid = errors.New("invalid setting")

const (
	DurationMin = 1
	DurationMax = 10
)

var (
	FontSizes        = []int{24, 36, 48, 64, 72, 96, 128, 144}
	ScoreResolutions = []int{100, 150, 200, 300}
)

// Settings is what the trainer remembers between runs.
type Settings struct {
	Tones           map[string]bool `json:"tones"`
	Qualities       map[string]bool `json:"qualities"`
	Mode            string          `json:"mode"`
	DurationSeconds int             `json:"duration_seconds"`
	FontSize        int             `json:"font_size"`
	ScoreResolution int             `json:"score_resolution"`
	SingleThread    bool            `json:"single_thread"`
	DisplayScore    bool            `json:"display_score"`
	DisplayScale    bool            `json:"display_scale"`
	StayOn          bool            `json:"stay_on"`
	MaxRepeats      int             `json:"max_repeats,omitempty"`
	Lilypond        string          `json:"lilypond,omitempty"`
}

// Default returns the settings of a fresh install: every tone, the major
// family of qualities, single chords every five seconds.
func Default() *Settings {
	s := &Settings{
		Tones:           map[string]bool{},
		Qualities:       map[string]bool{},
		Mode:            theory.ModeChord.String(),
		DurationSeconds: 5,
		FontSize:        64,
		ScoreResolution: 150,
		SingleThread:    true,
		DisplayScore:    true,
		DisplayScale:    true,
		StayOn:          true,
		MaxRepeats:      1,
		Lilypond:        "lilypond",
	}
	for _, p := range theory.AllPitches() {
		s.Tones[p.String()] = true
	}
	for _, q := range theory.AllQualities() {
		s.Qualities[q.String()] = false
	}
	for _, q := range []theory.Quality{theory.Maj7, theory.Dom7, theory.Min7} {
		s.Qualities[q.String()] = true
	}
	return s
}

// Dir returns the chordtrainer config directory (~/.chordtrainer),
// or $CHORDTRAINER_HOME when set.
func Dir() string {
	if dir := os.Getenv("CHORDTRAINER_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chordtrainer")
}

// Path returns the path to the settings file.
func Path() string {
	return filepath.Join(Dir(), "settings.json")
}

// Load loads the settings from Path.
// Returns defaults if the file doesn't exist.
func Load() (*Settings, error) {
	return LoadFile(Path())
}

// LoadFile loads settings from path. Fields missing from the file keep their
// defaults and out-of-range values are normalized.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	s.Normalize()
	return s, nil
}

// Save saves the settings to Path.
func Save(s *Settings) error {
	return SaveFile(Path(), s)
}

func SaveFile(path string, s *Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Normalize replaces illegal values the way a hand-edited file is expected
// to be repaired: unknown tones and qualities are dropped, a bad duration
// becomes the middle of the range, and a bad mode, font size or resolution
// becomes the first legal one.
func (s *Settings) Normalize() {
	s.Tones = normalizeSwitches(s.Tones, lo.Map(theory.AllPitches(), func(p theory.Pitch, _ int) string { return p.String() }))
	s.Qualities = normalizeSwitches(s.Qualities, lo.Map(theory.AllQualities(), func(q theory.Quality, _ int) string { return q.String() }))

	if m, err := theory.ParseMode(s.Mode); err != nil {
		s.Mode = theory.AllModes()[0].String()
	} else {
		s.Mode = m.String()
	}
	if s.DurationSeconds < DurationMin || s.DurationSeconds > DurationMax {
		s.DurationSeconds = (DurationMax-DurationMin)/2 + 1
	}
	if !slices.Contains(FontSizes, s.FontSize) {
		s.FontSize = FontSizes[0]
	}
	if !slices.Contains(ScoreResolutions, s.ScoreResolution) {
		s.ScoreResolution = ScoreResolutions[0]
	}
	if s.MaxRepeats < 1 {
		s.MaxRepeats = 1
	}
	if s.Lilypond == "" {
		s.Lilypond = "lilypond"
	}
}

func normalizeSwitches(in map[string]bool, known []string) map[string]bool {
	out := make(map[string]bool, len(known))
	for _, k := range known {
		out[k] = in[k]
	}
	return out
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.Tones = maps.Clone(s.Tones)
	c.Qualities = maps.Clone(s.Qualities)
	return &c
}

// AvailablePitches returns the enabled tones in circle order.
func (s *Settings) AvailablePitches() []theory.Pitch {
	return lo.Filter(theory.AllPitches(), func(p theory.Pitch, _ int) bool {
		return s.Tones[p.String()]
	})
}

// AvailableQualities returns the enabled qualities in enum order.
func (s *Settings) AvailableQualities() []theory.Quality {
	return lo.Filter(theory.AllQualities(), func(q theory.Quality, _ int) bool {
		return s.Qualities[q.String()]
	})
}

// CurrentMode returns the selected mode, Chord if the name is unknown.
func (s *Settings) CurrentMode() theory.Mode {
	m, err := theory.ParseMode(s.Mode)
	if err != nil {
		return theory.ModeChord
	}
	return m
}

func (s *Settings) Duration() time.Duration {
	return time.Duration(s.DurationSeconds) * time.Second
}

// SameSelection reports whether both settings generate chords from the same
// tones, qualities and mode, i.e. whether already generated chords are still valid.
func (s *Settings) SameSelection(other *Settings) bool {
	return slices.Equal(s.AvailablePitches(), other.AvailablePitches()) &&
		slices.Equal(s.AvailableQualities(), other.AvailableQualities()) &&
		s.CurrentMode() == other.CurrentMode()
}

func (s *Settings) SetTone(p theory.Pitch, on bool) {
	s.Tones[p.String()] = on
}

func (s *Settings) ToggleTone(p theory.Pitch) {
	s.Tones[p.String()] = !s.Tones[p.String()]
}

func (s *Settings) SetQuality(q theory.Quality, on bool) {
	s.Qualities[q.String()] = on
}

func (s *Settings) ToggleQuality(q theory.Quality) {
	s.Qualities[q.String()] = !s.Qualities[q.String()]
}

func (s *Settings) SetMode(m theory.Mode) {
	s.Mode = m.String()
}

// AdjustDuration changes the duration by delta seconds, clamped to the legal range.
func (s *Settings) AdjustDuration(delta int) {
	s.DurationSeconds = min(max(s.DurationSeconds+delta, DurationMin), DurationMax)
}
