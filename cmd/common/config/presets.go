package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/samber/lo"
)

// TonePresets lists the tone selections offered by the tones menu. Ranges
// are 1-based positions along the circle of fifths, starting at C.
var TonePresets = []string{
	"all", "none", "invert",
	"1-3", "4-6", "7-9", "10-12",
	"1-4", "5-8", "9-12",
	"1-6", "7-12",
}

// QualityPresets lists the quality selections offered by the qualities menu.
var QualityPresets = []string{"maj", "min", "dim", "all", "none"}

var qualityFamilies = map[string][]theory.Quality{
	"maj": {theory.Maj7, theory.Dom7, theory.Min7},
	"min": {theory.MinMaj7, theory.Alt, theory.Min7b5},
	"dim": {theory.Dim7, theory.Dom7b9},
}

// ApplyTonePreset replaces the tone selection with a named preset.
func (s *Settings) ApplyTonePreset(name string) error {
	switch name {
	case "all", "none":
		for _, p := range theory.AllPitches() {
			s.SetTone(p, name == "all")
		}
		return nil
	case "invert":
		for _, p := range theory.AllPitches() {
			s.ToggleTone(p)
		}
		return nil
	}

	from, to, err := parseRange(name)
	if err != nil {
		return err
	}
	for i, p := range theory.AllPitches() {
		s.SetTone(p, i+1 >= from && i+1 <= to)
	}
	return nil
}

func parseRange(name string) (int, int, error) {
	first, last, ok := strings.Cut(name, "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: unknown tone preset %q", ErrInvalid, name)
	}
	from, err1 := strconv.Atoi(first)
	to, err2 := strconv.Atoi(last)
	if err1 != nil || err2 != nil || from < 1 || to > theory.CircleSize || from > to {
		return 0, 0, fmt.Errorf("%w: unknown tone preset %q", ErrInvalid, name)
	}
	return from, to, nil
}

// ApplyQualityPreset replaces the quality selection with a named preset.
func (s *Settings) ApplyQualityPreset(name string) error {
	var enabled []theory.Quality
	switch name {
	case "all":
		enabled = theory.AllQualities()
	case "none":
	default:
		family, ok := qualityFamilies[name]
		if !ok {
			return fmt.Errorf("%w: unknown quality preset %q", ErrInvalid, name)
		}
		enabled = family
	}
	for _, q := range theory.AllQualities() {
		s.SetQuality(q, lo.Contains(enabled, q))
	}
	return nil
}

// Keys lists the names accepted by Set.
var Keys = []string{
	"tones", "qualities", "mode", "duration", "font_size", "score_resolution",
	"single_thread", "display_score", "display_scale", "stay_on", "max_repeats", "lilypond",
}

// Set assigns a single setting from its textual form. "tones" and
// "qualities" take a preset name or a comma separated list.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "tones":
		if lo.Contains(TonePresets, value) {
			return s.ApplyTonePreset(value)
		}
		pitches, err := parseList(value, theory.ParsePitch)
		if err != nil {
			return err
		}
		for _, p := range theory.AllPitches() {
			s.SetTone(p, lo.Contains(pitches, p))
		}
	case "qualities":
		if lo.Contains(QualityPresets, value) {
			return s.ApplyQualityPreset(value)
		}
		qualities, err := parseList(value, theory.ParseQuality)
		if err != nil {
			return err
		}
		for _, q := range theory.AllQualities() {
			s.SetQuality(q, lo.Contains(qualities, q))
		}
	case "mode":
		m, err := theory.ParseMode(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		s.SetMode(m)
	case "duration":
		return setInt(&s.DurationSeconds, value, func(v int) bool { return v >= DurationMin && v <= DurationMax })
	case "font_size":
		return setInt(&s.FontSize, value, func(v int) bool { return lo.Contains(FontSizes, v) })
	case "score_resolution":
		return setInt(&s.ScoreResolution, value, func(v int) bool { return lo.Contains(ScoreResolutions, v) })
	case "max_repeats":
		return setInt(&s.MaxRepeats, value, func(v int) bool { return v >= 1 })
	case "single_thread":
		return setBool(&s.SingleThread, value)
	case "display_score":
		return setBool(&s.DisplayScore, value)
	case "display_scale":
		return setBool(&s.DisplayScale, value)
	case "stay_on":
		return setBool(&s.StayOn, value)
	case "lilypond":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: lilypond path must not be empty", ErrInvalid)
		}
		s.Lilypond = value
	default:
		return fmt.Errorf("%w: unknown key %q (known: %s)", ErrInvalid, key, strings.Join(Keys, ", "))
	}
	return nil
}

func parseList[T any](value string, parse func(string) (T, error)) ([]T, error) {
	var res []T
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := parse(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		res = append(res, v)
	}
	return res, nil
}

func setInt(dst *int, value string, legal func(int) bool) error {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !legal(v) {
		return fmt.Errorf("%w: %q", ErrInvalid, value)
	}
	*dst = v
	return nil
}

func setBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalid, value)
	}
	*dst = v
	return nil
}
