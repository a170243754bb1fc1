package chordstack

import (
	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/samber/lo"
)

// AddElement appends one generation unit to the end of the stack: a single
// chord in Chord mode, otherwise a whole progression resolving to a random
// Maj7 chord, stored in playing order ([II V I], [II V] or [V I]).
// With no pitches or no qualities available it appends one placeholder.
func (s *Stack) AddElement(pitches []theory.Pitch, qualities []theory.Quality, mode theory.Mode) {
	mode.Slots() // panics on modes outside the enum

	pitches = lo.Uniq(lo.Filter(pitches, func(p theory.Pitch, _ int) bool { return p.Valid() }))
	qualities = lo.Uniq(lo.Filter(qualities, func(q theory.Quality, _ int) bool { return q.Valid() }))

	if len(pitches) == 0 || len(qualities) == 0 {
		s.entries = append(s.entries, NewEntry(theory.NoPitch, theory.NoQuality, mode))
		return
	}

	if mode == theory.ModeChord {
		s.entries = append(s.entries, s.draw(pitches, qualities, mode))
		return
	}

	// Progressions always resolve to a Maj7, the quality selection does not apply.
	one := s.draw(pitches, []theory.Quality{theory.Maj7}, mode)
	s.entries = append(s.entries, Unit(one.pitch, mode)...)
}

// Unit returns the chords one generation unit resolving to root adds in
// mode, in playing order. In Chord mode that is root Maj7 alone.
func Unit(root theory.Pitch, mode theory.Mode) []Entry {
	one := NewEntry(root, theory.Maj7, mode)
	five := NewEntry(theory.Previous(root), theory.Dom7, mode)
	two := NewEntry(theory.Previous(five.pitch), theory.Min7, mode)

	switch mode {
	case theory.ModeIIVI:
		return []Entry{two, five, one}
	case theory.ModeIIV:
		return []Entry{two, five}
	case theory.ModeVI:
		return []Entry{five, one}
	default:
		mode.Slots()
		return []Entry{one}
	}
}

// draw picks a random chord, avoiding the one that would exceed the allowed
// run of repeats as long as there is anything else to pick.
func (s *Stack) draw(pitches []theory.Pitch, qualities []theory.Quality, mode theory.Mode) Entry {
	avoid, ok := s.nameToAvoid(mode)
	ok = ok && len(pitches)*len(qualities) >= 2
	for {
		e := NewEntry(lo.SampleBy(pitches, s.rng.IntN), lo.SampleBy(qualities, s.rng.IntN), mode)
		if !ok || e.Name() != avoid {
			return e
		}
	}
}

// nameToAvoid inspects the anchors of the last maxRepeats units. If they all
// name the same chord, that name must not be drawn again.
func (s *Stack) nameToAvoid(mode theory.Mode) (string, bool) {
	slots := mode.Slots()
	last := len(s.entries) - 1

	name := ""
	for i := 0; i < s.maxRepeats; i++ {
		pos := last - i*slots
		if pos < 0 || s.entries[pos].mode != mode {
			return "", false
		}
		anchor := anchorName(s.entries[pos])
		if anchor == "" || (i > 0 && anchor != name) {
			return "", false
		}
		name = anchor
	}
	return name, true
}

// anchorName is the name that identifies the unit e belongs to. In the
// progression modes that is the I it resolves to, found from e's role, so a
// unit cut short by RecreateNext still counts.
func anchorName(e Entry) string {
	if e.IsEmpty() {
		return ""
	}
	if e.mode == theory.ModeChord {
		return e.Name()
	}
	switch e.quality {
	case theory.Dom7:
		return theory.Name(theory.Next(e.pitch), theory.Maj7)
	case theory.Min7:
		return theory.Name(theory.Shift(e.pitch, 2), theory.Maj7)
	}
	return e.Name()
}
