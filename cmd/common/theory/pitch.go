// Package theory holds the fixed music-theory tables the trainer is built on:
// the circle-of-fifths pitch ordering, the chord qualities, the practice modes
// and the rules mapping a chord to the scale it is practised with.
package theory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownPitch is the panic value for pitches outside the circle.
	ErrUnknownPitch = errors.New("unknown pitch")
	// ErrUnsupported is the panic value for qualities, modes or scale kinds
	// outside their closed enumerations.
	ErrUnsupported = errors.New("unsupported value")
)

// Pitch is an index into the circle of fifths, see AllPitches.
// Moving one step forward goes down a fifth (up a fourth).
type Pitch int

// NoPitch is the "-" placeholder used when nothing can be generated.
const NoPitch Pitch = -1

// CircleSize is the number of pitches on the circle.
const CircleSize = 12

var pitchNames = [CircleSize]string{"C", "F", "Bb", "Eb", "Ab", "Db", "F#", "B", "E", "A", "D", "G"}

var pitchGlyphs = [CircleSize]string{"C", "F", "B♭", "E♭", "A♭", "D♭", "F♯", "B", "E", "A", "D", "G"}

// AllPitches returns the 12 pitches in circle order.
func AllPitches() []Pitch {
	res := make([]Pitch, CircleSize)
	for i := range res {
		res[i] = Pitch(i)
	}
	return res
}

// ParsePitch maps one of the canonical spellings (or "-") to a Pitch.
func ParsePitch(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return NoPitch, nil
	}
	for i, name := range pitchNames {
		if name == s {
			return Pitch(i), nil
		}
	}
	return NoPitch, fmt.Errorf("%w: %q", ErrUnknownPitch, s)
}

// MustParsePitch is ParsePitch for fixed inputs; it panics on bad spellings.
func MustParsePitch(s string) Pitch {
	p, err := ParsePitch(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether p is one of the 12 circle pitches.
func (p Pitch) Valid() bool {
	return p >= 0 && p < CircleSize
}

// IndexOf returns the position of p on the circle. It panics for anything
// that is not one of the 12 pitches, the placeholder included.
func IndexOf(p Pitch) int {
	if !p.Valid() {
		panic(fmt.Errorf("%w: %d", ErrUnknownPitch, int(p)))
	}
	return int(p)
}

// Shift moves p the given number of steps along the circle, wrapping.
func Shift(p Pitch, steps int) Pitch {
	idx := (IndexOf(p) + steps) % CircleSize
	if idx < 0 {
		idx += CircleSize
	}
	return Pitch(idx)
}

// Previous is the pitch a fifth above p: the V of p, and the II of p's V.
func Previous(p Pitch) Pitch {
	return Shift(p, -1)
}

// Next is the pitch a fifth below p: where p resolves to as a dominant.
func Next(p Pitch) Pitch {
	return Shift(p, 1)
}

// String returns the ASCII spelling ("Bb", "F#") or "-".
func (p Pitch) String() string {
	if !p.Valid() {
		return "-"
	}
	return pitchNames[p]
}

// Glyph returns the display spelling with proper accidentals.
func (p Pitch) Glyph() string {
	if !p.Valid() {
		return "-"
	}
	return pitchGlyphs[p]
}

// LilyName returns the LilyPond english note name, e.g. "bf" or "fs".
func (p Pitch) LilyName() string {
	if !p.Valid() {
		return "-"
	}
	name := pitchNames[p]
	accidental := strings.NewReplacer("b", "f", "#", "s").Replace(name[1:])
	return strings.ToLower(name[:1]) + accidental
}
