package theory

import (
	"fmt"
	"strings"
)

// Mode selects what a single generated unit is: one chord or a progression.
type Mode int

const (
	ModeChord Mode = iota
	ModeIIVI
	ModeIIV
	ModeVI
)

var modeNames = [...]string{
	ModeChord: "Chord",
	ModeIIVI:  "II-V-I",
	ModeIIV:   "II-V",
	ModeVI:    "V-I",
}

// AllModes returns the modes in menu order.
func AllModes() []Mode {
	return []Mode{ModeChord, ModeIIVI, ModeIIV, ModeVI}
}

// ParseMode accepts "Chord", "II-V-I", "II-V" and "V-I" (case-insensitive,
// dashes optional).
func ParseMode(s string) (Mode, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for i, name := range modeNames {
		if strings.ToLower(strings.ReplaceAll(name, "-", "")) == norm {
			return Mode(i), nil
		}
	}
	return ModeChord, fmt.Errorf("%w: mode %q", ErrUnsupported, s)
}

// Valid reports whether m is one of the four modes.
func (m Mode) Valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

func mustMode(m Mode) {
	if !m.Valid() {
		panic(fmt.Errorf("%w: mode %d", ErrUnsupported, int(m)))
	}
}

func (m Mode) String() string {
	if !m.Valid() {
		return "-"
	}
	return modeNames[m]
}

// Slots is the number of chords one unit of this mode occupies.
func (m Mode) Slots() int {
	switch m {
	case ModeChord:
		return 1
	case ModeIIVI:
		return 3
	case ModeIIV, ModeVI:
		return 2
	default:
		panic(fmt.Errorf("%w: mode %d", ErrUnsupported, int(m)))
	}
}
