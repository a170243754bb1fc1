package theory

import "fmt"

// ScaleKind is the family of the practice scale.
type ScaleKind int

const (
	NoScale ScaleKind = iota
	Major
	Minor
	Diminished
)

func (k ScaleKind) String() string {
	switch k {
	case Major:
		return "Major"
	case Minor:
		return "Minor"
	case Diminished:
		return "Diminished"
	default:
		return "-"
	}
}

// Scale is the practice scale for a chord: a root and a kind.
type Scale struct {
	Pitch Pitch
	Kind  ScaleKind
}

// Name is the display form, e.g. "B♭ Major". The placeholder scale renders as "- -".
func (s Scale) Name() string {
	return s.Pitch.Glyph() + " " + s.Kind.String()
}

// Key identifies the scale for the notation cache, e.g. "scale_bf_Major".
func (s Scale) Key() string {
	return fmt.Sprintf("scale_%s_%s", s.Pitch.LilyName(), s.Kind)
}

// ScaleOf derives the practice scale of a chord.
//
// Maj7, 7 and min7 are I, V and II of one major scale; minMaj7, alt and
// min7b5 are the melodic minor counterparts. The diminished qualities
// reduce the circle index mod 3, which puts all four roots of a diminished
// seventh cycle on the same scale. 7b9 shifts by 2 first so the scale lines up
// with the dominant's resolution.
//
// The placeholder pitch or quality yields the placeholder kind with the pitch
// passed through.
func ScaleOf(p Pitch, q Quality) Scale {
	if p == NoPitch || q == NoQuality {
		return Scale{Pitch: p, Kind: NoScale}
	}
	idx := IndexOf(p)
	switch q {
	case Maj7:
		return Scale{Pitch: p, Kind: Major}
	case Dom7:
		return Scale{Pitch: Shift(p, 1), Kind: Major}
	case Min7:
		return Scale{Pitch: Shift(p, 2), Kind: Major}
	case MinMaj7:
		return Scale{Pitch: p, Kind: Minor}
	case Alt:
		return Scale{Pitch: Shift(p, 5), Kind: Minor}
	case Min7b5:
		return Scale{Pitch: Shift(p, 3), Kind: Minor}
	case Dim7:
		return Scale{Pitch: Pitch(idx % 3), Kind: Diminished}
	case Dom7b9:
		return Scale{Pitch: Pitch((idx + 2) % 3), Kind: Diminished}
	default:
		panic(fmt.Errorf("%w: quality %d", ErrUnsupported, int(q)))
	}
}

// ScaleIn is ScaleOf with the practice mode; the mode does not change the result.
func ScaleIn(p Pitch, q Quality, m Mode) Scale {
	mustMode(m)
	return ScaleOf(p, q)
}
