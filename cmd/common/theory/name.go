package theory

import "fmt"

// Name is the display name of a chord, e.g. "B♭-7" or "F♯ø".
// Placeholders render as "-" parts instead of failing.
func Name(p Pitch, q Quality) string {
	return p.Glyph() + q.Glyph()
}

// NameIn is Name with the practice mode; the mode does not change the result.
func NameIn(p Pitch, q Quality, m Mode) string {
	mustMode(m)
	return Name(p, q)
}

// CanonicalKey identifies a chord for the notation cache. It depends on
// nothing but its arguments, so it is stable between runs.
func CanonicalKey(p Pitch, q Quality, m Mode) string {
	return fmt.Sprintf("chord_%s_%s_%s", p.LilyName(), q, modeKey(m))
}

func modeKey(m Mode) string {
	switch m {
	case ModeChord:
		return "chord"
	case ModeIIVI:
		return "ii-v-i"
	case ModeIIV:
		return "ii-v"
	case ModeVI:
		return "v-i"
	default:
		panic(fmt.Errorf("%w: mode %d", ErrUnsupported, int(m)))
	}
}

// ScaleKey identifies the practice scale of a chord for the notation cache.
// Chords sharing a scale share the key.
func ScaleKey(p Pitch, q Quality) string {
	return ScaleOf(p, q).Key()
}
