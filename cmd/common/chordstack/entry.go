package chordstack

import "github.com/gigurra/chordtrainer/cmd/common/theory"

// Entry is one chord slot of the stack. The practice scale is derived on
// first use and cached until the pitch, quality or mode changes.
type Entry struct {
	pitch   theory.Pitch
	quality theory.Quality
	mode    theory.Mode

	scale      theory.Scale
	scaleValid bool
}

// empty is handed out at either end of the stack. It is returned by value,
// so callers can never modify it.
var empty = Entry{pitch: theory.NoPitch, quality: theory.NoQuality, mode: theory.ModeChord}

// Empty returns the "-" placeholder entry.
func Empty() Entry {
	return empty
}

// NewEntry creates an entry for the given chord.
func NewEntry(p theory.Pitch, q theory.Quality, m theory.Mode) Entry {
	return Entry{pitch: p, quality: q, mode: m}
}

func (e Entry) Pitch() theory.Pitch     { return e.pitch }
func (e Entry) Quality() theory.Quality { return e.quality }
func (e Entry) Mode() theory.Mode       { return e.mode }

func (e *Entry) SetPitch(p theory.Pitch) {
	e.pitch = p
	e.scaleValid = false
}

func (e *Entry) SetQuality(q theory.Quality) {
	e.quality = q
	e.scaleValid = false
}

func (e *Entry) SetMode(m theory.Mode) {
	e.mode = m
	e.scaleValid = false
}

// IsEmpty reports whether this is a placeholder rather than a real chord.
func (e Entry) IsEmpty() bool {
	return e.pitch == theory.NoPitch || e.quality == theory.NoQuality
}

// Name is the display name, "--" for placeholders.
func (e Entry) Name() string {
	return theory.Name(e.pitch, e.quality)
}

// Scale returns the practice scale. Entries handed out by a Stack carry it
// precomputed; a modified copy computes it again.
func (e Entry) Scale() theory.Scale {
	if e.scaleValid {
		return e.scale
	}
	return theory.ScaleIn(e.pitch, e.quality, e.mode)
}

// cacheScale computes the scale once and keeps it until the next setter call.
func (e *Entry) cacheScale() theory.Scale {
	if !e.scaleValid {
		e.scale = theory.ScaleIn(e.pitch, e.quality, e.mode)
		e.scaleValid = true
	}
	return e.scale
}

// Key is the notation cache key of the chord, see theory.CanonicalKey.
func (e Entry) Key() string {
	return theory.CanonicalKey(e.pitch, e.quality, e.mode)
}
