package theory

import (
	"fmt"
	"strings"
)

// Quality is the chord type. The set is closed.
type Quality int

const (
	Maj7 Quality = iota
	Dom7
	Min7
	MinMaj7
	Alt
	Min7b5
	Dim7
	Dom7b9
)

// NoQuality is the "-" placeholder quality.
const NoQuality Quality = -1

var qualityIDs = [...]string{
	Maj7:    "Maj7",
	Dom7:    "7",
	Min7:    "min7",
	MinMaj7: "minMaj7",
	Alt:     "alt",
	Min7b5:  "min7b5",
	Dim7:    "dim7",
	Dom7b9:  "7b9",
}

var qualityGlyphs = [...]string{
	Maj7:    "△",
	Dom7:    "7",
	Min7:    "-7",
	MinMaj7: "-△",
	Alt:     "alt",
	Min7b5:  "ø",
	Dim7:    "dim",
	Dom7b9:  "7♭9",
}

// extra spellings accepted on the command line and in settings files
var qualityAliases = map[string]Quality{
	"maj7":    Maj7,
	"dom7":    Dom7,
	"m7":      Min7,
	"-7":      Min7,
	"mmaj7":   MinMaj7,
	"m7b5":    Min7b5,
	"dim":     Dim7,
	"dom7b9":  Dom7b9,
	"halfdim": Min7b5,
}

// AllQualities returns every quality in declaration order.
func AllQualities() []Quality {
	res := make([]Quality, len(qualityIDs))
	for i := range res {
		res[i] = Quality(i)
	}
	return res
}

// ParseQuality accepts the identifiers used in settings files ("Maj7", "7",
// "min7", ...) plus a few common aliases, case-insensitively.
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return NoQuality, nil
	}
	for i, id := range qualityIDs {
		if strings.EqualFold(id, s) {
			return Quality(i), nil
		}
	}
	if q, ok := qualityAliases[strings.ToLower(s)]; ok {
		return q, nil
	}
	return NoQuality, fmt.Errorf("%w: quality %q", ErrUnsupported, s)
}

// Valid reports whether q is one of the enumerated qualities.
func (q Quality) Valid() bool {
	return q >= 0 && int(q) < len(qualityIDs)
}

// String returns the identifier ("Maj7", "7", "min7", ...), "-" for the placeholder.
func (q Quality) String() string {
	if !q.Valid() {
		return "-"
	}
	return qualityIDs[q]
}

// Glyph returns the symbol used in chord names.
func (q Quality) Glyph() string {
	if !q.Valid() {
		return "-"
	}
	return qualityGlyphs[q]
}
