package score

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
)

const header = `#(set-default-paper-size "a4")

\version "2.16.2"

\include "english.ly"

melodicMinor = #` + "`" + `((0 . ,NATURAL) (1 . ,NATURAL) (2 . ,FLAT) (3 . ,NATURAL) (4 . ,NATURAL) (5 . ,NATURAL) (6 . ,NATURAL))
`

var chordTemplate = template.Must(template.New("chord").Parse(header + `
upper = \relative {{.Upper}} {
  \clef treble
  \key {{.Key}}
  r1
  r
  <{{.Form1}}>1
  <{{.Form2}}>1
}

lower = \relative {{.Lower}} {
  \clef bass
  \key {{.Key}}
  <{{.Form1}}>1
  <{{.Form2}}>1
  r1
  r
}

\score {
  \new PianoStaff
  <<
    \set PianoStaff.instrumentName = #""
    \new Staff = "upper" \transpose c {{.To}} \upper
    \new Staff = "lower" \transpose c {{.To}} \lower
  >>
  \layout { }
}
`))

var scaleTemplate = template.Must(template.New("scale").Parse(header + `
notes = \relative c' {
  {{.Notes}}
}

upper = \relative c' {
  \clef treble
  \key c \major
  \transpose c {{.To}} \notes
}

\score {
  \upper
  \layout { }
}
`))

// voicing is a chord written in C, two hands, with the key signature that
// reads best once transposed to the actual root.
type voicing struct {
	Form1, Form2 string
	Key          string
	Upper, Lower string
	To           string
}

func voicingOf(p theory.Pitch, q theory.Quality) (voicing, error) {
	if !p.Valid() || !q.Valid() {
		return voicing{}, fmt.Errorf("%w: %s", ErrNoChord, theory.Name(p, q))
	}

	v := voicing{Upper: "c'", Lower: "c", To: p.LilyName()}
	switch q {
	case theory.Maj7:
		v.Form1, v.Form2, v.Key = "b c e g", "e g a d", `c \major`
	case theory.Dom7:
		v.Form1, v.Form2, v.Key = "e a bf d", "bf d e a", `f \major`
	case theory.Min7:
		v.Form1, v.Form2, v.Key = "ef g bf d", "bf d ef g", `bf \major`
	case theory.MinMaj7:
		v.Form1, v.Form2, v.Key = "ef g b d", "b d ef g", `c \melodicMinor`
	case theory.Alt:
		if isOneOf(p, "Db", "Eb", "F", "Ab", "Bb") {
			v.Form1, v.Form2, v.Key = "e gs as ds", "as ds e gs", `cs \melodicMinor`
		} else {
			v.Form1, v.Form2, v.Key = "ff af bf ef", "bf ef ff af", `df \melodicMinor`
		}
		// an octave down keeps the high roots off the ledger lines
		if isOneOf(p, "G", "Ab", "A", "Bb", "B") {
			v.Upper, v.Lower = "c", "c,"
		}
	case theory.Min7b5:
		if isOneOf(p, "Db", "Eb", "Ab") {
			v.Form1, v.Form2, v.Key = "ds fs as css", "as css ds fs", `ds \melodicMinor`
		} else {
			v.Form1, v.Form2, v.Key = "ef gf bf d", "bf d ef gf", `ef \melodicMinor`
		}
	case theory.Dim7:
		v.Form1, v.Form2, v.Key = "c ef gf a", "c ef gf b", compensatedKey(p)
	case theory.Dom7b9:
		v.Form1, v.Form2, v.Key = "e a bf df", "bf df e a", compensatedKey(p)
	default:
		return voicing{}, fmt.Errorf("%w: quality %s", theory.ErrUnsupported, q)
	}
	return v, nil
}

// compensatedKey picks the major key that transposes back to C major, so the
// symmetric chords are always shown without a key signature.
func compensatedKey(p theory.Pitch) string {
	key := theory.Pitch((theory.CircleSize - theory.IndexOf(p)) % theory.CircleSize).LilyName()
	if key == "fs" {
		key = "gf"
	}
	return key + ` \major`
}

func isOneOf(p theory.Pitch, names ...string) bool {
	for _, n := range names {
		if p == theory.MustParsePitch(n) {
			return true
		}
	}
	return false
}

// ChordSource returns the LilyPond source showing the chord in two voicings,
// first in the treble then in the bass clef.
func ChordSource(p theory.Pitch, q theory.Quality) (string, error) {
	v, err := voicingOf(p, q)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := chordTemplate.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var scaleNotes = map[theory.ScaleKind]string{
	theory.Major:      "c d e f g a b c",
	theory.Minor:      "c d ef f g a b c",
	theory.Diminished: "c d ef f gf af a b c",
}

// ScaleSource returns the LilyPond source for one octave of the scale.
func ScaleSource(s theory.Scale) (string, error) {
	notes, ok := scaleNotes[s.Kind]
	if !ok || !s.Pitch.Valid() {
		return "", fmt.Errorf("%w: %s", ErrNoScale, s.Name())
	}
	var buf bytes.Buffer
	err := scaleTemplate.Execute(&buf, struct{ Notes, To string }{notes, s.Pitch.LilyName()})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
