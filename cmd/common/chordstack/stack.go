// Package chordstack keeps the sliding window of generated chords the trainer
// steps through: enough history behind the cursor to go back and enough
// lookahead in front of it to go forward without generating on demand.
package chordstack

import (
	"log/slog"
	"math/rand/v2"

	"github.com/gigurra/chordtrainer/cmd/common/theory"
	"github.com/google/uuid"
)

const (
	// DefaultMargin is the number of entries kept on each side of the cursor.
	DefaultMargin = 10
	// MinMargin keeps a full II-V-I in front of the cursor at all times.
	MinMargin = 3
)

type Option func(*Stack)

// WithMargin sets the number of entries kept on each side of the cursor.
// Values below MinMargin are raised to it.
func WithMargin(margin int) Option {
	return func(s *Stack) {
		s.margin = max(margin, MinMargin)
	}
}

// WithRand sets the random source, mostly for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Stack) {
		s.rng = rng
	}
}

// WithMaxRepeats sets how many identical units may follow each other before
// a different one is forced. 1 (the default) never repeats a unit
// back to back; 2 allows one repetition. Values below 1 mean 1.
func WithMaxRepeats(n int) Option {
	return func(s *Stack) {
		s.maxRepeats = max(n, 1)
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Stack) {
		s.log = log
	}
}

// Stack is an ordered window of chord entries with a cursor.
// It is not safe for concurrent use.
type Stack struct {
	entries    []Entry
	cursor     int
	margin     int
	maxRepeats int
	rng        *rand.Rand
	id         string
	log        *slog.Logger
}

// New creates an empty stack; call Initialize to fill it.
func New(opts ...Option) *Stack {
	s := &Stack{
		margin:     DefaultMargin,
		maxRepeats: 1,
		rng:        rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		id:         uuid.NewString(),
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cursor = s.margin
	return s
}

// ID identifies the stack in log lines.
func (s *Stack) ID() string { return s.id }

// Margin is the number of entries kept on each side of the cursor.
func (s *Stack) Margin() int { return s.margin }

// TargetSize is the window size the stack is pruned to: 2*Margin+1.
func (s *Stack) TargetSize() int { return 2*s.margin + 1 }

func (s *Stack) Len() int    { return len(s.entries) }
func (s *Stack) Cursor() int { return s.cursor }

// Entries returns a copy of the window, oldest first.
func (s *Stack) Entries() []Entry {
	res := make([]Entry, len(s.entries))
	copy(res, s.entries)
	return res
}

// Initialize discards everything and fills the window for a new session.
// Afterwards Len() == TargetSize() and Cursor() == Margin().
func (s *Stack) Initialize(pitches []theory.Pitch, qualities []theory.Quality, mode theory.Mode) {
	s.entries = s.entries[:0]
	s.cursor = s.margin
	for len(s.entries) < s.TargetSize() {
		s.AddElement(pitches, qualities, mode)
	}
	s.pruneFront()
	s.log.Debug("chord stack initialized",
		"session", s.id, "mode", mode.String(), "pitches", len(pitches), "qualities", len(qualities), "size", len(s.entries))
}

// Next moves the cursor forward. It reports false, without moving, at the end.
func (s *Stack) Next() bool {
	if s.cursor < len(s.entries)-1 {
		s.cursor++
		return true
	}
	return false
}

// Prev moves the cursor back. It reports false, without moving, at the start.
func (s *Stack) Prev() bool {
	if s.cursor > 0 {
		s.cursor--
		return true
	}
	return false
}

// UpdateStack is the per-tick maintenance step. While the cursor is in the
// older half of the window it just steps forward. Otherwise it generates
// until Margin entries lie ahead of the cursor, prunes the oldest entries
// back to TargetSize and leaves the cursor one chord further on than
// before. Either way the cursor ends up on the chord after the one it was on.
func (s *Stack) UpdateStack(pitches []theory.Pitch, qualities []theory.Quality, mode theory.Mode) {
	s.update(pitches, qualities, mode, false)
}

// RecreateNext throws away everything after the cursor, which was generated
// under old settings, and generates fresh lookahead for the new ones.
// Like UpdateStack it leaves the cursor one chord further on; callers that
// have not shown the current chord yet step back with Prev.
func (s *Stack) RecreateNext(pitches []theory.Pitch, qualities []theory.Quality, mode theory.Mode) {
	if s.cursor+1 < len(s.entries) {
		s.entries = s.entries[:s.cursor+1]
	}
	s.log.Debug("recreating chord lookahead", "session", s.id, "mode", mode.String(), "kept", len(s.entries))
	s.update(pitches, qualities, mode, true)
}

func (s *Stack) update(pitches []theory.Pitch, qualities []theory.Quality, mode theory.Mode, recreating bool) {
	if s.cursor < s.TargetSize()/2 && !recreating {
		s.Next()
		return
	}

	for first := true; first || len(s.entries)-s.cursor < s.margin; first = false {
		s.AddElement(pitches, qualities, mode)
	}

	removed := s.pruneFront()
	s.cursor = s.cursor - removed + 1
	s.cursor = min(max(s.cursor, 0), len(s.entries)-1)
}

// pruneFront drops the oldest entries beyond TargetSize and returns how many went.
func (s *Stack) pruneFront() int {
	excess := len(s.entries) - s.TargetSize()
	if excess <= 0 {
		return 0
	}
	kept := make([]Entry, s.TargetSize())
	copy(kept, s.entries[excess:])
	s.entries = kept
	return excess
}

// Current is the entry under the cursor, or the placeholder.
func (s *Stack) Current() Entry {
	return s.at(s.cursor)
}

// PrevEntry is the entry before the cursor, or the placeholder.
func (s *Stack) PrevEntry() Entry {
	return s.at(s.cursor - 1)
}

// NextEntry is the entry after the cursor, or the placeholder.
func (s *Stack) NextEntry() Entry {
	return s.at(s.cursor + 1)
}

func (s *Stack) at(i int) Entry {
	if i < 0 || i >= len(s.entries) {
		return empty
	}
	s.entries[i].cacheScale()
	return s.entries[i]
}
