package navigator

import (
	"fmt"
	"time"

	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/transition"
	"github.com/ivlev/deckplay/internal/viewport"
)

// NoSlide marks an unset PreviousSlide
const NoSlide = -1

// State of the playback state machine
type State int

const (
	Idle State = iota
	Transitioning
	Disposed
)

func (s State) String() string {
	switch s {
	case Transitioning:
		return "transitioning"
	case Disposed:
		return "disposed"
	default:
		return "idle"
	}
}

// Session is the mutable runtime state of one playback session.
//
// PreviousSlide is set (not NoSlide) exactly while TransitionInFlight is true.
// Token identifies the current transition window; a completion carrying an
// older token is stale.
type Session struct {
	CurrentSlide       int
	PreviousSlide      int
	Direction          transition.Direction
	TransitionInFlight bool
	AnimationStep      int

	Transition deck.TransitionSpec
	Token      uint64

	Viewport viewport.Size
	Scale    float64

	Disposed bool
}

// NewSession seeds a session at the requested slide. The start index is
// clamped into the deck; an empty deck is a configuration error.
func NewSession(d *deck.Deck, start int, view viewport.Size) (Session, error) {
	if d.Len() == 0 {
		return Session{}, fmt.Errorf("new session: %w", deck.ErrEmptyDeck)
	}

	return Session{
		CurrentSlide:  clamp(start, 0, d.Len()-1),
		PreviousSlide: NoSlide,
		Direction:     transition.Forward,
		Transition:    deck.TransitionSpec{Kind: deck.TransitionNone},
		Viewport:      view,
		Scale:         viewport.Fit(viewport.Logical, view),
	}, nil
}

// State derives the state machine state from the session fields
func (s Session) State() State {
	switch {
	case s.Disposed:
		return Disposed
	case s.TransitionInFlight:
		return Transitioning
	default:
		return Idle
	}
}

// TransitionDuration is the length of the current transition window
func (s Session) TransitionDuration() time.Duration {
	return time.Duration(s.Transition.DurationMs) * time.Millisecond
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
