package navigator

import (
	"time"

	"github.com/ivlev/deckplay/internal/animation"
	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/transition"
	"github.com/ivlev/deckplay/internal/viewport"
)

// EventKind enumerates the abstract playback events
type EventKind int

const (
	Advance EventKind = iota
	Retreat
	JumpTo
	Resize
	Exit
	// TransitionDone is posted when a transition timer expires
	TransitionDone
)

func (k EventKind) String() string {
	switch k {
	case Advance:
		return "advance"
	case Retreat:
		return "retreat"
	case JumpTo:
		return "jump"
	case Resize:
		return "resize"
	case Exit:
		return "exit"
	case TransitionDone:
		return "transition_done"
	default:
		return "unknown"
	}
}

// Event is one input to the state machine
type Event struct {
	Kind     EventKind
	Index    int           // JumpTo target
	Viewport viewport.Size // Resize
	Token    uint64        // TransitionDone
}

// CommandKind enumerates side effects requested by the reducer
type CommandKind int

const (
	StartTimer CommandKind = iota
	CancelTimer
	NotifyExit
)

// Command is a side effect the caller must perform after a reduction
type Command struct {
	Kind     CommandKind
	Token    uint64
	Duration time.Duration
}

// outcome classifies a reduction for logging and metrics
type outcome int

const (
	handled   outcome = iota
	ignored           // legal no-op: boundary, same-slide jump, disposed session
	swallowed         // navigation dropped while a transition is in flight
	stale             // timer completion for a window that already ended
)

// Reduce applies one event to a session and returns the new session along
// with the side effects to run. It never touches a clock or a goroutine.
func Reduce(d *deck.Deck, s Session, e Event) (Session, []Command) {
	next, cmds, _ := reduce(d, s, e)
	return next, cmds
}

func reduce(d *deck.Deck, s Session, e Event) (Session, []Command, outcome) {
	if s.Disposed || d.Len() == 0 {
		return s, nil, ignored
	}

	switch e.Kind {
	case Resize:
		s.Viewport = e.Viewport
		s.Scale = viewport.Fit(viewport.Logical, e.Viewport)
		return s, nil, handled

	case Exit:
		var cmds []Command
		if s.TransitionInFlight {
			cmds = append(cmds, Command{Kind: CancelTimer, Token: s.Token})
		}
		s.TransitionInFlight = false
		s.PreviousSlide = NoSlide
		s.Disposed = true
		return s, append(cmds, Command{Kind: NotifyExit}), handled

	case TransitionDone:
		if !s.TransitionInFlight || e.Token != s.Token {
			return s, nil, stale
		}
		s.TransitionInFlight = false
		s.PreviousSlide = NoSlide
		return s, nil, handled
	}

	if s.TransitionInFlight {
		return s, nil, swallowed
	}

	switch e.Kind {
	case Advance:
		total := animation.NewSequence(d.Slides[s.CurrentSlide]).TotalClicks
		if s.AnimationStep < total {
			s.AnimationStep++
			return s, nil, handled
		}
		if s.CurrentSlide >= d.Len()-1 {
			return s, nil, ignored
		}
		return changeSlide(d, s, s.CurrentSlide+1, transition.Forward)

	case Retreat:
		if s.AnimationStep > 0 {
			s.AnimationStep--
			return s, nil, handled
		}
		if s.CurrentSlide <= 0 {
			return s, nil, ignored
		}
		return changeSlide(d, s, s.CurrentSlide-1, transition.Backward)

	case JumpTo:
		if e.Index < 0 || e.Index >= d.Len() || e.Index == s.CurrentSlide {
			return s, nil, ignored
		}
		// direct selection is always an immediate cut
		s.CurrentSlide = e.Index
		s.AnimationStep = 0
		s.PreviousSlide = NoSlide
		return s, nil, handled
	}

	return s, nil, ignored
}

func changeSlide(d *deck.Deck, s Session, target int, dir transition.Direction) (Session, []Command, outcome) {
	trans := d.TransitionInto(target)

	if transition.Skips(trans.Kind) {
		s.CurrentSlide = target
		s.AnimationStep = 0
		s.PreviousSlide = NoSlide
		return s, nil, handled
	}

	s.Token++
	s.PreviousSlide = s.CurrentSlide
	s.CurrentSlide = target
	s.Direction = dir
	s.AnimationStep = 0
	s.TransitionInFlight = true
	s.Transition = trans

	return s, []Command{{Kind: StartTimer, Token: s.Token, Duration: s.TransitionDuration()}}, handled
}
