package navigator

import (
	"fmt"

	"github.com/ivlev/deckplay/internal/animation"
	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/transition"
	"github.com/ivlev/deckplay/internal/viewport"
)

// ElementDirective pairs an element with its resolved render state
type ElementDirective struct {
	Element deck.Element
	State   animation.ElementState
}

// SlideView is one slide as the renderer should draw it
type SlideView struct {
	Index      int
	Slide      deck.Slide
	Effect     transition.Effect
	DurationMs int
	Static     bool
	Elements   []ElementDirective
}

// RenderDirective is everything a renderer needs for one frame of the session
type RenderDirective struct {
	Current  SlideView
	Previous *SlideView // set only during a transition

	Direction    transition.Direction
	InTransition bool
	Step         int
	TotalClicks  int
	Active       []animation.Entry // click group playing at Step

	Scale    float64
	Viewport viewport.Size

	SlideNumber int // 1-based
	SlideCount  int
	Footer      string
}

// Footer formats the slide counter shown below the stage
func Footer(number, count int) string {
	return fmt.Sprintf("Slide %d of %d", number, count)
}

// Directive describes the current session for the renderer.
// During a transition both slides are returned: the entering one with its
// animation state and the leaving one drawn at rest.
func (n *Navigator) Directive() RenderDirective {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.session
	seq := n.sequence()
	cur := n.deck.Slides[s.CurrentSlide]

	rd := RenderDirective{
		Current: SlideView{
			Index:    s.CurrentSlide,
			Slide:    cur,
			Effect:   transition.EffectNone,
			Elements: pair(cur, animation.ResolveSlide(cur, seq, s.AnimationStep)),
		},
		Direction:    s.Direction,
		InTransition: s.TransitionInFlight,
		Step:         s.AnimationStep,
		Active:       seq.Group(s.AnimationStep),
		TotalClicks:  seq.TotalClicks,
		Scale:        s.Scale,
		Viewport:     s.Viewport,
		SlideNumber:  s.CurrentSlide + 1,
		SlideCount:   n.deck.Len(),
		Footer:       Footer(s.CurrentSlide+1, n.deck.Len()),
	}

	if s.TransitionInFlight && s.PreviousSlide != NoSlide {
		kind := s.Transition.Kind
		rd.Current.Effect = transition.Select(kind, s.Direction, transition.Entering)
		rd.Current.DurationMs = s.Transition.DurationMs

		prev := n.deck.Slides[s.PreviousSlide]
		rd.Previous = &SlideView{
			Index:      s.PreviousSlide,
			Slide:      prev,
			Effect:     transition.Select(kind, s.Direction, transition.Exiting),
			DurationMs: s.Transition.DurationMs,
			Static:     true,
			Elements:   pair(prev, animation.ResolveStatic(prev)),
		}
	}

	return rd
}

func pair(slide deck.Slide, states []animation.ElementState) []ElementDirective {
	out := make([]ElementDirective, len(states))
	for i, st := range states {
		out[i] = ElementDirective{Element: slide.Elements[i], State: st}
	}
	return out
}
