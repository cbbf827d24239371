package animation

import (
	"strings"

	"github.com/ivlev/deckplay/internal/deck"
)

// Phase of an element relative to the current animation step
type Phase int

const (
	PhaseStatic   Phase = iota // no animation, or slide rendered statically
	PhaseUpcoming              // click index above the current step
	PhaseActive                // click index equal to the current step
	PhasePlayed                // click index below the current step
)

func (p Phase) String() string {
	switch p {
	case PhaseUpcoming:
		return "upcoming"
	case PhaseActive:
		return "active"
	case PhasePlayed:
		return "played"
	default:
		return "static"
	}
}

// DefaultTiming is the timing function used for element animations
const DefaultTiming = "ease-in-out"

// Playback describes an effect that should run now
type Playback struct {
	Effect     deck.AnimationEffect
	Name       string
	DurationMs int
	DelayMs    int
	Timing     string
	FromHidden bool   // entrance effects start invisible
	ToHidden   bool   // exit effects end invisible
	Path       string // custom motion path data
	Target     Offset // displacement at the end of a motion effect
}

// ElementState is what a renderer needs to draw one element
type ElementState struct {
	ElementID  string
	Phase      Phase
	ClickIndex int
	Visible    bool
	Offset     Offset
	Playing    *Playback
}

// Name returns the renderer-facing animation name of an effect, e.g. FADE_IN -> fade-in-anim
func Name(effect deck.AnimationEffect) string {
	return strings.ReplaceAll(strings.ToLower(string(effect)), "_", "-") + "-anim"
}

// Resolve applies the rendering-selection rule to one element at the given step.
func Resolve(seq Sequence, el deck.Element, step int) ElementState {
	st := ElementState{ElementID: el.ID, Phase: PhaseStatic, Visible: true}

	entry, ok := seq.Lookup(el.ID)
	if !ok {
		return st
	}
	spec := entry.Spec
	st.ClickIndex = entry.ClickIndex

	switch {
	case entry.ClickIndex > step:
		st.Phase = PhaseUpcoming
		if spec.Category == deck.CategoryEntrance {
			st.Visible = false
		}

	case entry.ClickIndex < step:
		st.Phase = PhasePlayed
		switch spec.Category {
		case deck.CategoryExit:
			st.Visible = false
		case deck.CategoryMotion:
			// displacement persists; later steps never reverse it
			st.Offset = FinalOffset(spec)
		}

	default:
		st.Phase = PhaseActive
		pb := &Playback{
			Effect:     spec.Effect,
			Name:       Name(spec.Effect),
			DurationMs: spec.DurationMs,
			DelayMs:    spec.DelayMs,
			Timing:     DefaultTiming,
			FromHidden: spec.Category == deck.CategoryEntrance,
			ToHidden:   spec.Category == deck.CategoryExit,
		}
		if spec.Category == deck.CategoryMotion {
			pb.Target = FinalOffset(spec)
			if spec.Effect == deck.EffectMotionCustomPath {
				pb.Path = spec.Path
			}
		}
		st.Playing = pb
	}

	return st
}

// ResolveSlide resolves every element of the slide in z-order
func ResolveSlide(slide deck.Slide, seq Sequence, step int) []ElementState {
	states := make([]ElementState, 0, len(slide.Elements))
	for _, el := range slide.Elements {
		states = append(states, Resolve(seq, el, step))
	}
	return states
}

// ResolveStatic renders every element at rest, without any animation
// progression. Used for the slide leaving during a transition.
func ResolveStatic(slide deck.Slide) []ElementState {
	states := make([]ElementState, 0, len(slide.Elements))
	for _, el := range slide.Elements {
		states = append(states, ElementState{ElementID: el.ID, Phase: PhaseStatic, Visible: true})
	}
	return states
}
