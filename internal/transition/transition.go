// Package transition maps slide transition kinds to the effect identifiers
// consumed by renderers.
package transition

import "github.com/ivlev/deckplay/internal/deck"

// Direction of navigation across a slide boundary
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Role of a slide during the overlap window
type Role string

const (
	Entering Role = "enter"
	Exiting  Role = "exit"
)

// Effect is a renderer-facing transition identifier, e.g. "push-enter-forward"
type Effect string

// EffectNone means the slide is drawn without any transition effect
const EffectNone Effect = "none"

type key struct {
	kind deck.TransitionKind
	dir  Direction
	role Role
}

var table = map[key]Effect{
	{deck.TransitionFade, Forward, Entering}:  "fade-in",
	{deck.TransitionFade, Backward, Entering}: "fade-in",
	{deck.TransitionFade, Forward, Exiting}:   "fade-out",
	{deck.TransitionFade, Backward, Exiting}:  "fade-out",

	{deck.TransitionMorph, Forward, Entering}:  "morph-enter",
	{deck.TransitionMorph, Backward, Entering}: "morph-enter",
	{deck.TransitionMorph, Forward, Exiting}:   "morph-exit",
	{deck.TransitionMorph, Backward, Exiting}:  "morph-exit",

	{deck.TransitionPush, Forward, Entering}:  "push-enter-forward",
	{deck.TransitionPush, Backward, Entering}: "push-enter-backward",
	{deck.TransitionPush, Forward, Exiting}:   "push-exit-forward",
	{deck.TransitionPush, Backward, Exiting}:  "push-exit-backward",

	// the departing slide is dropped without an effect of its own
	{deck.TransitionWipe, Forward, Entering}:  "wipe-enter-forward",
	{deck.TransitionWipe, Backward, Entering}: "wipe-enter-backward",

	{deck.TransitionZoom, Forward, Entering}:  "zoom-in-enter",
	{deck.TransitionZoom, Forward, Exiting}:   "zoom-in-exit",
	{deck.TransitionZoom, Backward, Entering}: "zoom-out-enter",
	{deck.TransitionZoom, Backward, Exiting}:  "zoom-out-exit",
}

// Select returns the effect for a slide playing the given role. Unknown
// kinds behave like NONE.
func Select(kind deck.TransitionKind, dir Direction, role Role) Effect {
	if e, ok := table[key{kind.Normalize(), dir, role}]; ok {
		return e
	}
	return EffectNone
}

// Skips reports whether the kind bypasses the overlap rendering path entirely
func Skips(kind deck.TransitionKind) bool {
	return kind.Normalize() == deck.TransitionNone
}
