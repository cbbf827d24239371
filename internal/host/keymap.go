package host

import (
	"strconv"

	"github.com/ivlev/deckplay/internal/navigator"
	"github.com/ivlev/deckplay/internal/viewport"
)

// InputKind classifies raw input coming from a listener
type InputKind int

const (
	Key InputKind = iota
	Click
	Thumbnail
	Resize
	Close
)

func (k InputKind) String() string {
	switch k {
	case Key:
		return "key"
	case Click:
		return "click"
	case Thumbnail:
		return "thumbnail"
	case Resize:
		return "resize"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// InputEvent is one raw input from the presentation surface
type InputEvent struct {
	Kind  InputKind
	Key   string        // Key: logical key name such as "ArrowRight" or "q"
	Index int           // Thumbnail: zero-based slide index
	Size  viewport.Size // Resize
}

// Action is what a key does
type Action int

const (
	NoAction Action = iota
	Next
	Prev
	Quit
	First
	Last
	// Confirm jumps to the typed slide number, or advances when nothing was typed
	Confirm
)

// KeyMap binds logical key names to actions. Digits are handled separately.
type KeyMap map[string]Action

// DefaultKeyMap is the presenter key layout
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"ArrowRight": Next,
		"Space":      Next,
		"PageDown":   Next,
		"Enter":      Confirm,
		"ArrowLeft":  Prev,
		"PageUp":     Prev,
		"Backspace":  Prev,
		"Escape":     Quit,
		"q":          Quit,
		"Ctrl+C":     Quit,
		"Home":       First,
		"End":        Last,
	}
}

// translator turns raw input into navigator events. It keeps the digits
// typed ahead of Enter.
type translator struct {
	keys   KeyMap
	last   int
	digits string
}

func (t *translator) translate(in InputEvent) (navigator.Event, bool) {
	switch in.Kind {
	case Click:
		t.digits = ""
		return navigator.Event{Kind: navigator.Advance}, true
	case Thumbnail:
		t.digits = ""
		return navigator.Event{Kind: navigator.JumpTo, Index: in.Index}, true
	case Resize:
		return navigator.Event{Kind: navigator.Resize, Viewport: in.Size}, true
	case Close:
		return navigator.Event{Kind: navigator.Exit}, true
	case Key:
	default:
		return navigator.Event{}, false
	}

	if len(in.Key) == 1 && in.Key[0] >= '0' && in.Key[0] <= '9' {
		if len(t.digits) < 6 {
			t.digits += in.Key
		}
		return navigator.Event{}, false
	}

	typed := t.digits
	t.digits = ""

	switch t.keys[in.Key] {
	case Next:
		return navigator.Event{Kind: navigator.Advance}, true
	case Prev:
		return navigator.Event{Kind: navigator.Retreat}, true
	case Quit:
		return navigator.Event{Kind: navigator.Exit}, true
	case First:
		return navigator.Event{Kind: navigator.JumpTo, Index: 0}, true
	case Last:
		return navigator.Event{Kind: navigator.JumpTo, Index: t.last}, true
	case Confirm:
		if typed == "" {
			return navigator.Event{Kind: navigator.Advance}, true
		}
		n, err := strconv.Atoi(typed)
		if err != nil {
			return navigator.Event{}, false
		}
		// slide numbers are 1-based; out of range is ignored downstream
		return navigator.Event{Kind: navigator.JumpTo, Index: n - 1}, true
	}

	return navigator.Event{}, false
}
