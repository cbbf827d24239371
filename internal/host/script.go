package host

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ivlev/deckplay/internal/viewport"
)

// ParseScript reads a comma separated list of abstract inputs:
//
//	advance, retreat, click, first, last, exit, jump:N (1-based), resize:WxH
func ParseScript(s string) ([]InputEvent, error) {
	var out []InputEvent

	for _, raw := range strings.Split(s, ",") {
		word := strings.ToLower(strings.TrimSpace(raw))
		if word == "" {
			continue
		}

		name, arg, _ := strings.Cut(word, ":")
		switch name {
		case "advance", "next":
			out = append(out, InputEvent{Kind: Key, Key: "ArrowRight"})
		case "retreat", "prev":
			out = append(out, InputEvent{Kind: Key, Key: "ArrowLeft"})
		case "click":
			out = append(out, InputEvent{Kind: Click})
		case "first":
			out = append(out, InputEvent{Kind: Key, Key: "Home"})
		case "last":
			out = append(out, InputEvent{Kind: Key, Key: "End"})
		case "exit":
			out = append(out, InputEvent{Kind: Close})
		case "jump":
			n, err := strconv.Atoi(arg)
			if err != nil {
				return nil, fmt.Errorf("script: bad slide number %q", arg)
			}
			out = append(out, InputEvent{Kind: Thumbnail, Index: n - 1})
		case "resize":
			ws, hs, ok := strings.Cut(arg, "x")
			w, werr := strconv.Atoi(ws)
			h, herr := strconv.Atoi(hs)
			if !ok || werr != nil || herr != nil {
				return nil, fmt.Errorf("script: bad size %q", arg)
			}
			out = append(out, InputEvent{Kind: Resize, Size: viewport.Size{W: float64(w), H: float64(h)}})
		default:
			return nil, fmt.Errorf("script: unknown step %q", raw)
		}
	}

	return out, nil
}

// Script replays inputs with a fixed pause before each one. Input that lands
// inside a transition window is dropped like any other, so the pause should
// cover the longest transition in the deck.
type Script struct {
	Events []InputEvent
	Pace   time.Duration
}

func (s Script) Listen(ctx context.Context, sink Sink) error {
	for _, in := range s.Events {
		if s.Pace > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(s.Pace):
			}
		}
		if err := sink.Post(ctx, in); err != nil {
			return err
		}
	}
	return nil
}
