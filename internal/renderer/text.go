package renderer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ivlev/deckplay/internal/animation"
	"github.com/ivlev/deckplay/internal/navigator"
	"github.com/ivlev/deckplay/internal/transition"
)

// Text writes a one-line status per directive, e.g.
//
//	[*] Slide 2 of 5 | step 1/2 | x0.50 | fade-in <- fade-out (500ms) | playing: title(fade-in-anim)
type Text struct {
	mu sync.Mutex
	w  io.Writer
	// CR rewrites the same terminal line instead of appending lines
	CR bool
}

func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

func (t *Text) Render(_ context.Context, rd navigator.RenderDirective) error {
	line := StatusLine(rd)

	t.mu.Lock()
	defer t.mu.Unlock()

	var err error
	if t.CR {
		_, err = fmt.Fprintf(t.w, "\r\x1b[2K%s", line)
	} else {
		_, err = fmt.Fprintln(t.w, line)
	}
	return err
}

// StatusLine formats a directive for the console
func StatusLine(rd navigator.RenderDirective) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[*] %s", rd.Footer)
	if rd.TotalClicks > 0 {
		fmt.Fprintf(&b, " | step %d/%d", rd.Step, rd.TotalClicks)
	}
	fmt.Fprintf(&b, " | x%.2f", rd.Scale)

	if rd.InTransition && rd.Previous != nil {
		exit := rd.Previous.Effect
		if exit == transition.EffectNone {
			exit = "cut"
		}
		fmt.Fprintf(&b, " | %s <- %s (%dms)", rd.Current.Effect, exit, rd.Current.DurationMs)
	}

	if len(rd.Active) > 0 {
		playing := make([]string, len(rd.Active))
		for i, e := range rd.Active {
			playing[i] = fmt.Sprintf("%s(%s)", e.ElementID, animation.Name(e.Spec.Effect))
		}
		fmt.Fprintf(&b, " | playing: %s", strings.Join(playing, ", "))
	}

	return b.String()
}
