package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/ivlev/deckplay/internal/viewport"
)

// Approximate pixel size of one terminal cell, used to turn a character grid
// into a viewport.
const (
	CellWidth  = 8
	CellHeight = 16
)

// KeyReader reads presenter keys from a terminal. When In is a terminal it
// is switched to raw mode for the lifetime of Listen.
//
// A blocked Read cannot be interrupted, so the reading goroutine outlives
// Listen until the next byte or EOF arrives.
type KeyReader struct {
	In *os.File
}

func (k KeyReader) Listen(ctx context.Context, sink Sink) error {
	fd := int(k.In.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer term.Restore(fd, old)
	}

	keys := make(chan string)
	errc := make(chan error, 1)

	go func() {
		buf := make([]byte, 32)
		for {
			n, err := k.In.Read(buf)
			for _, key := range DecodeKeys(buf[:n]) {
				select {
				case keys <- key:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case key := <-keys:
			if err := sink.Post(ctx, InputEvent{Kind: Key, Key: key}); err != nil {
				return err
			}
		case err := <-errc:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read keys: %w", err)
		}
	}
}

var escapes = map[string]string{
	"\x1b[A":  "ArrowUp",
	"\x1b[B":  "ArrowDown",
	"\x1b[C":  "ArrowRight",
	"\x1b[D":  "ArrowLeft",
	"\x1bOC":  "ArrowRight",
	"\x1bOD":  "ArrowLeft",
	"\x1b[H":  "Home",
	"\x1b[F":  "End",
	"\x1bOH":  "Home",
	"\x1bOF":  "End",
	"\x1b[1~": "Home",
	"\x1b[4~": "End",
	"\x1b[5~": "PageUp",
	"\x1b[6~": "PageDown",
}

// DecodeKeys splits raw terminal bytes into logical key names
func DecodeKeys(b []byte) []string {
	var keys []string

	for len(b) > 0 {
		if b[0] == 0x1b {
			matched := false
			for seq, name := range escapes {
				if len(b) >= len(seq) && string(b[:len(seq)]) == seq {
					keys = append(keys, name)
					b = b[len(seq):]
					matched = true
					break
				}
			}
			if !matched {
				keys = append(keys, "Escape")
				b = b[1:]
			}
			continue
		}

		switch c := b[0]; {
		case c == '\r' || c == '\n':
			keys = append(keys, "Enter")
		case c == ' ':
			keys = append(keys, "Space")
		case c == 0x7f || c == 0x08:
			keys = append(keys, "Backspace")
		case c == 0x03:
			keys = append(keys, "Ctrl+C")
		case c >= 0x21 && c < 0x7f:
			keys = append(keys, string(rune(c)))
		}
		b = b[1:]
	}

	return keys
}

// ResizeWatcher reports terminal size changes as Resize input. It polls at
// Interval and, where the platform has one, also wakes on the window-change
// signal.
type ResizeWatcher struct {
	Fd       int
	Interval time.Duration
}

func (r ResizeWatcher) Listen(ctx context.Context, sink Sink) error {
	interval := r.Interval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	winch, stop := notifyResize()
	defer stop()

	var last viewport.Size
	check := func() error {
		cols, rows, err := term.GetSize(r.Fd)
		if err != nil {
			return nil
		}
		size := CellsToViewport(cols, rows)
		if size == last {
			return nil
		}
		last = size
		return sink.Post(ctx, InputEvent{Kind: Resize, Size: size})
	}

	if err := check(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-winch:
		}
		if err := check(); err != nil {
			return err
		}
	}
}

// CellsToViewport converts a character grid into an approximate pixel viewport
func CellsToViewport(cols, rows int) viewport.Size {
	return viewport.Size{W: float64(cols * CellWidth), H: float64(rows * CellHeight)}
}
