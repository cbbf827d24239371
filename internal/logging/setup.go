package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ParseLevel maps a config level name to a zerolog level. An empty name is
// info; "warning" and "off" are accepted besides zerolog's own names.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return zerolog.InfoLevel, nil
	case "warning":
		name = "warn"
	case "off":
		name = "disabled"
	}

	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", name, err)
	}
	return level, nil
}

// Setup builds the process logger. Terminals get the colored console format,
// anything else gets JSON lines. Timestamps are RFC3339 in UTC.
func Setup(w io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	out := w
	if isTerminal(w) {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
