package navigator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ivlev/deckplay/internal/animation"
	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/viewport"
)

var ErrDisposed = errors.New("navigator disposed")

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Timer is a scheduled callback that can be stopped. Stop may return false
// when the callback already fired or is about to.
type Timer interface {
	Stop() bool
}

// Timers schedules one-shot callbacks
type Timers interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemTimers schedules callbacks with time.AfterFunc
type SystemTimers struct{}

func (SystemTimers) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Option configures a Navigator.
type Option func(*Navigator)

// WithTimers replaces the timer source
func WithTimers(t Timers) Option {
	return func(n *Navigator) {
		n.timers = t
	}
}

func WithLogger(l Logger) Option {
	return func(n *Navigator) {
		n.logger = l
	}
}

// WithViewport sets the initial viewport
func WithViewport(s viewport.Size) Option {
	return func(n *Navigator) {
		n.view = s
	}
}

// OnExit registers a callback run once when the session is disposed
func OnExit(f func()) Option {
	return func(n *Navigator) {
		n.onExit = append(n.onExit, f)
	}
}

// Navigator drives a Session through Reduce and runs the resulting commands.
// It holds at most one outstanding timer.
//
// A Navigator is safe for concurrent use: timer callbacks run on whatever
// goroutine the Timers implementation uses and take the same lock as Handle.
// Callers that also need events ordered against rendering serialize them
// themselves, as host.Host does.
type Navigator struct {
	mu sync.Mutex

	deck    *deck.Deck
	session Session

	timers     Timers
	timer      Timer
	timerToken uint64

	view    viewport.Size
	logger  Logger
	metrics *metrics
	onExit  []func()

	seq      animation.Sequence
	seqSlide int
}

// New creates a Navigator positioned at start (clamped into the deck).
// Uses the global OTel meter for metrics (no-op if not configured).
func New(d *deck.Deck, start int, opts ...Option) (*Navigator, error) {
	n := &Navigator{
		deck:     d,
		timers:   SystemTimers{},
		view:     viewport.Logical,
		logger:   nopLogger{},
		seqSlide: NoSlide,
	}
	for _, opt := range opts {
		opt(n)
	}

	s, err := NewSession(d, start, n.view)
	if err != nil {
		return nil, err
	}
	n.session = s

	n.metrics, err = newMetrics()
	if err != nil {
		return nil, fmt.Errorf("navigator metrics: %w", err)
	}

	return n, nil
}

// Session returns a copy of the current session
func (n *Navigator) Session() Session {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.session
}

func (n *Navigator) Deck() *deck.Deck {
	return n.deck
}

// Disposed reports whether Exit has been processed
func (n *Navigator) Disposed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.session.Disposed
}

// Sequence returns the cached animation sequence of the current slide
func (n *Navigator) Sequence() animation.Sequence {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sequence()
}

func (n *Navigator) sequence() animation.Sequence {
	if n.seqSlide != n.session.CurrentSlide {
		n.seq = animation.NewSequence(n.deck.Slides[n.session.CurrentSlide])
		n.seqSlide = n.session.CurrentSlide
	}
	return n.seq
}

// Handle applies one event. It reports whether the session changed.
// Exit hooks run after the navigator is unlocked.
func (n *Navigator) Handle(e Event) (bool, error) {
	n.mu.Lock()
	changed, hooks, err := n.handle(e)
	n.mu.Unlock()

	for _, f := range hooks {
		f()
	}
	return changed, err
}

func (n *Navigator) handle(e Event) (bool, []func(), error) {
	if n.session.Disposed {
		return false, nil, ErrDisposed
	}

	before := n.session
	next, cmds, out := reduce(n.deck, n.session, e)
	n.session = next

	attrs := metric.WithAttributes(attribute.String("event", e.Kind.String()))
	ctx := context.Background()

	switch out {
	case handled:
		n.metrics.handled.Add(ctx, 1, attrs)
		n.logger.Debug("event handled",
			"event", e.Kind.String(),
			"slide", next.CurrentSlide,
			"step", next.AnimationStep,
			"state", next.State().String())
	case swallowed:
		n.metrics.swallowed.Add(ctx, 1, attrs)
		n.logger.Debug("event swallowed during transition", "event", e.Kind.String(), "token", next.Token)
	case stale:
		n.metrics.stale.Add(ctx, 1)
		n.logger.Debug("stale transition completion", "token", e.Token, "current", next.Token)
	}

	var hooks []func()
	for _, c := range cmds {
		hooks = append(hooks, n.exec(c)...)
	}

	return next != before, hooks, nil
}

// exec runs one command and returns the exit hooks it released
func (n *Navigator) exec(c Command) []func() {
	switch c.Kind {
	case StartTimer:
		n.stopTimer()
		token := c.Token
		n.timerToken = token
		n.timer = n.timers.AfterFunc(c.Duration, func() { n.expire(token) })
		n.metrics.started.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("kind", string(n.session.Transition.Kind))))
		n.logger.Debug("transition started",
			"kind", string(n.session.Transition.Kind),
			"from", n.session.PreviousSlide,
			"to", n.session.CurrentSlide,
			"duration", c.Duration)

	case CancelTimer:
		if n.timerToken == c.Token {
			n.stopTimer()
		}

	case NotifyExit:
		n.logger.Info("playback session ended", "slide", n.session.CurrentSlide)
		hooks := n.onExit
		n.onExit = nil
		return hooks
	}
	return nil
}

func (n *Navigator) stopTimer() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}

// expire runs when a transition timer fires. The timer may fire after Stop or
// after disposal, so the session is checked before anything else.
func (n *Navigator) expire(token uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.session.Disposed {
		n.metrics.stale.Add(context.Background(), 1)
		return
	}
	if token == n.timerToken {
		n.timer = nil
	}
	// a completion never exits, so there are no hooks to run
	_, _, _ = n.handle(Event{Kind: TransitionDone, Token: token})
}
