package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/navigator"
	"github.com/ivlev/deckplay/internal/viewport"
)

// Renderer draws one directive. Errors are reported but never stop playback.
type Renderer interface {
	Render(ctx context.Context, rd navigator.RenderDirective) error
}

// Sink accepts input from listeners
type Sink interface {
	Post(ctx context.Context, in InputEvent) error
}

// Listener produces input until ctx is cancelled. Returning nil means the
// source is exhausted; an error shuts the whole session down.
type Listener interface {
	Listen(ctx context.Context, sink Sink) error
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(ctx context.Context, sink Sink) error

func (f ListenerFunc) Listen(ctx context.Context, sink Sink) error {
	return f(ctx, sink)
}

// Option configures a Host.
type Option func(*Host)

func WithLogger(l navigator.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// WithListeners registers input sources started by Run
func WithListeners(l ...Listener) Option {
	return func(h *Host) {
		h.listeners = append(h.listeners, l...)
	}
}

// WithStart sets the initial slide index
func WithStart(i int) Option {
	return func(h *Host) {
		h.start = i
	}
}

func WithViewport(s viewport.Size) Option {
	return func(h *Host) {
		h.view = s
	}
}

// WithTimers replaces the clock used for transition windows
func WithTimers(t navigator.Timers) Option {
	return func(h *Host) {
		h.timers = t
	}
}

func WithKeyMap(k KeyMap) Option {
	return func(h *Host) {
		h.keys = k
	}
}

type task func(ctx context.Context)

// Host owns one playback session. Listener input and timer expiries are
// handed to a single loop goroutine, so the navigator sees them strictly in
// arrival order and never concurrently.
type Host struct {
	nav       *navigator.Navigator
	renderer  Renderer
	logger    navigator.Logger
	listeners []Listener
	input     translator

	start  int
	view   viewport.Size
	timers navigator.Timers
	keys   KeyMap

	inbox    chan task
	done     chan struct{}
	doneOnce sync.Once
	running  sync.Once

	renders      metric.Int64Counter
	renderErrors metric.Int64Counter
}

// New prepares a session for the deck. Nothing runs until Run is called.
func New(d *deck.Deck, r Renderer, opts ...Option) (*Host, error) {
	h := &Host{
		renderer: r,
		logger:   nopLogger{},
		view:     viewport.Logical,
		timers:   navigator.SystemTimers{},
		keys:     DefaultKeyMap(),
		inbox:    make(chan task),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}

	nav, err := navigator.New(d, h.start,
		navigator.WithTimers(loopTimers{inner: h.timers, host: h}),
		navigator.WithLogger(h.logger),
		navigator.WithViewport(h.view),
		navigator.OnExit(h.finish),
	)
	if err != nil {
		return nil, fmt.Errorf("host: %w", err)
	}
	h.nav = nav
	h.input = translator{keys: h.keys, last: d.Len() - 1}

	m := meter()
	h.renders, err = m.Int64Counter(
		"host.renders",
		metric.WithDescription("Directives handed to the renderer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating renders counter: %w", err)
	}
	h.renderErrors, err = m.Int64Counter(
		"host.render.errors",
		metric.WithDescription("Renderer failures"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating render errors counter: %w", err)
	}

	return h, nil
}

// Done is closed when the session has ended
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Run renders the first slide, starts every listener and processes input
// until Exit, ctx cancellation or a listener failure. All listeners are
// cancelled before Run returns. Run may be called once.
func (h *Host) Run(ctx context.Context) error {
	err := errors.New("host already started")
	h.running.Do(func() { err = h.run(ctx) })
	return err
}

func (h *Host) run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	lctx, cancel := context.WithCancel(gctx)
	defer cancel()

	for _, l := range h.listeners {
		g.Go(func() error {
			err := l.Listen(lctx, h)
			if errors.Is(err, context.Canceled) || errors.Is(err, navigator.ErrDisposed) {
				return nil
			}
			return err
		})
	}

	g.Go(func() error {
		defer cancel()
		h.loop(lctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		h.logger.Error("playback stopped", "error", err.Error())
	}
	return err
}

func (h *Host) loop(ctx context.Context) {
	defer h.finish()

	h.render(ctx)

	for {
		select {
		case <-ctx.Done():
			// surface closed: dispose so a pending timer cannot fire into a dead session
			if !h.nav.Disposed() {
				_, _ = h.nav.Handle(navigator.Event{Kind: navigator.Exit})
			}
			return
		case t := <-h.inbox:
			t(ctx)
			if h.nav.Disposed() {
				return
			}
		}
	}
}

// Post hands one input to the loop. It blocks until the loop takes it and
// fails with navigator.ErrDisposed once the session is over.
func (h *Host) Post(ctx context.Context, in InputEvent) error {
	return h.submit(ctx, func(ctx context.Context) { h.apply(ctx, in) })
}

func (h *Host) submit(ctx context.Context, t task) error {
	select {
	case h.inbox <- t:
		return nil
	case <-h.done:
		return navigator.ErrDisposed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Host) apply(ctx context.Context, in InputEvent) {
	e, ok := h.input.translate(in)
	if !ok {
		return
	}

	changed, err := h.nav.Handle(e)
	if err != nil || !changed || h.nav.Disposed() {
		return
	}
	h.render(ctx)
}

func (h *Host) render(ctx context.Context) {
	rd := h.nav.Directive()
	h.renders.Add(ctx, 1)

	if err := h.renderer.Render(ctx, rd); err != nil {
		h.renderErrors.Add(ctx, 1)
		h.logger.Error("render failed", "slide", rd.SlideNumber, "error", err.Error())
	}
}

func (h *Host) finish() {
	h.doneOnce.Do(func() { close(h.done) })
}

// loopTimers delivers timer callbacks through the host loop
type loopTimers struct {
	inner navigator.Timers
	host  *Host
}

func (lt loopTimers) AfterFunc(d time.Duration, f func()) navigator.Timer {
	h := lt.host
	return lt.inner.AfterFunc(d, func() {
		_ = h.submit(context.Background(), func(ctx context.Context) {
			before := h.nav.Session()
			f()
			if h.nav.Session() != before && !h.nav.Disposed() {
				h.render(ctx)
			}
		})
	})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
