package navigator

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/deckplay/internal/animation"
	"github.com/ivlev/deckplay/internal/deck"
	"github.com/ivlev/deckplay/internal/transition"
	"github.com/ivlev/deckplay/internal/viewport"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

// fakeTimer never fires on its own. Fire runs the callback even after Stop,
// like a timer that was already queued when it got cancelled.
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

func (t *fakeTimer) Fire() {
	t.fired = true
	t.f()
}

type fakeTimers struct {
	all []*fakeTimer
}

func (f *fakeTimers) AfterFunc(d time.Duration, fn func()) Timer {
	t := &fakeTimer{d: d, f: fn}
	f.all = append(f.all, t)
	return t
}

func (f *fakeTimers) last(t *testing.T) *fakeTimer {
	t.Helper()
	require.NotEmpty(t, f.all, "no timer scheduled")
	return f.all[len(f.all)-1]
}

func (f *fakeTimers) pending() int {
	n := 0
	for _, t := range f.all {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func newTestNavigator(t *testing.T, start int, opts ...Option) (*Navigator, *fakeTimers, *testLogger) {
	t.Helper()
	timers := &fakeTimers{}
	logger := &testLogger{}

	opts = append([]Option{WithTimers(timers), WithLogger(logger)}, opts...)
	n, err := New(testDeck(), start, opts...)
	require.NoError(t, err)

	return n, timers, logger
}

func handle(t *testing.T, n *Navigator, events ...Event) {
	t.Helper()
	for _, e := range events {
		_, err := n.Handle(e)
		require.NoError(t, err)
	}
}

func TestNew_EmptyDeck(t *testing.T) {
	_, err := New(&deck.Deck{}, 0)
	assert.ErrorIs(t, err, deck.ErrEmptyDeck)

	_, err = New(nil, 0)
	assert.ErrorIs(t, err, deck.ErrEmptyDeck)
}

func TestNavigator_FadeTransitionWindow(t *testing.T) {
	n, timers, _ := newTestNavigator(t, 0)
	handle(t, n, Event{Kind: Advance}, Event{Kind: Advance})

	changed, err := n.Handle(Event{Kind: Advance})
	require.NoError(t, err)
	assert.True(t, changed)

	timer := timers.last(t)
	assert.Equal(t, 500*time.Millisecond, timer.d)
	assert.Equal(t, 1, timers.pending())

	rd := n.Directive()
	require.NotNil(t, rd.Previous, "leaving slide must be drawn during the window")
	assert.True(t, rd.InTransition)
	assert.Equal(t, transition.Effect("fade-in"), rd.Current.Effect)
	assert.Equal(t, 500, rd.Current.DurationMs)
	assert.Equal(t, 0, rd.Previous.Index)
	assert.Equal(t, transition.Effect("fade-out"), rd.Previous.Effect)
	assert.True(t, rd.Previous.Static)
	for _, el := range rd.Previous.Elements {
		assert.Equal(t, animation.PhaseStatic, el.State.Phase, el.Element.ID)
		assert.True(t, el.State.Visible, el.Element.ID)
	}

	// input during the window is dropped, not queued
	changed, err = n.Handle(Event{Kind: Advance})
	require.NoError(t, err)
	assert.False(t, changed)

	timer.Fire()

	s := n.Session()
	assert.False(t, s.TransitionInFlight)
	assert.Equal(t, 1, s.CurrentSlide)
	assert.Equal(t, 0, s.AnimationStep, "swallowed advance must not replay after the window")
	assert.Nil(t, n.Directive().Previous)
	assert.Equal(t, 0, timers.pending())
}

func TestNavigator_PushUsesDirection(t *testing.T) {
	n, timers, _ := newTestNavigator(t, 1)
	handle(t, n, Event{Kind: Advance}, Event{Kind: Advance})

	rd := n.Directive()
	assert.Equal(t, transition.Effect("push-enter-forward"), rd.Current.Effect)
	assert.Equal(t, transition.Effect("push-exit-forward"), rd.Previous.Effect)

	timers.last(t).Fire()
	handle(t, n, Event{Kind: Retreat})

	rd = n.Directive()
	// retreating into slide 1 uses slide 1's FADE
	assert.Equal(t, transition.Effect("fade-in"), rd.Current.Effect)
	assert.Equal(t, transition.Backward, rd.Direction)
}

func TestNavigator_ExitDuringTransition(t *testing.T) {
	exits := 0
	n, timers, logger := newTestNavigator(t, 0, OnExit(func() { exits++ }))
	handle(t, n, Event{Kind: Advance}, Event{Kind: Advance}, Event{Kind: Advance})
	timer := timers.last(t)

	handle(t, n, Event{Kind: Exit})
	assert.True(t, timer.stopped, "exit must cancel the pending timer")
	assert.True(t, n.Disposed())
	assert.Equal(t, 1, exits)

	// the timer callback may still arrive; it must not touch the session
	before := n.Session()
	timer.Fire()
	assert.Equal(t, before, n.Session())

	changed, err := n.Handle(Event{Kind: Advance})
	assert.ErrorIs(t, err, ErrDisposed)
	assert.False(t, changed)

	_, err = n.Handle(Event{Kind: Exit})
	assert.ErrorIs(t, err, ErrDisposed)
	assert.Equal(t, 1, exits, "exit hooks run once")

	assert.Contains(t, logger.messages, "INFO: playback session ended [slide 1]")
}

func TestNavigator_StaleTimerFromEarlierWindow(t *testing.T) {
	n, timers, _ := newTestNavigator(t, 1)

	handle(t, n, Event{Kind: Advance}, Event{Kind: Advance})
	first := timers.last(t)
	first.Fire()
	require.False(t, n.Session().TransitionInFlight)

	// back into slide 1 opens a new window
	handle(t, n, Event{Kind: Retreat})
	require.True(t, n.Session().TransitionInFlight)
	second := timers.last(t)
	require.NotSame(t, first, second)

	first.Fire()
	assert.True(t, n.Session().TransitionInFlight, "late callback of an earlier window is ignored")

	second.Fire()
	assert.False(t, n.Session().TransitionInFlight)
}

func TestNavigator_AtMostOneTimer(t *testing.T) {
	n, timers, _ := newTestNavigator(t, 0)

	script := []EventKind{Advance, Advance, Advance, Advance, Advance, Retreat, Advance, Advance}
	for _, k := range script {
		handle(t, n, Event{Kind: k})
		assert.LessOrEqual(t, timers.pending(), 1)
		if n.Session().TransitionInFlight {
			timers.last(t).Fire()
		}
		assert.Equal(t, 0, timers.pending())
	}
}

func TestNavigator_Directive(t *testing.T) {
	n, _, _ := newTestNavigator(t, 1, WithViewport(viewport.Size{W: 640, H: 480}))

	rd := n.Directive()
	assert.Equal(t, 2, rd.SlideNumber)
	assert.Equal(t, 5, rd.SlideCount)
	assert.Equal(t, "Slide 2 of 5", rd.Footer)
	assert.InDelta(t, 0.5, rd.Scale, 1e-9)
	assert.Equal(t, 1, rd.TotalClicks)
	assert.Equal(t, transition.EffectNone, rd.Current.Effect)
	assert.Nil(t, rd.Previous)
	assert.Empty(t, rd.Active, "nothing plays before the first click")

	require.Len(t, rd.Current.Elements, 2)
	c := rd.Current.Elements[0]
	assert.Equal(t, "c", c.Element.ID)
	assert.Equal(t, animation.PhaseUpcoming, c.State.Phase)
	assert.False(t, c.State.Visible, "entrance hidden before its click")

	handle(t, n, Event{Kind: Advance})
	rd = n.Directive()
	require.Len(t, rd.Active, 2, "click and its companion play together")
	assert.Equal(t, "c", rd.Active[0].ElementID)
	assert.Equal(t, "d", rd.Active[1].ElementID)
	for _, el := range rd.Current.Elements {
		require.NotNil(t, el.State.Playing, el.Element.ID)
		assert.Equal(t, animation.PhaseActive, el.State.Phase)
	}
	assert.Equal(t, "zoom-in-anim", rd.Current.Elements[0].State.Playing.Name)
	assert.Equal(t, animation.Offset{DX: 150}, rd.Current.Elements[1].State.Playing.Target)
}

func TestNavigator_ResizeRescales(t *testing.T) {
	n, _, _ := newTestNavigator(t, 0)

	changed, err := n.Handle(Event{Kind: Resize, Viewport: viewport.Size{W: 2560, H: 720}})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.InDelta(t, 1.0, n.Directive().Scale, 1e-9)

	changed, _ = n.Handle(Event{Kind: Resize, Viewport: viewport.Size{W: 2560, H: 720}})
	assert.False(t, changed, "same size is not a change")
}

func TestNavigator_DefaultTimersExpireConcurrently(t *testing.T) {
	d := &deck.Deck{Slides: []deck.Slide{
		{ID: "a"},
		{ID: "b", Transition: &deck.TransitionSpec{Kind: deck.TransitionFade, DurationMs: 5}},
	}}
	n, err := New(d, 0)
	require.NoError(t, err)

	handle(t, n, Event{Kind: Advance})
	require.True(t, n.Session().TransitionInFlight)

	// time.AfterFunc completes the window on its own goroutine while this
	// one keeps reading
	require.Eventually(t, func() bool {
		_ = n.Directive()
		return !n.Session().TransitionInFlight
	}, 2*time.Second, time.Millisecond)

	assert.Equal(t, 1, n.Session().CurrentSlide)
	assert.Nil(t, n.Directive().Previous)
}

func TestNavigator_ExitHookMayReadSession(t *testing.T) {
	var n *Navigator
	var seen Session
	n, _, _ = newTestNavigator(t, 0, OnExit(func() { seen = n.Session() }))

	handle(t, n, Event{Kind: Exit})
	assert.True(t, seen.Disposed)
}
