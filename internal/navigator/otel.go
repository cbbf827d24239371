package navigator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/ivlev/deckplay/internal/navigator"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	handled   metric.Int64Counter
	swallowed metric.Int64Counter
	started   metric.Int64Counter
	stale     metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	m := meter()
	out := &metrics{}

	var err error

	out.handled, err = m.Int64Counter(
		"navigator.events.handled",
		metric.WithDescription("Events that changed the session"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating handled counter: %w", err)
	}

	out.swallowed, err = m.Int64Counter(
		"navigator.events.swallowed",
		metric.WithDescription("Navigation events dropped during a transition"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating swallowed counter: %w", err)
	}

	out.started, err = m.Int64Counter(
		"navigator.transitions.started",
		metric.WithDescription("Slide transitions started"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transitions counter: %w", err)
	}

	out.stale, err = m.Int64Counter(
		"navigator.timers.stale",
		metric.WithDescription("Timer completions ignored because their window had ended"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stale counter: %w", err)
	}

	return out, nil
}
