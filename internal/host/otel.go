package host

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/ivlev/deckplay/internal/host"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
