package engine

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "DarkForest/internal/engine"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// sessionMetrics counts input and frames. Without a configured provider the
// global meter is a no-op.
type sessionMetrics struct {
	inputHandled   metric.Int64Counter
	inputIgnored   metric.Int64Counter
	framesRendered metric.Int64Counter
}

func newSessionMetrics() (*sessionMetrics, error) {
	m := meter()
	sm := &sessionMetrics{}

	var err error
	sm.inputHandled, err = m.Int64Counter(
		"darkforest.input.handled",
		metric.WithDescription("Key-down events mapped to a direction"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating input handled counter: %w", err)
	}

	sm.inputIgnored, err = m.Int64Counter(
		"darkforest.input.ignored",
		metric.WithDescription("Key-down events with no mapped direction"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating input ignored counter: %w", err)
	}

	sm.framesRendered, err = m.Int64Counter(
		"darkforest.frames.rendered",
		metric.WithDescription("Frames drawn and presented"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating frames counter: %w", err)
	}

	return sm, nil
}

func (sm *sessionMetrics) input(handled bool, key int) {
	attrs := metric.WithAttributes(attribute.Int("key", key))
	if handled {
		sm.inputHandled.Add(context.Background(), 1, attrs)
		return
	}
	sm.inputIgnored.Add(context.Background(), 1, attrs)
}

func (sm *sessionMetrics) frame(cause string) {
	sm.framesRendered.Add(context.Background(), 1, metric.WithAttributes(attribute.String("cause", cause)))
}
