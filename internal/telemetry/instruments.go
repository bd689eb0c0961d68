package telemetry

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instruments groups the metrics recorded for backend exchanges
type Instruments struct {
	chatDuration metric.Float64Histogram
	chatReplies  metric.Int64Counter
	probeResults metric.Int64Counter
}

// NewInstruments creates the instruments on meter. Instruments that fail
// to register are logged and left nil; recording on them is skipped.
func NewInstruments(meter metric.Meter, logger *slog.Logger) *Instruments {
	if logger == nil {
		logger = Discard()
	}
	in := &Instruments{}

	var err error
	in.chatDuration, err = meter.Float64Histogram(
		"funkychat.chat.duration",
		metric.WithDescription("Chat request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		logger.Warn("failed to create histogram", "name", "funkychat.chat.duration", "error", err)
	}

	in.chatReplies, err = meter.Int64Counter(
		"funkychat.chat.replies",
		metric.WithDescription("Chat replies by backend and outcome"),
	)
	if err != nil {
		logger.Warn("failed to create counter", "name", "funkychat.chat.replies", "error", err)
	}

	in.probeResults, err = meter.Int64Counter(
		"funkychat.probe.results",
		metric.WithDescription("Liveness probe results by backend and status"),
	)
	if err != nil {
		logger.Warn("failed to create counter", "name", "funkychat.probe.results", "error", err)
	}

	return in
}

// RecordChat records one finished exchange
func (in *Instruments) RecordChat(ctx context.Context, backend, kind string, elapsed time.Duration) {
	if in == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("kind", kind),
	)
	if in.chatDuration != nil {
		in.chatDuration.Record(ctx, float64(elapsed.Milliseconds()), attrs)
	}
	if in.chatReplies != nil {
		in.chatReplies.Add(ctx, 1, attrs)
	}
}

// RecordProbe records one liveness probe
func (in *Instruments) RecordProbe(ctx context.Context, backend, status string) {
	if in == nil || in.probeResults == nil {
		return
	}
	in.probeResults.Add(ctx, 1, metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("status", status),
	))
}
