package perf

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanExporter keeps finished spans in memory for GetSpans.
type spanExporter struct {
	mu    sync.Mutex
	spans []sdktrace.ReadOnlySpan
}

func newSpanExporter() *spanExporter {
	return &spanExporter{
		spans: make([]sdktrace.ReadOnlySpan, 0),
	}
}

func (exporter *spanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	exporter.spans = append(exporter.spans, spans...)
	return nil
}

func (exporter *spanExporter) Shutdown(context.Context) error {
	return nil
}

func (exporter *spanExporter) Reset() {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()
	exporter.spans = exporter.spans[:0]
}

func (exporter *spanExporter) Snapshot() []sdktrace.ReadOnlySpan {
	exporter.mu.Lock()
	defer exporter.mu.Unlock()

	out := make([]sdktrace.ReadOnlySpan, len(exporter.spans))
	copy(out, exporter.spans)
	return out
}

var (
	exporter = newSpanExporter()
	// The syncer hands every span to the exporter as soon as it ends.
	tracerProvider = sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer         = tracerProvider.Tracer("github.com/meza/translationkeys/internal/perf")
)
