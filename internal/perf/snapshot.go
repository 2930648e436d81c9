package perf

import (
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// SpanSnapshot is a finished region as recorded by the tracer.
type SpanSnapshot struct {
	Name       string
	TraceID    string
	SpanID     string
	StartTime  time.Time
	EndTime    time.Time
	Attributes map[string]interface{}
}

func (span SpanSnapshot) Duration() time.Duration {
	return span.EndTime.Sub(span.StartTime)
}

// GetSpans returns every region ended since the last ClearPerformanceLog, in end order.
func GetSpans() []SpanSnapshot {
	spans := exporter.Snapshot()
	out := make([]SpanSnapshot, 0, len(spans))
	for _, span := range spans {
		out = append(out, snapshotSpan(span))
	}
	return out
}

func FindSpanByName(spans []SpanSnapshot, name string) (SpanSnapshot, bool) {
	for _, span := range spans {
		if span.Name == name {
			return span, true
		}
	}
	return SpanSnapshot{}, false
}

// TotalDuration is the wall time covered by the recorded spans.
func TotalDuration(spans []SpanSnapshot) (time.Duration, bool) {
	var minStart, maxEnd time.Time
	for _, span := range spans {
		if span.StartTime.IsZero() || span.EndTime.Before(span.StartTime) {
			continue
		}
		if minStart.IsZero() || span.StartTime.Before(minStart) {
			minStart = span.StartTime
		}
		if maxEnd.IsZero() || span.EndTime.After(maxEnd) {
			maxEnd = span.EndTime
		}
	}
	if minStart.IsZero() {
		return 0, false
	}
	return maxEnd.Sub(minStart), true
}

func snapshotSpan(span sdktrace.ReadOnlySpan) SpanSnapshot {
	sc := span.SpanContext()
	return SpanSnapshot{
		Name:       span.Name(),
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		StartTime:  span.StartTime(),
		EndTime:    span.EndTime(),
		Attributes: attributesToMap(span.Attributes()),
	}
}

func attributesToMap(attrs []attribute.KeyValue) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(attrs))
	for _, attr := range attrs {
		out[string(attr.Key)] = attr.Value.AsInterface()
	}
	return out
}

func detailsToAttributes(details *PerformanceDetails) []attribute.KeyValue {
	if details == nil || len(*details) == 0 {
		return nil
	}

	keys := make([]string, 0, len(*details))
	for key := range *details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]attribute.KeyValue, 0, len(keys))
	for _, key := range keys {
		switch value := (*details)[key].(type) {
		case string:
			out = append(out, attribute.String(key, value))
		case int:
			out = append(out, attribute.Int(key, value))
		case int64:
			out = append(out, attribute.Int64(key, value))
		case float64:
			out = append(out, attribute.Float64(key, value))
		case bool:
			out = append(out, attribute.Bool(key, value))
		default:
			out = append(out, attribute.String(key, fmt.Sprint(value)))
		}
	}
	return out
}
