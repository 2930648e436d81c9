// Package perf records named timing regions for the verbose stage summary and the --perf export.
package perf

import (
	"context"
	"fmt"
	"runtime/trace"
	"slices"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type EntryType string

const (
	MarkType    EntryType = "MarkType"
	MeasureType EntryType = "MeasureType"
)

type Entry struct {
	Name      string              `json:"name"`
	Type      EntryType           `json:"type"`
	StartTime time.Time           `json:"start_time,omitempty"`
	Duration  time.Duration       `json:"duration,omitempty"`
	Details   *PerformanceDetails `json:"details,omitempty"`
}

type PerformanceLog []Entry

type PerformanceDetails map[string]interface{}

var (
	perfLog   = make(PerformanceLog, 0)
	perfMutex sync.Mutex
)

type PerformanceRegion struct {
	Region *trace.Region
	Span   oteltrace.Span
	Marker *Entry
}

func (r *PerformanceRegion) End() {
	r.EndWithDetails(nil)
}

func (r *PerformanceRegion) EndWithDetails(details *PerformanceDetails) {
	r.Region.End()
	r.Span.SetAttributes(detailsToAttributes(details)...)
	r.Span.End()
	startName := r.Marker.Name
	endName := fmt.Sprintf("%s-end", r.Marker.Name)
	Mark(endName, details)
	Measure(fmt.Sprintf("%s-duration", r.Marker.Name), startName, endName, r.Marker.Details)
}

func ClearPerformanceLog() {
	perfMutex.Lock()
	defer perfMutex.Unlock()
	perfLog = make(PerformanceLog, 0)
	exporter.Reset()
}

// GetPerformanceLog returns a copy of the recorded entries.
func GetPerformanceLog() PerformanceLog {
	perfMutex.Lock()
	defer perfMutex.Unlock()
	return slices.Clone(perfLog)
}

func GetAllMeasurements() PerformanceLog {
	var result PerformanceLog
	for _, entry := range GetPerformanceLog() {
		if entry.Type == MeasureType {
			result = append(result, entry)
		}
	}
	return result
}

func StartRegion(marker string) *PerformanceRegion {
	return StartRegionWithDetails(marker, nil)
}

func StartRegionWithDetails(marker string, details *PerformanceDetails) *PerformanceRegion {
	ctx, span := tracer.Start(context.Background(), marker, oteltrace.WithAttributes(detailsToAttributes(details)...))
	region := trace.StartRegion(ctx, marker)
	markerEntry := Mark(marker, details)

	return &PerformanceRegion{
		Region: region,
		Span:   span,
		Marker: markerEntry,
	}
}

func Mark(marker string, details *PerformanceDetails) *Entry {
	entry := Entry{
		Name:      marker,
		Type:      MarkType,
		StartTime: time.Now(),
		Details:   details,
	}

	perfMutex.Lock()
	perfLog = append(perfLog, entry)
	perfMutex.Unlock()

	return &entry
}

// Measure records the time between the latest fromMarker and the latest toMarker.
func Measure(marker string, fromMarker string, toMarker string, details *PerformanceDetails) {
	perfMutex.Lock()
	defer perfMutex.Unlock()

	from, ok := lastMark(fromMarker)
	if !ok {
		return
	}
	to, ok := lastMark(toMarker)
	if !ok {
		return
	}

	perfLog = append(perfLog, Entry{
		Name:      marker,
		Type:      MeasureType,
		StartTime: from,
		Duration:  to.Sub(from),
		Details:   details,
	})
}

func lastMark(name string) (time.Time, bool) {
	for i := len(perfLog) - 1; i >= 0; i-- {
		if perfLog[i].Type == MarkType && perfLog[i].Name == name {
			return perfLog[i].StartTime, true
		}
	}
	return time.Time{}, false
}

// Summary formats every measurement as "name: duration", in recording order.
func Summary() []string {
	measurements := GetAllMeasurements()
	lines := make([]string, 0, len(measurements))
	for _, entry := range measurements {
		lines = append(lines, fmt.Sprintf("%s: %s", entry.Name, entry.Duration.Round(time.Microsecond)))
	}
	return lines
}
