package perf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionsAreRecordedAsSpans(t *testing.T) {
	ClearPerformanceLog()
	t.Cleanup(ClearPerformanceLog)

	region := StartRegionWithDetails("io.translations.load", &PerformanceDetails{"files": 3, "root": "/app/i18n"})
	region.EndWithDetails(&PerformanceDetails{"ok": true, "ratio": 0.5, "other": []string{"a"}})

	spans := GetSpans()
	require.Len(t, spans, 1)

	span, found := FindSpanByName(spans, "io.translations.load")
	require.True(t, found)
	assert.NotEmpty(t, span.TraceID)
	assert.NotEmpty(t, span.SpanID)
	assert.False(t, span.EndTime.Before(span.StartTime))
	assert.Equal(t, map[string]interface{}{
		"files": int64(3),
		"root":  "/app/i18n",
		"ok":    true,
		"ratio": 0.5,
		"other": "[a]",
	}, span.Attributes)
}

func TestClearPerformanceLogResetsSpans(t *testing.T) {
	StartRegion("core.merge").End()
	require.NotEmpty(t, GetSpans())

	ClearPerformanceLog()

	assert.Empty(t, GetSpans())
}

func TestFindSpanByNameMissing(t *testing.T) {
	_, found := FindSpanByName([]SpanSnapshot{{Name: "a"}}, "b")

	assert.False(t, found)
}

func TestTotalDuration(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("covers every span", func(t *testing.T) {
		total, ok := TotalDuration([]SpanSnapshot{
			{StartTime: start.Add(time.Second), EndTime: start.Add(2 * time.Second)},
			{StartTime: start, EndTime: start.Add(1500 * time.Millisecond)},
			{StartTime: start.Add(3 * time.Second), EndTime: start},
		})

		assert.True(t, ok)
		assert.Equal(t, 2*time.Second, total)
	})

	t.Run("no usable spans", func(t *testing.T) {
		_, ok := TotalDuration([]SpanSnapshot{{}})

		assert.False(t, ok)
	})
}

func TestSpanSnapshotDuration(t *testing.T) {
	start := time.Now()
	span := SpanSnapshot{StartTime: start, EndTime: start.Add(time.Millisecond)}

	assert.Equal(t, time.Millisecond, span.Duration())
}

func TestDetailsToAttributesEmpty(t *testing.T) {
	assert.Nil(t, detailsToAttributes(nil))
	assert.Nil(t, detailsToAttributes(&PerformanceDetails{}))
	assert.Nil(t, attributesToMap(nil))
}
