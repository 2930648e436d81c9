package perf

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const defaultExportFilename = "translationkeys-perf.json"

type exportEntry struct {
	Name       string              `json:"name"`
	Type       EntryType           `json:"type"`
	Timestamp  time.Time           `json:"timestamp"`
	DurationNS int64               `json:"duration_ns,omitempty"`
	Details    *PerformanceDetails `json:"details,omitempty"`
}

// ExportToFile writes the supplied performance log as JSON to
// <outDir>/translationkeys-perf.json. Absolute paths under *Location and *Path detail keys
// are rewritten relative to baseDir.
//
// Callers treat a returned error as non-fatal.
func ExportToFile(fs afero.Fs, outDir string, baseDir string, log PerformanceLog) (string, error) {
	if outDir == "" {
		outDir = "."
	}

	exported := make([]exportEntry, 0, len(log))
	for _, entry := range log {
		item := exportEntry{
			Name:      entry.Name,
			Type:      entry.Type,
			Timestamp: entry.StartTime,
			Details:   relativeDetails(entry.Details, baseDir),
		}
		if entry.Type == MeasureType {
			item.DurationNS = entry.Duration.Nanoseconds()
		}
		exported = append(exported, item)
	}

	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return "", err
	}
	if err := fs.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}

	path := filepath.Join(outDir, defaultExportFilename)
	return path, afero.WriteFile(fs, path, data, 0644)
}

func relativeDetails(details *PerformanceDetails, baseDir string) *PerformanceDetails {
	if details == nil || len(*details) == 0 {
		return details
	}

	out := make(PerformanceDetails, len(*details))
	for key, value := range *details {
		if text, ok := value.(string); ok && isPathKey(key) {
			value = relativePath(text, baseDir)
		}
		out[key] = value
	}
	return &out
}

func isPathKey(key string) bool {
	key = strings.ToLower(key)
	return strings.HasSuffix(key, "path") || strings.HasSuffix(key, "location")
}

func relativePath(value string, baseDir string) string {
	if baseDir != "" && filepath.IsAbs(value) {
		if rel, err := filepath.Rel(baseDir, value); err == nil {
			value = rel
		}
	}
	return filepath.ToSlash(filepath.Clean(value))
}
