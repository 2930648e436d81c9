package locales

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// IgnoreFileName lists glob patterns, relative to the translations directory, of files that
// discovery skips. Blank lines and lines starting with # are ignored; ** spans directories.
const IgnoreFileName = ".tkignore"

// IgnorePatterns reads root/.tkignore. A missing file yields no patterns.
func IgnorePatterns(fs afero.Fs, root string) ([]string, error) {
	ignoreFile := filepath.Join(root, IgnoreFileName)
	exists, err := afero.Exists(fs, ignoreFile)
	if err != nil || !exists {
		return nil, err
	}

	data, err := afero.ReadFile(fs, ignoreFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", ignoreFile)
	}

	var patterns []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, filepath.ToSlash(line))
	}
	return patterns, nil
}

// IsIgnored reports whether path, a file below root, matches one of the patterns.
func IsIgnored(root string, path string, patterns []string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range patterns {
		if globMatch(pattern, rel) {
			return true
		}
	}
	return false
}

func globMatch(pattern string, target string) bool {
	patternParts := strings.Split(strings.TrimPrefix(pattern, "./"), "/")
	targetParts := strings.Split(strings.TrimPrefix(target, "./"), "/")

	var match func(pi, ti int) bool
	match = func(pi, ti int) bool {
		if pi == len(patternParts) {
			return ti == len(targetParts)
		}

		if patternParts[pi] == "**" {
			for skip := ti; skip <= len(targetParts); skip++ {
				if match(pi+1, skip) {
					return true
				}
			}
			return false
		}

		if ti == len(targetParts) {
			return false
		}
		ok, err := filepath.Match(patternParts[pi], targetParts[ti])
		return err == nil && ok && match(pi+1, ti+1)
	}

	return match(0, 0)
}
