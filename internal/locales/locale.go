package locales

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
)

// InferLocale guesses the locale a translation file belongs to from its path relative to root.
// The file name is tried first (en.json), then the enclosing directories from the nearest
// outwards (NB_NO/translations.json). It returns "" when no segment is a known language tag.
func InferLocale(root string, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}

	segments := strings.Split(filepath.ToSlash(rel), "/")
	last := len(segments) - 1
	segments[last] = strings.TrimSuffix(segments[last], filepath.Ext(segments[last]))

	for i := last; i >= 0; i-- {
		if tag, ok := parseLocale(segments[i]); ok {
			return tag
		}
	}
	return ""
}

func parseLocale(segment string) (string, bool) {
	if segment == "" || segment == "." {
		return "", false
	}
	tag, err := language.Parse(strings.ReplaceAll(segment, "_", "-"))
	if err != nil || tag == language.Und {
		return "", false
	}
	return tag.String(), true
}
