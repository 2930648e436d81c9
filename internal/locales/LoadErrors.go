package locales

import (
	"fmt"

	"github.com/meza/translationkeys/internal/translations"
)

type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("Translation file could not be loaded: %s: %s", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnsupportedValueError is returned for JSON values that have no place in a translation tree:
// arrays anywhere and anything but an object at the root.
type UnsupportedValueError struct {
	Path []string
	Kind string
}

func (e *UnsupportedValueError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("translation file root must be an object, found %s", e.Kind)
	}
	return fmt.Sprintf("unsupported %s value at %q", e.Kind, translations.JoinPath(e.Path))
}
