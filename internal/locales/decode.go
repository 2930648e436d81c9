package locales

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"slices"

	"github.com/pkg/errors"

	"github.com/meza/translationkeys/internal/translations"
)

// Decode parses a translation document. Objects become branches and strings leaves.
// Numbers and booleans keep their JSON text, null becomes an empty leaf, arrays are rejected.
func Decode(data []byte) (*translations.Node, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); err != io.EOF {
		if err == nil {
			return nil, errors.New("unexpected data after the top-level value")
		}
		return nil, err
	}

	if _, ok := raw.(map[string]any); !ok {
		return nil, &UnsupportedValueError{Kind: jsonKind(raw)}
	}
	return toNode(raw, nil)
}

func toNode(value any, path []string) (*translations.Node, error) {
	switch typed := value.(type) {
	case map[string]any:
		children := make(map[string]*translations.Node, len(typed))
		// Sorted so the first unsupported value reported is the same on every run.
		for _, key := range slices.Sorted(maps.Keys(typed)) {
			node, err := toNode(typed[key], append(path[:len(path):len(path)], key))
			if err != nil {
				return nil, err
			}
			children[key] = node
		}
		return translations.Branch(children), nil
	case string:
		return translations.Leaf(typed), nil
	case json.Number:
		return translations.Leaf(typed.String()), nil
	case bool:
		if typed {
			return translations.Leaf("true"), nil
		}
		return translations.Leaf("false"), nil
	case nil:
		return translations.Leaf(""), nil
	default:
		return nil, &UnsupportedValueError{Path: path, Kind: jsonKind(value)}
	}
}

func jsonKind(value any) string {
	switch value.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
