// Command lang compiles the nested message sources in internal/i18n/localise/<locale>/*.json
// into the flat catalogues embedded from internal/i18n/lang.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/translationkeys/internal/locales"
	"github.com/meza/translationkeys/internal/translations"
)

const (
	sourceDir = "internal/i18n/localise"
	outputDir = "internal/i18n/lang"
)

func main() {
	if err := build(context.Background(), afero.NewOsFs(), sourceDir, outputDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// build writes <output>/<locale>.json for every locale directory under source.
func build(ctx context.Context, fs afero.Fs, source string, output string) error {
	entries, err := afero.ReadDir(fs, source)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", source)
	}

	if err := fs.MkdirAll(output, 0o755); err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		texts, err := compile(ctx, fs, filepath.Join(source, locale))
		if err != nil {
			return errors.Wrapf(err, "failed to compile %s", locale)
		}

		data, err := encodeCatalogue(texts)
		if err != nil {
			return err
		}
		if err := afero.WriteFile(fs, filepath.Join(output, locale+".json"), data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func compile(ctx context.Context, fs afero.Fs, dir string) (map[string]string, error) {
	paths, err := locales.Discover(fs, dir)
	if err != nil {
		return nil, err
	}
	trees, err := locales.Load(ctx, fs, dir, paths)
	if err != nil {
		return nil, err
	}

	merged, conflicts := translations.Merge(locales.Roots(trees)...)
	if len(conflicts) > 0 {
		keys := make([]string, len(conflicts))
		for i, conflict := range conflicts {
			keys[i] = translations.JoinPath(conflict.Path)
		}
		return nil, errors.Errorf("message keys used both as text and as a group: %s", strings.Join(keys, ", "))
	}
	return translations.Texts(merged), nil
}

// encodeCatalogue writes sorted, indented JSON without escaping <, > and &.
func encodeCatalogue(texts map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(texts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
