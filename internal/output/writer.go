// Package output renders the translation keys tree as a TypeScript module and writes it to disk.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/translationkeys/internal/perf"
	"github.com/meza/translationkeys/internal/translations"
)

const (
	defaultFileMode os.FileMode = 0o644
	defaultDirMode  os.FileMode = 0o755

	Header     = "// Generated by translationkeys. Do not edit by hand."
	ExportName = "translationKeys"
)

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Translation keys could not be written to %s: %s", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Render produces the module source. Keys are sorted and indented by two spaces; a nil tree
// renders as an empty object.
func Render(keys *translations.Node) ([]byte, error) {
	if keys == nil {
		keys = translations.Branch(nil)
	}

	compact, err := keys.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode translation keys")
	}

	var body bytes.Buffer
	if err := json.Indent(&body, compact, "", "  "); err != nil {
		return nil, errors.Wrap(err, "failed to indent translation keys")
	}

	var out bytes.Buffer
	out.WriteString(Header)
	out.WriteString("\n")
	fmt.Fprintf(&out, "const %s = ", ExportName)
	out.Write(body.Bytes())
	out.WriteString(" as const;\n\n")
	fmt.Fprintf(&out, "export default %s;\n", ExportName)
	return out.Bytes(), nil
}

// Write renders keys and replaces the file at path, creating parent directories first.
// Every failure is a *WriteError.
func Write(fs afero.Fs, path string, keys *translations.Node) error {
	region := perf.StartRegionWithDetails("io.output.write", &perf.PerformanceDetails{
		"outputPath": path,
	})
	defer region.End()

	data, err := Render(keys)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := fs.MkdirAll(dir, defaultDirMode); err != nil {
			return &WriteError{Path: path, Err: errors.Wrap(err, "failed to create output directory")}
		}
	}

	if err := writeAtomic(fs, path, data, defaultFileMode); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
