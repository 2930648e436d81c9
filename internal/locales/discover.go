// Package locales finds per-locale translation files and loads them into translation trees.
package locales

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/meza/translationkeys/internal/perf"
)

const translationFileSuffix = ".json"

// Discover lists every regular *.json file below root, sorted by path, leaving out files
// matched by root/.tkignore. A root that does not exist yields no files and no error.
func Discover(fs afero.Fs, root string) ([]string, error) {
	region := perf.StartRegion("io.translations.discover")
	defer region.End()

	info, err := fs.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	if !info.IsDir() {
		if isTranslationFile(info) {
			return []string{root}, nil
		}
		return nil, nil
	}

	patterns, err := IgnorePatterns(fs, root)
	if err != nil {
		return nil, err
	}

	var files []string
	walkErr := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if isTranslationFile(info) && !IsIgnored(root, path, patterns) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(files, func(i, j int) bool {
		return filepath.ToSlash(files[i]) < filepath.ToSlash(files[j])
	})
	return files, nil
}

func isTranslationFile(info os.FileInfo) bool {
	return info != nil && info.Mode().IsRegular() && strings.HasSuffix(info.Name(), translationFileSuffix)
}
