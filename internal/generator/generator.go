// Package generator turns a directory of locale files into the translation keys tree.
package generator

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/meza/translationkeys/internal/config"
	"github.com/meza/translationkeys/internal/i18n"
	"github.com/meza/translationkeys/internal/locales"
	"github.com/meza/translationkeys/internal/logger"
	"github.com/meza/translationkeys/internal/perf"
	"github.com/meza/translationkeys/internal/translations"
)

type Deps struct {
	Fs     afero.Fs
	Logger *logger.Logger
}

type Result struct {
	// Keys mirrors the merged tree with every leaf replaced by its dotted path.
	Keys      *translations.Node
	Files     []locales.Tree
	Conflicts []translations.Conflict
}

// Generate discovers, loads, merges and flattens the translation files under
// cfg.TranslationsLocation. A missing directory gives an empty keys tree.
func Generate(ctx context.Context, cfg config.Configuration, deps Deps) (Result, error) {
	deps = withDefaults(deps)
	log := deps.Logger

	region := perf.StartRegionWithDetails("app.generate", &perf.PerformanceDetails{
		"translationsLocation": cfg.TranslationsLocation,
	})
	outcome := perf.PerformanceDetails{}
	defer func() { region.EndWithDetails(&outcome) }()

	paths, err := locales.Discover(deps.Fs, cfg.TranslationsLocation)
	if err != nil {
		return Result{}, errors.Wrapf(err, "failed to discover translation files in %s", cfg.TranslationsLocation)
	}
	if len(paths) == 0 {
		log.Debug(i18n.T("generator.no_files", i18n.Tvars{
			Data: &i18n.TData{"location": cfg.TranslationsLocation},
		}))
	}

	trees, err := locales.Load(ctx, deps.Fs, cfg.TranslationsLocation, paths)
	if err != nil {
		return Result{}, err
	}
	for _, tree := range trees {
		log.Debug(i18n.T("generator.file_loaded"), "path", tree.Path, "locale", displayLocale(tree.Locale))
	}

	merged, conflicts := translations.Merge(locales.Roots(trees)...)
	for _, conflict := range conflicts {
		log.Debug(i18n.T("generator.conflict"), "key", translations.JoinPath(conflict.Path), "file", trees[conflict.Source].Path)
	}

	keys := translations.Flatten(merged)
	keyCount := len(translations.Paths(keys))
	log.Debug(i18n.T("generator.keys_generated", i18n.Tvars{
		Count: keyCount,
		Data:  &i18n.TData{"files": len(trees)},
	}))

	outcome["files"] = len(trees)
	outcome["keys"] = keyCount
	outcome["conflicts"] = len(conflicts)

	return Result{Keys: keys, Files: trees, Conflicts: conflicts}, nil
}

func withDefaults(deps Deps) Deps {
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Logger == nil {
		deps.Logger = logger.New(io.Discard, io.Discard, true, false)
	}
	return deps
}

func displayLocale(locale string) string {
	if locale == "" {
		return "unknown"
	}
	return locale
}
