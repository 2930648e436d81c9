package locales

import (
	"context"
	"runtime"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/meza/translationkeys/internal/perf"
	"github.com/meza/translationkeys/internal/translations"
)

// Tree is one parsed translation file.
type Tree struct {
	Path   string
	Locale string
	Root   *translations.Node
}

// Roots returns the root node of every tree, in order.
func Roots(trees []Tree) []*translations.Node {
	roots := make([]*translations.Node, len(trees))
	for i, tree := range trees {
		roots[i] = tree.Root
	}
	return roots
}

// Load reads and parses every path concurrently. The result keeps the order of paths.
// The first failure aborts the whole load and is returned as a *LoadError.
func Load(ctx context.Context, fs afero.Fs, root string, paths []string) ([]Tree, error) {
	region := perf.StartRegionWithDetails("io.translations.load", &perf.PerformanceDetails{
		"translationsLocation": root,
		"files":                len(paths),
	})
	defer region.End()

	out := make([]Tree, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			node, err := loadFile(fs, paths[i])
			if err != nil {
				return &LoadError{Path: paths[i], Err: err}
			}
			out[i] = Tree{
				Path:   paths[i],
				Locale: InferLocale(root, paths[i]),
				Root:   node,
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func loadFile(fs afero.Fs, path string) (*translations.Node, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read translation file")
	}

	node, err := Decode(data)
	if err != nil {
		var unsupported *UnsupportedValueError
		if errors.As(err, &unsupported) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to parse translation file")
	}
	return node, nil
}
