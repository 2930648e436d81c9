// Package testutil holds shared test helpers.
package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/meza/translationkeys/internal/translations"
)

// LocaleFixture describes translation files written by WriteLocaleFixtures.
type LocaleFixture struct {
	Files []string
	// Shape is the tree every locale shares. Its leaves carry no text.
	Shape *translations.Node
}

// WriteLocaleFixtures writes <root>/<locale>/translations.json for every locale. All files share
// one randomly nested structure derived from seed and differ only in leaf text.
func WriteLocaleFixtures(t testing.TB, fs afero.Fs, root string, seed uint64, keyCount int, locales ...string) LocaleFixture {
	t.Helper()

	shape := buildShape(seed, keyCount)
	fixture := LocaleFixture{Shape: shape}

	for _, locale := range locales {
		path := filepath.Join(root, locale, "translations.json")
		data, err := json.Marshal(relabel(shape, locale).ToMap())
		if err != nil {
			t.Fatalf("marshal fixture for %s: %v", locale, err)
		}
		writeFile(t, fs, path, data)
		fixture.Files = append(fixture.Files, path)
	}

	return fixture
}

// WriteJSON writes a single translation document, failing the test on error.
func WriteJSON(t testing.TB, fs afero.Fs, path string, document string) {
	t.Helper()
	writeFile(t, fs, path, []byte(document))
}

func writeFile(t testing.TB, fs afero.Fs, path string, data []byte) {
	t.Helper()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func buildShape(seed uint64, keyCount int) *translations.Node {
	random := rand.New(rand.NewPCG(seed, seed))
	keys := make([]string, keyCount)
	for i := range keys {
		keys[i] = fmt.Sprintf("key%03d", i)
	}

	next := func() string {
		key := keys[0]
		keys = keys[1:]
		return key
	}

	// Each value either stops as a leaf or keeps nesting, sometimes fanning out into siblings.
	var value func() *translations.Node
	value = func() *translations.Node {
		if len(keys) == 0 || random.Float64() >= 0.5 {
			return translations.Leaf("")
		}
		children := map[string]*translations.Node{}
		width := 1
		if random.Float64() <= 0.4 {
			width = 1 + random.IntN(4)
		}
		for i := 0; i < width && len(keys) > 0; i++ {
			key := next()
			children[key] = value()
		}
		return translations.Branch(children)
	}

	root := map[string]*translations.Node{}
	for len(keys) > 0 {
		key := next()
		root[key] = value()
	}
	return translations.Branch(root)
}

func relabel(node *translations.Node, locale string) *translations.Node {
	if node.IsLeaf() {
		return translations.Leaf(locale + " text")
	}
	children := make(map[string]*translations.Node, len(node.Children))
	for key, child := range node.Children {
		children[key] = relabel(child, locale)
	}
	return translations.Branch(children)
}
