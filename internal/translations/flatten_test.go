package translations

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenEmptyBranch(t *testing.T) {
	flattened := Flatten(Branch(nil))

	assert.True(t, flattened.IsBranch())
	assert.Empty(t, flattened.Children)
}

func TestFlattenLeafRoot(t *testing.T) {
	flattened := Flatten(Leaf("text"))

	assert.True(t, flattened.IsLeaf())
	assert.Equal(t, "", flattened.Text)
}

func TestFlattenScenario(t *testing.T) {
	merged, _ := Merge(
		Branch(map[string]*Node{"nav": Branch(map[string]*Node{"home": Leaf("Home")})}),
		Branch(map[string]*Node{"nav": Branch(map[string]*Node{"home": Leaf("Hjem"), "about": Leaf("Om")})}),
		Branch(map[string]*Node{"footer": Leaf("Footer text")}),
	)

	flattened := Flatten(merged)

	assert.Equal(t, map[string]any{
		"nav":    map[string]any{"home": "nav.home", "about": "nav.about"},
		"footer": "footer",
	}, flattened.ToMap())
}

func TestFlattenConflictScenario(t *testing.T) {
	merged, _ := Merge(
		Branch(map[string]*Node{"x": Leaf("text")}),
		Branch(map[string]*Node{"x": Branch(map[string]*Node{"y": Leaf("text")})}),
	)

	assert.Equal(t, map[string]any{"x": map[string]any{"y": "x.y"}}, Flatten(merged).ToMap())
}

func TestFlattenEveryLeafCarriesItsPath(t *testing.T) {
	tree := Branch(map[string]*Node{
		"a": Branch(map[string]*Node{
			"b": Branch(map[string]*Node{"c": Leaf("deep"), "d": Leaf("deep too")}),
			"e": Leaf("shallow"),
		}),
		"f": Leaf("top"),
		"g": Branch(nil),
	})

	flattened := Flatten(tree)

	for _, path := range [][]string{{"a", "b", "c"}, {"a", "b", "d"}, {"a", "e"}, {"f"}} {
		node, ok := flattened.Get(path...)
		require.True(t, ok)
		assert.Equal(t, JoinPath(path), node.Text)
	}
	assert.Equal(t, tree.Keys(), flattened.Keys())
	assert.True(t, flattened.Children["g"].IsBranch())
}

func TestFlattenIsStableAcrossRuns(t *testing.T) {
	tree := Branch(map[string]*Node{
		"a": Branch(map[string]*Node{"b": Leaf("1")}),
		"c": Leaf("2"),
	})

	first := Flatten(tree)
	second := Flatten(Flatten(tree))

	assert.Equal(t, first.ToMap(), second.ToMap())
	assert.Equal(t, Paths(first), Paths(second))
	assert.Equal(t, "2", tree.Children["c"].Text)
}

func TestFlattenKeepsEmptyAndDottedKeys(t *testing.T) {
	tree := Branch(map[string]*Node{
		"": Leaf("empty"),
		"a.b": Branch(map[string]*Node{
			"c": Leaf("dotted"),
		}),
	})

	flattened := Flatten(tree)

	assert.Equal(t, "", flattened.Children[""].Text)
	assert.Equal(t, "a.b.c", flattened.Children["a.b"].Children["c"].Text)
}

func TestNodeMarshalJSONSortsKeys(t *testing.T) {
	tree := Flatten(Branch(map[string]*Node{
		"zeta":  Leaf("z"),
		"alpha": Branch(map[string]*Node{"b": Leaf("b"), "a": Leaf("a")}),
	}))

	data, err := json.Marshal(tree)

	assert.NoError(t, err)
	assert.Equal(t, `{"alpha":{"a":"alpha.a","b":"alpha.b"},"zeta":"zeta"}`, string(data))
}

func TestPaths(t *testing.T) {
	assert.Empty(t, Paths(Branch(nil)))
	assert.Empty(t, Paths(nil))
	assert.Equal(t, []string{"a.b", "c"}, Paths(Branch(map[string]*Node{
		"c": Leaf(""),
		"a": Branch(map[string]*Node{"b": Leaf("")}),
	})))
}

func TestTexts(t *testing.T) {
	assert.Empty(t, Texts(nil))
	assert.Equal(t, map[string]string{
		"app.title":    "Title",
		"app.nav.home": "Home",
		"footer":       "",
	}, Texts(Branch(map[string]*Node{
		"app": Branch(map[string]*Node{
			"title": Leaf("Title"),
			"nav":   Branch(map[string]*Node{"home": Leaf("Home")}),
		}),
		"footer": Leaf(""),
	})))
}
