package translations

import (
	"sort"
	"strings"
)

const PathSeparator = "."

func JoinPath(path []string) string {
	return strings.Join(path, PathSeparator)
}

// Flatten returns a copy of tree in which every leaf holds its own dotted path.
// Branch structure and keys are left as they are.
func Flatten(tree *Node) *Node {
	return flatten(tree, nil)
}

func flatten(node *Node, path []string) *Node {
	if node == nil {
		return nil
	}
	if node.IsLeaf() {
		return Leaf(JoinPath(path))
	}

	children := make(map[string]*Node, len(node.Children))
	for key, child := range node.Children {
		if child == nil {
			continue
		}
		children[key] = flatten(child, appendPath(path, key))
	}
	return Branch(children)
}

// Paths lists the dotted path of every leaf in tree, sorted.
func Paths(tree *Node) []string {
	var paths []string
	var walk func(node *Node, path []string)
	walk = func(node *Node, path []string) {
		if node == nil {
			return
		}
		if node.IsLeaf() {
			paths = append(paths, JoinPath(path))
			return
		}
		for key, child := range node.Children {
			walk(child, appendPath(path, key))
		}
	}
	if tree.IsBranch() {
		walk(tree, nil)
	}
	sort.Strings(paths)
	return paths
}

// Texts maps the dotted path of every leaf in tree to its text.
func Texts(tree *Node) map[string]string {
	texts := map[string]string{}
	var walk func(node *Node, path []string)
	walk = func(node *Node, path []string) {
		if node == nil {
			return
		}
		if node.IsLeaf() {
			texts[JoinPath(path)] = node.Text
			return
		}
		for key, child := range node.Children {
			walk(child, appendPath(path, key))
		}
	}
	if tree.IsBranch() {
		walk(tree, nil)
	}
	return texts
}
