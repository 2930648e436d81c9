package translations

import (
	"fmt"
	"strings"
)

// Conflict records a path that is a leaf in one locale tree and a branch in another.
// The merged tree keeps the branch.
type Conflict struct {
	Path []string
	// Source is the index of the tree whose node disagreed with what was already merged.
	Source int
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s (leaf and branch, kept branch)", JoinPath(c.Path))
}

// Merge unions the given trees into a new Branch. Key sets are unioned at every depth,
// leaf text is last-writer-wins and a branch always beats a leaf at the same path.
// The inputs are never modified. Nil trees and non-branch roots are skipped.
func Merge(trees ...*Node) (*Node, []Conflict) {
	merged := Branch(nil)
	m := merger{seen: map[string]struct{}{}}

	for index, tree := range trees {
		if !tree.IsBranch() {
			continue
		}
		m.source = index
		m.into(merged, tree, nil)
	}

	return merged, m.conflicts
}

type merger struct {
	source    int
	conflicts []Conflict
	seen      map[string]struct{}
}

func (m *merger) into(dst *Node, src *Node, path []string) {
	for _, key := range src.Keys() {
		incoming := src.Children[key]
		if incoming == nil {
			continue
		}
		childPath := appendPath(path, key)
		existing, ok := dst.Children[key]

		switch {
		case !ok:
			dst.Children[key] = incoming.Clone()
		case existing.IsBranch() && incoming.IsBranch():
			m.into(existing, incoming, childPath)
		case existing.IsLeaf() && incoming.IsLeaf():
			dst.Children[key] = Leaf(incoming.Text)
		case existing.IsBranch():
			m.conflict(childPath)
		default:
			m.conflict(childPath)
			dst.Children[key] = incoming.Clone()
		}
	}
}

func (m *merger) conflict(path []string) {
	id := strings.Join(path, "\x00")
	if _, ok := m.seen[id]; ok {
		return
	}
	m.seen[id] = struct{}{}
	m.conflicts = append(m.conflicts, Conflict{Path: path, Source: m.source})
}

func appendPath(path []string, key string) []string {
	out := make([]string, len(path), len(path)+1)
	copy(out, path)
	return append(out, key)
}
