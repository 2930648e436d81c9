// Package translations models translation trees and implements the union merge and
// dotted-path flattening that produce the translation keys tree.
package translations

import (
	"bytes"
	"encoding/json"
	"sort"
)

type Kind int

const (
	LeafKind Kind = iota
	BranchKind
)

func (k Kind) String() string {
	switch k {
	case LeafKind:
		return "leaf"
	case BranchKind:
		return "branch"
	default:
		return "unknown"
	}
}

// Node is either a Leaf holding translated text or a Branch holding named children.
// Only the field matching Kind is meaningful.
type Node struct {
	Kind     Kind
	Text     string
	Children map[string]*Node
}

func Leaf(text string) *Node {
	return &Node{Kind: LeafKind, Text: text}
}

func Branch(children map[string]*Node) *Node {
	if children == nil {
		children = map[string]*Node{}
	}
	return &Node{Kind: BranchKind, Children: children}
}

func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind == LeafKind
}

func (n *Node) IsBranch() bool {
	return n != nil && n.Kind == BranchKind
}

// Keys returns the child keys of a Branch in sorted order.
func (n *Node) Keys() []string {
	if !n.IsBranch() {
		return nil
	}
	keys := make([]string, 0, len(n.Children))
	for key := range n.Children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Get walks the given key path and reports whether a node exists there.
func (n *Node) Get(path ...string) (*Node, bool) {
	current := n
	for _, key := range path {
		if !current.IsBranch() {
			return nil, false
		}
		child, ok := current.Children[key]
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, current != nil
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	if n.Kind == LeafKind {
		return Leaf(n.Text)
	}
	children := make(map[string]*Node, len(n.Children))
	for key, child := range n.Children {
		children[key] = child.Clone()
	}
	return Branch(children)
}

// MarshalJSON renders branches as objects with sorted keys and leaves as strings.
func (n *Node) MarshalJSON() ([]byte, error) {
	if n == nil {
		return []byte("null"), nil
	}
	if n.Kind == LeafKind {
		return json.Marshal(n.Text)
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range n.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		encodedChild, err := n.Children[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(encodedChild)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToMap converts the node into plain Go values: map[string]any for branches, string for leaves.
func (n *Node) ToMap() any {
	if n == nil {
		return nil
	}
	if n.Kind == LeafKind {
		return n.Text
	}
	out := make(map[string]any, len(n.Children))
	for key, child := range n.Children {
		out[key] = child.ToMap()
	}
	return out
}
