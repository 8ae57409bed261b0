package cst

import (
	"fmt"
	"strings"

	"cppts/internal/source"
)

// Node is one concrete syntax tree node. The tree is read-only once built.
type Node struct {
	Kind     string
	Text     string
	Children []*Node
	Span     source.Span
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// FirstOf returns the first direct child whose kind is one of kinds.
func (n *Node) FirstOf(kinds ...string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		for _, k := range kinds {
			if c.Kind == k {
				return c
			}
		}
	}
	return nil
}

// Has reports whether a direct child with the given kind exists.
func (n *Node) Has(kind string) bool {
	return n.FirstOf(kind) != nil
}

// Walk visits n and its descendants depth-first, pre-order.
// Returning false from visit skips the node's children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Dump renders the tree as indented kinds; leaves also show their text.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if len(n.Children) == 0 && n.Text != n.Kind {
		fmt.Fprintf(sb, "%s %q\n", n.Kind, n.Text)
	} else {
		sb.WriteString(n.Kind)
		sb.WriteByte('\n')
	}
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}
