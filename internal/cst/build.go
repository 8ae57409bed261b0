package cst

import "strings"

// T builds a leaf node. Tokens whose text equals the kind can pass an empty text.
func T(kind, text string) *Node {
	if text == "" {
		text = kind
	}
	return &Node{Kind: kind, Text: text}
}

// Tok builds punctuation or keyword leaves, one per argument.
func Tok(tokens ...string) []*Node {
	out := make([]*Node, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, T(t, t))
	}
	return out
}

// N builds an interior node. Children may be *Node or []*Node; nil entries are skipped.
// Text is the space-joined text of the leaves, which is enough for verbatim fields.
func N(kind string, children ...any) *Node {
	n := &Node{Kind: kind}
	for _, c := range children {
		switch v := c.(type) {
		case *Node:
			if v != nil {
				n.Children = append(n.Children, v)
			}
		case []*Node:
			for _, x := range v {
				if x != nil {
					n.Children = append(n.Children, x)
				}
			}
		}
	}
	parts := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		parts = append(parts, c.Text)
	}
	n.Text = strings.Join(parts, " ")
	return n
}

// Ident is shorthand for an identifier leaf.
func Ident(name string) *Node { return T("identifier", name) }

// Num is shorthand for a number_literal leaf.
func Num(text string) *Node { return T("number_literal", text) }
