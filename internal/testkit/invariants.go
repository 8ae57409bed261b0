package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cppts/internal/cst"
	"cppts/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed tree:
// 1) every span points at sf and lies within its content
// 2) every child span is contained in its parent's span
// 3) siblings are ordered and do not overlap
// 4) a leaf's Text is exactly the source bytes under its span
func CheckSpanInvariants(root *cst.Node, sf *source.File) error {
	if root == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkNode(root, sf, lenContent)
}

func checkNode(n *cst.Node, sf *source.File, lenContent uint32) error {
	sp := n.Span
	if sp.File != sf.ID {
		return fmt.Errorf("%s span points to different file id: got=%d want=%d", n.Kind, sp.File, sf.ID)
	}
	if sp.End < sp.Start || sp.End > lenContent {
		return fmt.Errorf("%s span %v is outside content (len %d)", n.Kind, sp, lenContent)
	}
	if len(n.Children) == 0 {
		if got := string(sf.Content[sp.Start:sp.End]); got != n.Text {
			return fmt.Errorf("%s text %q does not match source %q", n.Kind, n.Text, got)
		}
		return nil
	}

	var prevEnd uint32
	for i, c := range n.Children {
		if c == nil {
			return fmt.Errorf("%s has nil child %d", n.Kind, i)
		}
		// child inside parent
		if c.Span.Start < sp.Start || c.Span.End > sp.End {
			return fmt.Errorf("%s span %v is outside parent %s span %v", c.Kind, c.Span, n.Kind, sp)
		}
		if i > 0 && c.Span.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps previous sibling ending at %d", c.Kind, c.Span, prevEnd)
		}
		prevEnd = c.Span.End
		if err := checkNode(c, sf, lenContent); err != nil {
			return err
		}
	}
	return nil
}
