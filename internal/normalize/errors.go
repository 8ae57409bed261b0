package normalize

import (
	"fmt"

	"cppts/internal/cst"
	"cppts/internal/source"
	"cppts/internal/trace"
)

// UnsupportedConstruct reports a CST node kind with no handler in the
// context it appeared in.
type UnsupportedConstruct struct {
	NodeKind    string
	ContextKind string
	Span        source.Span
}

func (e *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("unsupported construct %q in %q", e.NodeKind, e.ContextKind)
}

func (n *normalizer) unsupported(node, context *cst.Node) error {
	err := &UnsupportedConstruct{NodeKind: node.Kind}
	if context != nil {
		err.ContextKind = context.Kind
	}
	err.Span = node.Span
	n.point(trace.PointUnsupported, err.Error())
	return err
}
