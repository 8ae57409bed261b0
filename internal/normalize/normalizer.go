package normalize

import (
	"context"

	"cppts/internal/cst"
	"cppts/internal/ir"
	"cppts/internal/trace"
)

// Options tunes normalization.
type Options struct {
	// QualifyReferences rewrites unqualified reads of namespace-scoped
	// declarations to their flattened names. Off by default, in which case
	// only declaration sites are flattened.
	QualifyReferences bool
}

type normalizer struct {
	opts    Options
	tracer  trace.Tracer
	spanID  uint64
	globals symbols
}

// File normalizes a whole translation unit into its top-level nodes.
func File(ctx context.Context, root *cst.Node, opts Options) ([]ir.Node, error) {
	n := &normalizer{
		opts:   opts,
		tracer: trace.FromContext(ctx),
		spanID: trace.CurrentSpan(ctx).SpanID,
	}
	if root == nil {
		return nil, nil
	}
	if root.Kind != cst.RootKind {
		return nil, n.unsupported(root, nil)
	}
	if opts.QualifyReferences {
		n.globals = collectSymbols(root)
	}
	return n.items(root.Children, env{parent: root})
}

func (n *normalizer) point(name, detail string) {
	trace.Point(n.tracer, trace.ScopeNode, name, detail, n.spanID)
}

// trivia are tokens and nodes with no counterpart in the output.
var trivia = map[string]bool{
	";": true, ",": true, "{": true, "}": true, "\n": true,
	"comment":                    true,
	"preproc_include":            true,
	"preproc_def":                true,
	"preproc_function_def":       true,
	"preproc_call":               true,
	"using_declaration":          true,
	"namespace_alias_definition": true,
	"static_assert_declaration":  true,
}

func (n *normalizer) skip(c *cst.Node) bool {
	if !trivia[c.Kind] {
		return false
	}
	if c.Kind != ";" && c.Kind != "," && c.Kind != "\n" {
		n.point("discard", c.Kind)
	}
	return true
}

// items normalizes the children of a translation unit or namespace body.
func (n *normalizer) items(children []*cst.Node, ctx env) ([]ir.Node, error) {
	var out []ir.Node
	for _, c := range children {
		if n.skip(c) {
			continue
		}
		nodes, err := n.item(c, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func (n *normalizer) item(c *cst.Node, ctx env) ([]ir.Node, error) {
	switch c.Kind {
	case "namespace_definition":
		return n.namespace(c, ctx)
	case "linkage_specification":
		return n.linkage(c, ctx)
	case "preproc_if", "preproc_ifdef":
		branch, err := n.preprocBranch(c)
		if err != nil {
			return nil, err
		}
		return n.items(branch, ctx.in(c))
	case "declaration", "function_definition", "struct_specifier", "class_specifier",
		"enum_specifier", "type_definition", "alias_declaration":
		return n.definition(c, ctx)
	}
	return nil, n.unsupported(c, ctx.parent)
}

// definition handles productions allowed both at file scope and inside
// function bodies.
func (n *normalizer) definition(c *cst.Node, ctx env) ([]ir.Node, error) {
	switch c.Kind {
	case "declaration":
		return n.declaration(c, ctx)
	case "function_definition":
		fn, err := n.functionDefinition(c, ctx)
		if err != nil || fn == nil {
			return nil, err
		}
		return []ir.Node{fn}, nil
	case "struct_specifier", "class_specifier":
		def, err := n.structDefinition(c, ctx)
		if err != nil || def == nil {
			return nil, err
		}
		return []ir.Node{def}, nil
	case "enum_specifier":
		def, err := n.enumDefinition(c, ctx)
		if err != nil || def == nil {
			return nil, err
		}
		return []ir.Node{def}, nil
	case "type_definition", "alias_declaration":
		alias, err := n.typeAlias(c, ctx)
		if err != nil {
			return nil, err
		}
		return []ir.Node{alias}, nil
	}
	return nil, n.unsupported(c, ctx.parent)
}

func (n *normalizer) namespace(c *cst.Node, ctx env) ([]ir.Node, error) {
	var (
		names []string
		body  *cst.Node
	)
	for _, ch := range c.Children {
		switch ch.Kind {
		case "namespace":
		case "namespace_identifier", "identifier":
			names = append(names, ch.Text)
		case "nested_namespace_specifier":
			names = append(names, leafNames(ch)...)
		case "declaration_list":
			body = ch
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if body == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	// anonymous namespaces contribute no path segment
	if len(names) == 0 {
		return n.items(body.Children, ctx.in(body))
	}
	inner := ctx.in(body)
	for _, name := range names {
		inner = inner.namespace(name)
	}
	items, err := n.items(body.Children, inner)
	if err != nil {
		return nil, err
	}
	// nested specifiers (a::b) become nested namespaces so rendering sees
	// the same shape as explicitly nested blocks
	node := &ir.Namespace{Name: names[len(names)-1], Items: items}
	for i := len(names) - 2; i >= 0; i-- {
		node = &ir.Namespace{Name: names[i], Items: []ir.Node{node}}
	}
	return []ir.Node{node}, nil
}

// linkage handles extern "C" blocks by normalizing their contents in place.
func (n *normalizer) linkage(c *cst.Node, ctx env) ([]ir.Node, error) {
	var out []ir.Node
	for _, ch := range c.Children {
		switch ch.Kind {
		case "extern", "string_literal":
		case "declaration_list":
			items, err := n.items(ch.Children, ctx.in(ch))
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		default:
			items, err := n.item(ch, ctx.in(c))
			if err != nil {
				return nil, err
			}
			out = append(out, items...)
		}
	}
	return out, nil
}

// preprocBranch picks the children of the conditional branch that is kept:
// the first one, unless the condition is a literal 0.
func (n *normalizer) preprocBranch(c *cst.Node) ([]*cst.Node, error) {
	var (
		branch      []*cst.Node
		alternative *cst.Node
		condition   *cst.Node
		seenHead    bool
	)
	for _, ch := range c.Children {
		switch {
		case !seenHead:
			// #if, #ifdef, #ifndef, #elif, #else
			seenHead = true
			if ch.Kind == "#else" {
				condition = ch
			}
		case condition == nil:
			condition = ch
		case ch.Kind == "#endif":
		case ch.Kind == "preproc_else" || ch.Kind == "preproc_elif" || ch.Kind == "preproc_elifdef":
			alternative = ch
		default:
			branch = append(branch, ch)
		}
	}
	if condition != nil && condition.Kind == "number_literal" && condition.Text == "0" {
		if alternative == nil {
			return nil, nil
		}
		n.point("discard", "#if 0 branch")
		return n.preprocBranch(alternative)
	}
	if alternative != nil {
		n.point("discard", alternative.Kind)
	}
	return branch, nil
}

// leafNames collects identifier-like leaves, skipping punctuation and
// template arguments.
func leafNames(c *cst.Node) []string {
	var out []string
	cst.Walk(c, func(x *cst.Node) bool {
		switch x.Kind {
		case "template_argument_list":
			return false
		case "identifier", "namespace_identifier", "type_identifier", "field_identifier":
			if len(x.Children) == 0 {
				out = append(out, x.Text)
			}
		}
		return true
	})
	return out
}
