package normalize

import (
	"strings"

	"cppts/internal/cst"
	"cppts/internal/ir"
)

// symbols maps a namespace path (segments joined by "::") to the names
// declared directly in it.
type symbols map[string]map[string]bool

func (s symbols) add(ns []string, name string) {
	key := strings.Join(ns, "::")
	if s[key] == nil {
		s[key] = make(map[string]bool)
	}
	s[key][name] = true
}

// lookup finds the innermost enclosing namespace that declares name.
func (s symbols) lookup(ns []string, name string) ([]string, bool) {
	for i := len(ns); i >= 0; i-- {
		if s[strings.Join(ns[:i], "::")][name] {
			return ns[:i], true
		}
	}
	return nil, false
}

// collectSymbols records every name declared at file or namespace scope so
// references can be qualified before their declaration is reached.
func collectSymbols(root *cst.Node) symbols {
	s := make(symbols)
	var walk func(children []*cst.Node, ns []string)
	walk = func(children []*cst.Node, ns []string) {
		for _, c := range children {
			switch c.Kind {
			case "namespace_definition":
				inner := ns
				var body *cst.Node
				for _, ch := range c.Children {
					switch ch.Kind {
					case "namespace_identifier", "identifier":
						inner = appendPath(inner, ch.Text)
					case "nested_namespace_specifier":
						for _, name := range leafNames(ch) {
							inner = appendPath(inner, name)
						}
					case "declaration_list":
						body = ch
					}
				}
				if body != nil {
					walk(body.Children, inner)
				}
			case "preproc_if", "preproc_ifdef", "preproc_else":
				walk(c.Children, ns)
			case "linkage_specification":
				for _, ch := range c.Children {
					if ch.Kind == "declaration_list" {
						walk(ch.Children, ns)
					} else {
						walk([]*cst.Node{ch}, ns)
					}
				}
			case "declaration":
				for _, ch := range c.Children {
					if name, ok := declaredName(ch); ok {
						s.add(ns, name)
					}
				}
			case "function_definition":
				if d := c.FirstOf("function_declarator", "pointer_declarator", "reference_declarator"); d != nil {
					if name, ok := functionName(d); ok {
						s.add(ns, name)
					}
				}
			}
		}
	}
	walk(root.Children, nil)
	return s
}

// declaredName extracts the variable name of a declarator. Function
// declarators are prototypes and declare nothing that is emitted.
func declaredName(d *cst.Node) (string, bool) {
	switch d.Kind {
	case "identifier", "field_identifier":
		return d.Text, true
	case "init_declarator", "pointer_declarator", "reference_declarator",
		"array_declarator", "parenthesized_declarator":
		for _, ch := range d.Children {
			if name, ok := declaredName(ch); ok {
				return name, true
			}
		}
	}
	return "", false
}

func functionName(d *cst.Node) (string, bool) {
	switch d.Kind {
	case "function_declarator":
		if id := d.FirstOf("identifier", "field_identifier"); id != nil {
			return id.Text, true
		}
	case "pointer_declarator", "reference_declarator":
		if inner := d.FirstOf("function_declarator", "pointer_declarator", "reference_declarator"); inner != nil {
			return functionName(inner)
		}
	}
	return "", false
}

// reference resolves a read of name in the current context.
func (n *normalizer) reference(name string, ctx env) ir.Node {
	if ctx.locals.has(name) {
		return &ir.Reference{Name: name}
	}
	if static, ok := ctx.members[name]; ok {
		owner := "this"
		if static {
			owner = ctx.class
		}
		return &ir.Path{Steps: []ir.Node{&ir.Reference{Name: owner}, &ir.Reference{Name: name}}}
	}
	if n.opts.QualifyReferences {
		if ns, ok := n.globals.lookup(ctx.ns, name); ok && len(ns) > 0 {
			return &ir.Reference{Name: strings.Join(ns, "_") + "_" + name}
		}
	}
	return &ir.Reference{Name: name}
}

// qualifiedName flattens a::b::c to a_b_c, dropping a leading std.
func qualifiedName(c *cst.Node) string {
	names := leafNames(c)
	if len(names) > 1 && names[0] == "std" {
		names = names[1:]
	}
	return strings.Join(names, "_")
}
