package normalize

import (
	"cppts/internal/cst"
	"cppts/internal/ir"
)

// structDefinition normalizes struct and class specifiers. Forward
// declarations have no body and produce nothing.
func (n *normalizer) structDefinition(c *cst.Node, ctx env) (*ir.StructDefinition, error) {
	var (
		local string
		base  string
		body  *cst.Node
	)
	for _, ch := range c.Children {
		switch ch.Kind {
		case "struct", "class", "comment", "attribute_specifier", "virtual_specifier":
		case "type_identifier":
			local = ch.Text
		case "base_class_clause":
			b, err := n.baseClass(ch)
			if err != nil {
				return nil, err
			}
			base = b
		case "field_declaration_list":
			body = ch
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if body == nil {
		return nil, nil
	}
	if local == "" {
		return nil, n.unsupported(c, ctx.parent)
	}

	def := &ir.StructDefinition{Name: ctx.declName(local), Base: base}
	members, err := n.members(body, ctx.in(body).inClass(def.Name, local, memberNames(body, local)))
	if err != nil {
		return nil, err
	}
	def.Members = members
	return def, nil
}

// baseClass accepts a single base; TypeScript classes extend one class.
func (n *normalizer) baseClass(c *cst.Node) (string, error) {
	base := ""
	for _, ch := range c.Children {
		switch ch.Kind {
		case ":", ",", "access_specifier", "virtual", "comment":
		case "type_identifier", "qualified_identifier", "template_type":
			if base != "" {
				return "", n.unsupported(ch, c)
			}
			base = typeText(ch)
		default:
			return "", n.unsupported(ch, c)
		}
	}
	return base, nil
}

func (n *normalizer) members(body *cst.Node, ctx env) ([]ir.Node, error) {
	var out []ir.Node
	for _, ch := range body.Children {
		if n.skip(ch) {
			continue
		}
		switch ch.Kind {
		case "access_specifier", ":":
		case "field_declaration", "declaration":
			nodes, err := n.declaration(ch, ctx)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		case "function_definition":
			fn, err := n.functionDefinition(ch, ctx)
			if err != nil {
				return nil, err
			}
			if fn != nil {
				out = append(out, fn)
			}
		case "preproc_if", "preproc_ifdef":
			branch, err := n.preprocBranch(ch)
			if err != nil {
				return nil, err
			}
			nodes, err := n.members(&cst.Node{Kind: ch.Kind, Children: branch, Span: ch.Span}, ctx.in(ch))
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		default:
			return nil, n.unsupported(ch, ctx.parent)
		}
	}
	return out, nil
}

// memberNames lists fields and methods of a class body so that uses inside
// methods can be rewritten to this.x (or Class.x for statics).
func memberNames(body *cst.Node, class string) map[string]bool {
	out := make(map[string]bool)
	var scan func(children []*cst.Node)
	scan = func(children []*cst.Node) {
		for _, ch := range children {
			switch ch.Kind {
			case "preproc_if", "preproc_ifdef", "preproc_else":
				scan(ch.Children)
				continue
			case "field_declaration", "declaration", "function_definition":
			default:
				continue
			}
			static := false
			for _, part := range ch.Children {
				if part.Kind == "storage_class_specifier" && part.Text == "static" {
					static = true
				}
			}
			for _, part := range ch.Children {
				if name, ok := declaredName(part); ok {
					out[name] = static
				} else if name, ok := functionName(part); ok {
					out[name] = static
				}
			}
		}
	}
	scan(body.Children)
	delete(out, class)
	return out
}

func (n *normalizer) enumDefinition(c *cst.Node, ctx env) (*ir.EnumDefinition, error) {
	var (
		def        ir.EnumDefinition
		list       *cst.Node
		underlying bool
	)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "enum" || ch.Kind == "class" || ch.Kind == "struct" || ch.Kind == "comment":
		case ch.Kind == ":":
			underlying = true
		case ch.Kind == "type_identifier" && !underlying:
			def.Name = ctx.declName(ch.Text)
		case typeKinds[ch.Kind] && underlying:
			underlying = false
		case ch.Kind == "enumerator_list":
			list = ch
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if list == nil {
		return nil, nil
	}
	if def.Name == "" {
		return nil, n.unsupported(c, ctx.parent)
	}
	for _, ch := range list.Children {
		if n.skip(ch) {
			continue
		}
		if ch.Kind != "enumerator" {
			return nil, n.unsupported(ch, list)
		}
		m, err := n.enumerator(ch, ctx.in(ch))
		if err != nil {
			return nil, err
		}
		def.Members = append(def.Members, m)
	}
	return &def, nil
}

func (n *normalizer) enumerator(c *cst.Node, ctx env) (ir.EnumMember, error) {
	var m ir.EnumMember
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "=":
		case ch.Kind == "identifier" && m.Name == "":
			m.Name = ch.Text
		case m.Name != "" && m.Value == nil:
			v, err := n.expr(ch, ctx)
			if err != nil {
				return m, err
			}
			m.Value = v
		default:
			return m, n.unsupported(ch, c)
		}
	}
	return m, nil
}

// typeAlias handles `typedef T Name;` and `using Name = T;`.
func (n *normalizer) typeAlias(c *cst.Node, ctx env) (*ir.TypeAlias, error) {
	var (
		alias ir.TypeAlias
		typ   string
	)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "typedef" || ch.Kind == "using" || ch.Kind == "=" || ch.Kind == ";" || ch.Kind == "type_qualifier":
		case c.Kind == "alias_declaration" && ch.Kind == "type_identifier" && alias.Name == "":
			alias.Name = ctx.declName(ch.Text)
		case typeKinds[ch.Kind] && typ == "":
			typ = typeText(ch)
		case c.Kind == "type_definition" && alias.Name == "" &&
			(ch.Kind == "type_identifier" || ch.Kind == "pointer_declarator" || ch.Kind == "array_declarator"):
			name, suffix := aliasDeclarator(ch)
			if name == "" {
				return nil, n.unsupported(ch, c)
			}
			alias.Name = ctx.declName(name)
			typ += suffix
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if alias.Name == "" || typ == "" {
		return nil, n.unsupported(c, ctx.parent)
	}
	alias.Type = typ
	return &alias, nil
}

func aliasDeclarator(c *cst.Node) (string, string) {
	switch c.Kind {
	case "type_identifier":
		return c.Text, ""
	case "pointer_declarator":
		if inner := c.FirstOf("type_identifier", "pointer_declarator", "array_declarator"); inner != nil {
			name, suffix := aliasDeclarator(inner)
			return name, "*" + suffix
		}
	case "array_declarator":
		if inner := c.FirstOf("type_identifier", "pointer_declarator", "array_declarator"); inner != nil {
			name, suffix := aliasDeclarator(inner)
			return name, suffix + "[]"
		}
	}
	return "", ""
}
