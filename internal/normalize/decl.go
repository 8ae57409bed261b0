package normalize

import (
	"slices"

	"cppts/internal/cst"
	"cppts/internal/ir"
)

// declBuilder accumulates the slots of a declaration or field declaration.
type declBuilder struct {
	typ         string
	isConst     bool
	isStatic    bool
	isExtern    bool
	prototype   bool
	pendingInit bool
	declarators []ir.Declarator
	defs        []ir.Node
}

func (b declBuilder) accept(n *normalizer, c *cst.Node, ctx env) (declBuilder, error) {
	switch c.Kind {
	case ";", ",", "comment", "virtual", "attribute_specifier", "attribute_declaration", "explicit_function_specifier":
		return b, nil
	case "storage_class_specifier":
		switch c.Text {
		case "static":
			b.isStatic = true
		case "extern":
			b.isExtern = true
		}
		return b, nil
	case "type_qualifier":
		if c.Text == "const" || c.Text == "constexpr" {
			b.isConst = true
		}
		return b, nil
	case "struct_specifier", "class_specifier", "enum_specifier":
		if b.typ != "" {
			return b, n.unsupported(c, ctx.parent)
		}
		name := c.FirstOf("type_identifier")
		if name == nil {
			return b, n.unsupported(c, ctx.parent)
		}
		b.typ = name.Text
		if c.Has("field_declaration_list") || c.Has("enumerator_list") {
			def, err := n.definition(c, ctx)
			if err != nil {
				return b, err
			}
			b.defs = append(slices.Clip(b.defs), def...)
		}
		return b, nil
	case "function_declarator":
		b.prototype = true
		return b, nil
	case "=":
		if len(b.declarators) == 0 {
			return b, n.unsupported(c, ctx.parent)
		}
		b.pendingInit = true
		return b, nil
	case "bitfield_clause":
		return b, n.unsupported(c, ctx.parent)
	}

	if typeKinds[c.Kind] && b.typ == "" {
		b.typ = typeText(c)
		return b, nil
	}

	if isDeclarator(c.Kind) {
		if wrapsFunction(c) {
			b.prototype = true
			return b, nil
		}
		d, err := n.declarator(c, b.typ, ctx)
		if err != nil {
			return b, err
		}
		b.declarators = append(slices.Clip(b.declarators), d)
		return b, nil
	}

	// default member initializer: `int x = 1;` or `int x{1};` in a class
	last := len(b.declarators) - 1
	if last >= 0 && b.declarators[last].Init == nil && (b.pendingInit || c.Kind == "initializer_list") {
		init, err := n.initializer(c, b.declarators[last].Type, ctx)
		if err != nil {
			return b, err
		}
		b.declarators = slices.Clone(b.declarators)
		b.declarators[last].Init = init
		b.pendingInit = false
		return b, nil
	}
	return b, n.unsupported(c, ctx.parent)
}

func isDeclarator(kind string) bool {
	switch kind {
	case "identifier", "field_identifier", "qualified_identifier", "init_declarator",
		"pointer_declarator", "reference_declarator", "array_declarator", "parenthesized_declarator":
		return true
	}
	return false
}

// wrapsFunction reports whether a pointer or reference declarator hides a
// function declarator, as in `int *make(int n);`.
func wrapsFunction(c *cst.Node) bool {
	switch c.Kind {
	case "function_declarator":
		return true
	case "pointer_declarator", "reference_declarator", "parenthesized_declarator":
		for _, ch := range c.Children {
			if wrapsFunction(ch) {
				return true
			}
		}
	}
	return false
}

// declaration normalizes a declaration. Prototypes produce nothing; struct
// and enum bodies written in the type slot come first.
func (n *normalizer) declaration(c *cst.Node, ctx env) ([]ir.Node, error) {
	var (
		b   declBuilder
		err error
	)
	inner := ctx.in(c)
	for _, ch := range c.Children {
		if b, err = b.accept(n, ch, inner); err != nil {
			return nil, err
		}
	}
	out := b.defs
	if len(b.declarators) == 0 {
		if b.prototype {
			n.point("discard", "prototype")
		}
		return out, nil
	}
	for _, d := range b.declarators {
		ctx.declare(d.Name)
	}
	return append(out, &ir.Declaration{
		Declarators: b.declarators,
		Const:       b.isConst,
		Static:      b.isStatic,
		Extern:      b.isExtern,
	}), nil
}

// declaratorBuilder fills one Declarator in order of encounter: the first
// name is the declared name, the next expression is its initializer.
type declaratorBuilder struct {
	name    string
	pointer bool
	arrays  int
	init    ir.Node
	hasInit bool
}

func (b declaratorBuilder) accept(n *normalizer, c *cst.Node, typ string, ctx env) (declaratorBuilder, error) {
	switch c.Kind {
	case "*", "&", "&&", "=", "[", "]", "(", ")", "type_qualifier", "ms_pointer_modifier":
		if c.Kind == "*" {
			b.pointer = true
		}
		return b, nil
	case "identifier", "field_identifier", "qualified_identifier":
		if b.name == "" {
			if c.Kind == "qualified_identifier" {
				b.name = qualifiedName(c)
			} else {
				b.name = c.Text
			}
			return b, nil
		}
	case "pointer_declarator", "reference_declarator", "parenthesized_declarator", "init_declarator":
		var err error
		inner := ctx.in(c)
		for _, ch := range c.Children {
			if b, err = b.accept(n, ch, typ, inner); err != nil {
				return b, err
			}
		}
		return b, nil
	case "array_declarator":
		var err error
		inner := ctx.in(c)
		sized := false
		for _, ch := range c.Children {
			switch {
			case ch.Kind == "[":
				sized = true
			case ch.Kind == "]":
				sized = false
			case sized:
				// the array size has no counterpart in the output
			default:
				if b, err = b.accept(n, ch, typ, inner); err != nil {
					return b, err
				}
			}
		}
		b.arrays++
		return b, nil
	case "argument_list":
		if b.name != "" && !b.hasInit {
			args, err := n.arguments(c, ctx)
			if err != nil {
				return b, err
			}
			if b.pointer && len(args) == 1 {
				b.init = args[0]
			} else {
				b.init = &ir.NewExpression{Type: typ, Args: args}
			}
			b.hasInit = true
			return b, nil
		}
	}
	if b.name == "" || b.hasInit {
		return b, n.unsupported(c, ctx.parent)
	}
	init, err := n.initializer(c, b.typeName(typ), ctx)
	if err != nil {
		return b, err
	}
	b.init = init
	b.hasInit = true
	return b, nil
}

func (b declaratorBuilder) typeName(typ string) string {
	if b.pointer {
		typ += "*"
	}
	for range b.arrays {
		typ += "[]"
	}
	return typ
}

func (n *normalizer) declarator(c *cst.Node, typ string, ctx env) (ir.Declarator, error) {
	b, err := declaratorBuilder{}.accept(n, c, typ, ctx)
	if err != nil {
		return ir.Declarator{}, err
	}
	if b.name == "" {
		return ir.Declarator{}, n.unsupported(c, ctx.parent)
	}
	return ir.Declarator{Name: ctx.declName(b.name), Type: b.typeName(typ), Init: b.init}, nil
}

// initializer normalizes the value of a declarator. A braced list with a
// single element initializes a scalar; otherwise it is an array literal.
func (n *normalizer) initializer(c *cst.Node, typ string, ctx env) (ir.Node, error) {
	if c.Kind != "initializer_list" {
		return n.expr(c, ctx)
	}
	lit, err := n.arrayLiteral(c, ctx)
	if err != nil {
		return nil, err
	}
	if !isArrayType(typ) && len(lit.Elements) == 1 {
		return lit.Elements[0], nil
	}
	return lit, nil
}

func isArrayType(typ string) bool {
	return len(typ) >= 2 && typ[len(typ)-2:] == "[]"
}

func (n *normalizer) functionDefinition(c *cst.Node, ctx env) (*ir.FunctionDefinition, error) {
	var (
		fn        ir.FunctionDefinition
		decl      *cst.Node
		body      *cst.Node
		fieldInit *cst.Node
	)
	for _, ch := range c.Children {
		switch ch.Kind {
		case "comment", "virtual", "attribute_specifier", "attribute_declaration", "explicit_function_specifier", "type_qualifier":
		case "storage_class_specifier":
			if ch.Text == "static" {
				fn.Static = true
			}
		case "function_declarator", "pointer_declarator", "reference_declarator":
			decl = ch
		case "field_initializer_list":
			fieldInit = ch
		case "compound_statement":
			body = ch
		case "default_method_clause", "delete_method_clause", "pure_virtual_clause":
			n.point("discard", ch.Kind)
			return nil, nil
		default:
			if typeKinds[ch.Kind] && fn.ReturnType == "" {
				fn.ReturnType = typeText(ch)
				continue
			}
			return nil, n.unsupported(ch, c)
		}
	}
	if decl == nil || body == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	for decl.Kind != "function_declarator" {
		inner := decl.FirstOf("function_declarator", "pointer_declarator", "reference_declarator")
		if inner == nil {
			return nil, n.unsupported(decl, c)
		}
		decl = inner
	}

	fctx := ctx.function()
	for _, ch := range decl.Children {
		switch ch.Kind {
		case "identifier", "field_identifier":
			switch {
			case ctx.scope == scopeClass && ch.Text == ctx.classLocal:
				fn.Name = ctx.class
			case ctx.scope == scopeClass:
				fn.Name = ch.Text
			default:
				fn.Name = ctx.declName(ch.Text)
			}
		case "qualified_identifier":
			fn.Name = qualifiedName(ch)
		case "parameter_list":
			params, err := n.parameters(ch, fctx)
			if err != nil {
				return nil, err
			}
			fn.Parameters = params
		case "type_qualifier", "noexcept", "virtual_specifier", "ref_qualifier", "trailing_return_type", "attribute_specifier":
		default:
			// destructor_name, operator_name and friends
			return nil, n.unsupported(ch, decl)
		}
	}
	if fn.Name == "" {
		return nil, n.unsupported(decl, c)
	}
	if ctx.scope == scopeFunction {
		ctx.declare(fn.Name)
	}

	if fieldInit != nil {
		inits, err := n.fieldInitializers(fieldInit, fctx)
		if err != nil {
			return nil, err
		}
		fn.Body = inits
	}
	stmts, err := n.statements(body, fctx)
	if err != nil {
		return nil, err
	}
	fn.Body = append(fn.Body, stmts...)
	return &fn, nil
}

func (n *normalizer) parameters(c *cst.Node, ctx env) ([]ir.Parameter, error) {
	var out []ir.Parameter
	for _, ch := range c.Children {
		switch ch.Kind {
		case "(", ")", ",", "comment":
		case "parameter_declaration", "optional_parameter_declaration":
			p, ok, err := n.parameter(ch, ctx)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, p)
			}
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	return out, nil
}

// parameter returns ok=false for the lone `void` of `f(void)`.
func (n *normalizer) parameter(c *cst.Node, ctx env) (ir.Parameter, bool, error) {
	var (
		p       ir.Parameter
		typ     string
		declb   declaratorBuilder
		named   bool
		pending bool
		err     error
	)
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "type_qualifier" || ch.Kind == "storage_class_specifier" || ch.Kind == "comment":
		case ch.Kind == "=":
			pending = true
		case pending:
			if p.Default, err = n.expr(ch, inner); err != nil {
				return p, false, err
			}
			pending = false
		case typeKinds[ch.Kind] && typ == "":
			typ = typeText(ch)
		case ch.Kind == "abstract_pointer_declarator" || ch.Kind == "abstract_reference_declarator":
		case isDeclarator(ch.Kind):
			if declb, err = declb.accept(n, ch, typ, inner); err != nil {
				return p, false, err
			}
			named = true
		default:
			return p, false, n.unsupported(ch, c)
		}
	}
	if !named {
		if typ == "void" {
			return p, false, nil
		}
		return p, false, n.unsupported(c, ctx.parent)
	}
	p.Name = declb.name
	p.Type = declb.typeName(typ)
	ctx.declare(p.Name)
	return p, true, nil
}

// fieldInitializers turns `: x(1), y(2)` into assignments to this.x and this.y.
func (n *normalizer) fieldInitializers(c *cst.Node, ctx env) ([]ir.Node, error) {
	var out []ir.Node
	for _, ch := range c.Children {
		switch ch.Kind {
		case ":", ",", "comment":
			continue
		case "field_initializer":
		default:
			return nil, n.unsupported(ch, c)
		}
		field := ch.FirstOf("field_identifier")
		args := ch.FirstOf("argument_list", "initializer_list")
		if field == nil || args == nil {
			return nil, n.unsupported(ch, c)
		}
		var values []ir.Node
		var err error
		if args.Kind == "argument_list" {
			values, err = n.arguments(args, ctx)
		} else {
			var lit *ir.ArrayLiteral
			lit, err = n.arrayLiteral(args, ctx)
			if lit != nil {
				values = lit.Elements
			}
		}
		if err != nil {
			return nil, err
		}
		if len(values) != 1 {
			return nil, n.unsupported(args, ch)
		}
		out = append(out, &ir.AssignmentExpression{
			Left: &ir.Path{Steps: []ir.Node{
				&ir.Reference{Name: "this"},
				&ir.Reference{Name: field.Text},
			}},
			Operator: "=",
			Right:    values[0],
		})
	}
	return out, nil
}
