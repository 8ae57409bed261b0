package normalize

import (
	"cppts/internal/cst"
	"cppts/internal/ir"
)

// statements normalizes the contents of a compound statement.
func (n *normalizer) statements(c *cst.Node, ctx env) ([]ir.Node, error) {
	ctx = ctx.in(c)
	var out []ir.Node
	for _, ch := range c.Children {
		if n.skip(ch) {
			continue
		}
		nodes, err := n.statement(ch, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

// body normalizes the statement governed by if/for/while/do: a compound
// statement contributes its contents, anything else itself.
func (n *normalizer) body(c *cst.Node, ctx env) ([]ir.Node, error) {
	if c.Kind == "compound_statement" {
		return n.statements(c, ctx.block())
	}
	return n.statement(c, ctx.block())
}

func (n *normalizer) statement(c *cst.Node, ctx env) ([]ir.Node, error) {
	var (
		node ir.Node
		err  error
	)
	switch c.Kind {
	case ";":
		return nil, nil
	case "compound_statement":
		stmts, err := n.statements(c, ctx.block())
		if err != nil {
			return nil, err
		}
		node = &ir.Block{Statements: stmts}
	case "expression_statement":
		return n.expressionStatement(c, ctx)
	case "declaration", "function_definition", "struct_specifier", "class_specifier",
		"enum_specifier", "type_definition", "alias_declaration":
		return n.definition(c, ctx)
	case "preproc_if", "preproc_ifdef":
		branch, err := n.preprocBranch(c)
		if err != nil {
			return nil, err
		}
		return n.statements(&cst.Node{Kind: c.Kind, Children: branch, Span: c.Span}, ctx)
	case "if_statement":
		node, err = n.ifStatement(c, ctx)
	case "for_statement":
		node, err = n.forStatement(c, ctx)
	case "for_range_loop":
		node, err = n.forRange(c, ctx)
	case "while_statement":
		node, err = n.whileStatement(c, ctx)
	case "do_statement":
		node, err = n.doStatement(c, ctx)
	case "switch_statement":
		node, err = n.switchStatement(c, ctx)
	case "case_statement":
		node, err = n.caseStatement(c, ctx)
	case "return_statement":
		node, err = n.returnStatement(c, ctx)
	case "throw_statement":
		node, err = n.throwStatement(c, ctx)
	case "break_statement":
		node = &ir.BreakStatement{}
	case "continue_statement":
		node = &ir.ContinueStatement{}
	default:
		return nil, n.unsupported(c, ctx.parent)
	}
	if err != nil {
		return nil, err
	}
	return []ir.Node{node}, nil
}

func (n *normalizer) expressionStatement(c *cst.Node, ctx env) ([]ir.Node, error) {
	var out ir.Node
	for _, ch := range c.Children {
		if ch.Kind == ";" {
			continue
		}
		if out != nil {
			return nil, n.unsupported(ch, c)
		}
		e, err := n.expr(ch, ctx.in(c))
		if err != nil {
			return nil, err
		}
		out = e
	}
	if out == nil {
		return nil, nil
	}
	return []ir.Node{out}, nil
}

// condition unwraps `( expr )` of if/while/switch.
func (n *normalizer) condition(c *cst.Node, ctx env) (ir.Node, error) {
	var cond ir.Node
	for _, ch := range c.Children {
		switch ch.Kind {
		case "(", ")":
			continue
		}
		if cond != nil {
			return nil, n.unsupported(ch, c)
		}
		// declarations in conditions have no expression form
		if ch.Kind == "declaration" || ch.Kind == "init_statement" || ch.Kind == "condition_declaration" {
			return nil, n.unsupported(ch, c)
		}
		e, err := n.expr(ch, ctx.in(c))
		if err != nil {
			return nil, err
		}
		cond = e
	}
	if cond == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return cond, nil
}

// ifStatement flattens else-if chains into one choice list; a trailing
// unconditioned choice is the else branch.
func (n *normalizer) ifStatement(c *cst.Node, ctx env) (*ir.IfStatement, error) {
	var (
		choices []ir.Choice
		cond    ir.Node
		hasCond bool
		inElse  bool
	)
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "if" || ch.Kind == "constexpr" || ch.Kind == "comment":
		case ch.Kind == "condition_clause" || ch.Kind == "parenthesized_expression":
			e, err := n.condition(ch, inner)
			if err != nil {
				return nil, err
			}
			cond, hasCond = e, true
		case ch.Kind == "else_clause":
			rest, err := n.elseClause(ch, inner)
			if err != nil {
				return nil, err
			}
			choices = append(choices, rest...)
		case ch.Kind == "else":
			inElse = true
		case inElse:
			rest, err := n.alternative(ch, inner)
			if err != nil {
				return nil, err
			}
			choices = append(choices, rest...)
			inElse = false
		case hasCond && len(choices) == 0:
			stmts, err := n.body(ch, inner)
			if err != nil {
				return nil, err
			}
			choices = append(choices, ir.Choice{Condition: cond, Statements: stmts})
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if len(choices) == 0 {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &ir.IfStatement{Choices: choices}, nil
}

func (n *normalizer) elseClause(c *cst.Node, ctx env) ([]ir.Choice, error) {
	for _, ch := range c.Children {
		if ch.Kind == "else" || ch.Kind == "comment" {
			continue
		}
		return n.alternative(ch, ctx.in(c))
	}
	return nil, n.unsupported(c, ctx.parent)
}

func (n *normalizer) alternative(c *cst.Node, ctx env) ([]ir.Choice, error) {
	if c.Kind == "if_statement" {
		nested, err := n.ifStatement(c, ctx)
		if err != nil {
			return nil, err
		}
		return nested.Choices, nil
	}
	stmts, err := n.body(c, ctx)
	if err != nil {
		return nil, err
	}
	return []ir.Choice{{Statements: stmts}}, nil
}

// forStatement reads the three header sections by counting semicolons. A
// declaration initializer carries its own semicolon.
func (n *normalizer) forStatement(c *cst.Node, ctx env) (*ir.ForStatement, error) {
	var (
		loop    ir.ForStatement
		section int
		closed  bool
	)
	head := ctx.in(c).block()
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "for" || ch.Kind == "(" || ch.Kind == "comment":
		case ch.Kind == ")":
			closed = true
		case closed:
			stmts, err := n.body(ch, head)
			if err != nil {
				return nil, err
			}
			loop.Body = stmts
		case ch.Kind == ";":
			section++
		case ch.Kind == "declaration" && section == 0:
			nodes, err := n.declaration(ch, head)
			if err != nil {
				return nil, err
			}
			if len(nodes) != 1 {
				return nil, n.unsupported(ch, c)
			}
			loop.Init = nodes[0]
			section++
		default:
			e, err := n.expr(ch, head)
			if err != nil {
				return nil, err
			}
			switch section {
			case 0:
				loop.Init = e
			case 1:
				loop.Test = e
			case 2:
				loop.Update = e
			default:
				return nil, n.unsupported(ch, c)
			}
		}
	}
	if !closed {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &loop, nil
}

func (n *normalizer) forRange(c *cst.Node, ctx env) (*ir.ForRangeStatement, error) {
	var (
		loop   ir.ForRangeStatement
		colon  bool
		closed bool
	)
	head := ctx.in(c).block()
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "for" || ch.Kind == "(" || ch.Kind == "type_qualifier" || ch.Kind == "comment":
		case ch.Kind == ":":
			colon = true
		case ch.Kind == ")":
			closed = true
		case closed:
			stmts, err := n.body(ch, head)
			if err != nil {
				return nil, err
			}
			loop.Body = stmts
		case colon:
			r, err := n.initializer(ch, "[]", head)
			if err != nil {
				return nil, err
			}
			loop.Range = r
		case typeKinds[ch.Kind] && loop.Type == "":
			loop.Type = typeText(ch)
		case isDeclarator(ch.Kind):
			b, err := declaratorBuilder{}.accept(n, ch, loop.Type, head)
			if err != nil {
				return nil, err
			}
			loop.Name = b.name
			head.declare(b.name)
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if loop.Name == "" || loop.Range == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &loop, nil
}

func (n *normalizer) whileStatement(c *cst.Node, ctx env) (*ir.WhileStatement, error) {
	var loop ir.WhileStatement
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "while" || ch.Kind == "comment":
		case loop.Condition == nil:
			cond, err := n.condition(ch, inner)
			if err != nil {
				return nil, err
			}
			loop.Condition = cond
		default:
			stmts, err := n.body(ch, inner)
			if err != nil {
				return nil, err
			}
			loop.Statements = stmts
		}
	}
	return &loop, nil
}

func (n *normalizer) doStatement(c *cst.Node, ctx env) (*ir.DoStatement, error) {
	var (
		loop    ir.DoStatement
		hasBody bool
	)
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "do" || ch.Kind == "while" || ch.Kind == ";" || ch.Kind == "comment":
		case !hasBody:
			stmts, err := n.body(ch, inner)
			if err != nil {
				return nil, err
			}
			loop.Statements, hasBody = stmts, true
		case loop.Condition == nil:
			cond, err := n.condition(ch, inner)
			if err != nil {
				return nil, err
			}
			loop.Condition = cond
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if loop.Condition == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &loop, nil
}

func (n *normalizer) switchStatement(c *cst.Node, ctx env) (*ir.SwitchStatement, error) {
	var sw ir.SwitchStatement
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "switch" || ch.Kind == "comment":
		case sw.Condition == nil:
			cond, err := n.condition(ch, inner)
			if err != nil {
				return nil, err
			}
			sw.Condition = cond
		case ch.Kind == "compound_statement":
			stmts, err := n.statements(ch, inner.block())
			if err != nil {
				return nil, err
			}
			sw.Statements = stmts
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	return &sw, nil
}

// caseStatement keeps the statements that follow the label as written; no
// break is added or removed.
func (n *normalizer) caseStatement(c *cst.Node, ctx env) (*ir.CaseStatement, error) {
	var (
		cs      ir.CaseStatement
		labeled bool
	)
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "case":
		case ch.Kind == "default":
			cs.IsDefault = true
		case ch.Kind == ":" && !labeled:
			labeled = true
		case !labeled:
			if cs.Test != nil {
				return nil, n.unsupported(ch, c)
			}
			test, err := n.expr(ch, inner)
			if err != nil {
				return nil, err
			}
			cs.Test = test
		default:
			if n.skip(ch) {
				continue
			}
			stmts, err := n.statement(ch, inner)
			if err != nil {
				return nil, err
			}
			cs.Statements = append(cs.Statements, stmts...)
		}
	}
	if !cs.IsDefault && cs.Test == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &cs, nil
}

func (n *normalizer) returnStatement(c *cst.Node, ctx env) (*ir.ReturnStatement, error) {
	var ret ir.ReturnStatement
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "return" || ch.Kind == ";":
		case ret.Statement == nil:
			v, err := n.initializer(ch, "", ctx.in(c))
			if err != nil {
				return nil, err
			}
			ret.Statement = v
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	return &ret, nil
}

func (n *normalizer) throwStatement(c *cst.Node, ctx env) (*ir.ThrowStatement, error) {
	var th ir.ThrowStatement
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "throw" || ch.Kind == ";":
		case th.Expression == nil:
			v, err := n.expr(ch, ctx.in(c))
			if err != nil {
				return nil, err
			}
			th.Expression = v
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	// a bare rethrow has nothing to throw outside a catch clause
	if th.Expression == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &th, nil
}
