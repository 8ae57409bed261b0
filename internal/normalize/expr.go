package normalize

import (
	"slices"
	"strings"

	"cppts/internal/cst"
	"cppts/internal/ir"
)

// alternativeTokens maps C++ alternative operator spellings.
var alternativeTokens = map[string]string{
	"and":    "&&",
	"or":     "||",
	"not":    "!",
	"not_eq": "!=",
	"bitand": "&",
	"bitor":  "|",
	"xor":    "^",
	"compl":  "~",
}

func operator(tok string) string {
	if op, ok := alternativeTokens[tok]; ok {
		return op
	}
	return tok
}

var castTemplates = map[string]bool{
	"static_cast":      true,
	"const_cast":       true,
	"reinterpret_cast": true,
	"dynamic_cast":     true,
}

func (n *normalizer) expr(c *cst.Node, ctx env) (ir.Node, error) {
	switch c.Kind {
	case "identifier":
		return n.reference(c.Text, ctx), nil
	case "this":
		return &ir.Reference{Name: "this"}, nil
	case "qualified_identifier":
		return &ir.Reference{Name: qualifiedName(c)}, nil
	case "number_literal":
		return &ir.NumberLiteral{Value: c.Text}, nil
	case "true":
		return &ir.BooleanLiteral{Value: true}, nil
	case "false":
		return &ir.BooleanLiteral{Value: false}, nil
	case "string_literal", "raw_string_literal", "char_literal":
		return n.stringLiteral(c, ctx)
	case "concatenated_string":
		return n.concatenated(c, ctx)
	case "user_defined_literal":
		return &ir.UserDefinedLiteral{Text: c.Text}, nil
	case "null", "nullptr":
		return &ir.NullLiteral{}, nil
	case "parenthesized_expression":
		inner, err := n.single(c, ctx)
		if err != nil {
			return nil, err
		}
		return &ir.ParenthesizedExpression{Value: inner}, nil
	case "binary_expression":
		return n.binary(c, ctx)
	case "unary_expression":
		return n.unary(c, ctx)
	case "update_expression":
		return n.update(c, ctx)
	case "conditional_expression":
		return n.conditional(c, ctx)
	case "assignment_expression":
		return n.assignment(c, ctx)
	case "call_expression":
		return n.call(c, ctx)
	case "field_expression", "subscript_expression":
		return n.path(c, ctx)
	case "initializer_list":
		return n.arrayLiteral(c, ctx)
	case "cast_expression", "pointer_expression":
		// casts, dereference and address-of leave the operand unchanged
		return n.operand(c, ctx)
	}
	return nil, n.unsupported(c, ctx.parent)
}

// single normalizes the one expression between a pair of delimiters.
func (n *normalizer) single(c *cst.Node, ctx env) (ir.Node, error) {
	var out ir.Node
	for _, ch := range c.Children {
		switch ch.Kind {
		case "(", ")", "[", "]", "comment":
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
		return nil, n.unsupported(c, ctx.parent)
	}
	return out, nil
}

// operand returns the last child of a cast or pointer expression.
func (n *normalizer) operand(c *cst.Node, ctx env) (ir.Node, error) {
	last := c.Child(len(c.Children) - 1)
	if last == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return n.expr(last, ctx.in(c))
}

func (n *normalizer) concatenated(c *cst.Node, ctx env) (ir.Node, error) {
	var out ir.Node
	for _, ch := range c.Children {
		if ch.Kind != "string_literal" && ch.Kind != "raw_string_literal" {
			return nil, n.unsupported(ch, c)
		}
		lit, err := n.stringLiteral(ch, ctx.in(c))
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = lit
			continue
		}
		out = &ir.BinaryExpression{Operator: "+", Left: out, Right: lit}
	}
	if out == nil {
		return nil, n.unsupported(c, ctx.parent)
	}
	return out, nil
}

// encodingPrefixes select a C++ character type; longest first.
var encodingPrefixes = []string{"u8", "u", "U", "L"}

var rawEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`)

func (n *normalizer) stringLiteral(c *cst.Node, ctx env) (ir.Node, error) {
	text, ok := literalText(c.Text)
	if !ok {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &ir.StringLiteral{Value: text}, nil
}

// literalText drops the encoding prefix of a string or character literal
// and turns a raw string into a double-quoted one.
func literalText(text string) (string, bool) {
	for _, p := range encodingPrefixes {
		rest, ok := strings.CutPrefix(text, p)
		if ok && rest != "" && strings.IndexByte(`"'R`, rest[0]) >= 0 {
			text = rest
			break
		}
	}
	if !strings.HasPrefix(text, `R"`) {
		return text, true
	}
	body, ok := strings.CutSuffix(text[2:], `"`)
	open := strings.IndexByte(body, '(')
	if !ok || open < 0 {
		return "", false
	}
	content, ok := strings.CutSuffix(body[open+1:], ")"+body[:open])
	if !ok {
		return "", false
	}
	return `"` + rawEscaper.Replace(content) + `"`, true
}

// binary fills left, operator, right in order. When the parser drops the
// right operand the operator is kept as a prefix over the left one.
func (n *normalizer) binary(c *cst.Node, ctx env) (ir.Node, error) {
	var (
		left, right ir.Node
		op          string
	)
	inner := ctx.in(c)
	for _, ch := range c.Children {
		switch {
		case ch.Kind == "comment":
		case left == nil:
			e, err := n.expr(ch, inner)
			if err != nil {
				return nil, err
			}
			left = e
		case op == "":
			op = operator(ch.Text)
		case right == nil:
			e, err := n.expr(ch, inner)
			if err != nil {
				return nil, err
			}
			right = e
		default:
			return nil, n.unsupported(ch, c)
		}
	}
	if left == nil || op == "" {
		return nil, n.unsupported(c, ctx.parent)
	}
	if right == nil {
		n.point("repair", "binary expression without right operand")
		return &ir.UnaryExpression{Operator: op, Expression: left}, nil
	}
	return &ir.BinaryExpression{Operator: op, Left: left, Right: right}, nil
}

func (n *normalizer) unary(c *cst.Node, ctx env) (ir.Node, error) {
	if len(c.Children) != 2 {
		return nil, n.unsupported(c, ctx.parent)
	}
	e, err := n.expr(c.Children[1], ctx.in(c))
	if err != nil {
		return nil, err
	}
	return &ir.UnaryExpression{Operator: operator(c.Children[0].Text), Expression: e}, nil
}

func (n *normalizer) update(c *cst.Node, ctx env) (ir.Node, error) {
	if len(c.Children) != 2 {
		return nil, n.unsupported(c, ctx.parent)
	}
	first, second := c.Children[0], c.Children[1]
	postfix := second.Kind == "++" || second.Kind == "--"
	op, target := first, second
	if postfix {
		op, target = second, first
	}
	e, err := n.expr(target, ctx.in(c))
	if err != nil {
		return nil, err
	}
	return &ir.UpdateExpression{Operator: op.Text, Expression: e, IsPostfix: postfix}, nil
}

func (n *normalizer) conditional(c *cst.Node, ctx env) (ir.Node, error) {
	var parts []ir.Node
	for _, ch := range c.Children {
		if ch.Kind == "?" || ch.Kind == ":" || ch.Kind == "comment" {
			continue
		}
		if len(parts) == 3 {
			return nil, n.unsupported(ch, c)
		}
		e, err := n.expr(ch, ctx.in(c))
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
	}
	if len(parts) != 3 {
		return nil, n.unsupported(c, ctx.parent)
	}
	return &ir.ConditionalExpression{Test: parts[0], Success: parts[1], Failure: parts[2]}, nil
}

func (n *normalizer) assignment(c *cst.Node, ctx env) (ir.Node, error) {
	if len(c.Children) != 3 {
		return nil, n.unsupported(c, ctx.parent)
	}
	inner := ctx.in(c)
	left, err := n.expr(c.Children[0], inner)
	if err != nil {
		return nil, err
	}
	right, err := n.initializer(c.Children[2], "", inner)
	if err != nil {
		return nil, err
	}
	return &ir.AssignmentExpression{Left: left, Operator: operator(c.Children[1].Text), Right: right}, nil
}

func (n *normalizer) call(c *cst.Node, ctx env) (ir.Node, error) {
	if len(c.Children) != 2 || c.Children[1].Kind != "argument_list" {
		return nil, n.unsupported(c, ctx.parent)
	}
	fn, list := c.Children[0], c.Children[1]
	inner := ctx.in(c)
	args, err := n.arguments(list, inner)
	if err != nil {
		return nil, err
	}
	if fn.Kind == "template_function" {
		name := fn.FirstOf("identifier")
		if name != nil && castTemplates[name.Text] && len(args) == 1 {
			return args[0], nil
		}
		return nil, n.unsupported(fn, c)
	}
	object, err := n.expr(fn, inner)
	if err != nil {
		return nil, err
	}
	return &ir.CallExpression{Object: object, Args: args}, nil
}

func (n *normalizer) arguments(c *cst.Node, ctx env) ([]ir.Node, error) {
	args := []ir.Node{}
	for _, ch := range c.Children {
		if ch.Kind == "(" || ch.Kind == ")" || ch.Kind == "," || ch.Kind == "comment" {
			continue
		}
		e, err := n.expr(ch, ctx.in(c))
		if err != nil {
			return nil, err
		}
		args = append(args, e)
	}
	return args, nil
}

func (n *normalizer) arrayLiteral(c *cst.Node, ctx env) (*ir.ArrayLiteral, error) {
	lit := &ir.ArrayLiteral{Elements: []ir.Node{}}
	for _, ch := range c.Children {
		if ch.Kind == "{" || ch.Kind == "}" || ch.Kind == "," || ch.Kind == "comment" {
			continue
		}
		e, err := n.expr(ch, ctx.in(c))
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, e)
	}
	return lit, nil
}

// path flattens member and index chains into a single Path, splicing any
// Path produced for the base expression.
func (n *normalizer) path(c *cst.Node, ctx env) (ir.Node, error) {
	if len(c.Children) == 0 {
		return nil, n.unsupported(c, ctx.parent)
	}
	inner := ctx.in(c)
	base, err := n.expr(c.Children[0], inner)
	if err != nil {
		return nil, err
	}
	var steps []ir.Node
	if p, ok := base.(*ir.Path); ok {
		steps = slices.Clone(p.Steps)
	} else {
		steps = []ir.Node{base}
	}

	switch c.Kind {
	case "field_expression":
		field := c.Child(len(c.Children) - 1)
		if len(c.Children) != 3 || (field.Kind != "field_identifier" && field.Kind != "identifier") {
			return nil, n.unsupported(field, c)
		}
		steps = append(steps, &ir.Reference{Name: field.Text})
	case "subscript_expression":
		var idx ir.Node
		if list := c.FirstOf("subscript_argument_list"); list != nil {
			idx, err = n.single(list, inner)
		} else {
			idx, err = n.single(&cst.Node{Kind: c.Kind, Children: c.Children[1:], Span: c.Span}, ctx)
		}
		if err != nil {
			return nil, err
		}
		steps = append(steps, &ir.IndexStep{Expression: idx})
	}
	return &ir.Path{Steps: steps}, nil
}
