package emit

import (
	"strconv"
	"strings"

	"cppts/internal/ir"
)

func (r *Renderer) emit(st State, lines ...string) error {
	st.Module.Append(st.Body, lines...)
	return nil
}

func renderBinary(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.BinaryExpression)
	left, err := r.lines(st, e.Left)
	if err != nil {
		return err
	}
	right, err := r.lines(st, e.Right)
	if err != nil {
		return err
	}
	return r.emit(st, concat(left, " "+e.Operator+" ", right)...)
}

func renderUnary(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.UnaryExpression)
	operand, err := r.lines(st, e.Expression)
	if err != nil {
		return err
	}
	return r.emit(st, prefixed(e.Operator, operand)...)
}

// prefixed glues a prefix operator onto its operand, separating the two when
// they would otherwise fuse into a different token ("- -x" is not "--x").
func prefixed(op string, operand []string) []string {
	if op != "" && len(operand) > 0 && operand[0] != "" {
		last, first := op[len(op)-1], operand[0][0]
		if (last == '-' || last == '+') && first == last {
			op += " "
		}
	}
	return glue(op, operand, "")
}

func renderUpdate(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.UpdateExpression)
	operand, err := r.lines(st, e.Expression)
	if err != nil {
		return err
	}
	if e.IsPostfix {
		return r.emit(st, glue("", operand, e.Operator)...)
	}
	return r.emit(st, prefixed(e.Operator, operand)...)
}

// renderConditional puts each branch on its own line under the test; lines
// after the first of a branch nest two levels deep.
func renderConditional(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.ConditionalExpression)
	test, err := r.lines(st, e.Test)
	if err != nil {
		return err
	}
	success, err := r.lines(st, e.Success)
	if err != nil {
		return err
	}
	failure, err := r.lines(st, e.Failure)
	if err != nil {
		return err
	}
	out := append([]string{}, test...)
	out = append(out, branch("? ", success)...)
	out = append(out, branch(": ", failure)...)
	return r.emit(st, out...)
}

func branch(marker string, lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := []string{indentUnit + marker + lines[0]}
	return append(out, indent(lines[1:], 2)...)
}

func renderAssignment(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.AssignmentExpression)
	left, err := r.lines(st, e.Left)
	if err != nil {
		return err
	}
	right, err := r.lines(st, e.Right)
	if err != nil {
		return err
	}
	return r.emit(st, concat(left, " "+e.Operator+" ", right)...)
}

// items renders each node into its own scratch buffer.
func (r *Renderer) items(st State, nodes []ir.Node) ([][]string, error) {
	out := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		lines, err := r.lines(st, n)
		if err != nil {
			return nil, err
		}
		out = append(out, lines)
	}
	return out, nil
}

func renderCall(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.CallExpression)
	object, err := r.lines(st, e.Object)
	if err != nil {
		return err
	}
	args, err := r.items(st, e.Args)
	if err != nil {
		return err
	}
	return r.emit(st, list(object, "(", args, ")")...)
}

// renderNew renders constructor-style initialization against the mapped
// type: scalars keep their argument and sequences become sized arrays.
func renderNew(r *Renderer, st State, n ir.Node) error {
	e := n.(*ir.NewExpression)
	args, err := r.items(st, e.Args)
	if err != nil {
		return err
	}
	typ := r.types.Map(e.Type)
	switch {
	case typ == "" || typ == "number" || typ == "boolean" || typ == "string":
		return r.emit(st, scalarValue(typ, args)...)
	case strings.HasSuffix(typ, "[]"):
		if len(args) == 0 {
			return r.emit(st, "[]")
		}
		out := list([]string{"new Array<" + strings.TrimSuffix(typ, "[]") + ">"}, "(", args[:1], ")")
		if len(args) > 1 {
			out = list(out, ".fill(", args[1:2], ")")
		}
		return r.emit(st, out...)
	}
	return r.emit(st, list([]string{"new " + typ}, "(", args, ")")...)
}

// scalarValue picks the value a scalar constructor call produces. string(n, c)
// repeats c n times.
func scalarValue(typ string, args [][]string) []string {
	switch {
	case typ == "string" && len(args) == 2:
		return concat(args[1], ".repeat(", glue("", args[0], ")"))
	case len(args) > 0:
		return args[0]
	}
	switch typ {
	case "boolean":
		return []string{"false"}
	case "string":
		return []string{`""`}
	}
	return []string{"0"}
}

func renderArray(r *Renderer, st State, n ir.Node) error {
	elems, err := r.items(st, n.(*ir.ArrayLiteral).Elements)
	if err != nil {
		return err
	}
	return r.emit(st, list(nil, "[", elems, "]")...)
}

// renderPath joins steps left to right: references after the first get a
// dot, index steps are bracketed with no separator.
func renderPath(r *Renderer, st State, n ir.Node) error {
	var out []string
	for i, step := range n.(*ir.Path).Steps {
		switch s := step.(type) {
		case *ir.Reference:
			if i == 0 {
				out = []string{s.Name}
			} else {
				out = glue("", out, "."+s.Name)
			}
		case *ir.IndexStep:
			idx, err := r.lines(st, s.Expression)
			if err != nil {
				return err
			}
			out = concat(out, "[", glue("", idx, "]"))
		default:
			lines, err := r.lines(st, step)
			if err != nil {
				return err
			}
			if i == 0 {
				out = lines
			} else {
				out = concat(out, ".", lines)
			}
		}
	}
	return r.emit(st, out...)
}

func renderIndexStep(r *Renderer, st State, n ir.Node) error {
	idx, err := r.lines(st, n.(*ir.IndexStep).Expression)
	if err != nil {
		return err
	}
	return r.emit(st, glue("[", idx, "]")...)
}

func renderReference(r *Renderer, st State, n ir.Node) error {
	return r.emit(st, n.(*ir.Reference).Name)
}

func renderNumber(r *Renderer, st State, n ir.Node) error {
	return r.emit(st, FormatNumber(n.(*ir.NumberLiteral).Value))
}

func renderBoolean(r *Renderer, st State, n ir.Node) error {
	return r.emit(st, strconv.FormatBool(n.(*ir.BooleanLiteral).Value))
}

func renderString(r *Renderer, st State, n ir.Node) error {
	return r.emit(st, n.(*ir.StringLiteral).Value)
}

func renderUserDefined(r *Renderer, st State, n ir.Node) error {
	return r.emit(st, n.(*ir.UserDefinedLiteral).Text)
}

func renderNull(r *Renderer, st State, _ ir.Node) error {
	return r.emit(st, "null")
}

func renderParenthesized(r *Renderer, st State, n ir.Node) error {
	inner, err := r.lines(st, n.(*ir.ParenthesizedExpression).Value)
	if err != nil {
		return err
	}
	return r.emit(st, glue("(", inner, ")")...)
}
