package emit

import (
	"strings"

	"cppts/internal/ir"
)

// renderIf emits each choice once, in order: the first as `if`, later
// conditioned ones as `else if`, an unconditioned last one as `else`.
func renderIf(r *Renderer, st State, n ir.Node) error {
	stmt := n.(*ir.IfStatement)
	var out []string
	for i, choice := range stmt.Choices {
		var head []string
		switch {
		case choice.Condition == nil:
			head = []string{"} else {"}
		default:
			cond, err := r.lines(st, choice.Condition)
			if err != nil {
				return err
			}
			prefix := "if ("
			if i > 0 {
				prefix = "} else if ("
			}
			head = glue(prefix, cond, ") {")
		}
		body, err := r.body(st, choice.Statements)
		if err != nil {
			return err
		}
		out = append(out, head...)
		out = append(out, body...)
	}
	st.Module.Append(st.Body, append(out, "}")...)
	return nil
}

// forClause renders one header section of a for loop on a single line.
// A declaration keeps all of its declarators in one comma-joined binding.
func (r *Renderer) forClause(st State, n ir.Node) (string, error) {
	if n == nil {
		return "", nil
	}
	if decl, ok := n.(*ir.Declaration); ok {
		return r.declarationList(st, decl)
	}
	lines, err := r.lines(st, n)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(inline(lines), ";"), nil
}

func renderFor(r *Renderer, st State, n ir.Node) error {
	loop := n.(*ir.ForStatement)
	init, err := r.forClause(st, loop.Init)
	if err != nil {
		return err
	}
	test, err := r.forClause(st, loop.Test)
	if err != nil {
		return err
	}
	update, err := r.forClause(st, loop.Update)
	if err != nil {
		return err
	}
	head := "for (" + init + ";"
	if test != "" {
		head += " " + test
	}
	head += ";"
	if update != "" {
		head += " " + update
	}
	return r.block(st, []string{head + ") {"}, loop.Body, "}")
}

func renderForRange(r *Renderer, st State, n ir.Node) error {
	loop := n.(*ir.ForRangeStatement)
	rng, err := r.lines(st, loop.Range)
	if err != nil {
		return err
	}
	return r.block(st, glue("for (let "+loop.Name+" of ", rng, ") {"), loop.Body, "}")
}

func renderWhile(r *Renderer, st State, n ir.Node) error {
	loop := n.(*ir.WhileStatement)
	cond, err := r.lines(st, loop.Condition)
	if err != nil {
		return err
	}
	return r.block(st, glue("while (", cond, ") {"), loop.Statements, "}")
}

func renderDo(r *Renderer, st State, n ir.Node) error {
	loop := n.(*ir.DoStatement)
	cond, err := r.lines(st, loop.Condition)
	if err != nil {
		return err
	}
	body, err := r.body(st, loop.Statements)
	if err != nil {
		return err
	}
	st.Module.Append(st.Body, "do {")
	st.Module.Append(st.Body, body...)
	st.Module.Append(st.Body, glue("} while (", cond, ");")...)
	return nil
}

// renderSwitch keeps case order and adds no breaks; fallthrough is whatever
// the source had.
func renderSwitch(r *Renderer, st State, n ir.Node) error {
	sw := n.(*ir.SwitchStatement)
	cond, err := r.lines(st, sw.Condition)
	if err != nil {
		return err
	}
	return r.block(st, glue("switch (", cond, ") {"), sw.Statements, "}")
}

func renderCase(r *Renderer, st State, n ir.Node) error {
	cs := n.(*ir.CaseStatement)
	var head []string
	if cs.IsDefault {
		head = []string{"default:"}
	} else {
		test, err := r.lines(st, cs.Test)
		if err != nil {
			return err
		}
		head = glue("case ", test, ":")
	}
	body, err := r.body(st, cs.Statements)
	if err != nil {
		return err
	}
	st.Module.Append(st.Body, head...)
	st.Module.Append(st.Body, body...)
	return nil
}

func renderReturn(r *Renderer, st State, n ir.Node) error {
	ret := n.(*ir.ReturnStatement)
	if ret.Statement == nil {
		st.Module.Append(st.Body, "return;")
		return nil
	}
	value, err := r.lines(st, ret.Statement)
	if err != nil {
		return err
	}
	st.Module.Append(st.Body, glue("return ", value, ";")...)
	return nil
}

func renderThrow(r *Renderer, st State, n ir.Node) error {
	value, err := r.lines(st, n.(*ir.ThrowStatement).Expression)
	if err != nil {
		return err
	}
	st.Module.Append(st.Body, glue("throw ", value, ";")...)
	return nil
}

func renderBreak(_ *Renderer, st State, _ ir.Node) error {
	st.Module.Append(st.Body, "break;")
	return nil
}

func renderContinue(_ *Renderer, st State, _ ir.Node) error {
	st.Module.Append(st.Body, "continue;")
	return nil
}
