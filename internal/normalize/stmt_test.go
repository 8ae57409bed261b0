package normalize

import (
	"testing"

	"cppts/internal/cst"
	"cppts/internal/ir"
)

func cond(name string) *cst.Node {
	return cst.N("condition_clause", tok("("), cst.Ident(name), tok(")"))
}

func TestIfElseChainFlattens(t *testing.T) {
	inner := cst.N("if_statement", tok("if"), cond("b"), block(exprStmt(callNode("g"))),
		cst.N("else_clause", tok("else"), block(exprStmt(callNode("h")))))
	outer := cst.N("if_statement", tok("if"), cond("a"), block(exprStmt(callNode("f"))),
		cst.N("else_clause", tok("else"), inner))

	got := bodyOf(t, outer)
	want := []ir.Node{&ir.IfStatement{Choices: []ir.Choice{
		{Condition: ref("a"), Statements: []ir.Node{call("f")}},
		{Condition: ref("b"), Statements: []ir.Node{call("g")}},
		{Statements: []ir.Node{call("h")}},
	}}}
	assertTree(t, got, want)
}

func TestIfWithoutBracesAndBareElse(t *testing.T) {
	stmt := cst.N("if_statement", tok("if"), cond("a"), exprStmt(callNode("f")), tok("else"), exprStmt(callNode("g")))
	got := bodyOf(t, stmt)
	want := []ir.Node{&ir.IfStatement{Choices: []ir.Choice{
		{Condition: ref("a"), Statements: []ir.Node{call("f")}},
		{Statements: []ir.Node{call("g")}},
	}}}
	assertTree(t, got, want)
}

func TestSwitchKeepsCaseOrder(t *testing.T) {
	body := block(
		cst.N("case_statement", tok("case"), cst.Ident("A"), tok(":"), cst.N("break_statement", tok("break"), tok(";"))),
		cst.N("case_statement", tok("default"), tok(":"), exprStmt(callNode("f"))),
		cst.N("case_statement", tok("case"), cst.Ident("B"), tok(":")),
	)
	got := bodyOf(t, cst.N("switch_statement", tok("switch"), cond("k"), body))
	want := []ir.Node{&ir.SwitchStatement{Condition: ref("k"), Statements: []ir.Node{
		&ir.CaseStatement{Test: ref("A"), Statements: []ir.Node{&ir.BreakStatement{}}},
		&ir.CaseStatement{IsDefault: true, Statements: []ir.Node{call("f")}},
		&ir.CaseStatement{Test: ref("B")},
	}}}
	assertTree(t, got, want)
}

func TestForStatementSections(t *testing.T) {
	init := cst.N("declaration", cst.T("primitive_type", "int"),
		cst.N("init_declarator", cst.Ident("i"), tok("="), cst.Num("0")), tok(";"))
	test := cst.N("binary_expression", cst.Ident("i"), tok("<"), cst.Ident("n"))
	update := cst.N("update_expression", cst.Ident("i"), tok("++"))
	loop := cst.N("for_statement", tok("for"), tok("("), init, test, tok(";"), update, tok(")"),
		block(exprStmt(callNode("f", cst.Ident("i")))))

	got := bodyOf(t, loop)
	want := []ir.Node{&ir.ForStatement{
		Init: &ir.Declaration{Declarators: []ir.Declarator{{Name: "i", Type: "int", Init: &ir.NumberLiteral{Value: "0"}}}},
		Test: &ir.BinaryExpression{Operator: "<", Left: ref("i"), Right: ref("n")},
		Update: &ir.UpdateExpression{
			Operator: "++", Expression: ref("i"), IsPostfix: true,
		},
		Body: []ir.Node{call("f", ref("i"))},
	}}
	assertTree(t, got, want)

	empty := cst.N("for_statement", tok("for"), tok("("), tok(";"), tok(";"), tok(")"), cst.N("break_statement", tok("break"), tok(";")))
	got = bodyOf(t, empty)
	assertTree(t, got, []ir.Node{&ir.ForStatement{Body: []ir.Node{&ir.BreakStatement{}}}})
}

func TestLoops(t *testing.T) {
	rangeLoop := cst.N("for_range_loop", tok("for"), tok("("), cst.T("placeholder_type_specifier", "auto"),
		cst.N("reference_declarator", tok("&"), cst.Ident("c")), tok(":"), cst.Ident("cells"), tok(")"),
		block(exprStmt(callNode("visit", cst.Ident("c")))))
	whileLoop := cst.N("while_statement", tok("while"), cond("more"), cst.N("continue_statement", tok("continue"), tok(";")))
	doLoop := cst.N("do_statement", tok("do"), block(exprStmt(callNode("step"))), tok("while"),
		cst.N("parenthesized_expression", tok("("), cst.Ident("more"), tok(")")), tok(";"))

	got := bodyOf(t, rangeLoop, whileLoop, doLoop)
	want := []ir.Node{
		&ir.ForRangeStatement{Name: "c", Type: "auto", Range: ref("cells"), Body: []ir.Node{call("visit", ref("c"))}},
		&ir.WhileStatement{Condition: ref("more"), Statements: []ir.Node{&ir.ContinueStatement{}}},
		&ir.DoStatement{Condition: ref("more"), Statements: []ir.Node{call("step")}},
	}
	assertTree(t, got, want)
}

func TestReturnThrowAndBlocks(t *testing.T) {
	got := bodyOf(t,
		cst.N("return_statement", tok("return"), tok(";")),
		cst.N("throw_statement", tok("throw"), cst.T("string_literal", `"bad"`), tok(";")),
		block(exprStmt(callNode("f"))),
		tok(";"),
	)
	want := []ir.Node{
		&ir.ReturnStatement{},
		&ir.ThrowStatement{Expression: &ir.StringLiteral{Value: `"bad"`}},
		&ir.Block{Statements: []ir.Node{call("f")}},
	}
	assertTree(t, got, want)

	_, err := File(t.Context(), unit(voidFunc("f", cst.N("throw_statement", tok("throw"), tok(";")))), Options{})
	assertUnsupported(t, err, "throw_statement", "compound_statement")
}
