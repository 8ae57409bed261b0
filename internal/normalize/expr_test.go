package normalize

import (
	"testing"

	"cppts/internal/cst"
	"cppts/internal/ir"
)

func exprOf(t *testing.T, e *cst.Node) ir.Node {
	t.Helper()
	body := bodyOf(t, exprStmt(e))
	if len(body) != 1 {
		t.Fatalf("want one statement, got %d", len(body))
	}
	return body[0]
}

func TestPathFlattening(t *testing.T) {
	ab := cst.N("field_expression", cst.Ident("a"), tok("."), cst.T("field_identifier", "b"))
	abi := cst.N("subscript_expression", ab, cst.N("subscript_argument_list", tok("["), cst.Ident("i"), tok("]")))
	abic := cst.N("field_expression", abi, tok("->"), cst.T("field_identifier", "c"))

	want := &ir.Path{Steps: []ir.Node{ref("a"), ref("b"), &ir.IndexStep{Expression: ref("i")}, ref("c")}}
	assertTree(t, exprOf(t, abic), want)

	legacy := cst.N("subscript_expression", cst.Ident("v"), tok("["), cst.Num("0"), tok("]"))
	assertTree(t, exprOf(t, legacy), &ir.Path{Steps: []ir.Node{ref("v"), &ir.IndexStep{Expression: &ir.NumberLiteral{Value: "0"}}}})
}

func TestBinaryWithMissingRightOperand(t *testing.T) {
	got := exprOf(t, cst.N("binary_expression", cst.Ident("a"), tok("-")))
	assertTree(t, got, &ir.UnaryExpression{Operator: "-", Expression: ref("a")})
}

func TestOperatorsAndLiterals(t *testing.T) {
	tests := []struct {
		name string
		in   *cst.Node
		want ir.Node
	}{
		{
			"alternative and",
			cst.N("binary_expression", cst.Ident("a"), tok("and"), cst.N("unary_expression", tok("not"), cst.Ident("b"))),
			&ir.BinaryExpression{Operator: "&&", Left: ref("a"), Right: &ir.UnaryExpression{Operator: "!", Expression: ref("b")}},
		},
		{
			"prefix update",
			cst.N("update_expression", tok("--"), cst.Ident("n")),
			&ir.UpdateExpression{Operator: "--", Expression: ref("n")},
		},
		{
			"compound assignment",
			cst.N("assignment_expression", cst.Ident("s"), tok("+="), cst.Num("1.5f")),
			&ir.AssignmentExpression{Left: ref("s"), Operator: "+=", Right: &ir.NumberLiteral{Value: "1.5f"}},
		},
		{
			"conditional",
			cst.N("conditional_expression", cst.Ident("c"), tok("?"), tok("true"), tok(":"), tok("nullptr")),
			&ir.ConditionalExpression{Test: ref("c"), Success: &ir.BooleanLiteral{Value: true}, Failure: &ir.NullLiteral{}},
		},
		{
			"cast is transparent",
			cst.N("cast_expression", tok("("), cst.N("type_descriptor", cst.T("primitive_type", "int")), tok(")"), cst.Ident("x")),
			ref("x"),
		},
		{
			"static_cast is transparent",
			cst.N("call_expression",
				cst.N("template_function", cst.Ident("static_cast"), cst.N("template_argument_list", tok("<"), cst.N("type_descriptor", cst.T("primitive_type", "int")), tok(">"))),
				cst.N("argument_list", tok("("), cst.Ident("x"), tok(")"))),
			ref("x"),
		},
		{
			"dereference is transparent",
			cst.N("pointer_expression", tok("*"), cst.Ident("p")),
			ref("p"),
		},
		{
			"concatenated strings",
			cst.N("concatenated_string", cst.T("string_literal", `"a"`), cst.T("string_literal", `"b"`), cst.T("string_literal", `"c"`)),
			&ir.BinaryExpression{
				Operator: "+",
				Left:     &ir.BinaryExpression{Operator: "+", Left: &ir.StringLiteral{Value: `"a"`}, Right: &ir.StringLiteral{Value: `"b"`}},
				Right:    &ir.StringLiteral{Value: `"c"`},
			},
		},
		{
			"qualified identifier drops std",
			cst.N("call_expression",
				cst.N("qualified_identifier", cst.T("namespace_identifier", "std"), tok("::"), cst.Ident("max")),
				cst.N("argument_list", tok("("), cst.Ident("a"), tok(","), cst.Ident("b"), tok(")"))),
			&ir.CallExpression{Object: ref("max"), Args: []ir.Node{ref("a"), ref("b")}},
		},
		{
			"user defined literal and parentheses",
			cst.N("parenthesized_expression", tok("("), cst.N("user_defined_literal", cst.Num("90"), cst.T("literal_suffix", "_deg")), tok(")")),
			&ir.ParenthesizedExpression{Value: &ir.UserDefinedLiteral{Text: "90 _deg"}},
		},
		{
			"this member",
			cst.N("field_expression", tok("this"), tok("->"), cst.T("field_identifier", "tab")),
			&ir.Path{Steps: []ir.Node{ref("this"), ref("tab")}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTree(t, exprOf(t, tt.in), tt.want)
		})
	}
}

func TestUnsupportedTemplateCall(t *testing.T) {
	generic := cst.N("call_expression",
		cst.N("template_function", cst.Ident("make"), cst.N("template_argument_list", tok("<"), tok(">"))),
		cst.N("argument_list", tok("("), tok(")")))
	_, err := File(t.Context(), unit(voidFunc("f", exprStmt(generic))), Options{})
	assertUnsupported(t, err, "template_function", "call_expression")
}

func TestStringLiteralEncodings(t *testing.T) {
	str := func(v string) *ir.StringLiteral { return &ir.StringLiteral{Value: v} }
	tests := []struct {
		kind, text string
		want       ir.Node
	}{
		{"string_literal", `"plain"`, str(`"plain"`)},
		{"string_literal", `u8"hi"`, str(`"hi"`)},
		{"string_literal", `L"wide"`, str(`"wide"`)},
		{"string_literal", `u"x"`, str(`"x"`)},
		{"char_literal", `U'c'`, str(`'c'`)},
		{"raw_string_literal", `R"(a\b)"`, str(`"a\\b"`)},
		{"raw_string_literal", `u8R"xy(say "hi")xy"`, str(`"say \"hi\""`)},
		{"raw_string_literal", "R\"(one\ntwo)\"", str(`"one\ntwo"`)},
		{"raw_string_literal", `R"()"`, str(`""`)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assertTree(t, exprOf(t, cst.T(tt.kind, tt.text)), tt.want)
		})
	}

	joined := cst.N("concatenated_string", cst.T("string_literal", `L"a"`), cst.T("raw_string_literal", `R"(b")"`))
	assertTree(t, exprOf(t, joined), &ir.BinaryExpression{Operator: "+", Left: str(`"a"`), Right: str(`"b\""`)})
}

func TestMismatchedRawStringDelimiter(t *testing.T) {
	_, err := File(t.Context(), unit(voidFunc("f", exprStmt(cst.T("raw_string_literal", `R"ab(x)"`)))), Options{})
	assertUnsupported(t, err, "raw_string_literal", "expression_statement")
}
