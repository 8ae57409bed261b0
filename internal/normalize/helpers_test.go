package normalize

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"cppts/internal/cst"
	"cppts/internal/ir"
)

func tok(kind string) *cst.Node { return cst.T(kind, "") }

func unit(items ...any) *cst.Node { return cst.N(cst.RootKind, items...) }

func block(stmts ...any) *cst.Node {
	children := append([]any{tok("{")}, stmts...)
	return cst.N("compound_statement", append(children, tok("}"))...)
}

func exprStmt(e *cst.Node) *cst.Node { return cst.N("expression_statement", e, tok(";")) }

func callNode(name string, args ...*cst.Node) *cst.Node {
	list := []any{tok("(")}
	for i, a := range args {
		if i > 0 {
			list = append(list, tok(","))
		}
		list = append(list, a)
	}
	list = append(list, tok(")"))
	return cst.N("call_expression", cst.Ident(name), cst.N("argument_list", list...))
}

// voidFunc builds `void name() { stmts }`.
func voidFunc(name string, stmts ...any) *cst.Node {
	return cst.N("function_definition",
		cst.T("primitive_type", "void"),
		cst.N("function_declarator", cst.Ident(name), cst.N("parameter_list", tok("("), tok(")"))),
		block(stmts...),
	)
}

func intDecl(name string) *cst.Node {
	return cst.N("declaration", cst.T("primitive_type", "int"), cst.Ident(name), tok(";"))
}

func ret(e *cst.Node) *cst.Node { return cst.N("return_statement", tok("return"), e, tok(";")) }

func call(name string, args ...ir.Node) *ir.CallExpression {
	if args == nil {
		args = []ir.Node{}
	}
	return &ir.CallExpression{Object: &ir.Reference{Name: name}, Args: args}
}

func ref(name string) *ir.Reference { return &ir.Reference{Name: name} }

func mustFile(t *testing.T, root *cst.Node, opts Options) []ir.Node {
	t.Helper()
	got, err := File(context.Background(), root, opts)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	return got
}

// bodyOf normalizes stmts inside `void f() { ... }` and returns the body.
func bodyOf(t *testing.T, stmts ...any) []ir.Node {
	t.Helper()
	got := mustFile(t, unit(voidFunc("f", stmts...)), Options{})
	if len(got) != 1 {
		t.Fatalf("want one function, got %d nodes", len(got))
	}
	return got[0].(*ir.FunctionDefinition).Body
}

func assertTree(t *testing.T, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		gotDump, _ := dumpAny(got)
		wantDump, _ := dumpAny(want)
		t.Fatalf("tree mismatch\nwant:\n%s\ngot:\n%s", wantDump, gotDump)
	}
}

func dumpAny(v any) (string, error) {
	switch x := v.(type) {
	case []ir.Node:
		out, err := ir.Dump(x)
		return string(out), err
	case ir.Node:
		out, err := ir.Dump([]ir.Node{x})
		return string(out), err
	}
	return "", errors.New("not a tree")
}

func assertUnsupported(t *testing.T, err error, nodeKind, contextKind string) {
	t.Helper()
	var uc *UnsupportedConstruct
	if !errors.As(err, &uc) {
		t.Fatalf("want *UnsupportedConstruct, got %v", err)
	}
	if uc.NodeKind != nodeKind || uc.ContextKind != contextKind {
		t.Fatalf("want {%s, %s}, got {%s, %s}", nodeKind, contextKind, uc.NodeKind, uc.ContextKind)
	}
}
