package cst

import (
	"strings"
	"testing"
)

func TestBuildersAndDump(t *testing.T) {
	decl := N("declaration",
		T("primitive_type", "int"),
		N("init_declarator", Ident("x"), Tok("="), Num("1")),
		Tok(";"),
	)
	if decl.Text != "int x = 1 ;" {
		t.Fatalf("text = %q", decl.Text)
	}
	if got := decl.FirstOf("init_declarator"); got == nil || got.Child(0).Text != "x" {
		t.Fatalf("FirstOf(init_declarator) = %+v", got)
	}
	if decl.Has("comment") {
		t.Fatalf("unexpected comment child")
	}

	want := strings.Join([]string{
		"declaration",
		`  primitive_type "int"`,
		"  init_declarator",
		`    identifier "x"`,
		"    =",
		`    number_literal "1"`,
		"  ;",
		"",
	}, "\n")
	if got := Dump(decl); got != want {
		t.Fatalf("Dump mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	tree := N("translation_unit",
		N("namespace_definition", Tok("namespace"), T("namespace_identifier", "hr")),
		N("declaration", T("primitive_type", "int"), Ident("y"), Tok(";")),
	)
	var seen []string
	Walk(tree, func(n *Node) bool {
		seen = append(seen, n.Kind)
		return n.Kind != "namespace_definition"
	})
	want := "translation_unit namespace_definition declaration primitive_type identifier ;"
	if got := strings.Join(seen, " "); got != want {
		t.Fatalf("walk order:\nwant %s\ngot  %s", want, got)
	}
}
