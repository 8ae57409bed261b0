package cst

import (
	"testing"

	"cppts/internal/source"
)

func parseString(t *testing.T, src string) *Node {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.cpp", []byte(src))
	p, err := NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	defer p.Close()
	root, err := p.Parse(fs.Get(id))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestParseSimpleDeclaration(t *testing.T) {
	root := parseString(t, "int x = 1;\n")
	if root.Kind != RootKind {
		t.Fatalf("root kind = %q", root.Kind)
	}
	decl := root.FirstOf("declaration")
	if decl == nil {
		t.Fatalf("no declaration in:\n%s", Dump(root))
	}
	init := decl.FirstOf("init_declarator")
	if init == nil {
		t.Fatalf("no init_declarator in:\n%s", Dump(decl))
	}
	if id := init.FirstOf("identifier"); id == nil || id.Text != "x" {
		t.Fatalf("identifier mismatch in:\n%s", Dump(init))
	}
	if num := init.FirstOf("number_literal"); num == nil || num.Text != "1" {
		t.Fatalf("number mismatch in:\n%s", Dump(init))
	}
	if !decl.Has(";") {
		t.Fatalf("punctuation token not kept:\n%s", Dump(decl))
	}
	if decl.Span.Start != 0 || decl.Span.End != 10 {
		t.Fatalf("declaration span = %v", decl.Span)
	}
}

func TestParseKeepsErrorNodes(t *testing.T) {
	root := parseString(t, "int x = ;;;@@\n")
	found := false
	Walk(root, func(n *Node) bool {
		if n.Kind == "ERROR" {
			found = true
		}
		return true
	})
	if !found {
		t.Fatalf("expected an ERROR node in:\n%s", Dump(root))
	}
}
