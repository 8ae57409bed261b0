package testkit

import (
	"strings"
	"testing"

	"cppts/internal/cst"
	"cppts/internal/source"
)

func TestParsedTreesKeepSpanInvariants(t *testing.T) {
	inputs := []string{
		"int x = 1;\n",
		"namespace a { namespace b { double f(double v) { return v * 2.0; } } }\n",
		"struct P { int x; int y; int sum() { return x + y; } };\n",
		"int g() { int s = 0; for (int i = 0; i < 3; i++) { s += i; } return s; }\n",
		"int broken( { return ; \n",
		"const char* s = \"héllo\" \"wörld\";\n",
	}
	p, err := cst.NewParser()
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	defer p.Close()

	for _, in := range inputs {
		fs := source.NewFileSet()
		id := fs.AddVirtual("t.cpp", []byte(in))
		root, err := p.Parse(fs.Get(id))
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if err := CheckSpanInvariants(root, fs.Get(id)); err != nil {
			t.Fatalf("%q: %v\n%s", in, err, cst.Dump(root))
		}
	}
}

func TestCheckSpanInvariantsRejectsBadTrees(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cpp", []byte("ab"))
	file := fs.Get(id)

	leaf := func(kind string, start, end uint32, text string) *cst.Node {
		return &cst.Node{Kind: kind, Text: text, Span: source.Span{File: id, Start: start, End: end}}
	}
	cases := []struct {
		name string
		root *cst.Node
		want string
	}{
		{"out of content", leaf("x", 0, 5, "ab"), "outside content"},
		{"text mismatch", leaf("x", 0, 1, "b"), "does not match"},
		{"child outside", &cst.Node{Kind: "p", Span: source.Span{File: id, Start: 0, End: 1},
			Children: []*cst.Node{leaf("x", 0, 2, "ab")}}, "outside parent"},
		{"overlap", &cst.Node{Kind: "p", Span: source.Span{File: id, Start: 0, End: 2},
			Children: []*cst.Node{leaf("x", 0, 2, "ab"), leaf("y", 1, 2, "b")}}, "overlaps"},
		{"wrong file", leaf("x", 0, 1, "a"), ""},
	}
	cases[4].root.Span.File = id + 1
	cases[4].want = "different file"

	for _, tc := range cases {
		err := CheckSpanInvariants(tc.root, file)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: want error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}
