package emit

import (
	"errors"
	"strings"
	"testing"

	"cppts/internal/ir"
)

func render(t *testing.T, nodes ...ir.Node) string {
	t.Helper()
	out, err := New(Options{}).File(nodes)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	return out
}

func ref(name string) *ir.Reference { return &ir.Reference{Name: name} }

func num(v string) *ir.NumberLiteral { return &ir.NumberLiteral{Value: v} }

func call(name string, args ...ir.Node) *ir.CallExpression {
	return &ir.CallExpression{Object: ref(name), Args: args}
}

func fn(name string, body ...ir.Node) *ir.FunctionDefinition {
	return &ir.FunctionDefinition{Name: name, ReturnType: "void", Body: body}
}

func assertText(t *testing.T, got, want string) {
	t.Helper()
	if got != want {
		t.Fatalf("rendered text mismatch\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestEveryKindHasRenderer(t *testing.T) {
	for _, k := range ir.AllKinds() {
		if !Supports(k) {
			t.Errorf("%s has no renderer", k)
		}
	}
	if Supports(ir.KindCount) {
		t.Fatalf("KindCount must not be supported")
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[string]string{
		".5":    "0.5",
		"5":     "5",
		"3.14":  "3.14",
		"1.5f":  "1.5",
		"10UL":  "10",
		"0xFFu": "0xFF",
		"0x1f":  "0x1f",
		"1'000": "1000",
		".25L":  "0.25",
		"1e-3":  "1e-3",
	}
	for in, want := range tests {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNamespaceDeclarationKeepsFlattenedName(t *testing.T) {
	got := render(t,
		&ir.Namespace{Name: "N", Items: []ir.Node{
			&ir.Declaration{Declarators: []ir.Declarator{{Name: "N_x", Type: "int"}}},
		}},
		&ir.Declaration{Declarators: []ir.Declarator{{Name: "y", Type: "int"}}},
	)
	assertText(t, got, "let N_x: number;\nlet y: number;")
	if strings.Count(got, "N_x") != 1 {
		t.Fatalf("N_x should appear exactly once:\n%s", got)
	}
}

func TestDeclarationForms(t *testing.T) {
	got := render(t,
		&ir.Declaration{Const: true, Declarators: []ir.Declarator{{Name: "A_PI", Type: "ld", Init: num("3.14")}}},
		&ir.Declaration{Extern: true, Declarators: []ir.Declarator{{Name: "cgclass", Type: "eGeometryClass"}}},
		&ir.Declaration{Declarators: []ir.Declarator{
			{Name: "v", Type: "int[]", Init: &ir.ArrayLiteral{Elements: []ir.Node{num("1"), num(".5")}}},
			{Name: "a", Type: "auto", Init: ref("b")},
		}},
		&ir.TypeAlias{Name: "ld", Type: "long double"},
	)
	want := strings.Join([]string{
		"const A_PI: number = 3.14;",
		"declare let cgclass: eGeometryClass;",
		"let v: number[] = [1, 0.5];",
		"let a = b;",
		"type ld = number;",
	}, "\n")
	assertText(t, got, want)
}

func TestIfElseChainRendersThreeBlocks(t *testing.T) {
	cond := &ir.BinaryExpression{Operator: "<", Left: ref("a"), Right: num("0")}
	got := render(t, fn("f", &ir.IfStatement{Choices: []ir.Choice{
		{Condition: cond, Statements: []ir.Node{call("g")}},
		{Condition: ref("b"), Statements: []ir.Node{call("h")}},
		{Statements: []ir.Node{&ir.ReturnStatement{}}},
	}}))
	want := strings.Join([]string{
		"function f(): void {",
		"  if (a < 0) {",
		"    g();",
		"  } else if (b) {",
		"    h();",
		"  } else {",
		"    return;",
		"  }",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestSwitchKeepsDefaultInPlace(t *testing.T) {
	got := render(t, fn("f", &ir.SwitchStatement{Condition: ref("k"), Statements: []ir.Node{
		&ir.CaseStatement{Test: ref("A"), Statements: []ir.Node{call("a")}},
		&ir.CaseStatement{IsDefault: true, Statements: []ir.Node{&ir.BreakStatement{}}},
		&ir.CaseStatement{Test: ref("B")},
	}}))
	want := strings.Join([]string{
		"function f(): void {",
		"  switch (k) {",
		"    case A:",
		"      a();",
		"    default:",
		"      break;",
		"    case B:",
		"  }",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestCallArgumentLayout(t *testing.T) {
	single := render(t, fn("f", call("g", ref("a"), ref("b"), ref("c"))))
	assertText(t, single, "function f(): void {\n  g(a, b, c);\n}")

	multi := render(t, fn("f", call("g",
		ref("a"),
		&ir.ConditionalExpression{Test: ref("t"), Success: num("1"), Failure: num("2")},
		ref("c"),
	)))
	want := strings.Join([]string{
		"function f(): void {",
		"  g(",
		"    a,",
		"    t",
		"      ? 1",
		"      : 2,",
		"    c",
		"  );",
		"}",
	}, "\n")
	assertText(t, multi, want)
}

func TestConditionalContinuationLines(t *testing.T) {
	nested := &ir.ConditionalExpression{Test: ref("u"), Success: num("1"), Failure: num("2")}
	got := render(t, fn("f", &ir.ReturnStatement{Statement: &ir.ConditionalExpression{
		Test: ref("t"), Success: nested, Failure: num("3"),
	}}))
	want := strings.Join([]string{
		"function f(): void {",
		"  return t",
		"    ? u",
		"        ? 1",
		"        : 2",
		"    : 3;",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestPathRendering(t *testing.T) {
	path := &ir.Path{Steps: []ir.Node{
		ref("a"), ref("b"), &ir.IndexStep{Expression: ref("i")}, ref("c"),
	}}
	got := render(t, fn("f", &ir.AssignmentExpression{Left: path, Operator: "+=", Right: num(".5")}))
	assertText(t, got, "function f(): void {\n  a.b[i].c += 0.5;\n}")
}

func TestLoops(t *testing.T) {
	got := render(t, fn("f",
		&ir.ForStatement{
			Init:   &ir.Declaration{Declarators: []ir.Declarator{{Name: "i", Type: "int", Init: num("0")}}},
			Test:   &ir.BinaryExpression{Operator: "<", Left: ref("i"), Right: ref("n")},
			Update: &ir.UpdateExpression{Operator: "++", Expression: ref("i"), IsPostfix: true},
			Body:   []ir.Node{&ir.ContinueStatement{}},
		},
		&ir.ForStatement{Body: []ir.Node{&ir.BreakStatement{}}},
		&ir.ForRangeStatement{Name: "c", Type: "auto", Range: ref("cells")},
		&ir.WhileStatement{Condition: ref("more"), Statements: []ir.Node{&ir.UpdateExpression{Operator: "--", Expression: ref("n")}}},
		&ir.DoStatement{Condition: ref("more"), Statements: []ir.Node{&ir.ThrowStatement{Expression: &ir.StringLiteral{Value: `"x"`}}}},
		&ir.Block{Statements: []ir.Node{&ir.UnaryExpression{Operator: "!", Expression: ref("ok")}}},
	))
	want := strings.Join([]string{
		"function f(): void {",
		"  for (let i: number = 0; i < n; i++) {",
		"    continue;",
		"  }",
		"  for (;;) {",
		"    break;",
		"  }",
		"  for (let c of cells) {",
		"  }",
		"  while (more) {",
		"    --n;",
		"  }",
		"  do {",
		`    throw "x";`,
		"  } while (more);",
		"  {",
		"    !ok;",
		"  }",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestForHeaderKeepsDeclaratorsTogether(t *testing.T) {
	got := render(t, fn("f",
		&ir.ForStatement{
			Init: &ir.Declaration{Declarators: []ir.Declarator{
				{Name: "i", Type: "int", Init: num("0")},
				{Name: "m", Type: "int", Init: ref("n")},
			}},
			Test:   &ir.BinaryExpression{Operator: "<", Left: ref("i"), Right: ref("m")},
			Update: &ir.UpdateExpression{Operator: "++", Expression: ref("i"), IsPostfix: true},
		},
		&ir.ForStatement{
			Init: &ir.Declaration{Const: true, Declarators: []ir.Declarator{
				{Name: "a", Type: "auto", Init: num("1")},
				{Name: "b", Type: "int"},
			}},
		},
	))
	want := strings.Join([]string{
		"function f(): void {",
		"  for (let i: number = 0, m: number = n; i < m; i++) {",
		"  }",
		"  for (let a = 1, b: number;;) {",
		"  }",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestPrefixOperatorsStaySeparate(t *testing.T) {
	unary := func(op string, e ir.Node) ir.Node { return &ir.UnaryExpression{Operator: op, Expression: e} }
	tests := []struct {
		in   ir.Node
		want string
	}{
		{unary("-", unary("-", ref("x"))), "- -x"},
		{unary("+", unary("+", ref("x"))), "+ +x"},
		{unary("-", &ir.UpdateExpression{Operator: "--", Expression: ref("x")}), "- --x"},
		{&ir.UpdateExpression{Operator: "++", Expression: unary("+", ref("x"))}, "++ +x"},
		{unary("-", ref("x")), "-x"},
		{unary("-", unary("+", ref("x"))), "-+x"},
		{unary("!", unary("!", ref("x"))), "!!x"},
	}
	for _, tt := range tests {
		got := render(t, fn("f", &ir.ReturnStatement{Statement: tt.in}))
		assertText(t, got, "function f(): void {\n  return "+tt.want+";\n}")
	}
}

func TestConstructorInitialization(t *testing.T) {
	decl := func(name, typ string, args ...ir.Node) ir.Node {
		return &ir.Declaration{Declarators: []ir.Declarator{{
			Name: name, Type: typ, Init: &ir.NewExpression{Type: typ, Args: args},
		}}}
	}
	got := render(t, fn("f",
		decl("p", "P", num("1"), ref("y")),
		decl("q", "hr::cell"),
		decl("v", "std::vector<int>", num("10")),
		decl("w", "vector<double>", num("3"), num(".5")),
		decl("e", "std::vector<int>"),
		decl("n", "int", num("5")),
		decl("s", "std::string", num("3"), &ir.StringLiteral{Value: "'a'"}),
		decl("z", "bool"),
	))
	want := strings.Join([]string{
		"function f(): void {",
		"  let p: P = new P(1, y);",
		"  let q: hr_cell = new hr_cell();",
		"  let v: number[] = new Array<number>(10);",
		"  let w: number[] = new Array<number>(3).fill(0.5);",
		"  let e: number[] = [];",
		"  let n: number = 5;",
		"  let s: string = 'a'.repeat(3);",
		"  let z: boolean = false;",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestClassAndEnum(t *testing.T) {
	this := func(name string) *ir.Path { return &ir.Path{Steps: []ir.Node{ref("this"), ref(name)}} }
	got := render(t,
		&ir.StructDefinition{Name: "P", Base: "Base", Members: []ir.Node{
			&ir.Declaration{Declarators: []ir.Declarator{{Name: "x", Type: "int", Init: num("1")}}},
			&ir.Declaration{Static: true, Const: true, Declarators: []ir.Declarator{{Name: "n", Type: "size_t"}}},
			&ir.FunctionDefinition{Name: "P", Parameters: []ir.Parameter{{Name: "v", Type: "int"}}, Body: []ir.Node{
				&ir.AssignmentExpression{Left: this("x"), Operator: "=", Right: ref("v")},
			}},
			&ir.FunctionDefinition{Name: "get", ReturnType: "int", Static: true, Parameters: []ir.Parameter{
				{Name: "d", Type: "double", Default: num(".5")},
			}, Body: []ir.Node{&ir.ReturnStatement{Statement: &ir.NullLiteral{}}}},
		}},
		&ir.EnumDefinition{Name: "eGeom", Members: []ir.EnumMember{{Name: "gEuclid"}, {Name: "gSphere", Value: num("2")}}},
	)
	want := strings.Join([]string{
		"class P extends Base {",
		"  x: number = 1;",
		"  static readonly n: number;",
		"  constructor(v: number) {",
		"    this.x = v;",
		"  }",
		"  static get(d: number = 0.5): number {",
		"    return null;",
		"  }",
		"}",
		"enum eGeom {",
		"  gEuclid,",
		"  gSphere = 2,",
		"}",
	}, "\n")
	assertText(t, got, want)
}

func TestTypeMapping(t *testing.T) {
	m := newTypeMapper(map[string]string{"hyperpoint": "Vec"})
	tests := map[string]string{
		"int":                   "number",
		"unsigned int":          "number",
		"const char*":           "string",
		"std::string":           "string",
		"bool":                  "boolean",
		"auto":                  "",
		"hyperpoint":            "Vec",
		"hyperpoint&":           "Vec",
		"int[]":                 "number[]",
		"std::vector<int>":      "number[]",
		"array<ld, MAXMDIM>":    "number[]",
		"map<int, std::string>": "map<number, string>",
		"hr::cell":              "hr_cell",
	}
	for in, want := range tests {
		if got := m.Map(in); got != want {
			t.Errorf("Map(%q) = %q, want %q", in, got, want)
		}
	}
}

// bogus borrows the unexported marker method from a real node.
type bogus struct{ ir.Reference }

func (*bogus) Kind() ir.Kind { return ir.KindCount }

func TestUnknownKindIsAnError(t *testing.T) {
	m := NewModule()
	err := New(Options{}).Render(State{Module: m, Body: m.Segment()}, &bogus{})
	var uc *UnsupportedConstruct
	if !errors.As(err, &uc) || uc.Kind != ir.KindCount {
		t.Fatalf("want UnsupportedConstruct, got %v", err)
	}
}
