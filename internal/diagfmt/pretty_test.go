package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"cppts/internal/diag"
	"cppts/internal/source"
)

func TestPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/test.cpp", []byte("auto f = [](){};\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(
		diag.CnvUnsupportedConstruct,
		source.Span{File: fileID, Start: 9, End: 15},
		`unsupported construct "lambda_expression" in "init_declarator"`,
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.cpp:1:10"},
		{name: "Relative path", mode: PathModeRelative, contains: "\nsrc/test.cpp:1:10"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.cpp:1:10"},
		{name: "Auto under base", mode: PathModeAuto, contains: "src/test.cpp:1:10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			output := "\n" + buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR CNV3001:") {
				t.Errorf("Expected severity and code in output, got:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretUnderline(t *testing.T) {
	fs := source.NewFileSetWithBase("/p")
	content := []byte("int a;\nauto s = \"日本\" + x;\nint b;\n")
	fileID := fs.AddVirtual("/p/a.cpp", content)

	start := uint32(strings.Index(string(content), "x;"))
	bag := diag.NewBag(2)
	d := diag.NewWarning(diag.CnvUnsupportedConstruct, source.Span{File: fileID, Start: start, End: start + 1}, "here").
		WithNote(source.Span{File: fileID, Start: 0, End: 3}, "declared here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeRelative, ShowNotes: true})

	want := "a.cpp:2:21: WARNING CNV3001: here\n" +
		"1 | int a;\n" +
		"2 | auto s = \"日本\" + x;\n" +
		" | " + strings.Repeat(" ", 18) + "^\n" +
		"3 | int b;\n" +
		"  note: a.cpp:1:1: declared here\n"
	if got := buf.String(); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyMultiLineSpanUnderlinesToEndOfLine(t *testing.T) {
	fs := source.NewFileSetWithBase("/p")
	fileID := fs.AddVirtual("/p/b.cpp", []byte("f(a,\n  b);\n"))

	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.CnvUnsupportedConstruct, source.Span{File: fileID, Start: 1, End: 9}, "call"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if !strings.Contains(buf.String(), "\n |  ^~~\n") {
		t.Fatalf("unexpected underline:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	fs := source.NewFileSetWithBase("/p")
	fileID := fs.AddVirtual("/p/a.cpp", []byte("int a;\n"))

	bag := diag.NewBag(3)
	bag.Add(diag.NewError(diag.CnvUnsupportedConstruct, source.Span{File: fileID, Start: 4, End: 5}, "first"))
	bag.Add(diag.NewWarning(diag.FmtLineTooLong, source.Span{File: fileID, Start: 0, End: 6}, "second").
		WithNote(source.Span{File: fileID, Start: 0, End: 1}, "n"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, Max: 1})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("expected Max to truncate to 1, got %d", out.Count)
	}
	got := out.Diagnostics[0]
	if got.Code != "CNV3001" || got.Location.File != "a.cpp" || got.Location.StartCol != 5 {
		t.Fatalf("unexpected diagnostic %+v", got)
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	if strings.Contains(buf.String(), "start_line") || strings.Contains(buf.String(), "notes") {
		t.Fatalf("positions and notes should be omitted:\n%s", buf.String())
	}
}
