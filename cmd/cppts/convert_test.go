package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cppts/internal/driver"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiModeAuto},
		{"auto", uiModeAuto},
		{" ON ", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %d, want %d", tc.input, got, tc.want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected an error for an unknown mode")
	}
	if shouldUseTUI(uiModeAuto, 1) {
		t.Fatalf("a single file never needs the progress view")
	}
}

func TestPrintOutputsSkipsFailedFiles(t *testing.T) {
	files := []driver.FileResult{
		{Path: "a.cpp", Output: "let a: number;\n"},
		{Path: "b.cpp", Failed: true},
		{Path: "c.cpp", Output: "let c: number;\n"},
	}
	var sb strings.Builder
	if err := printOutputs(&sb, files); err != nil {
		t.Fatal(err)
	}
	want := "// a.cpp\nlet a: number;\n// c.cpp\nlet c: number;\n"
	if sb.String() != want {
		t.Fatalf("want %q, got %q", want, sb.String())
	}
}

func TestLoadManifestExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	if err := os.WriteFile(path, []byte("[convert]\nout_dir = \"gen\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := loadManifest(path, "ignored.cpp")
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.Root != dir || m.Config.Convert.OutDir != "gen" {
		t.Fatalf("unexpected manifest: root=%s out_dir=%s", m.Root, m.Config.Convert.OutDir)
	}
}
