package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"cppts/internal/format"
)

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode("cppts.toml", []byte(`
[convert]
extensions = ["cpp", ".hh"]
qualify_references = true

[format]
quote = "double"
line_width = 80

[types]
ld = "number"
hyperpoint = "Hyperpoint"
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if want := []string{".cpp", ".hh"}; !reflect.DeepEqual(cfg.Convert.Extensions, want) {
		t.Fatalf("extensions: want %v, got %v", want, cfg.Convert.Extensions)
	}
	if !cfg.Convert.QualifyReferences || cfg.Convert.OutExt != ".ts" {
		t.Fatalf("unexpected convert table %+v", cfg.Convert)
	}
	opts := cfg.FormatOptions()
	want := format.Options{IndentWidth: 2, Quote: format.QuoteDouble, TrailingCommas: true, LineWidth: 80}
	if opts != want {
		t.Fatalf("format options: want %+v, got %+v", want, opts)
	}
	if cfg.Types["hyperpoint"] != "Hyperpoint" || !cfg.Cache.Enabled {
		t.Fatalf("unexpected types/cache: %+v %+v", cfg.Types, cfg.Cache)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"syntax", "[convert\n", "failed to parse TOML"},
		{"unknown key", "[format]\nwidth = 3\n", "unknown keys: format.width"},
		{"empty extensions", "[convert]\nextensions = []\n", "[convert].extensions must not be empty"},
		{"bad out ext", "[convert]\nout_ext = \"ts\"\n", "[convert].out_ext must start with '.'"},
		{"bad indent", "[format]\nindent_width = 0\n", "[format].indent_width must be positive"},
		{"bad quote", "[format]\nquote = \"backtick\"\n", "[format].quote"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("x.toml", []byte(tt.text))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("want error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "geo")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, FileName), []byte("[cache]\nenabled = false\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(nested, "a.cpp")
	if err := os.WriteFile(file, []byte("int a;\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	m, err := Discover(file)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if m.Root != root || m.Path != filepath.Join(root, FileName) {
		t.Fatalf("unexpected manifest location %q %q", m.Root, m.Path)
	}
	if m.Config.Cache.Enabled {
		t.Fatalf("cache should be disabled by the manifest")
	}
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	m, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	// a cppts.toml in a parent of the temp dir would be picked up
	if m.Path != "" {
		t.Skipf("found unrelated manifest %s", m.Path)
	}
	if !reflect.DeepEqual(m.Config, Default()) {
		t.Fatalf("expected defaults, got %+v", m.Config)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := Default(), Default()
	b.Convert.OutDir = "out"
	b.Cache.Enabled = false
	if a.Fingerprint() != b.Fingerprint() {
		t.Fatalf("paths and cache settings must not change the fingerprint")
	}
	b.Types["ld"] = "bigint"
	if a.Fingerprint() == b.Fingerprint() {
		t.Fatalf("type mapping must change the fingerprint")
	}
}

func TestHasExtension(t *testing.T) {
	cfg := Default()
	for path, want := range map[string]bool{"a.cpp": true, "B.HPP": true, "c.go": false, "Makefile": false} {
		if got := cfg.HasExtension(path); got != want {
			t.Errorf("HasExtension(%q) = %v, want %v", path, got, want)
		}
	}
}
