package driver

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"cppts/internal/config"
	"cppts/internal/diag"
	"cppts/internal/format"
	"cppts/internal/normalize"
	"cppts/internal/pipeline"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.cpp"), "")
	writeFile(t, filepath.Join(root, "sub", "a.hpp"), "")
	writeFile(t, filepath.Join(root, "sub", "notes.txt"), "")
	writeFile(t, filepath.Join(root, ".git", "x.cpp"), "")
	explicit := filepath.Join(root, "sub", "notes.txt")

	got, err := CollectFiles([]string{root, explicit, filepath.Join(root, "b.cpp")}, config.Default())
	if err != nil {
		t.Fatalf("CollectFiles: %v", err)
	}
	want := []string{
		filepath.Join(root, "b.cpp"),
		filepath.Join(root, "sub", "a.hpp"),
		explicit,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}

	if _, err := CollectFiles([]string{filepath.Join(root, "missing")}, config.Default()); err == nil {
		t.Fatalf("expected an error for a missing path")
	}
}

func TestOutputPath(t *testing.T) {
	cfg := config.Default()
	if got := OutputPath("/p/src/a.cpp", "/p", cfg); got != "/p/src/a.ts" {
		t.Fatalf("next to source: got %s", got)
	}
	cfg.Convert.OutDir = "out"
	if got := OutputPath("/p/src/a.cpp", "/p", cfg); got != "/p/out/src/a.ts" {
		t.Fatalf("mirrored: got %s", got)
	}
	if got := OutputPath("/elsewhere/b.h", "/p", cfg); got != "/p/out/b.ts" {
		t.Fatalf("outside root: got %s", got)
	}
}

func TestConvertFilesWritesOutputsAndIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good.cpp")
	bad := filepath.Join(root, "bad.cpp")
	writeFile(t, good, "int x = 1;\n")
	writeFile(t, bad, "auto f = [](){ return 1; };\n")
	missing := filepath.Join(root, "missing.cpp")

	var rec pipeline.Recorder
	opts := Options{
		Config:         config.Default(),
		Root:           root,
		Jobs:           2,
		MaxDiagnostics: 10,
		Format:         true,
		Write:          true,
		Progress:       &rec,
	}
	res, err := ConvertFiles(t.Context(), []string{bad, good, missing}, opts)
	if err != nil {
		t.Fatalf("ConvertFiles: %v", err)
	}
	if res.FailedCount() != 2 {
		t.Fatalf("want 2 failed files, got %d", res.FailedCount())
	}

	out, err := os.ReadFile(filepath.Join(root, "good.ts"))
	if err != nil {
		t.Fatalf("good.ts not written: %v", err)
	}
	if string(out) != "let x: number = 1;\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(filepath.Join(root, "bad.ts")); !os.IsNotExist(err) {
		t.Fatalf("bad.ts should not exist, stat err = %v", err)
	}

	bag := res.Diagnostics(10)
	short := diag.FormatShortDiagnostics(bag.Items(), res.FileSet, false)
	if !strings.Contains(short, "error CNV3001 bad.cpp:1:10 ") || !strings.Contains(short, "error IO4001 missing.cpp:1:1 failed to load file") {
		t.Fatalf("unexpected diagnostics:\n%s", short)
	}

	final := map[string]pipeline.Status{}
	for _, ev := range rec.Events() {
		if ev.File != "" {
			final[ev.File] = ev.Status
		}
	}
	want := map[string]pipeline.Status{
		"good.cpp":    pipeline.StatusDone,
		"bad.cpp":     pipeline.StatusError,
		"missing.cpp": pipeline.StatusError,
	}
	if !reflect.DeepEqual(final, want) {
		t.Fatalf("final statuses: want %v, got %v", want, final)
	}
	if !res.Timings.Has(pipeline.StageParse) || !res.Timings.Has(pipeline.StageWrite) {
		t.Fatalf("stage timings missing")
	}
}

func TestConvertFilesUsesCache(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "a.cpp")
	writeFile(t, src, "double width = 2.5;\n")
	cache, err := OpenDiskCache(filepath.Join(root, "cache"), "cppts")
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Config: config.Default(), Root: root, Format: true, Cache: cache}

	first, err := ConvertFiles(t.Context(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ConvertFiles(t.Context(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Files[0].Cached || !second.Files[0].Cached {
		t.Fatalf("cached flags: first=%v second=%v", first.Files[0].Cached, second.Files[0].Cached)
	}
	if first.Files[0].Output != second.Files[0].Output || second.Files[0].Output != "let width: number = 2.5;\n" {
		t.Fatalf("outputs differ: %q vs %q", first.Files[0].Output, second.Files[0].Output)
	}

	// a setting that changes the output must miss
	opts.Config.Types = map[string]string{"double": "float64"}
	third, err := ConvertFiles(t.Context(), []string{src}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Files[0].Cached || third.Files[0].Output != "let width: float64 = 2.5;\n" {
		t.Fatalf("expected a fresh conversion, got cached=%v %q", third.Files[0].Cached, third.Files[0].Output)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCache(t.TempDir(), "cppts")
	if err != nil {
		t.Fatal(err)
	}
	key := CacheKey([]byte("int a;"), "fp", "1.0.0")
	if key == CacheKey([]byte("int a;"), "fp", "1.0.1") {
		t.Fatalf("version must change the key")
	}

	var out DiskPayload
	if hit, err := cache.Get(key, &out); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}
	in := &DiskPayload{Source: "a.cpp", Output: "let a: number;\n", Overflows: []format.Overflow{{Line: 1, Width: 120}}}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if hit, err := cache.Get(key, &out); !hit || err != nil {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if !reflect.DeepEqual(&out, in) {
		t.Fatalf("round trip: want %+v, got %+v", in, out)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := cache.Get(key, &out); hit {
		t.Fatalf("entry survived DropAll")
	}
}

func TestDump(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.cpp")
	writeFile(t, path, "namespace n { int v; }\n")

	cstText, err := Dump(t.Context(), path, DumpCST, normalize.Options{})
	if err != nil {
		t.Fatalf("Dump CST: %v", err)
	}
	if !strings.HasPrefix(cstText, "translation_unit") || !strings.Contains(cstText, "namespace_definition") {
		t.Fatalf("unexpected CST dump:\n%s", cstText)
	}

	irText, err := Dump(t.Context(), path, DumpIR, normalize.Options{})
	if err != nil {
		t.Fatalf("Dump IR: %v", err)
	}
	if !strings.HasPrefix(irText, "- kind: Namespace\n") || !strings.Contains(irText, "n_v") {
		t.Fatalf("unexpected IR dump:\n%s", irText)
	}
}
