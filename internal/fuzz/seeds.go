package fuzztests

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

func addCorpusSeeds(f *testing.F) {
	addGoldenSeeds(f)
	addLanguageSeeds(f)
}

// addGoldenSeeds adds every input from the driver's conversion cases.
func addGoldenSeeds(f *testing.F) {
	paths, err := filepath.Glob(filepath.Join("..", "driver", "testdata", "*.yaml"))
	if err != nil {
		return
	}
	for _, path := range paths {
		// #nosec G304 -- path comes from repository testdata glob
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cases []struct {
			Input string `yaml:"input"`
		}
		if err := yaml.Unmarshal(data, &cases); err != nil {
			continue
		}
		for _, c := range cases {
			f.Add(clampSeed([]byte(c.Input)))
		}
	}
}

func addLanguageSeeds(f *testing.F) {
	seeds := []string{
		"",
		"int x;",
		"namespace a::b { int v = 1; }",
		"enum class Color { Red, Green = 3, Blue };",
		"typedef unsigned long ulong; using real = double;",
		"struct S : Base { S() {} ~S() {} static int n; };",
		"int f(int a = 1, ...) { switch (a) { case 1: return 2; default: break; } return a ? a : -a; }",
		"void g() { do { continue; } while (false); try { throw 1; } catch (...) { } }",
		"#if 0\nint hidden;\n#else\nint shown;\n#endif\n",
		"int h() { return a->b.c[1] + sizeof(int) + (int)3.5 + static_cast<int>(x); }",
		"auto s = \"a\" \"b\" u8\"c\";",
		"int broken( { return ; ",
		"x = y +",
	}
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
