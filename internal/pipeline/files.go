package pipeline

import (
	"path/filepath"
	"slices"
	"strings"
)

// DisplayFiles maps files through DisplayPath, drops empty entries and
// duplicates, and sorts the result.
func DisplayFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	base := strings.TrimSpace(baseDir)
	if abs, err := filepath.Abs(base); base != "" && err == nil {
		base = abs
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		if f != "" {
			out = append(out, DisplayPath(f, base))
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// DisplayPath is the name a file is reported under in progress events:
// relative to base when it lives below it, slash-separated always.
func DisplayPath(file, base string) string {
	p := filepath.Clean(file)
	if base == "" {
		return filepath.ToSlash(p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	rel, err := filepath.Rel(base, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
