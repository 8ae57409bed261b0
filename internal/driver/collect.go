package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cppts/internal/config"
)

// CollectFiles expands the given paths into the sorted list of files to
// convert. Directories are walked recursively and filtered by the
// configured extensions; files named explicitly are always kept.
func CollectFiles(paths []string, cfg config.Config) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		files = append(files, p)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %q: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if cfg.HasExtension(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %q: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// OutputPath is where the TypeScript for src is written. Without an
// out_dir the file lands next to its source; otherwise the path relative to
// root is mirrored under out_dir.
func OutputPath(src, root string, cfg config.Config) string {
	ext := cfg.Convert.OutExt
	if ext == "" {
		ext = ".ts"
	}
	base := strings.TrimSuffix(src, filepath.Ext(src)) + ext
	if cfg.Convert.OutDir == "" {
		return base
	}
	outDir := cfg.Convert.OutDir
	if !filepath.IsAbs(outDir) && root != "" {
		outDir = filepath.Join(root, outDir)
	}
	rel := filepath.Base(base)
	if root != "" {
		absBase, err1 := filepath.Abs(base)
		absRoot, err2 := filepath.Abs(root)
		if err1 == nil && err2 == nil {
			if r, err := filepath.Rel(absRoot, absBase); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			}
		}
	}
	return filepath.Join(outDir, rel)
}
