package diagfmt

import (
	"path/filepath"

	"cppts/internal/source"
)

const autoPathLimit = 40

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.RelPath(fs.BaseDir())
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	if rel := f.RelPath(fs.BaseDir()); rel != f.Path {
		return rel
	}
	if len(f.Path) <= autoPathLimit {
		return f.Path
	}
	return filepath.Base(f.Path)
}
