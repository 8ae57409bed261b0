package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet owns every file of one run. Files are added before the set is
// shared with workers; after that it is only read.
type FileSet struct {
	files   []*File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// NewFileSetWithBase uses baseDir to shorten paths in diagnostics.
func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir falls back to the working directory when no base was given.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Add stores already normalized content under a fresh FileID. Adding the
// same path again creates a new version; GetLatest returns the newest.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	path = filepath.ToSlash(filepath.Clean(path))
	id := FileID(n)
	fs.files = append(fs.files, &File{
		ID:         id,
		Path:       path,
		Content:    content,
		Hash:       sha256.Sum256(content),
		Flags:      flags,
		lineStarts: indexLines(content),
	})
	fs.latest[path] = id
	return id
}

// Load reads path from disk and normalizes it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- the caller chose the path
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		return 0, fmt.Errorf("%s: file too large: %w", path, err)
	}
	content, flags := Normalize(content)
	return fs.Add(path, content, flags), nil
}

// AddVirtual normalizes content like Load and marks it FileVirtual.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := Normalize(content)
	return fs.Add(name, content, flags|FileVirtual)
}

func (fs *FileSet) Get(id FileID) *File { return fs.files[id] }

func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Resolve converts both ends of span to line and column.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.files[span.File]
	return f.Position(span.Start), f.Position(span.End)
}
