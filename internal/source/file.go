package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// FileFlags records how a file's bytes were obtained and normalized.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota // stdin, tests, generated text
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one loaded source text. Content is already normalized.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags

	lineStarts []uint32 // offset of the first byte of every line
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a UTF-8 BOM, folds CRLF into LF and converts the text to
// NFC so the same identifier typed on different systems compares equal.
// A lone \r is kept.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, []byte("\r\n")) {
		content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
		flags |= FileNormalizedCRLF
	}
	if !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= FileNormalizedNFC
	}
	return content, flags
}

func indexLines(content []byte) []uint32 {
	starts := make([]uint32, 1, len(content)/32+1)
	for off := 0; ; {
		i := bytes.IndexByte(content[off:], '\n')
		if i < 0 {
			return starts
		}
		off += i + 1
		starts = append(starts, uint32(off)) // #nosec G115 -- Load caps file size at uint32
	}
}

// LineCount is the number of lines; a trailing newline opens an empty one.
func (f *File) LineCount() int { return len(f.lineStarts) }

// Position maps a byte offset to its line and column.
func (f *File) Position(off uint32) LineCol {
	// index of the last line starting at or before off
	i, found := slices.BinarySearch(f.lineStarts, off)
	if !found {
		i--
	}
	i = max(i, 0)
	line, err := safecast.Conv[uint32](i + 1)
	if err != nil {
		line = ^uint32(0)
	}
	return LineCol{Line: line, Col: off - f.lineStarts[i] + 1}
}

// GetLine returns line n (1-based) without its newline, or "" when the file
// has no such line.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.lineStarts) {
		return ""
	}
	start := int(f.lineStarts[n-1])
	end := len(f.Content)
	if int(n) < len(f.lineStarts) {
		end = int(f.lineStarts[n]) - 1
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// RelPath returns the path relative to baseDir when the file lives under it.
func (f *File) RelPath(baseDir string) string {
	if baseDir == "" || !filepath.IsAbs(f.Path) {
		return f.Path
	}
	rel, err := filepath.Rel(baseDir, f.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return f.Path
	}
	return filepath.ToSlash(rel)
}
