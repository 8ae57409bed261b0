package diagfmt

import "fmt"

// PathMode selects how file paths are printed.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // relative under the base dir, else short absolute, else basename
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

var pathModeNames = [...]string{"auto", "absolute", "relative", "basename"}

// ParsePathMode reads the flag spelling; "" is auto.
func ParsePathMode(s string) (PathMode, error) {
	if s == "" {
		return PathModeAuto, nil
	}
	for i, name := range pathModeNames {
		if s == name {
			return PathMode(i), nil
		}
	}
	return PathModeAuto, fmt.Errorf("invalid path mode %q (expected: auto|absolute|relative|basename)", s)
}

type PrettyOpts struct {
	Color     bool
	Context   int8 // source lines shown around the primary one
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool // line and column next to byte offsets
	PathMode         PathMode
	Max              int // caps the output only; the bag keeps everything
	IncludeNotes     bool
}
