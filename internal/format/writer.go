package format

import "strings"

// lineWriter collects output one line at a time and owns indentation.
type lineWriter struct {
	unit  string
	lines []string
}

func newLineWriter(opt Options, sizeHint int) *lineWriter {
	unit := "\t"
	if !opt.UseTabs {
		unit = strings.Repeat(" ", opt.IndentWidth)
	}
	return &lineWriter{unit: unit, lines: make([]string, 0, sizeHint)}
}

// line writes text at the given nesting level.
func (w *lineWriter) line(level int, text string) {
	w.lines = append(w.lines, strings.Repeat(w.unit, max(level, 0))+text)
}

// blank writes an empty line; it carries no indentation.
func (w *lineWriter) blank() { w.lines = append(w.lines, "") }

// appendToLast extends the previous line, if any.
func (w *lineWriter) appendToLast(s string) {
	if n := len(w.lines); n > 0 {
		w.lines[n-1] += s
	}
}

func (w *lineWriter) String() string {
	if len(w.lines) == 0 {
		return ""
	}
	return strings.Join(w.lines, "\n") + "\n"
}
