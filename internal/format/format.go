package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// unit is the indentation step used by the converter's own output.
const unit = 2

// Overflow is a formatted line wider than Options.LineWidth.
type Overflow struct {
	Line  int // 1-based
	Width int
}

// Format re-indents converted text, normalizes quotes and trailing commas,
// separates top-level declarations by one blank line and ends the text
// with a newline.
func Format(text string, opt Options) (string, []Overflow) {
	opt = opt.withDefaults()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	w := newLineWriter(opt, len(lines))

	var (
		prev      string
		prevLevel int
		blank     bool
		wrote     bool
	)
	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t")
		content := strings.TrimLeft(line, " ")
		if content == "" {
			blank = wrote
			continue
		}
		spaces := len(line) - len(content)
		level, rest := spaces/unit, spaces%unit

		if opt.TrailingCommas && closesList(content) && needsComma(prev) && prevLevel > level {
			w.appendToLast(",")
		}
		if wrote && level == 0 && opensDeclaration(content) {
			blank = true
		}
		if blank {
			w.blank()
			blank = false
		}
		w.line(level, strings.Repeat(" ", rest)+requote(content, opt.Quote))
		prev, prevLevel, wrote = content, level, true
	}

	out := w.String()
	return out, overflows(out, opt)
}

func closesList(content string) bool {
	return strings.HasPrefix(content, ")") || strings.HasPrefix(content, "]")
}

// needsComma reports whether a list item line lacks its separator.
func needsComma(prev string) bool {
	if prev == "" {
		return false
	}
	switch prev[len(prev)-1] {
	case ',', ';', '(', '[', '{', ':':
		return false
	}
	return true
}

func opensDeclaration(content string) bool {
	for _, kw := range []string{"function ", "class ", "enum "} {
		if strings.HasPrefix(content, kw) {
			return true
		}
	}
	return false
}

func overflows(text string, opt Options) []Overflow {
	var out []Overflow
	for i, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		width := runewidth.StringWidth(strings.ReplaceAll(line, "\t", strings.Repeat(" ", opt.IndentWidth)))
		if width > opt.LineWidth {
			out = append(out, Overflow{Line: i + 1, Width: width})
		}
	}
	return out
}
