package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"cppts/internal/source"
)

// shortLine is one row of the short format; notes become their own rows.
type shortLine struct {
	sev, code, path, msg string
	line, col            uint32
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.sev, l.code, l.path, l.line, l.col, l.msg)
}

func compareShortLines(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.sev, b.sev),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatShortDiagnostics renders diagnostics one per line as
// "<severity> <code> <path>:<line>:<col> <message>", sorted by position.
// Golden tests and the CLI's short output share this form.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	var lines []shortLine
	add := func(sev string, code Code, span source.Span, msg string) {
		if int(span.File) >= fs.Len() {
			return
		}
		start, _ := fs.Resolve(span)
		path := fs.Get(span.File).RelPath(fs.BaseDir())
		lines = append(lines, shortLine{
			sev:  sev,
			code: code.ID(),
			path: strings.TrimPrefix(path, "./"),
			msg:  oneLine(msg),
			line: start.Line,
			col:  start.Col,
		})
	}
	for i := range diags {
		d := &diags[i]
		add(strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}
	slices.SortStableFunc(lines, compareShortLines)

	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = l.String()
	}
	return strings.Join(rows, "\n")
}

// oneLine folds every line break into a space.
func oneLine(msg string) string {
	msg = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg)
	return strings.TrimSpace(msg)
}
