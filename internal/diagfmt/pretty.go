package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cppts/internal/diag"
	"cppts/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue),
		gutter: color.New(color.FgHiBlack),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if int(d.Primary.File) >= fs.Len() {
			fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), d.Code.ID(), d.Message)
			continue
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			displayPath(f, fs, opts.PathMode), start.Line, start.Col,
			p.severity(d.Severity).Sprint(d.Severity.String()), d.Code.ID(), d.Message)
		excerpt(w, f, fs, d.Primary, int(opts.Context), p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if int(n.Span.File) >= fs.Len() {
				fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
				continue
			}
			nf := fs.Get(n.Span.File)
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				displayPath(nf, fs, opts.PathMode), nstart.Line, nstart.Col, n.Msg)
		}
	}
}

// excerpt prints the primary line with up to context lines around it and a
// caret underline sized by display width.
func excerpt(w io.Writer, f *source.File, fs *source.FileSet, span source.Span, context int, p palette) {
	start, end := fs.Resolve(span)
	first := max(int(start.Line)-context, 1)
	last := int(start.Line) + context
	gutter := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln))
		if ln > int(start.Line) && text == "" && ln >= f.LineCount() {
			break
		}
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutter, ln), expandTabs(text))
		if ln != int(start.Line) {
			continue
		}
		from := clampCol(text, int(start.Col)-1)
		to := len(text)
		if end.Line == start.Line {
			to = clampCol(text, int(end.Col)-1)
		}
		pad := runewidth.StringWidth(expandTabs(text[:from]))
		width := max(runewidth.StringWidth(expandTabs(text[from:to])), 1)
		fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutter, ""),
			strings.Repeat(" ", pad), p.caret.Sprint("^"+strings.Repeat("~", width-1)))
	}
}

func clampCol(text string, col int) int {
	return min(max(col, 0), len(text))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
