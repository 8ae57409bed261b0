package diagfmt

import (
	"encoding/json"
	"io"

	"cppts/internal/diag"
	"cppts/internal/source"
)

// Location is a span as it appears in JSON output. Line and column fields
// are present only when JSONOpts.IncludePositions is set.
type Location struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type JSONNote struct {
	Message  string   `json:"message"`
	Location Location `json:"location"`
}

type JSONDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Location Location   `json:"location"`
	Notes    []JSONNote `json:"notes,omitempty"`
}

// Report is the top-level JSON document.
type Report struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
}

type jsonBuilder struct {
	fs   *source.FileSet
	opts JSONOpts
}

func (jb jsonBuilder) location(span source.Span) Location {
	loc := Location{StartByte: span.Start, EndByte: span.End}
	if int(span.File) >= jb.fs.Len() {
		return loc
	}
	loc.File = displayPath(jb.fs.Get(span.File), jb.fs, jb.opts.PathMode)
	if jb.opts.IncludePositions {
		start, end := jb.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

func (jb jsonBuilder) diagnostic(d *diag.Diagnostic) JSONDiagnostic {
	out := JSONDiagnostic{
		Severity: d.Severity.String(),
		Code:     d.Code.ID(),
		Title:    d.Code.Title(),
		Message:  d.Message,
		Location: jb.location(d.Primary),
	}
	// the timing summary lives entirely in its notes
	if jb.opts.IncludeNotes || d.Code == diag.ObsTimings {
		for _, n := range d.Notes {
			out.Notes = append(out.Notes, JSONNote{Message: n.Msg, Location: jb.location(n.Span)})
		}
	}
	return out
}

// BuildDiagnosticsOutput converts the bag without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Report {
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	jb := jsonBuilder{fs: fs, opts: opts}
	rep := Report{Diagnostics: make([]JSONDiagnostic, 0, len(items))}
	for i := range items {
		rep.Diagnostics = append(rep.Diagnostics, jb.diagnostic(&items[i]))
	}
	rep.Count = len(rep.Diagnostics)
	return rep
}

// JSON writes the bag as one indented JSON document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
