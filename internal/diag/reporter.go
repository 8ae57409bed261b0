package diag

import "cppts/internal/source"

// Reporter receives diagnostics from a conversion stage.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter adds everything it receives to Bag; a nil Bag drops it.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// ReportDiagnostic forwards an already built diagnostic.
func ReportDiagnostic(r Reporter, d Diagnostic) {
	if r != nil {
		r.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}
