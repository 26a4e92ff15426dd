package diag

// Reporter: минимальный контракт получения диагностик от проверок.
// Реализации: BagReporter (кладёт в Bag), DedupReporter, NopReporter.
type Reporter interface {
	Report(code Code, sev Severity, line, col int, msg string)
}

// BagReporter: адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, line, col int, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{Line: line, Column: col, Message: msg, Severity: sev, Code: code})
}

// NopReporter drops everything.
type NopReporter struct{}

func (NopReporter) Report(Code, Severity, int, int, string) {}

// ReportError is a shortcut for SevError diagnostics.
func ReportError(r Reporter, code Code, line, col int, msg string) {
	if r != nil {
		r.Report(code, SevError, line, col, msg)
	}
}

// ReportWarning is a shortcut for SevWarning diagnostics.
func ReportWarning(r Reporter, code Code, line, col int, msg string) {
	if r != nil {
		r.Report(code, SevWarning, line, col, msg)
	}
}

// Replay forwards already built diagnostics to r in order.
func Replay(r Reporter, diags []Diagnostic) {
	if r == nil {
		return
	}
	for _, d := range diags {
		r.Report(d.Code, d.Severity, d.Line, d.Column, d.Message)
	}
}
