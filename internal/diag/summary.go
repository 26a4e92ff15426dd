package diag

// Summary counts diagnostics per severity.
type Summary struct {
	Errors   int
	Warnings int
}

// Summarize counts errors and warnings without reordering or filtering.
func Summarize(diags []Diagnostic) Summary {
	var s Summary
	for i := range diags {
		switch diags[i].Severity {
		case SevError:
			s.Errors++
		case SevWarning:
			s.Warnings++
		}
	}
	return s
}

// Clean reports the "no problems" state.
func (s Summary) Clean() bool {
	return s.Errors == 0 && s.Warnings == 0
}

func (s Summary) Total() int {
	return s.Errors + s.Warnings
}

// Add accumulates another summary, used when aggregating several files.
func (s Summary) Add(o Summary) Summary {
	return Summary{Errors: s.Errors + o.Errors, Warnings: s.Warnings + o.Warnings}
}
