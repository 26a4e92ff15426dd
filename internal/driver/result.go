package driver

import (
	"time"

	"synscan/internal/diag"
	"synscan/internal/diagfmt"
	"synscan/internal/lang"
	"synscan/internal/source"
)

// FileResult is the outcome of checking one document.
type FileResult struct {
	Path      string // как передали или нашли при обходе
	Rel       string // путь относительно рабочей директории, ключ baseline
	File      *source.File
	Detection lang.Detection
	// Diagnostics in checker order after filters and the per-file cap.
	Diagnostics []diag.Diagnostic
	// Suppressed counts diagnostics hidden by the baseline.
	Suppressed int
	Duration   time.Duration
}

// Summary counts the kept diagnostics.
func (r FileResult) Summary() diag.Summary {
	return diag.Summarize(r.Diagnostics)
}

// HasErrors reports whether any kept diagnostic is an error.
func (r FileResult) HasErrors() bool {
	return r.Summary().Errors > 0
}

// Entry adapts the result for diagfmt renderers.
func (r FileResult) Entry() diagfmt.Entry {
	return diagfmt.Entry{
		Path:        r.Path,
		Language:    r.Detection.Lang.String(),
		File:        r.File,
		Diagnostics: r.Diagnostics,
	}
}

// Entries adapts a batch of results.
func Entries(results []FileResult) []diagfmt.Entry {
	out := make([]diagfmt.Entry, len(results))
	for i := range results {
		out[i] = results[i].Entry()
	}
	return out
}

// Failed reports whether any result carries an error.
func Failed(results []FileResult) bool {
	for i := range results {
		if results[i].HasErrors() {
			return true
		}
	}
	return false
}
