package diagfmt

import (
	"synscan/internal/diag"
	"synscan/internal/source"
)

// Entry is one checked document as seen by the renderers.
// File may be nil when the document could not be loaded.
type Entry struct {
	Path        string
	Language    string
	File        *source.File
	Diagnostics []diag.Diagnostic
}

// Summary counts the entry's diagnostics.
func (e Entry) Summary() diag.Summary {
	return diag.Summarize(e.Diagnostics)
}

func (e Entry) displayPath(mode PathMode, baseDir string) string {
	if e.File != nil {
		return e.File.FormatPath(mode.mode(), baseDir)
	}
	f := source.File{Path: e.Path}
	return f.FormatPath(mode.mode(), baseDir)
}

// Total sums the summaries of all entries.
func Total(entries []Entry) diag.Summary {
	var s diag.Summary
	for i := range entries {
		s = s.Add(entries[i].Summary())
	}
	return s
}
