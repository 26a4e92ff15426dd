package diagfmt

import (
	"encoding/json"
	"io"
)

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Hint     string `json:"hint,omitempty"`
}

// FileJSON groups diagnostics of one document.
type FileJSON struct {
	Path        string           `json:"path"`
	Language    string           `json:"language,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

// ReportJSON is the root of the JSON output.
type ReportJSON struct {
	Files    []FileJSON `json:"files"`
	Errors   int        `json:"errors"`
	Warnings int        `json:"warnings"`
	Status   string     `json:"status"`
}

// BuildReport формирует структуру JSON-вывода без сериализации.
// Max обрезает список диагностик файла, но не счётчики.
func BuildReport(entries []Entry, opts JSONOpts) ReportJSON {
	out := ReportJSON{Files: make([]FileJSON, 0, len(entries))}
	for _, e := range entries {
		sum := e.Summary()
		items := e.Diagnostics
		if opts.Max > 0 && opts.Max < len(items) {
			items = items[:opts.Max]
		}
		fj := FileJSON{
			Path:        e.displayPath(opts.PathMode, opts.BaseDir),
			Language:    e.Language,
			Diagnostics: make([]DiagnosticJSON, 0, len(items)),
			Errors:      sum.Errors,
			Warnings:    sum.Warnings,
		}
		for _, d := range items {
			dj := DiagnosticJSON{
				Severity: d.Severity.Label(),
				Code:     d.Code.ID(),
				Message:  d.Message,
				Line:     d.Line,
				Column:   d.Column,
			}
			if opts.Hints {
				dj.Hint = Hint(d.Code)
			}
			fj.Diagnostics = append(fj.Diagnostics, dj)
		}
		out.Files = append(out.Files, fj)
		out.Errors += sum.Errors
		out.Warnings += sum.Warnings
	}
	out.Status = StatusLine(Total(entries))
	return out
}

// JSON writes the indented report.
func JSON(w io.Writer, entries []Entry, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReport(entries, opts))
}
