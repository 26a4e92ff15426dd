package lsp

import (
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
	"github.com/sourcegraph/go-lsp"

	"synscan/internal/diag"
)

// applyChanges folds didChange events into text. A change without a range
// replaces the whole buffer.
func applyChanges(text string, changes []lsp.TextDocumentContentChangeEvent) string {
	for _, change := range changes {
		if change.Range == nil {
			text = change.Text
			continue
		}
		start := offsetForPosition(text, change.Range.Start)
		end := offsetForPosition(text, change.Range.End)
		if end < start {
			end = start
		}
		text = text[:start] + change.Text + text[end:]
	}
	return text
}

// offsetForPosition converts a UTF-16 based position into a byte offset,
// clamped to the buffer.
func offsetForPosition(text string, pos lsp.Position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	i := 0
	for line := 0; line < pos.Line; line++ {
		nl := strings.IndexByte(text[i:], '\n')
		if nl < 0 {
			return len(text)
		}
		i += nl + 1
	}
	units := 0
	for i < len(text) && text[i] != '\n' {
		r, size := utf8.DecodeRuneInString(text[i:])
		need := utf16Len(r)
		if units+need > pos.Character {
			break
		}
		units += need
		i += size
	}
	return i
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// utf16Column converts a 1-based rune column on line into a 0-based UTF-16
// character offset. Columns past the end clamp to the line length.
func utf16Column(line string, col int) int {
	if col <= 1 {
		return 0
	}
	units := 0
	n := 0
	for _, r := range line {
		if n == col-1 {
			break
		}
		units += utf16Len(r)
		n++
	}
	return units
}

func lineAt(lines []string, n int) string {
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

// toLSPDiagnostic anchors d on a single character, or on the whole line
// when the column is unknown.
func toLSPDiagnostic(d diag.Diagnostic, lines []string) lsp.Diagnostic {
	line := lineAt(lines, d.Line)
	row := safeLine(d.Line - 1)
	var start, end int
	if d.HasColumn() {
		start = utf16Column(line, d.Column)
		end = utf16Column(line, d.Column+1)
		if end == start {
			end = start + 1
		}
	} else {
		end = utf16Column(line, utf8.RuneCountInString(line)+1)
	}
	sev := lsp.DiagnosticSeverity(lsp.Warning)
	if d.IsError() {
		sev = lsp.Error
	}
	return lsp.Diagnostic{
		Range: lsp.Range{
			Start: lsp.Position{Line: row, Character: start},
			End:   lsp.Position{Line: row, Character: end},
		},
		Severity: sev,
		Code:     d.Code.ID(),
		Source:   diagnosticSource,
		Message:  d.Message,
	}
}

// safeLine keeps the row non-negative and inside int32, which is what
// clients decode positions into.
func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[int32](n)
	if err != nil {
		return int(^uint32(0) >> 1)
	}
	return int(v)
}
