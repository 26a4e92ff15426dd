package diag

import (
	"strconv"
	"strings"
)

// FormatGolden renders diagnostics one per line as
// "severity CODE line:col message", keeping the input order. Used by tests
// and the short CLI output.
func FormatGolden(diags []Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(d.Severity.Label())
		b.WriteByte(' ')
		b.WriteString(d.Code.ID())
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(d.Line))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(d.Column))
		b.WriteByte(' ')
		b.WriteString(SanitizeMessage(d.Message))
	}
	return b.String()
}

// SanitizeMessage folds newlines and repeated whitespace into single spaces.
func SanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
