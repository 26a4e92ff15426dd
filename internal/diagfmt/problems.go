package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"synscan/internal/diag"
)

// PanelMarker is appended to the problems panel title while problems exist.
const PanelMarker = " ●"

// Problems renders each diagnostic as "severity: line L, col C: message",
// keeping the input order. Nothing is sorted or merged here.
func Problems(diags []diag.Diagnostic, opts ProblemsOpts) []string {
	pal := newPalette(opts.Color)
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		var b strings.Builder
		b.WriteString(d.Severity.Label())
		if opts.Codes {
			fmt.Fprintf(&b, " [%s]", d.Code.ID())
		}
		fmt.Fprintf(&b, ": line %d, col %d: %s", d.Line, d.Column, diag.SanitizeMessage(d.Message))
		if opts.Hints {
			if h := Hint(d.Code); h != "" {
				fmt.Fprintf(&b, " (fix: %s)", h)
			}
		}
		out = append(out, pal.severity(d.Severity).Sprint(b.String()))
	}
	return out
}

// StatusLine summarizes a check for the status bar.
func StatusLine(s diag.Summary) string {
	switch {
	case s.Clean():
		return "check passed"
	case s.Errors > 0:
		return fmt.Sprintf("%s and %s", plural(s.Errors, "error"), plural(s.Warnings, "warning"))
	default:
		return plural(s.Warnings, "warning")
	}
}

// PanelTitle toggles the problems marker on title.
func PanelTitle(title string, s diag.Summary) string {
	title = strings.TrimSuffix(title, PanelMarker)
	if s.Clean() {
		return title
	}
	return title + PanelMarker
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

type palette struct {
	err    *color.Color
	warn   *color.Color
	path   *color.Color
	gutter *color.Color
	hint   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		hint:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.path, p.gutter, p.hint} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	if sev == diag.SevError {
		return p.err
	}
	return p.warn
}
