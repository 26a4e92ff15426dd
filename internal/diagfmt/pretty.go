package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"synscan/internal/diag"
	"synscan/internal/source"
)

const tabWidth = 4

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <severity> <CODE>: <message>
// затем строки контекста и саму строку с кареткой ^ под колонкой.
// Порядок диагностик сохраняется.
func Pretty(w io.Writer, entries []Entry, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, e := range entries {
		path := e.displayPath(opts.PathMode, opts.BaseDir)
		for _, d := range e.Diagnostics {
			if err := prettyOne(w, pal, path, e.File, d, opts); err != nil {
				return err
			}
		}
	}
	return nil
}

func prettyOne(w io.Writer, pal palette, path string, f *source.File, d diag.Diagnostic, opts PrettyOpts) error {
	sev := pal.severity(d.Severity)
	loc := fmt.Sprintf("%s:%d", path, d.Line)
	if d.HasColumn() {
		loc += ":" + strconv.Itoa(d.Column)
	}
	if _, err := fmt.Fprintf(w, "%s: %s: %s\n",
		pal.path.Sprint(loc),
		sev.Sprintf("%s %s", d.Severity.Label(), d.Code.ID()),
		diag.SanitizeMessage(d.Message)); err != nil {
		return err
	}

	if f != nil && d.Line >= 1 && d.Line <= f.LineCount() {
		gw := len(strconv.Itoa(d.Line))
		first := max(d.Line-max(opts.Context, 0), 1)
		for n := first; n <= d.Line; n++ {
			text := expandTabs(f.GetLine(n))
			if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, n), text); err != nil {
				return err
			}
		}
		if d.HasColumn() {
			pad := caretOffset(f.GetLine(d.Line), d.Column)
			if _, err := fmt.Fprintf(w, "%s %s%s\n",
				pal.gutter.Sprintf("%*s |", gw, ""),
				strings.Repeat(" ", pad),
				sev.Sprint("^")); err != nil {
				return err
			}
		}
	}

	if opts.Hints {
		if h := Hint(d.Code); h != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", pal.hint.Sprint("= fix: "+h)); err != nil {
				return err
			}
		}
	}
	return nil
}

// caretOffset is the display width of the first col-1 runes of line.
// Колонка за концом строки ставит каретку сразу после последнего символа.
func caretOffset(line string, col int) int {
	width := 0
	i := 0
	for _, r := range line {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			width += tabWidth
		} else {
			width += runewidth.RuneWidth(r)
		}
		i++
	}
	return width
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Short prints one line per diagnostic: path:line:col: severity CODE message.
func Short(w io.Writer, entries []Entry, mode PathMode, baseDir string) error {
	for _, e := range entries {
		path := e.displayPath(mode, baseDir)
		for _, d := range e.Diagnostics {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n",
				path, d.Line, d.Column, d.Severity.Label(), d.Code.ID(), diag.SanitizeMessage(d.Message)); err != nil {
				return err
			}
		}
	}
	return nil
}
