package pairs

import (
	"fmt"

	"synscan/internal/diag"
)

// Alphabet maps an opening delimiter to its closer.
type Alphabet map[rune]rune

var (
	// Brackets covers parentheses, square brackets and braces.
	Brackets = Alphabet{'(': ')', '[': ']', '{': '}'}
	// Braces covers curly braces only (style sheets).
	Braces = Alphabet{'{': '}'}
)

var delimiterStyle = Style{
	ExtraCode:    diag.BrkExtraClosing,
	MismatchCode: diag.BrkMismatch,
	UnclosedCode: diag.BrkUnclosed,
	Extra: func(found string) string {
		return "extra closing delimiter " + found
	},
	Mismatch: func(expected, found string) string {
		return fmt.Sprintf("mismatched delimiter: expected %s, found %s", expected, found)
	},
	Unclosed: func(open string) string {
		return "unclosed delimiter: " + open
	},
}

// Delimiters scans lines rune by rune against an alphabet.
type Delimiters struct {
	alpha   Alphabet
	closers map[rune]struct{}
	m       *Matcher[rune]
}

// NewDelimiters creates a delimiter scanner reporting into rep.
func NewDelimiters(rep diag.Reporter, alpha Alphabet) *Delimiters {
	closers := make(map[rune]struct{}, len(alpha))
	for _, c := range alpha {
		closers[c] = struct{}{}
	}
	d := &Delimiters{alpha: alpha, closers: closers}
	d.m = NewMatcher(rep, delimiterStyle, d.closerOf, quoteRune, quoteRune)
	return d
}

func (d *Delimiters) closerOf(open rune) rune {
	return d.alpha[open]
}

func quoteRune(r rune) string {
	return fmt.Sprintf("'%c'", r)
}

// ScanLine feeds one line; lineNo is 1-based. Columns are counted in runes.
// Nothing inside the line is skipped: comment and string handling happens at
// whole-line granularity in the callers.
func (d *Delimiters) ScanLine(line string, lineNo int) {
	col := 0
	for _, r := range line {
		col++
		if _, ok := d.alpha[r]; ok {
			d.m.Open(r, lineNo, col)
			continue
		}
		if _, ok := d.closers[r]; ok {
			d.m.Close(r, lineNo, col)
		}
	}
}

// Depth is the number of unclosed delimiters seen so far.
func (d *Delimiters) Depth() int {
	return d.m.Depth()
}

// Finish reports unclosed delimiters.
func (d *Delimiters) Finish() {
	d.m.Finish()
}

// CheckBalance runs a full scan over lines and reports into rep.
func CheckBalance(rep diag.Reporter, lines []string, alpha Alphabet) {
	d := NewDelimiters(rep, alpha)
	for i, line := range lines {
		d.ScanLine(line, i+1)
	}
	d.Finish()
}
