package checker

import (
	"strings"
	"unicode"

	"synscan/internal/diag"
	"synscan/internal/pairs"
)

// selectorPunct is the punctuation a selector may contain besides letters,
// digits and whitespace.
const selectorPunct = `-_#.>+~*[]=^$|"':(),&%\`

func checkCSS(rep diag.Reporter, doc *Document, opts Options) {
	braces := pairs.NewDelimiters(rep, pairs.Braces)
	for i, line := range doc.Lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if hasPrefixAny(trimmed, "/*", "//") {
			continue
		}

		depthBefore := braces.Depth()
		braces.ScanLine(line, n)

		checkDeclarations(rep, line, n, depthBefore > 0 || strings.Contains(line, "{"), opts)

		if open := strings.IndexByte(line, '{'); open >= 0 {
			checkSelector(rep, line, open, n)
		}
	}
	braces.Finish()
}

// checkDeclarations looks at the declaration part of a line: whatever
// follows the last '{', cut at the next '}'. Each ';'-separated declaration
// is checked on its own.
func checkDeclarations(rep diag.Reporter, line string, n int, inRule bool, opts Options) {
	start := 0
	if i := strings.LastIndexByte(line, '{'); i >= 0 {
		start = i + 1
	}
	seg := line[start:]
	closed := false
	if j := strings.IndexByte(seg, '}'); j >= 0 {
		seg = seg[:j]
		closed = true
	}

	offset := start
	parts := strings.Split(seg, ";")
	for pi, decl := range parts {
		at := offset
		offset += len(decl) + 1
		if strings.Count(decl, ":") > 1 {
			idx := strings.IndexByte(decl, ':')
			diag.ReportWarning(rep, diag.HeurMultipleColons, n, column(line, at+idx), "declaration contains more than one ':'")
		}
		last := pi == len(parts)-1
		if opts.Semicolons == SemicolonsStrict && inRule && last && !closed &&
			strings.Contains(decl, ":") && strings.TrimSpace(decl) != "" &&
			!strings.HasSuffix(strings.TrimSpace(line), ",") {
			diag.ReportWarning(rep, diag.HeurMissingSemicolon, n, endColumn(line), msgMissingSemicolon)
		}
	}
}

// checkSelector validates the text between the previous '}' and the '{' at
// open. At-rules are skipped.
func checkSelector(rep diag.Reporter, line string, open, n int) {
	start := 0
	if j := strings.LastIndexByte(line[:open], '}'); j >= 0 {
		start = j + 1
	}
	sel := line[start:open]
	trimmed := strings.TrimSpace(sel)
	if trimmed == "" || strings.HasPrefix(trimmed, "@") {
		return
	}
	for k, r := range sel {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(selectorPunct, r) {
			continue
		}
		diag.ReportWarning(rep, diag.HeurInvalidSelector, n, column(line, start+k), "selector contains an invalid character '"+string(r)+"'")
		return
	}
}
