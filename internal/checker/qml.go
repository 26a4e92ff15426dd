package checker

import (
	"strings"

	"synscan/internal/diag"
	"synscan/internal/pairs"
)

// qtModules are the Qt imports that traditionally carry a version.
var qtModules = map[string]struct{}{
	"QtQuick": {}, "QtWidgets": {}, "QtCore": {}, "QtGui": {}, "QtQml": {},
}

var qmlCondKeywords = []string{"if ", "else if ", "while "}

func checkQML(rep diag.Reporter, doc *Document, opts Options) {
	strict := opts.Semicolons == SemicolonsStrict

	brackets := pairs.NewDelimiters(rep, pairs.Brackets)
	var quotes []rune
	for i, line := range doc.Lines {
		for _, r := range line {
			if r != '"' && r != '\'' {
				continue
			}
			if len(quotes) > 0 && quotes[len(quotes)-1] == r {
				quotes = quotes[:len(quotes)-1]
			} else {
				quotes = append(quotes, r)
			}
		}
		brackets.ScanLine(line, i+1)
	}
	brackets.Finish()
	if len(quotes) > 0 {
		diag.ReportError(rep, diag.BrkUnclosedQuote, 1, 1, "unclosed quote: "+string(quotes[len(quotes)-1]))
	}

	blank := strings.TrimSpace(doc.Text) == ""
	if !blank && !qmlHasRoot(doc.Lines) {
		diag.ReportError(rep, diag.HeurMissingRoot, 1, 1, "QML document has no root element")
	}

	hasImport := false
	for i, line := range doc.Lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "import") {
			continue
		}
		hasImport = true
		fields := strings.Fields(trimmed)
		switch {
		case len(fields) < 2:
			diag.ReportWarning(rep, diag.HeurImportSyntax, i+1, 1, "import statement has no module")
		case strict && len(fields) == 2:
			if _, qt := qtModules[fields[1]]; qt {
				diag.ReportWarning(rep, diag.HeurImportSyntax, i+1, endColumn(line), "consider adding a version to the Qt module import")
			}
		}
	}
	if !hasImport && !blank {
		diag.ReportWarning(rep, diag.HeurImportSyntax, 1, 1, "consider adding an import statement")
	}

	for i, line := range doc.Lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || slashComment(trimmed) {
			continue
		}

		if strings.Contains(trimmed, ":") && !strings.HasPrefix(trimmed, "import") {
			if strict && !hasSuffixAny(trimmed, ";", "{", "[", ",") {
				diag.ReportWarning(rep, diag.HeurMissingSemicolon, n, endColumn(line), "consider ending the property with a semicolon")
			}
			prop, _, _ := strings.Cut(trimmed, ":")
			if name := qmlPropertyName(prop); !isDottedIdent(name) {
				diag.ReportWarning(rep, diag.HeurInvalidProperty, n, 1, "invalid property name: "+strings.TrimSpace(prop))
			}
		}

		if strict && strings.Contains(trimmed, "(") && strings.Contains(trimmed, ")") &&
			!hasSuffixAny(trimmed, ";", "{") && !strings.Contains(trimmed, ":") {
			diag.ReportWarning(rep, diag.HeurMissingSemicolon, n, endColumn(line), "consider ending the call with a semicolon")
		}

		if col := assignInCondition(line, line, qmlCondKeywords); col > 0 {
			diag.ReportWarning(rep, diag.HeurAssignInCond, n, col, msgAssignInCondition)
		}
	}
}

func qmlHasRoot(lines []string) bool {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || slashComment(trimmed) {
			continue
		}
		if strings.HasSuffix(trimmed, "{") && !strings.HasPrefix(trimmed, "import") {
			return true
		}
	}
	return false
}

// qmlPropertyName strips declaration words: "readonly property int count"
// becomes "count".
func qmlPropertyName(prop string) string {
	fields := strings.Fields(prop)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "property", "readonly", "default", "required":
		return fields[len(fields)-1]
	}
	if len(fields) == 1 {
		return fields[0]
	}
	return strings.TrimSpace(prop)
}

func isDottedIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for i, r := range part {
			if !isIdentRune(r) || (i == 0 && r >= '0' && r <= '9') {
				return false
			}
		}
	}
	return true
}
