package checker

import (
	"strings"

	"synscan/internal/diag"
	"synscan/internal/parsecheck"
)

// pythonBlockKeywords exempt an unindented line from the indentation warning.
var pythonBlockKeywords = []string{
	"class ", "def ", "if ", "elif ", "else:", "for ", "while ",
	"try:", "except", "finally:", "with ", "lambda ",
}

var pythonCondKeywords = []string{"if ", "elif ", "while "}

func checkPython(rep diag.Reporter, doc *Document, opts Options) {
	for i, line := range doc.Lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		comment := strings.HasPrefix(trimmed, "#")

		if !comment && (strings.Count(trimmed, `"`)%2 != 0 || strings.Count(trimmed, "'")%2 != 0) {
			diag.ReportError(rep, diag.BrkUnclosedQuote, n, 1, "possibly unclosed string literal")
		}

		if line != "" && !hasPrefixAny(line, " ", "\t") && !comment {
			if !hasAnyKeyword(trimmed, pythonBlockKeywords) {
				diag.ReportWarning(rep, diag.HeurIndentation, n, 1, "possible indentation problem")
			}
		}

		if pi := keywordIndex(line, "print "); pi >= 0 && !strings.Contains(line, "print(") {
			diag.ReportWarning(rep, diag.HeurLegacyPrint, n, column(line, pi), "print is a function in Python 3: use print(...)")
		}

		if col := assignInCondition(line, line, pythonCondKeywords); col > 0 {
			diag.ReportWarning(rep, diag.HeurAssignInCond, n, col, msgAssignInCondition)
		}
	}

	if opts.Validate {
		parsecheck.Validate(rep, parsecheck.Python, doc.Text, len(doc.Lines))
	}
}
