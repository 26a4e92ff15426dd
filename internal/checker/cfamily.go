package checker

import (
	"strings"

	"synscan/internal/diag"
	"synscan/internal/pairs"
)

var cStatementKeywords = []string{
	"if", "else", "for", "while", "do", "switch", "case", "default",
	"break", "continue", "return", "goto", "try", "catch", "throw",
	"new", "delete", "class", "struct", "enum", "union", "typedef",
	"namespace", "using", "template", "extern", "inline", "static",
	"const", "volatile", "mutable", "friend", "virtual", "override",
	"final", "explicit", "constexpr", "consteval", "constinit",
	"noexcept", "decltype", "auto", "declspec", "__declspec", "__attribute__",
}

var cCondKeywords = []string{"if", "else if", "while", "for", "switch", "case"}

var cTypeKeywords = []string{
	"int ", "float ", "double ", "char ", "bool ", "short ", "long ",
	"unsigned ", "signed ", "void ", "auto ", "const ", "volatile ",
	"mutable ", "static ", "extern ",
}

// cDeclStructure marks lines that declare types or scopes rather than
// variables.
var cDeclStructure = []string{
	"class", "struct", "enum", "union", "typedef", "namespace", "using",
	"template", "friend", "virtual", "override", "final", "explicit",
	"constexpr", "consteval", "constinit", "noexcept", "decltype",
	"declspec", "__declspec", "__attribute__",
}

const (
	msgMissingSemicolon = "possibly missing semicolon"
	msgUninitialized    = "possibly uninitialized variable"
)

func checkCFamily(rep diag.Reporter, doc *Document, _ Options) {
	brackets := pairs.NewDelimiters(rep, pairs.Brackets)
	for i, line := range doc.Lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if slashComment(trimmed) {
			continue
		}

		brackets.ScanLine(line, n)

		if trimmed != "" &&
			!hasSuffixAny(trimmed, ";", "{", "}", ":", ",", `\`) &&
			!strings.HasPrefix(trimmed, "#") &&
			!strings.Contains(trimmed, "(") &&
			!hasAnyKeyword(trimmed, cStatementKeywords) {
			diag.ReportWarning(rep, diag.HeurMissingSemicolon, n, endColumn(line), msgMissingSemicolon)
		}

		if !strings.Contains(line, "<<") && !strings.Contains(line, ">>") {
			idx := keywordIndex(line, "cout")
			if idx < 0 {
				idx = keywordIndex(line, "cin")
			}
			if idx >= 0 {
				diag.ReportWarning(rep, diag.HeurStreamOperator, n, column(line, idx), "stream used without << or >>")
			}
		}

		if col := assignInCondition(line, trimmed, cCondKeywords); col > 0 {
			diag.ReportWarning(rep, diag.HeurAssignInCond, n, col, msgAssignInCondition)
		}

		if hasAnyKeyword(line, cTypeKeywords) &&
			!strings.Contains(line, "=") && !strings.Contains(line, "(") &&
			!hasAnyKeyword(trimmed, cDeclStructure) {
			diag.ReportWarning(rep, diag.HeurUninitialized, n, 1, msgUninitialized)
		}
	}
	brackets.Finish()
}
