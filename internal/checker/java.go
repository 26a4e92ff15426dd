package checker

import (
	"strings"

	"synscan/internal/diag"
	"synscan/internal/pairs"
)

var javaStatementKeywords = []string{
	"if", "else", "for", "while", "do", "switch", "case", "default",
	"break", "continue", "return", "throw", "try", "catch", "finally",
	"synchronized", "class", "interface", "enum", "record", "annotation",
	"extends", "implements", "throws", "native", "abstract", "final",
	"static", "private", "protected", "public", "strictfp", "transient",
	"volatile", "instanceof", "new", "super", "this", "assert", "var",
	"const", "goto",
}

var javaTypeKeywords = []string{
	"int ", "float ", "double ", "char ", "boolean ", "short ", "long ",
	"byte ", "void ", "var ", "private ", "protected ", "public ",
	"static ", "final ", "abstract ", "synchronized ", "transient ",
	"volatile ", "native ", "strictfp ", "default ", "record ", "enum ",
	"interface ", "class ",
}

// javaDeclStructure is the statement list minus control flow: a line with
// any of these is a declaration the uninitialized heuristic leaves alone.
var javaDeclStructure = []string{
	"class", "interface", "enum", "record", "annotation", "extends",
	"implements", "throws", "native", "abstract", "final", "static",
	"private", "protected", "public", "default", "strictfp", "transient",
	"volatile", "synchronized", "instanceof", "new", "super", "this",
	"assert", "var", "const", "goto",
}

var javaModifiers = []string{"public", "protected", "private"}

// javaDeclKeywords legitimise an access modifier on the same line.
var javaDeclKeywords = []string{
	"class ", "interface ", "enum ", "record ", "annotation ", "void ",
	"int ", "float ", "double ", "char ", "boolean ", "short ", "long ",
	"byte ", "var ",
}

func checkJava(rep diag.Reporter, doc *Document, _ Options) {
	brackets := pairs.NewDelimiters(rep, pairs.Brackets)
	for i, line := range doc.Lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if slashComment(trimmed) {
			continue
		}

		brackets.ScanLine(line, n)

		if trimmed != "" &&
			!hasSuffixAny(trimmed, ";", "{", "}", ":", ",") &&
			!hasPrefixAny(trimmed, "package", "import", "@") &&
			!hasAnyKeyword(trimmed, javaStatementKeywords) {
			diag.ReportWarning(rep, diag.HeurMissingSemicolon, n, endColumn(line), msgMissingSemicolon)
		}

		if col := assignInCondition(line, trimmed, cCondKeywords); col > 0 {
			diag.ReportWarning(rep, diag.HeurAssignInCond, n, col, msgAssignInCondition)
		}

		if hasAnyKeyword(line, javaTypeKeywords) &&
			!strings.Contains(line, "=") && !strings.Contains(line, "(") &&
			!hasAnyKeyword(trimmed, javaDeclStructure) {
			diag.ReportWarning(rep, diag.HeurUninitialized, n, 1, msgUninitialized)
		}

		for _, mod := range javaModifiers {
			idx := keywordIndex(line, mod)
			if idx < 0 {
				continue
			}
			if !hasAnyKeyword(line, javaDeclKeywords) && !looksLikeMember(line[idx+len(mod):]) {
				diag.ReportWarning(rep, diag.HeurAccessModifier, n, column(line, idx), "access modifier should apply to a class, interface, method or field")
			}
			break
		}
	}
	brackets.Finish()
}

// looksLikeMember accepts "Type name", "Type name(", "Type<T> name" after a
// modifier: at least two identifier-ish fields before any '=' or '('.
func looksLikeMember(rest string) bool {
	head := rest
	if i := strings.IndexAny(head, "=(;{"); i >= 0 {
		head = head[:i]
	}
	fields := strings.Fields(head)
	for len(fields) > 0 && isJavaModifierWord(fields[0]) {
		fields = fields[1:]
	}
	return len(fields) >= 2 || (len(fields) == 1 && strings.Contains(rest, "("))
}

func isJavaModifierWord(w string) bool {
	switch w {
	case "static", "final", "abstract", "synchronized", "transient", "volatile", "native", "strictfp", "default":
		return true
	}
	return false
}
