package diagfmt

import "synscan/internal/diag"

var hints = map[diag.Code]string{
	diag.BrkExtraClosing:      "check bracket pairing",
	diag.BrkMismatch:          "check bracket pairing",
	diag.BrkUnclosed:          "add the missing closing symbol",
	diag.BrkExtraClosingTag:   "check tag pairing",
	diag.BrkTagMismatch:       "check tag pairing",
	diag.BrkUnclosedTag:       "add the missing closing tag",
	diag.BrkUnclosedQuote:     "check that string quotes match",
	diag.HeurMissingSemicolon: "add a semicolon at the end of the line",
	diag.HeurAssignInCond:     "replace = with ==",
	diag.HeurIndentation:      "check that indentation is consistent",
	diag.HeurLegacyPrint:      "use the print() function",
	diag.HeurUninitialized:    "initialize the variable or assign a default value",
	diag.HeurInvalidSelector:  "check the syntax or spelling",
	diag.HeurInvalidProperty:  "check the syntax or spelling",
	diag.HeurUnknownMnemonic:  "check the syntax or spelling",
	diag.HeurImportSyntax:     "check the syntax or spelling",
	diag.HeurAssignSpacing:    "put a space around =",
	diag.HeurVarDeclaration:   "use let or const",
	diag.HeurUnquotedAttr:     "quote the attribute value",
	diag.TextTrailingSpace:    "remove trailing whitespace",
}

// Hint returns a short fix suggestion for the code, or "".
func Hint(code diag.Code) string {
	return hints[code]
}
