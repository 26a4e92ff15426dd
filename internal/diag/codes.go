package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Парные разделители и теги
	BrkInfo            Code = 1000
	BrkExtraClosing    Code = 1001
	BrkMismatch        Code = 1002
	BrkUnclosed        Code = 1003
	BrkExtraClosingTag Code = 1004
	BrkTagMismatch     Code = 1005
	BrkUnclosedTag     Code = 1006
	BrkUnclosedQuote   Code = 1007

	// Эвристики (предупреждения)
	HeurInfo             Code = 2000
	HeurMissingSemicolon Code = 2001
	HeurAssignInCond     Code = 2002
	HeurIndentation      Code = 2003
	HeurLegacyPrint      Code = 2004
	HeurStreamOperator   Code = 2005
	HeurUninitialized    Code = 2006
	HeurAccessModifier   Code = 2007
	HeurMissingDoctype   Code = 2008
	HeurRootSameLine     Code = 2009
	HeurUnquotedAttr     Code = 2010
	HeurVarDeclaration   Code = 2011
	HeurMultipleColons   Code = 2012
	HeurInvalidSelector  Code = 2013
	HeurAssignSpacing    Code = 2014
	HeurUnknownMnemonic  Code = 2015
	HeurMissingRoot      Code = 2016
	HeurImportSyntax     Code = 2017
	HeurInvalidProperty  Code = 2018

	// generic text
	TextTrailingSpace Code = 2100
	TextTabUsage      Code = 2101

	// Полная проверка буфера парсером
	ValInfo        Code = 3000
	ValSyntax      Code = 3001
	ValMissing     Code = 3002
	ValUnavailable Code = 3003

	// Ошибки I/O
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	BrkInfo:              "Delimiter information",
	BrkExtraClosing:      "Extra closing delimiter",
	BrkMismatch:          "Mismatched delimiter",
	BrkUnclosed:          "Unclosed delimiter",
	BrkExtraClosingTag:   "Extra closing tag",
	BrkTagMismatch:       "Tag mismatch",
	BrkUnclosedTag:       "Unclosed tag",
	BrkUnclosedQuote:     "Unclosed quote",
	HeurInfo:             "Heuristic information",
	HeurMissingSemicolon: "Missing semicolon",
	HeurAssignInCond:     "Assignment inside condition",
	HeurIndentation:      "Suspicious indentation",
	HeurLegacyPrint:      "Legacy print statement",
	HeurStreamOperator:   "Stream operator missing",
	HeurUninitialized:    "Possibly uninitialized variable",
	HeurAccessModifier:   "Access modifier misuse",
	HeurMissingDoctype:   "Missing DOCTYPE",
	HeurRootSameLine:     "Root element opened and closed on one line",
	HeurUnquotedAttr:     "Unquoted attribute value",
	HeurVarDeclaration:   "Function-scoped var declaration",
	HeurMultipleColons:   "Multiple colons in declaration",
	HeurInvalidSelector:  "Invalid selector",
	HeurAssignSpacing:    "Assignment spacing",
	HeurUnknownMnemonic:  "Unknown instruction",
	HeurMissingRoot:      "Missing root element",
	HeurImportSyntax:     "Import statement syntax",
	HeurInvalidProperty:  "Invalid property name",
	TextTrailingSpace:    "Trailing whitespace",
	TextTabUsage:         "Tab character",
	ValInfo:              "Validation information",
	ValSyntax:            "Syntax error",
	ValMissing:           "Missing token",
	ValUnavailable:       "Validation failed",
	IOLoadFileError:      "I/O load file error",
}

// ID returns the stable identifier, e.g. "BRK1002".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BRK%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("HEU%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if title, ok := codeDescription[c]; ok {
		return title
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
