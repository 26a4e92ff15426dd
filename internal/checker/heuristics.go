package checker

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// column converts a byte offset within line to a 1-based rune column.
func column(line string, byteIdx int) int {
	if byteIdx < 0 {
		return 1
	}
	if byteIdx > len(line) {
		byteIdx = len(line)
	}
	return utf8.RuneCountInString(line[:byteIdx]) + 1
}

// width is the rune length of line; used for end-of-line anchors.
func width(line string) int {
	return utf8.RuneCountInString(line)
}

// endColumn anchors a finding at the last character of line.
func endColumn(line string) int {
	if w := width(line); w > 0 {
		return w
	}
	return 1
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// keywordIndex finds kw in s such that it does not continue an identifier on
// the left, and, when kw ends in an identifier rune, not on the right either.
// Returns the byte offset or -1.
func keywordIndex(s, kw string) int {
	if kw == "" {
		return -1
	}
	first, _ := utf8.DecodeRuneInString(kw)
	last, _ := utf8.DecodeLastRuneInString(kw)
	checkLeft := isIdentRune(first)
	checkRight := isIdentRune(last)
	from := 0
	for from <= len(s) {
		i := strings.Index(s[from:], kw)
		if i < 0 {
			return -1
		}
		i += from
		ok := true
		if checkLeft && i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(s[:i])
			ok = !isIdentRune(prev)
		}
		if ok && checkRight {
			if end := i + len(kw); end < len(s) {
				next, _ := utf8.DecodeRuneInString(s[end:])
				ok = !isIdentRune(next)
			}
		}
		if ok {
			return i
		}
		from = i + 1
	}
	return -1
}

func hasKeyword(s, kw string) bool {
	return keywordIndex(s, kw) >= 0
}

func hasAnyKeyword(s string, kws []string) bool {
	for _, kw := range kws {
		if keywordIndex(s, kw) >= 0 {
			return true
		}
	}
	return false
}

func hasPrefixAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func hasSuffixAny(s string, suffixes ...string) bool {
	for _, p := range suffixes {
		if strings.HasSuffix(s, p) {
			return true
		}
	}
	return false
}

// slashComment reports lines skipped by the C-style checkers.
func slashComment(trimmed string) bool {
	return hasPrefixAny(trimmed, "//", "/*", "*")
}

// comparisonOps rule out the assignment-in-condition warning.
var comparisonOps = []string{
	"==", "!=", "<=", ">=", "=>",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", ":=",
}

// lonelyAssign returns the byte offset of the first '=' in s when s has an
// '=' and none of the comparison or compound operators, else -1.
func lonelyAssign(s string) int {
	i := strings.IndexByte(s, '=')
	if i < 0 {
		return -1
	}
	for _, op := range comparisonOps {
		if strings.Contains(s, op) {
			return -1
		}
	}
	return i
}

// conditionSpan narrows a line to the part that acts as a condition. For a
// three-clause for header only the middle clause counts; everything else is
// the whole line. Returns the byte range [start, end).
func conditionSpan(line string) (int, int) {
	if fi := keywordIndex(line, "for"); fi >= 0 {
		rest := line[fi:]
		if a := strings.IndexByte(rest, ';'); a >= 0 {
			if b := strings.IndexByte(rest[a+1:], ';'); b >= 0 {
				return fi + a + 1, fi + a + 1 + b
			}
		}
	}
	return 0, len(line)
}

// assignInCondition reports the column of a probable '=' meant as '==' when
// the trimmed line carries one of condKeywords, or 0.
func assignInCondition(line, trimmed string, condKeywords []string) int {
	if !strings.Contains(line, "=") || !hasAnyKeyword(trimmed, condKeywords) {
		return 0
	}
	start, end := conditionSpan(line)
	i := lonelyAssign(line[start:end])
	if i < 0 {
		return 0
	}
	return column(line, start+i)
}

const msgAssignInCondition = "possible assignment in condition: did you mean '=='?"
