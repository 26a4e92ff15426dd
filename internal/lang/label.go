package lang

import (
	"strings"
	"unicode"
)

type labelRule struct {
	lang Language
	// any substring routes to lang
	substrings []string
	// whole words (split on anything that is not a letter, digit or '+')
	words []string
}

// labelRules is ordered: more specific labels come first so that "JavaScript"
// never lands on Java and "CSS" never lands on C.
var labelRules = []labelRule{
	{lang: Python, substrings: []string{"Python"}},
	{lang: JSON, substrings: []string{"JSON"}},
	{lang: JavaScript, substrings: []string{"JavaScript", "TypeScript"}},
	{lang: Java, substrings: []string{"Java"}},
	{lang: CSS, substrings: []string{"CSS"}},
	{lang: QML, substrings: []string{"QML"}},
	{lang: HTML, substrings: []string{"HTML"}},
	{lang: PHP, substrings: []string{"PHP"}},
	{lang: Shell, substrings: []string{"Bash", "Shell", "Batch"}},
	{lang: SQL, substrings: []string{"SQL"}},
	{lang: Assembly, substrings: []string{"Asm", "ASM", "GAS", "Assembly"}},
	{lang: CFamily, substrings: []string{"C++"}, words: []string{"C"}},
}

// FromLabel maps a free-form display label onto a language. Matching is
// case-sensitive substring containment, first rule wins; a bare "C" must
// be a whole word. Unmatched labels fall back to Text.
func FromLabel(label string) Language {
	var words []string
	for _, rule := range labelRules {
		for _, s := range rule.substrings {
			if strings.Contains(label, s) {
				return rule.lang
			}
		}
		if len(rule.words) == 0 {
			continue
		}
		if words == nil {
			words = splitWords(label)
		}
		for _, w := range rule.words {
			for _, have := range words {
				if have == w {
					return rule.lang
				}
			}
		}
	}
	return Text
}

func splitWords(label string) []string {
	return strings.FieldsFunc(label, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+'
	})
}

// LabelKeywords returns the label fragments that route to l, in match order.
func LabelKeywords(l Language) []string {
	var out []string
	for _, rule := range labelRules {
		if rule.lang != l {
			continue
		}
		out = append(out, rule.substrings...)
		out = append(out, rule.words...)
	}
	return out
}
