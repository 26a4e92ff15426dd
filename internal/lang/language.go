package lang

import (
	"fmt"
	"strings"
)

// Language is the tag the dispatcher routes on.
type Language uint8

const (
	// Text is the generic fallback: only whitespace checks apply.
	Text Language = iota
	Python
	CFamily
	Java
	HTML
	JavaScript
	JSON
	CSS
	PHP
	Shell
	SQL
	Assembly
	QML

	languageCount
)

var languageNames = [languageCount]string{
	Text:       "text",
	Python:     "python",
	CFamily:    "c",
	Java:       "java",
	HTML:       "html",
	JavaScript: "javascript",
	JSON:       "json",
	CSS:        "css",
	PHP:        "php",
	Shell:      "shell",
	SQL:        "sql",
	Assembly:   "asm",
	QML:        "qml",
}

var tagAliases = map[string]Language{
	"plain":      Text,
	"txt":        Text,
	"py":         Python,
	"cpp":        CFamily,
	"c++":        CFamily,
	"cc":         CFamily,
	"js":         JavaScript,
	"ts":         JavaScript,
	"typescript": JavaScript,
	"bash":       Shell,
	"sh":         Shell,
	"batch":      Shell,
	"nasm":       Assembly,
	"assembly":   Assembly,
}

func (l Language) String() string {
	if l >= languageCount {
		return "unknown"
	}
	return languageNames[l]
}

func (l Language) GoString() string {
	return fmt.Sprintf("Language(%s)", l.String())
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	return l < languageCount
}

// All lists every language in declaration order.
func All() []Language {
	out := make([]Language, 0, languageCount)
	for l := Text; l < languageCount; l++ {
		out = append(out, l)
	}
	return out
}

// ParseTag resolves an exact tag ("python", "c", "asm") or a common alias.
func ParseTag(tag string) (Language, bool) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for l := Text; l < languageCount; l++ {
		if languageNames[l] == tag {
			return l, true
		}
	}
	l, ok := tagAliases[tag]
	return l, ok
}
