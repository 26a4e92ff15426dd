package pairs

import (
	"fmt"
	"strings"

	"synscan/internal/diag"
)

var tagStyle = Style{
	ExtraCode:    diag.BrkExtraClosingTag,
	MismatchCode: diag.BrkTagMismatch,
	UnclosedCode: diag.BrkUnclosedTag,
	Extra: func(found string) string {
		return "extra closing tag " + found
	},
	Mismatch: func(expected, found string) string {
		return fmt.Sprintf("tag mismatch: expected %s, found %s", expected, found)
	},
	Unclosed: func(open string) string {
		return "unclosed tag: " + open
	},
}

// Tags matches markup element names case-insensitively.
type Tags struct {
	m *Matcher[string]
}

// NewTags creates a tag matcher reporting into rep.
func NewTags(rep diag.Reporter) *Tags {
	return &Tags{m: NewMatcher(rep, tagStyle, sameTag, openTag, closeTag)}
}

func sameTag(name string) string { return name }

func openTag(name string) string { return "<" + name + ">" }

func closeTag(name string) string { return "</" + name + ">" }

func (t *Tags) Open(name string, line, col int) {
	t.m.Open(strings.ToLower(name), line, col)
}

func (t *Tags) Close(name string, line, col int) bool {
	return t.m.Close(strings.ToLower(name), line, col)
}

func (t *Tags) Depth() int {
	return t.m.Depth()
}

// Finish reports unclosed tags at their opening position.
func (t *Tags) Finish() {
	t.m.Finish()
}
