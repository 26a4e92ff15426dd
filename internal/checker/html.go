package checker

import (
	"strings"

	"synscan/internal/diag"
	"synscan/internal/pairs"
)

// voidElements never take a closing tag.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "command": {}, "embed": {},
	"hr": {}, "img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// htmlTag is one "<...>" fragment found on a line.
type htmlTag struct {
	offset int    // byte offset of '<'
	body   string // text between '<' and the first '>'
}

// lineTags keeps every '<' whose first following '>' comes before the next
// '<'. Tags spanning lines are ignored. One pass over the line.
func lineTags(line string) []htmlTag {
	var out []htmlTag
	open := -1
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '<':
			open = i
		case '>':
			if open >= 0 {
				out = append(out, htmlTag{offset: open, body: line[open+1 : i]})
				open = -1
			}
		}
	}
	return out
}

func tagName(s string) string {
	end := strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '/'
	})
	if end >= 0 {
		s = s[:end]
	}
	return s
}

func checkHTML(rep diag.Reporter, doc *Document, _ Options) {
	tags := pairs.NewTags(rep)
	for i, line := range doc.Lines {
		n := i + 1
		if strings.HasPrefix(strings.TrimSpace(line), "<!--") {
			continue
		}
		for _, t := range lineTags(line) {
			switch {
			case strings.HasPrefix(t.body, "/"):
				if name := tagName(strings.TrimSpace(t.body[1:])); name != "" {
					tags.Close(name, n, column(line, t.offset))
				}
			case hasPrefixAny(t.body, "!", "?"), strings.HasSuffix(t.body, "/"):
			default:
				name := strings.ToLower(tagName(t.body))
				if name == "" {
					continue
				}
				if _, void := voidElements[name]; void {
					continue
				}
				tags.Open(name, n, column(line, t.offset))
			}
		}
	}
	tags.Finish()

	for i, line := range doc.Lines {
		n := i + 1
		lower := strings.ToLower(strings.TrimSpace(line))

		if n == 1 && !strings.Contains(lower, "<!doctype") {
			diag.ReportWarning(rep, diag.HeurMissingDoctype, n, 1, "consider adding a <!DOCTYPE html> declaration")
		}

		if strings.Contains(lower, "<html") && strings.Contains(lower, "</html>") {
			idx := strings.Index(strings.ToLower(line), "<html")
			diag.ReportWarning(rep, diag.HeurRootSameLine, n, column(line, idx), "<html> element opened and closed on the same line")
		}

		if strings.Contains(line, "<") && strings.Contains(line, "=") {
			checkAttributeQuotes(rep, line, n)
		}
	}
}

func checkAttributeQuotes(rep diag.Reporter, line string, n int) {
	for _, t := range lineTags(line) {
		if !strings.Contains(t.body, "=") {
			continue
		}
		fields := strings.Split(t.body, " ")
		offset := t.offset + 1
		for fi, attr := range fields {
			at := offset
			offset += len(attr) + 1
			if fi == 0 {
				continue
			}
			name, value, ok := strings.Cut(attr, "=")
			if !ok || value == "" {
				continue
			}
			if !hasPrefixAny(value, `"`, "'") {
				diag.ReportWarning(rep, diag.HeurUnquotedAttr, n, column(line, at), "attribute value '"+name+"' should be quoted")
			}
		}
	}
}
