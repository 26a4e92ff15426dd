// Package parsecheck validates a whole buffer with a real grammar and turns
// the first rejected node into a single diagnostic.
//
// Python and JavaScript go through tree-sitter grammars, JSON through the
// strict encoding/json decoder; nothing is ever evaluated. A parser failure
// (nil tree, panic inside the binding) becomes one generic error at line 1
// so that callers always get a bounded, well-formed result.
package parsecheck

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"

	"synscan/internal/diag"
)

// Grammar selects the tree-sitter language.
type Grammar uint8

const (
	Python Grammar = iota
	JavaScript
	// JSON must hold exactly one strict JSON value.
	JSON
)

func (g Grammar) String() string {
	switch g {
	case Python:
		return "python"
	case JavaScript:
		return "javascript"
	case JSON:
		return "json"
	}
	return "unknown"
}

func (g Grammar) language() *sitter.Language {
	if g == Python {
		return python.GetLanguage()
	}
	return javascript.GetLanguage()
}

// Finding is the first problem the parser reported.
type Finding struct {
	Line    int // 1-based
	Column  int // 1-based, in runes
	Missing string
	Detail  string // decoder message, JSON only
}

// Message renders the finding the way it appears in diagnostics.
func (f Finding) Message() string {
	if f.Missing != "" {
		return fmt.Sprintf("syntax error: missing %q", f.Missing)
	}
	if f.Detail != "" {
		return "syntax error: " + f.Detail
	}
	return "syntax error: unexpected input"
}

// Parse runs the grammar over src and returns the first error node, or nil
// when the tree is clean.
func Parse(g Grammar, src string) (*Finding, error) {
	if g == JSON {
		return parseJSON(src), nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(g.language())
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(src))
	if err != nil {
		return nil, fmt.Errorf("%s parser: %w", g, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%s parser returned no tree", g)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("%s parser returned no root node", g)
	}
	if !root.HasError() {
		return nil, nil
	}

	bad := firstError(root)
	if bad == nil {
		bad = root
	}
	pt := bad.StartPoint()
	row := int(pt.Row)
	f := &Finding{
		Line:   row + 1,
		Column: runeColumn(src, row, int(pt.Column)),
	}
	if bad.IsMissing() {
		f.Missing = bad.Type()
	}
	return f, nil
}

// firstError walks the tree in document order and returns the first ERROR or
// MISSING node. Subtrees without errors are skipped.
func firstError(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	if !n.HasError() {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if found := firstError(n.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

// runeColumn converts a byte column on row (0-based) to a 1-based rune column.
func runeColumn(src string, row, byteCol int) int {
	lines := strings.Split(src, "\n")
	if row >= len(lines) {
		return 1
	}
	line := lines[row]
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return utf8.RuneCountInString(line[:byteCol]) + 1
}

// Validate parses src and reports at most one error into rep. lineCount bounds
// the reported line so that diagnostics stay inside the document.
func Validate(rep diag.Reporter, g Grammar, src string, lineCount int) {
	defer func() {
		if r := recover(); r != nil {
			diag.ReportError(rep, diag.ValUnavailable, 1, 0, fmt.Sprintf("syntax validation failed: %v", r))
		}
	}()

	f, err := Parse(g, src)
	if err != nil {
		diag.ReportError(rep, diag.ValUnavailable, 1, 0, "syntax validation failed: "+err.Error())
		return
	}
	if f == nil {
		return
	}
	if lineCount > 0 && f.Line > lineCount {
		f.Line = lineCount
	}
	code := diag.ValSyntax
	if f.Missing != "" {
		code = diag.ValMissing
	}
	diag.ReportError(rep, code, f.Line, f.Column, f.Message())
}
