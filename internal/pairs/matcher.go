// Package pairs implements the stack matcher shared by every checker that
// balances delimiters or markup tags.
//
// A Matcher is fed openers and closers in scan order. It reports a closer
// with nothing open, a closer that does not fit the innermost opener, and,
// on Finish, every opener still waiting for its closer. The scan itself
// (which runes or tags count, which lines are skipped as comments) is the
// caller's business; Delimiters and Tags cover the two common alphabets.
package pairs

import "synscan/internal/diag"

// Entry is an opener waiting on the stack.
type Entry[K comparable] struct {
	Key    K
	Line   int
	Column int
}

// Style supplies codes and message texts for one family of pairs.
type Style struct {
	ExtraCode    diag.Code
	MismatchCode diag.Code
	UnclosedCode diag.Code

	Extra    func(found string) string
	Mismatch func(expected, found string) string
	Unclosed func(open string) string
}

// Matcher is a generic opener/closer stack keyed by K.
type Matcher[K comparable] struct {
	// closerOf maps an opener key to the closer key that ends it.
	closerOf  func(K) K
	openText  func(K) string
	closeText func(K) string
	style     Style
	rep       diag.Reporter
	stack     []Entry[K]
}

// NewMatcher builds a matcher reporting into rep.
func NewMatcher[K comparable](rep diag.Reporter, style Style, closerOf func(K) K, openText, closeText func(K) string) *Matcher[K] {
	return &Matcher[K]{
		closerOf:  closerOf,
		openText:  openText,
		closeText: closeText,
		style:     style,
		rep:       rep,
	}
}

// Open pushes an opener.
func (m *Matcher[K]) Open(key K, line, col int) {
	m.stack = append(m.stack, Entry[K]{Key: key, Line: line, Column: col})
}

// Close pops the innermost opener and checks that key closes it.
// It returns false when a diagnostic was reported.
func (m *Matcher[K]) Close(key K, line, col int) bool {
	if len(m.stack) == 0 {
		diag.ReportError(m.rep, m.style.ExtraCode, line, col, m.style.Extra(m.closeText(key)))
		return false
	}
	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	want := m.closerOf(top.Key)
	if want != key {
		diag.ReportError(m.rep, m.style.MismatchCode, line, col, m.style.Mismatch(m.closeText(want), m.closeText(key)))
		return false
	}
	return true
}

// Depth is the number of pending openers.
func (m *Matcher[K]) Depth() int {
	return len(m.stack)
}

// Finish reports every pending opener at its own position, outermost first,
// and resets the matcher.
func (m *Matcher[K]) Finish() {
	for _, e := range m.stack {
		diag.ReportError(m.rep, m.style.UnclosedCode, e.Line, e.Column, m.style.Unclosed(m.openText(e.Key)))
	}
	m.stack = m.stack[:0]
}
