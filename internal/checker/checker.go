// Package checker holds the per-language heuristic scanners and the table
// that dispatches a document to one of them.
//
// Every checker reads a Document and reports through a diag.Reporter.
// Checkers keep their own emission order, never sort or dedupe, never mutate
// the input and return nothing for an empty document. Comment handling is line-level only:
// a line whose trimmed text starts with a comment marker is skipped, while
// brackets inside strings or trailing comments still count.
package checker

import (
	"fmt"
	"strings"

	"synscan/internal/diag"
	"synscan/internal/lang"
)

// SemicolonPolicy controls the optional missing-semicolon heuristics of the
// JavaScript, CSS and QML checkers.
type SemicolonPolicy uint8

const (
	// SemicolonsLenient never reports missing semicolons where the language
	// treats them as optional.
	SemicolonsLenient SemicolonPolicy = iota
	// SemicolonsStrict flags statement lines that do not end in a terminator.
	SemicolonsStrict
)

func (p SemicolonPolicy) String() string {
	if p == SemicolonsStrict {
		return "strict"
	}
	return "lenient"
}

// ParseSemicolonPolicy accepts "lenient" or "strict".
func ParseSemicolonPolicy(s string) (SemicolonPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return SemicolonsLenient, nil
	case "strict":
		return SemicolonsStrict, nil
	}
	return SemicolonsLenient, fmt.Errorf("unknown semicolon policy %q (want lenient or strict)", s)
}

// Options tune a single check.
type Options struct {
	Semicolons SemicolonPolicy
	// Validate enables full-buffer grammar validation for Python and
	// JavaScript.
	Validate bool
}

// DefaultOptions is lenient semicolons with validation on.
func DefaultOptions() Options {
	return Options{Semicolons: SemicolonsLenient, Validate: true}
}

// Request is one document to check.
type Request struct {
	Text     string
	Language lang.Language
	Options  Options
}

// Result is the ordered output of one check.
type Result struct {
	Diagnostics []diag.Diagnostic
}

// Summary counts the result's errors and warnings.
func (r Result) Summary() diag.Summary {
	return diag.Summarize(r.Diagnostics)
}

// Func is a language checker. It reports into rep in scan order.
type Func func(rep diag.Reporter, doc *Document, opts Options)

// Document is the read-only view handed to checkers.
type Document struct {
	Text  string
	Lines []string
}

// NewDocument splits text into lines. A trailing "\r" is removed from every
// line so CRLF input scans like LF input.
func NewDocument(text string) *Document {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Document{Text: text, Lines: lines}
}

var table = map[lang.Language]Func{
	lang.Text:       checkGeneric,
	lang.Python:     checkPython,
	lang.CFamily:    checkCFamily,
	lang.Java:       checkJava,
	lang.HTML:       checkHTML,
	lang.JavaScript: checkJavaScript,
	lang.JSON:       checkJSON,
	lang.CSS:        checkCSS,
	lang.PHP:        checkPHP,
	lang.Shell:      checkShell,
	lang.SQL:        checkSQL,
	lang.Assembly:   checkAssembly,
	lang.QML:        checkQML,
}

// Lookup returns the checker for l; unknown languages get the generic one.
func Lookup(l lang.Language) Func {
	if fn, ok := table[l]; ok {
		return fn
	}
	return checkGeneric
}

// Check runs the checker for req.Language over req.Text.
func Check(req Request) Result {
	return CheckReporting(req, nil)
}

// CheckReporting is Check with an extra reporter that sees every diagnostic
// as it is produced (trace hooks, dedup filters). The result is unaffected.
func CheckReporting(req Request, tap diag.Reporter) Result {
	if req.Text == "" {
		return Result{}
	}
	bag := diag.NewBag(0)
	var rep diag.Reporter = diag.BagReporter{Bag: bag}
	if tap != nil {
		rep = teeReporter{rep, tap}
	}
	run(Lookup(req.Language), rep, NewDocument(req.Text), req.Options)
	return Result{Diagnostics: bag.Items()}
}

// CheckLabel routes a free-form display label through lang.FromLabel.
func CheckLabel(label, text string, opts Options) Result {
	return Check(Request{Text: text, Language: lang.FromLabel(label), Options: opts})
}

func run(fn Func, rep diag.Reporter, doc *Document, opts Options) {
	defer func() {
		if r := recover(); r != nil {
			diag.ReportError(rep, diag.UnknownCode, 1, 0, fmt.Sprintf("internal checker failure: %v", r))
		}
	}()
	fn(rep, doc, opts)
}

type teeReporter struct {
	a, b diag.Reporter
}

func (t teeReporter) Report(code diag.Code, sev diag.Severity, line, col int, msg string) {
	t.a.Report(code, sev, line, col, msg)
	t.b.Report(code, sev, line, col, msg)
}
