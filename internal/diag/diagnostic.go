package diag

import "fmt"

// Diagnostic is a single reported problem.
//
// Line is 1-based. Column is 1-based, 0 when the producing heuristic has no
// column (whole-line findings). Values are treated as immutable once a
// checker has appended them to its result.
type Diagnostic struct {
	Line     int
	Column   int
	Message  string
	Severity Severity
	Code     Code
}

// HasColumn reports whether the diagnostic carries a known column.
func (d Diagnostic) HasColumn() bool {
	return d.Column > 0
}

// IsError is a shortcut for Severity == SevError.
func (d Diagnostic) IsError() bool {
	return d.Severity == SevError
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s %d:%d %s", d.Severity.Label(), d.Code.ID(), d.Line, d.Column, d.Message)
}

// NewError builds an error diagnostic.
func NewError(code Code, line, col int, msg string) Diagnostic {
	return Diagnostic{Line: line, Column: col, Message: msg, Severity: SevError, Code: code}
}

// NewWarning builds a warning diagnostic.
func NewWarning(code Code, line, col int, msg string) Diagnostic {
	return Diagnostic{Line: line, Column: col, Message: msg, Severity: SevWarning, Code: code}
}
