package diag

type dedupKey struct {
	code Code
	sev  Severity
	line int
	col  int
	msg  string
}

// DedupReporter wraps another Reporter and suppresses duplicate diagnostics
// with the same code, severity, position and message.
//
// Checkers never dedupe on their own; overlapping heuristics may fire on the
// same line and that output is preserved unless a caller opts into this filter.
type DedupReporter struct {
	next Reporter
	seen map[dedupKey]struct{}
}

// NewDedupReporter returns a Reporter that filters out duplicates while
// forwarding unique diagnostics to the provided reporter.
func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{
		next: next,
		seen: make(map[dedupKey]struct{}),
	}
}

func (r *DedupReporter) Report(code Code, sev Severity, line, col int, msg string) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, line: line, col: col, msg: msg}
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, line, col, msg)
	}
}
