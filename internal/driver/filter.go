package driver

import "synscan/internal/diag"

// filterReporter applies the run-level policy between the checker output and
// the per-file bag: severity rewrites, warning suppression and the baseline.
type filterReporter struct {
	next       diag.Reporter
	opts       *Options
	rel        string
	suppressed int
}

func (f *filterReporter) Report(code diag.Code, sev diag.Severity, line, col int, msg string) {
	if sev == diag.SevWarning {
		if f.opts.IgnoreWarnings {
			return
		}
		if f.opts.WarningsAsErrors {
			sev = diag.SevError
		}
	}
	if f.opts.Baseline.Contains(f.rel, code, line, col, msg) {
		f.suppressed++
		return
	}
	f.next.Report(code, sev, line, col, msg)
}

// postProcess replays raw checker output through the filter chain and
// returns what survives, in order.
func postProcess(raw []diag.Diagnostic, rel string, opts *Options) ([]diag.Diagnostic, int) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	var next diag.Reporter = diag.BagReporter{Bag: bag}
	if opts.Dedup {
		next = diag.NewDedupReporter(next)
	}
	f := &filterReporter{next: next, opts: opts, rel: rel}
	diag.Replay(f, raw)
	return bag.Items(), f.suppressed
}
