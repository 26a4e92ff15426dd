package driver

import (
	"fmt"

	"synscan/internal/checker"
	"synscan/internal/lang"
)

// Options control a file or directory run.
type Options struct {
	Check    checker.Options
	Detector lang.Detector
	// Label forces every document through one display label ("Python",
	// "C++") instead of detection.
	Label string
	// MaxDiagnostics caps diagnostics kept per file, 0 = unlimited.
	MaxDiagnostics   int
	IgnoreWarnings   bool
	WarningsAsErrors bool
	// Dedup drops repeated identical diagnostics within a file.
	Dedup bool
	// Exclude holds doublestar patterns matched against slash paths
	// relative to the directory being walked.
	Exclude []string
	// Jobs limits parallel workers in CheckDir, 0 = GOMAXPROCS.
	Jobs     int
	Baseline *Baseline
	// OnFile is called from worker goroutines as each file finishes.
	OnFile func(FileResult)
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{Check: checker.DefaultOptions()}
}

func (o Options) validate() error {
	if o.IgnoreWarnings && o.WarningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors cannot be used together")
	}
	if o.MaxDiagnostics < 0 {
		return fmt.Errorf("max diagnostics must be >= 0, got %d", o.MaxDiagnostics)
	}
	return nil
}
