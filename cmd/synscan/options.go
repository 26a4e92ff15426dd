package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"synscan/internal/checker"
	"synscan/internal/config"
	"synscan/internal/driver"
	"synscan/internal/lang"
)

// loadConfig honours --config, otherwise searches upwards from target.
func loadConfig(cmd *cobra.Command, target string) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(target)
}

// baseDriverOptions turns the config and global flags into driver options.
// Command specific flags are applied by the caller.
func baseDriverOptions(cmd *cobra.Command, cfg config.Config) (driver.Options, error) {
	opts := driver.Options{
		Check:          cfg.CheckerOptions(),
		Detector:       lang.Detector{Overrides: cfg.Languages},
		MaxDiagnostics: cfg.MaxDiagnostics,
		Exclude:        append([]string(nil), cfg.Exclude...),
		Jobs:           cfg.Jobs,
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics >= 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}
	return opts, nil
}

// checkFlags is the subset of check flags that shape driver options.
type checkFlags struct {
	label            string
	strictSemicolons bool
	noValidate       bool
	noWarnings       bool
	warningsAsErrors bool
	dedup            bool
	jobs             int
	exclude          []string
}

func (f checkFlags) apply(opts *driver.Options) error {
	if f.noWarnings && f.warningsAsErrors {
		return fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}
	if f.label != "" {
		if lang.FromLabel(f.label) == lang.Text {
			if l, ok := lang.ParseTag(f.label); ok {
				opts.Label = lang.DisplayLabel(l)
			} else {
				return fmt.Errorf("unknown language %q (see synscan languages)", f.label)
			}
		} else {
			opts.Label = f.label
		}
	}
	if f.strictSemicolons {
		opts.Check.Semicolons = checker.SemicolonsStrict
	}
	if f.noValidate {
		opts.Check.Validate = false
	}
	opts.IgnoreWarnings = f.noWarnings
	opts.WarningsAsErrors = f.warningsAsErrors
	opts.Dedup = f.dedup
	if f.jobs > 0 {
		opts.Jobs = f.jobs
	}
	opts.Exclude = append(opts.Exclude, f.exclude...)
	return nil
}
