package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"synscan/internal/diagfmt"
	"synscan/internal/driver"
	"synscan/internal/observ"
	"synscan/internal/ui"
	"synscan/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|directory|->",
	Short: "Scan a file, a directory or stdin for syntax problems",
	Long: `Scan a source file, every recognised file under a directory, or stdin ("-")
and report syntax problems. Exits with status 1 when any error remains after
filtering.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("lang", "", "force a language label or tag instead of detection (e.g. \"Python\", \"c++\")")
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|problems|json|sarif)")
	checkCmd.Flags().Bool("strict-semicolons", false, "report missing semicolons in languages where they are optional")
	checkCmd.Flags().Bool("no-validate", false, "skip full-buffer grammar validation (Python, JavaScript, JSON)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Bool("dedup", false, "drop repeated identical diagnostics within a file")
	checkCmd.Flags().Bool("hints", false, "include fix suggestions in output")
	checkCmd.Flags().Bool("codes", false, "show diagnostic codes in problems output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().StringSlice("exclude", nil, "doublestar patterns to skip, relative to the directory")
	checkCmd.Flags().String("baseline", "", "suppress diagnostics recorded in this baseline file")
	checkCmd.Flags().String("write-baseline", "", "record the current diagnostics into a baseline file")
	checkCmd.Flags().String("ui", "off", "progress view for directory runs (auto|on|off)")
}

type renderOptions struct {
	format   string
	color    bool
	hints    bool
	codes    bool
	fullPath bool
	max      int
}

func runCheck(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	target := args[0]
	timer := observ.NewTimer()

	var (
		flags  checkFlags
		render renderOptions
		err    error
	)
	if flags.label, err = cmd.Flags().GetString("lang"); err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	if render.format, err = cmd.Flags().GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	render.format = strings.ToLower(render.format)
	switch render.format {
	case "pretty", "short", "problems", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", render.format)
	}
	if flags.strictSemicolons, err = cmd.Flags().GetBool("strict-semicolons"); err != nil {
		return fmt.Errorf("failed to get strict-semicolons flag: %w", err)
	}
	if flags.noValidate, err = cmd.Flags().GetBool("no-validate"); err != nil {
		return fmt.Errorf("failed to get no-validate flag: %w", err)
	}
	if flags.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if flags.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if flags.dedup, err = cmd.Flags().GetBool("dedup"); err != nil {
		return fmt.Errorf("failed to get dedup flag: %w", err)
	}
	if flags.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if flags.exclude, err = cmd.Flags().GetStringSlice("exclude"); err != nil {
		return fmt.Errorf("failed to get exclude flag: %w", err)
	}
	if render.hints, err = cmd.Flags().GetBool("hints"); err != nil {
		return fmt.Errorf("failed to get hints flag: %w", err)
	}
	if render.codes, err = cmd.Flags().GetBool("codes"); err != nil {
		return fmt.Errorf("failed to get codes flag: %w", err)
	}
	if render.fullPath, err = cmd.Flags().GetBool("fullpath"); err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	baselinePath, err := cmd.Flags().GetString("baseline")
	if err != nil {
		return fmt.Errorf("failed to get baseline flag: %w", err)
	}
	writeBaseline, err := cmd.Flags().GetString("write-baseline")
	if err != nil {
		return fmt.Errorf("failed to get write-baseline flag: %w", err)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	render.color = useColor(cmd)

	done := timer.Track("config")
	configTarget := target
	if target == "-" {
		configTarget = "."
	}
	cfg, err := loadConfig(cmd, configTarget)
	if err != nil {
		return err
	}
	opts, err := baseDriverOptions(cmd, cfg)
	if err != nil {
		return err
	}
	if err := flags.apply(&opts); err != nil {
		return err
	}
	if baselinePath != "" && writeBaseline == "" {
		if opts.Baseline, err = driver.LoadBaseline(baselinePath); err != nil {
			return err
		}
	}
	render.max = opts.MaxDiagnostics
	done(cfg.Path)

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}()

	done = timer.Track("check")
	results, baseDir, err := collectResults(cmd.Context(), cmd, target, opts, mode)
	done(fmt.Sprintf("%d files", len(results)))
	if err != nil {
		return err
	}

	if writeBaseline != "" {
		baseline := driver.NewBaseline(results)
		if err := baseline.Write(writeBaseline); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "baseline: %d entries written to %s\n", baseline.Len(), writeBaseline)
	}

	done = timer.Track("render")
	err = renderResults(cmd.OutOrStdout(), results, baseDir, render)
	done(render.format)
	if err != nil {
		return err
	}

	if showTimings {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if driver.Failed(results) {
		// Suppress cobra usage output on diagnostic errors
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return errDiagnostics
	}
	return nil
}

// collectResults dispatches on the target kind and returns the results
// plus the directory display paths are relative to.
func collectResults(ctx context.Context, cmd *cobra.Command, target string, opts driver.Options, mode uiMode) ([]driver.FileResult, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get working directory: %w", err)
	}

	if target == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		res, err := driver.CheckText(ctx, "<stdin>", string(data), opts)
		if err != nil {
			return nil, "", err
		}
		return []driver.FileResult{res}, cwd, nil
	}

	st, err := os.Stat(target)
	if err != nil {
		return nil, "", fmt.Errorf("failed to stat path: %w", err)
	}
	if !st.IsDir() {
		_, res, err := driver.CheckFile(ctx, target, opts)
		if err != nil {
			return nil, "", err
		}
		return []driver.FileResult{res}, cwd, nil
	}

	if !shouldUseTUI(mode) {
		_, results, err := driver.CheckDir(ctx, target, opts)
		if err != nil {
			return nil, "", fmt.Errorf("check failed: %w", err)
		}
		return results, cwd, nil
	}

	files, err := driver.ListFiles(target, opts)
	if err != nil {
		return nil, "", err
	}
	results, err := runCheckWithUI(ctx, cmd.OutOrStdout(), filepath.Clean(target), files, opts)
	if err != nil {
		return nil, "", fmt.Errorf("check failed: %w", err)
	}
	return results, cwd, nil
}

func renderResults(out io.Writer, results []driver.FileResult, baseDir string, opts renderOptions) error {
	entries := driver.Entries(results)
	pathMode := diagfmt.PathModeAuto
	if opts.fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch opts.format {
	case "pretty":
		err := diagfmt.Pretty(out, entries, diagfmt.PrettyOpts{
			Color:    opts.color,
			Context:  2,
			PathMode: pathMode,
			BaseDir:  baseDir,
			Hints:    opts.hints,
		})
		if err != nil {
			return err
		}
		total := diagfmt.Total(entries)
		if len(results) > 1 || total.Clean() {
			_, err = fmt.Fprintf(out, "%s (%s)\n", diagfmt.StatusLine(total), fileCount(len(results)))
		}
		return err
	case "short":
		return diagfmt.Short(out, entries, pathMode, baseDir)
	case "problems":
		return renderProblems(out, entries, pathMode, baseDir, opts)
	case "json":
		return diagfmt.JSON(out, entries, diagfmt.JSONOpts{
			PathMode: pathMode,
			BaseDir:  baseDir,
			Max:      opts.max,
			Hints:    opts.hints,
		})
	case "sarif":
		return diagfmt.Sarif(out, entries, diagfmt.SarifRunMeta{
			ToolName:       "synscan",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
			PathMode:       pathMode,
			BaseDir:        baseDir,
		})
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
}

// renderProblems prints the panel layout: a titled problems list per file
// followed by its status line.
func renderProblems(out io.Writer, entries []diagfmt.Entry, mode diagfmt.PathMode, baseDir string, opts renderOptions) error {
	fmt.Fprintln(out, diagfmt.PanelTitle("Problems", diagfmt.Total(entries)))
	for _, e := range entries {
		path := e.Path
		if e.File != nil {
			path = e.File.FormatPath(pathModeName(mode), baseDir)
		}
		if _, err := fmt.Fprintf(out, "%s [%s]: %s\n", path, e.Language, diagfmt.StatusLine(e.Summary())); err != nil {
			return err
		}
		lines := diagfmt.Problems(e.Diagnostics, diagfmt.ProblemsOpts{Color: opts.color, Codes: opts.codes, Hints: opts.hints})
		for _, line := range lines {
			if _, err := fmt.Fprintf(out, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

func fileCount(n int) string {
	if n == 1 {
		return "1 file"
	}
	return fmt.Sprintf("%d files", n)
}

func pathModeName(mode diagfmt.PathMode) string {
	if mode == diagfmt.PathModeAbsolute {
		return "absolute"
	}
	return "auto"
}

func runCheckWithUI(ctx context.Context, out io.Writer, title string, files []string, opts driver.Options) ([]driver.FileResult, error) {
	var results []driver.FileResult
	err := ui.RunProgress(ctx, out, "checking "+title, files, func(ctx context.Context, onFile func(driver.FileResult)) error {
		opts.OnFile = onFile
		_, res, err := driver.CheckPaths(ctx, title, files, opts)
		results = res
		return err
	})
	return results, err
}
