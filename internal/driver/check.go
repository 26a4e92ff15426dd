package driver

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"synscan/internal/checker"
	"synscan/internal/lang"
	"synscan/internal/source"
	"synscan/internal/trace"
)

// CheckText checks an in-memory document (editor buffer, stdin).
// name is used for detection and display only.
func CheckText(ctx context.Context, name, text string, opts Options) (FileResult, error) {
	if err := opts.validate(); err != nil {
		return FileResult{}, err
	}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual(name, []byte(text)))
	return checkFile(ctx, name, f, &opts), nil
}

// CheckFile loads and checks a single file.
func CheckFile(ctx context.Context, path string, opts Options) (*source.FileSet, FileResult, error) {
	if err := opts.validate(); err != nil {
		return nil, FileResult{}, err
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, FileResult{}, fmt.Errorf("failed to load %s: %w", path, err)
	}
	res := checkFile(ctx, path, fs.Get(id), &opts)
	if opts.OnFile != nil {
		opts.OnFile(res)
	}
	return fs, res, nil
}

// detect honours a forced label before running detection.
func detect(path, content string, opts *Options) lang.Detection {
	if opts.Label != "" {
		return lang.Detection{Lang: lang.FromLabel(opts.Label), Label: opts.Label, Source: lang.SourceOverride}
	}
	return opts.Detector.Detect(path, content)
}

func checkFile(ctx context.Context, path string, f *source.File, opts *Options) FileResult {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+path, trace.ParentID(ctx))
	start := time.Now()

	text := f.Text()
	det := detect(path, text, opts)

	checkSpan := trace.Begin(tracer, trace.ScopeCheck, "check:"+det.Lang.String(), span.ID())
	raw := checker.Check(checker.Request{Text: text, Language: det.Lang, Options: opts.Check})
	checkSpan.End(strconv.Itoa(len(raw.Diagnostics)) + " raw")

	rel := relPath(path)
	diags, suppressed := postProcess(raw.Diagnostics, rel, opts)

	res := FileResult{
		Path:        path,
		Rel:         rel,
		File:        f,
		Detection:   det,
		Diagnostics: diags,
		Suppressed:  suppressed,
		Duration:    time.Since(start),
	}
	sum := res.Summary()
	span.WithExtra("lang", det.Lang.String()).
		WithExtra("source", det.Source.String()).
		WithExtra("errors", strconv.Itoa(sum.Errors)).
		WithExtra("warnings", strconv.Itoa(sum.Warnings)).
		End("")
	return res
}

func relPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := source.RelativePath(path, wd)
	if err != nil {
		return path
	}
	return rel
}
