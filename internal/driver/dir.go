package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"synscan/internal/diag"
	"synscan/internal/lang"
	"synscan/internal/source"
	"synscan/internal/trace"
)

// ListFiles returns the sorted files under dir that the scanner knows a
// language for by name, skipping hidden directories and excluded paths.
func ListFiles(dir string, opts Options) ([]string, error) {
	for _, p := range opts.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && SkipDir(dir, path, opts) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !Wanted(dir, path, opts) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// SkipDir reports whether the walk under root should not descend into the
// directory at path: hidden directories and excluded ones.
func SkipDir(root, path string, opts Options) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	return excluded(relSlash(root, path), opts.Exclude)
}

// Wanted reports whether the file at path is one ListFiles would return.
// The file does not need to exist.
func Wanted(root, path string, opts Options) bool {
	if excluded(relSlash(root, path), opts.Exclude) {
		return false
	}
	return opts.Label != "" || opts.Detector.Detect(path, "").Lang != lang.Text
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func excluded(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// CheckDir checks every listed file under dir in parallel. Results keep the
// sorted file order. A file that cannot be read gets one IO4001 error.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	if err := opts.validate(); err != nil {
		return nil, nil, err
	}
	files, err := ListFiles(dir, opts)
	if err != nil {
		return nil, nil, err
	}
	return CheckPaths(ctx, dir, files, opts)
}

// CheckPaths checks an explicit list of files, used by CheckDir and the
// watcher. baseDir only affects display paths.
func CheckPaths(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []FileResult, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	runSpan := trace.Begin(tracer, trace.ScopeRun, "check-dir", trace.ParentID(ctx))
	defer runSpan.End(fmt.Sprintf("%d files", len(files)))
	ctx = trace.WithSpan(ctx, runSpan)

	// FileSet не потокобезопасен: грузим последовательно, проверяем параллельно
	ids := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error)
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		ids[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			var res FileResult
			if loadErr, failed := loadErrors[path]; failed {
				res = loadFailure(path, loadErr, &opts)
			} else {
				res = checkFile(gctx, path, fileSet.Get(ids[path]), &opts)
			}
			results[i] = res
			if opts.OnFile != nil {
				opts.OnFile(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}

func loadFailure(path string, err error, opts *Options) FileResult {
	return FileResult{
		Path:      path,
		Rel:       relPath(path),
		Detection: detect(path, "", opts),
		Diagnostics: []diag.Diagnostic{
			diag.NewError(diag.IOLoadFileError, 1, 0, "failed to load file: "+err.Error()),
		},
	}
}
