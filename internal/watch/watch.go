// Package watch re-checks files under a directory as they change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"synscan/internal/diagfmt"
	"synscan/internal/driver"
	"synscan/internal/source"
	"synscan/internal/trace"
)

// Options configures a Watcher.
type Options struct {
	Driver   driver.Options
	Debounce time.Duration
	// Out receives status lines, Err receives watcher errors.
	Out io.Writer
	Err io.Writer
	// Problems controls how each diagnostic line is printed under its file.
	Problems diagfmt.ProblemsOpts
	// OnBatch is called after every (re)check with the results in path order.
	OnBatch func([]driver.FileResult)
}

// Watcher coalesces filesystem events under one root and re-checks the
// touched files once the tree has been quiet for Debounce.
type Watcher struct {
	root string
	opts Options
	fsw  *fsnotify.Watcher

	pending map[string]struct{}
	removed map[string]struct{}
	// files known to have been checked, so removals of other files stay quiet
	known map[string]struct{}
}

// New starts watching root and every non-hidden, non-excluded directory
// below it.
func New(root string, opts Options) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 100 * time.Millisecond
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		root:    abs,
		opts:    opts,
		fsw:     fsw,
		pending: make(map[string]struct{}),
		removed: make(map[string]struct{}),
		known:   make(map[string]struct{}),
	}
	if _, err := w.addTree(abs); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// Root is the absolute directory being watched.
func (w *Watcher) Root() string { return w.root }

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addTree registers dir and its subdirectories and returns the wanted
// files found on the way.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			// каталог мог исчезнуть во время обхода
			return nil
		}
		if d.IsDir() {
			if path != w.root && driver.SkipDir(w.root, path, w.opts.Driver) {
				return filepath.SkipDir
			}
			if err := w.fsw.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			return nil
		}
		if d.Type().IsRegular() && driver.Wanted(w.root, path, w.opts.Driver) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Run checks the whole tree once, then re-checks changed files until ctx
// is canceled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	files, err := driver.ListFiles(w.root, w.opts.Driver)
	if err != nil {
		return err
	}
	fmt.Fprintf(w.opts.Out, "watching %s (%d files)\n", w.root, len(files))
	if err := w.check(ctx, files); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logf("%v", err)
		case <-fire:
			fire = nil
			if err := w.flush(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}

// handle records ev and reports whether anything is now queued.
func (w *Watcher) handle(ev fsnotify.Event) bool {
	path := ev.Name
	switch {
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		delete(w.pending, path)
		if _, ok := w.known[path]; ok {
			w.removed[path] = struct{}{}
			return true
		}
		return false
	case ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write):
		info, err := os.Stat(path)
		if err != nil {
			return false
		}
		if info.IsDir() {
			if !ev.Has(fsnotify.Create) || driver.SkipDir(w.root, path, w.opts.Driver) {
				return false
			}
			files, err := w.addTree(path)
			if err != nil {
				w.logf("%v", err)
			}
			for _, f := range files {
				w.pending[f] = struct{}{}
			}
			return len(files) > 0
		}
		if !info.Mode().IsRegular() || !driver.Wanted(w.root, path, w.opts.Driver) {
			return false
		}
		delete(w.removed, path)
		w.pending[path] = struct{}{}
		return true
	}
	return false
}

// flush re-checks everything queued since the last flush.
func (w *Watcher) flush(ctx context.Context) error {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeRun, "watch-batch", trace.ParentID(ctx))
	defer span.End(fmt.Sprintf("%d changed, %d removed", len(w.pending), len(w.removed)))

	for _, path := range sortedKeys(w.removed) {
		delete(w.known, path)
		fmt.Fprintf(w.opts.Out, "%s: removed\n", w.display(path))
	}
	w.removed = make(map[string]struct{})

	files := sortedKeys(w.pending)
	w.pending = make(map[string]struct{})
	return w.check(trace.WithSpan(ctx, span), files)
}

func (w *Watcher) check(ctx context.Context, files []string) error {
	if len(files) == 0 {
		return nil
	}
	_, results, err := driver.CheckPaths(ctx, w.root, files, w.opts.Driver)
	if err != nil {
		return err
	}
	for _, res := range results {
		w.known[res.Path] = struct{}{}
		w.print(res)
	}
	if w.opts.OnBatch != nil {
		w.opts.OnBatch(results)
	}
	return nil
}

func (w *Watcher) print(res driver.FileResult) {
	fmt.Fprintf(w.opts.Out, "%s: %s\n", w.display(res.Path), diagfmt.StatusLine(res.Summary()))
	for _, line := range diagfmt.Problems(res.Diagnostics, w.opts.Problems) {
		fmt.Fprintf(w.opts.Out, "  %s\n", line)
	}
}

func (w *Watcher) display(path string) string {
	rel, err := source.RelativePath(path, w.root)
	if err != nil {
		return path
	}
	return rel
}

func (w *Watcher) logf(format string, args ...any) {
	fmt.Fprintf(w.opts.Err, "watch: "+format+"\n", args...)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
