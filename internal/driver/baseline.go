package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"synscan/internal/diag"
)

// baselineSchema is bumped whenever the file layout changes.
const baselineSchema uint16 = 1

// BaselineEntry identifies one accepted diagnostic.
type BaselineEntry struct {
	Path    string `msgpack:"path"`
	Line    int    `msgpack:"line"`
	Column  int    `msgpack:"column"`
	Code    string `msgpack:"code"`
	Message string `msgpack:"message"`
}

type baselineFile struct {
	Schema  uint16          `msgpack:"schema"`
	Entries []BaselineEntry `msgpack:"entries"`
}

// Baseline is a set of known diagnostics that later runs hide.
// A nil *Baseline contains nothing.
type Baseline struct {
	entries map[BaselineEntry]struct{}
}

// NewBaseline records every diagnostic in results.
func NewBaseline(results []FileResult) *Baseline {
	b := &Baseline{entries: make(map[BaselineEntry]struct{})}
	for _, r := range results {
		for _, d := range r.Diagnostics {
			b.entries[entryOf(r.Rel, d.Code, d.Line, d.Column, d.Message)] = struct{}{}
		}
	}
	return b
}

func entryOf(rel string, code diag.Code, line, col int, msg string) BaselineEntry {
	return BaselineEntry{Path: filepath.ToSlash(rel), Line: line, Column: col, Code: code.ID(), Message: msg}
}

// Len is the number of entries.
func (b *Baseline) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Contains reports whether the diagnostic is in the baseline.
func (b *Baseline) Contains(rel string, code diag.Code, line, col int, msg string) bool {
	if b == nil || len(b.entries) == 0 {
		return false
	}
	_, ok := b.entries[entryOf(rel, code, line, col, msg)]
	return ok
}

// LoadBaseline reads a msgpack baseline written by Write.
func LoadBaseline(path string) (*Baseline, error) {
	// #nosec G304 -- path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}
	var file baselineFile
	if err := msgpack.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%s: failed to decode baseline: %w", path, err)
	}
	if file.Schema != baselineSchema {
		return nil, fmt.Errorf("%s: unsupported baseline schema %d", path, file.Schema)
	}
	b := &Baseline{entries: make(map[BaselineEntry]struct{}, len(file.Entries))}
	for _, e := range file.Entries {
		b.entries[e] = struct{}{}
	}
	return b, nil
}

// Write stores the baseline atomically.
func (b *Baseline) Write(path string) (err error) {
	file := baselineFile{Schema: baselineSchema}
	if b != nil {
		file.Entries = make([]BaselineEntry, 0, len(b.entries))
		for e := range b.entries {
			file.Entries = append(file.Entries, e)
		}
	}
	sortEntries(file.Entries)

	data, err := msgpack.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to encode baseline: %w", err)
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".baseline-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(tmp.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(tmp.Name(), path)
}

// sortEntries keeps baseline files stable across runs.
func sortEntries(entries []BaselineEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
}
