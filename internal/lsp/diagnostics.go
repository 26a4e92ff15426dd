package lsp

import (
	"strings"
	"time"

	"github.com/sourcegraph/go-lsp"

	"synscan/internal/driver"
	"synscan/internal/lang"
)

type document struct {
	uri        lsp.DocumentURI
	path       string
	languageID string
	version    int
	text       string
	// seq of the latest scheduled check; older runs are dropped
	seq   uint64
	timer *time.Timer
}

func (d *document) stop() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq = 0
}

// name used for detection and display: the path when the URI is a file,
// otherwise the raw URI.
func (d *document) name() string {
	if d.path != "" {
		return d.path
	}
	return string(d.uri)
}

// schedule (re)arms the check timer for uri. Every call supersedes the
// pending one so a burst of edits produces one check.
func (s *Server) schedule(uri lsp.DocumentURI, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	s.seq++
	seq := s.seq
	doc.seq = seq
	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(delay, func() {
		s.runCheck(uri, seq)
	})
}

func (s *Server) isLatest(uri lsp.DocumentURI, seq uint64) bool {
	doc, ok := s.docs[uri]
	return ok && seq != 0 && doc.seq == seq
}

func (s *Server) runCheck(uri lsp.DocumentURI, seq uint64) {
	s.mu.Lock()
	if !s.isLatest(uri, seq) {
		s.mu.Unlock()
		return
	}
	doc := s.docs[uri]
	name := doc.name()
	text := doc.text
	version := doc.version
	opts := s.driverOptions(doc)
	ctx := s.baseCtx
	s.mu.Unlock()

	start := time.Now()
	res, err := driver.CheckText(ctx, name, text, opts)
	if err != nil {
		s.logf("check %s: %v", uri, err)
		return
	}

	if s.verbose {
		sum := res.Summary()
		s.logf("check: uri=%s version=%d lang=%s errors=%d warnings=%d in %s",
			uri, version, res.Detection.Lang, sum.Errors, sum.Warnings, time.Since(start).Round(time.Microsecond))
	}

	lines := strings.Split(text, "\n")
	out := make([]lsp.Diagnostic, 0, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out = append(out, toLSPDiagnostic(d, lines))
	}

	// didClose cannot slip in between the staleness check and the publish
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.mu.Lock()
	stale := !s.isLatest(uri, seq)
	s.mu.Unlock()
	if stale {
		return
	}
	s.publish(ctx, lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: out})
}

// driverOptions lets the client's languageId stand in when the path says
// nothing about the language (untitled buffers, unknown extensions).
func (s *Server) driverOptions(doc *document) driver.Options {
	opts := s.opts
	if opts.Label != "" || doc.languageID == "" {
		return opts
	}
	if det := opts.Detector.Detect(doc.path, ""); det.Source != lang.SourceNone {
		return opts
	}
	if l, ok := lang.ParseTag(doc.languageID); ok && l != lang.Text {
		opts.Label = lang.DisplayLabel(l)
	}
	return opts
}
