package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil || l.String() != s {
			t.Fatalf("ParseLevel(%q) = %v, %v", s, l, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeRun, false},
		{LevelError, ScopeRun, false},
		{LevelPhase, ScopeRun, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeCheck, false},
		{LevelDebug, ScopeCheck, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamTracerFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	run := Begin(tr, ScopeRun, "run", 0)
	file := Begin(tr, ScopeFile, "file:a.py", run.ID())
	check := Begin(tr, ScopeCheck, "check:python", file.ID())
	check.End("")
	file.WithExtra("diagnostics", "2").End("ok")
	run.End("")

	out := buf.String()
	if strings.Contains(out, "check:python") {
		t.Fatalf("check scope leaked at detail level:\n%s", out)
	}
	if strings.Count(out, "file:a.py") != 2 || !strings.Contains(out, "{diagnostics=2}") {
		t.Fatalf("file span missing:\n%s", out)
	}
	if check.ID() != 0 {
		t.Fatalf("filtered span must be disabled")
	}
}

func TestNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeCheck, "validate", "python")

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["scope"] != "check" || ev["detail"] != "python" {
		t.Fatalf("unexpected event %v", ev)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	r := NewRingTracer(3, LevelError)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeCheck, name, "")
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump = %q", buf.String())
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New(both): %v", err)
	}
	if m, ok := tr.(*MultiTracer); !ok || m.Ring() == nil {
		t.Fatalf("both mode must include a ring, got %T", tr)
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer lost in context")
	}
	span := Begin(r, ScopeRun, "run", 0)
	ctx = WithSpan(ctx, span)
	if ParentID(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("ParentID = %d, span %d", ParentID(ctx), span.ID())
	}
}
