package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	"synscan/internal/diag"
	"synscan/internal/driver"
)

func TestProgressModelTracksResults(t *testing.T) {
	events := make(chan driver.FileResult)
	model := NewProgressModel("checking src", []string{"a.py", "b.js"}, events).(*progressModel)

	model.Update(eventMsg(driver.FileResult{
		Path:        "b.js",
		Diagnostics: []diag.Diagnostic{diag.NewError(diag.BrkUnclosed, 1, 1, "unclosed '('")},
	}))
	view := model.View()
	if !strings.Contains(view, "(1/2)") {
		t.Fatalf("view missing counter:\n%s", view)
	}
	if !strings.Contains(view, "errors") || !strings.Contains(view, "1 error and 0 warnings") {
		t.Fatalf("view missing error state:\n%s", view)
	}

	model.Update(eventMsg(driver.FileResult{Path: "a.py"}))
	model.Update(eventMsg(driver.FileResult{Path: "unknown.py"}))
	if model.checked != 2 {
		t.Fatalf("checked = %d, want 2", model.checked)
	}

	model.Update(doneMsg{})
	view = model.View()
	if !strings.Contains(view, "done: checking src (2/2), 1 error and 0 warnings") {
		t.Fatalf("unexpected final header:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcdef", 2, "ab"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRunProgressReturnsCheckError(t *testing.T) {
	files := []string{"a.py"}
	err := RunProgress(context.Background(), io.Discard, "test", files, func(_ context.Context, onFile func(driver.FileResult)) error {
		onFile(driver.FileResult{Path: "a.py"})
		return context.DeadlineExceeded
	})
	if err != context.DeadlineExceeded {
		t.Fatalf("err = %v, want the check's error", err)
	}
}
