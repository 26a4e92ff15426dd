package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"synscan/internal/checker"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDiscoverWithoutFileReturnsDefaults(t *testing.T) {
	cfg, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != "" {
		t.Fatalf("unexpected config path %q", cfg.Path)
	}
	if cfg.CheckerOptions() != checker.DefaultOptions() {
		t.Fatalf("options = %+v", cfg.CheckerOptions())
	}
	if cfg.LSPDebounce != 300*time.Millisecond || cfg.WatchDebounce != 100*time.Millisecond {
		t.Fatalf("debounce defaults = %v / %v", cfg.LSPDebounce, cfg.WatchDebounce)
	}
	if cfg.MaxDiagnostics != 100 {
		t.Fatalf("max diagnostics = %d", cfg.MaxDiagnostics)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `
[check]
semicolons = "strict"
validate = false
max_diagnostics = 5
exclude = ["vendor/**", "**/*.min.js"]

[languages]
".INC" = "PHP"

[lsp]
debounce = "50ms"

[watch]
debounce = "1s"
`)
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if cfg.Semicolons != checker.SemicolonsStrict || cfg.Validate {
		t.Fatalf("check section not applied: %+v", cfg)
	}
	if cfg.MaxDiagnostics != 5 || len(cfg.Exclude) != 2 {
		t.Fatalf("check section not applied: %+v", cfg)
	}
	if cfg.Languages[".inc"] != "PHP" {
		t.Fatalf("languages = %v", cfg.Languages)
	}
	if cfg.LSPDebounce != 50*time.Millisecond || cfg.WatchDebounce != time.Second {
		t.Fatalf("debounce = %v / %v", cfg.LSPDebounce, cfg.WatchDebounce)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[check]\nmax_diagnostics = 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Validate || cfg.Semicolons != checker.SemicolonsLenient {
		t.Fatalf("defaults lost: %+v", cfg)
	}
	if cfg.MaxDiagnostics != 0 {
		t.Fatalf("explicit zero must win, got %d", cfg.MaxDiagnostics)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad policy", "[check]\nsemicolons = \"sometimes\"\n", "semicolons"},
		{"bad toml", "[check\n", "failed to parse TOML"},
		{"unknown key", "[check]\ncolour = true\n", "unknown key"},
		{"bad glob", "[check]\nexclude = [\"[\"]\n", "invalid pattern"},
		{"bad debounce", "[lsp]\ndebounce = \"soon\"\n", "[lsp].debounce"},
		{"negative jobs", "[check]\njobs = -1\n", "jobs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
