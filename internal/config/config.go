// Package config loads synscan.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"synscan/internal/checker"
)

// FileName is the config file looked up from the target directory upwards.
const FileName = "synscan.toml"

const (
	defaultMaxDiagnostics = 100
	defaultLSPDebounce    = 300 * time.Millisecond
	defaultWatchDebounce  = 100 * time.Millisecond
)

// Config is the resolved configuration. Zero-valued file fields keep defaults.
type Config struct {
	// Path is the file the config came from, "" for defaults.
	Path string

	Semicolons     checker.SemicolonPolicy
	Validate       bool
	MaxDiagnostics int
	Jobs           int
	Exclude        []string
	// Languages maps ".ext" or a base name to a display label.
	Languages     map[string]string
	LSPDebounce   time.Duration
	WatchDebounce time.Duration
}

type fileConfig struct {
	Check     checkSection      `toml:"check"`
	Languages map[string]string `toml:"languages"`
	LSP       debounceSection   `toml:"lsp"`
	Watch     debounceSection   `toml:"watch"`
}

type checkSection struct {
	Semicolons     string   `toml:"semicolons"`
	Validate       bool     `toml:"validate"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Jobs           int      `toml:"jobs"`
	Exclude        []string `toml:"exclude"`
}

type debounceSection struct {
	Debounce string `toml:"debounce"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Semicolons:     checker.SemicolonsLenient,
		Validate:       true,
		MaxDiagnostics: defaultMaxDiagnostics,
		Languages:      map[string]string{},
		LSPDebounce:    defaultLSPDebounce,
		WatchDebounce:  defaultWatchDebounce,
	}
}

// CheckerOptions projects the config onto checker options.
func (c Config) CheckerOptions() checker.Options {
	return checker.Options{Semicolons: c.Semicolons, Validate: c.Validate}
}

// Find walks up from startDir looking for synscan.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if st, err := os.Stat(dir); err == nil && !st.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover finds and loads the config for target. No file means defaults.
func Discover(target string) (Config, error) {
	path, ok, err := Find(target)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load reads path on top of the defaults.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0].String())
	}

	cfg := Default()
	cfg.Path = path

	if meta.IsDefined("check", "semicolons") {
		policy, err := checker.ParseSemicolonPolicy(raw.Check.Semicolons)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [check].semicolons: %w", path, err)
		}
		cfg.Semicolons = policy
	}
	if meta.IsDefined("check", "validate") {
		cfg.Validate = raw.Check.Validate
	}
	if meta.IsDefined("check", "max_diagnostics") {
		if raw.Check.MaxDiagnostics < 0 {
			return Config{}, fmt.Errorf("%s: [check].max_diagnostics must be >= 0", path)
		}
		cfg.MaxDiagnostics = raw.Check.MaxDiagnostics
	}
	if meta.IsDefined("check", "jobs") {
		if raw.Check.Jobs < 0 {
			return Config{}, fmt.Errorf("%s: [check].jobs must be >= 0", path)
		}
		cfg.Jobs = raw.Check.Jobs
	}
	if meta.IsDefined("check", "exclude") {
		for _, pattern := range raw.Check.Exclude {
			if !doublestar.ValidatePattern(pattern) {
				return Config{}, fmt.Errorf("%s: [check].exclude: invalid pattern %q", path, pattern)
			}
		}
		cfg.Exclude = raw.Check.Exclude
	}

	for key, label := range raw.Languages {
		key = strings.TrimSpace(key)
		label = strings.TrimSpace(label)
		if key == "" || label == "" {
			return Config{}, fmt.Errorf("%s: [languages]: empty key or label", path)
		}
		if strings.HasPrefix(key, ".") {
			key = strings.ToLower(key)
		}
		cfg.Languages[key] = label
	}

	if meta.IsDefined("lsp", "debounce") {
		d, err := parseDebounce(raw.LSP.Debounce)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [lsp].debounce: %w", path, err)
		}
		cfg.LSPDebounce = d
	}
	if meta.IsDefined("watch", "debounce") {
		d, err := parseDebounce(raw.Watch.Debounce)
		if err != nil {
			return Config{}, fmt.Errorf("%s: [watch].debounce: %w", path, err)
		}
		cfg.WatchDebounce = d
	}
	return cfg, nil
}

func parseDebounce(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}
