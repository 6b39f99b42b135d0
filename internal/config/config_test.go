package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultCompiles(t *testing.T) {
	cfg := Default()
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile() on default config: %v", err)
	}
	if !cfg.MatchesIntercept("f123") {
		t.Error("expected default intercept_pattern to match f123")
	}
	if cfg.MatchesIntercept("helper") {
		t.Error("expected default intercept_pattern not to match helper")
	}
}

func TestCompileRejectsMinGreaterThanMax(t *testing.T) {
	cfg := Default()
	cfg.MinArgs = 5
	cfg.MaxArgs = 2
	if err := cfg.Compile(); err == nil {
		t.Error("expected error when min_args > max_args")
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	cfg := Default()
	cfg.InterceptPattern = `(unclosed`
	if err := cfg.Compile(); err == nil {
		t.Error("expected error for invalid intercept_pattern")
	}
}

func TestCompileRejectsInvalidCleanupMode(t *testing.T) {
	cfg := Default()
	cfg.CleanupMode = "obliterate"
	if err := cfg.Compile(); err == nil {
		t.Error("expected error for invalid cleanup_mode")
	}
}

func TestCompileDefaultsEmptyCleanupModeToNone(t *testing.T) {
	cfg := Default()
	cfg.CleanupMode = ""
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if cfg.CleanupMode != CleanupNone {
		t.Errorf("got %q, want %q", cfg.CleanupMode, CleanupNone)
	}
}

func TestCompileFixesUpNonPositiveTimeout(t *testing.T) {
	cfg := Default()
	cfg.SandboxTimeout = 0
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if cfg.SandboxTimeout != 30*time.Second {
		t.Errorf("got %v, want 30s", cfg.SandboxTimeout)
	}
}

func TestMatchesEvalFilterEmptyMatchesEverything(t *testing.T) {
	cfg := Default()
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !cfg.MatchesEvalFilter("anything") {
		t.Error("expected empty function_name_filter to match everything")
	}
}

func TestMatchesEvalFilterRestricts(t *testing.T) {
	cfg := Default()
	cfg.FunctionNameFilter = `^f1$`
	if err := cfg.Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !cfg.MatchesEvalFilter("f1") {
		t.Error("expected f1 to match filter ^f1$")
	}
	if cfg.MatchesEvalFilter("f12") {
		t.Error("expected f12 not to match filter ^f1$")
	}
}

func TestInArgWindow(t *testing.T) {
	cfg := Default()
	cfg.MinArgs = 1
	cfg.MaxArgs = 3
	for _, n := range []int{1, 2, 3} {
		if !cfg.InArgWindow(n) {
			t.Errorf("expected %d to be in [1,3]", n)
		}
	}
	for _, n := range []int{0, 4} {
		if cfg.InArgWindow(n) {
			t.Errorf("expected %d not to be in [1,3]", n)
		}
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deconst.yaml")
	contents := "min_args: 2\nmax_args: 6\ncleanup_mode: remove\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	cfg, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MinArgs != 2 || cfg.MaxArgs != 6 {
		t.Errorf("got min=%d max=%d, want min=2 max=6", cfg.MinArgs, cfg.MaxArgs)
	}
	if cfg.CleanupMode != CleanupRemove {
		t.Errorf("got cleanup_mode %q, want remove", cfg.CleanupMode)
	}
	if cfg.InterceptPattern != Default().InterceptPattern {
		t.Error("expected intercept_pattern to retain its default since the file did not set it")
	}
}

func TestLoadFileMissingIsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), Default())
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFileMalformedIsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("min_args: [this is not an int"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	if _, err := LoadFile(path, Default()); err == nil {
		t.Error("expected error for malformed config file")
	}
}
