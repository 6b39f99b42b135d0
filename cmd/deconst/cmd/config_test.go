package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/deconst/internal/config"
)

// resetFlags restores every flag-backed package var to the state
// init() leaves them in (cobra's *Var registration only runs once),
// so tests can mutate them freely without bleeding into each other.
func resetFlags(t *testing.T) {
	t.Helper()
	configPath = ""
	verbose = false
	debug = false
	interceptPattern = ""
	functionNameFilter = ""
	minArgs = -1
	maxArgs = -1
	stringReverse = true
	functionCalls = true
	stringReverseSet = false
	functionCallsSet = false
	disableReplace = false
	cleanupMode = ""
	debugOutputPath = ""
	traceLines = false
	sandboxTimeout = 0
}

func TestBuildConfigStringReverseAndFunctionCallsDisableWhenExplicitlySetFalse(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	stringReverse = false
	stringReverseSet = true
	functionCalls = false
	functionCallsSet = true
	traceLines = true

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.StringReverse {
		t.Error("expected StringReverse to be disabled by --string-reverse=false")
	}
	if cfg.FunctionCalls {
		t.Error("expected FunctionCalls to be disabled by --function-calls=false")
	}
	if !cfg.TraceLines {
		t.Error("expected TraceLines to be enabled by --trace-lines")
	}
}

func TestBuildConfigLeavesStringReverseAndFunctionCallsAtDefaultWhenFlagsUnset(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if !cfg.StringReverse || !cfg.FunctionCalls {
		t.Errorf("got StringReverse=%v FunctionCalls=%v, want both true (unset flags shouldn't override)", cfg.StringReverse, cfg.FunctionCalls)
	}
}

func TestBuildConfigDefaultsWhenNoFlagsSet(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	def := config.Default()
	if cfg.InterceptPattern != def.InterceptPattern {
		t.Errorf("got InterceptPattern=%q, want default %q", cfg.InterceptPattern, def.InterceptPattern)
	}
	if cfg.MinArgs != def.MinArgs || cfg.MaxArgs != def.MaxArgs {
		t.Errorf("got min=%d max=%d, want defaults min=%d max=%d", cfg.MinArgs, cfg.MaxArgs, def.MinArgs, def.MaxArgs)
	}
}

func TestBuildConfigFlagsOverrideDefaults(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	interceptPattern = `^g\d+$`
	minArgs = 1
	maxArgs = 2
	disableReplace = true
	cleanupMode = "remove"

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.InterceptPattern != `^g\d+$` {
		t.Errorf("got InterceptPattern=%q", cfg.InterceptPattern)
	}
	if cfg.MinArgs != 1 || cfg.MaxArgs != 2 {
		t.Errorf("got min=%d max=%d, want 1,2", cfg.MinArgs, cfg.MaxArgs)
	}
	if !cfg.DisableReplace {
		t.Error("expected DisableReplace to be true")
	}
	if cfg.CleanupMode != config.CleanupRemove {
		t.Errorf("got CleanupMode=%q, want remove", cfg.CleanupMode)
	}
}

func TestBuildConfigFlagsOverrideConfigFile(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "deconst.yaml")
	if err := os.WriteFile(path, []byte("min_args: 3\nmax_args: 9\n"), 0o644); err != nil {
		t.Fatalf("writing fixture config: %v", err)
	}
	configPath = path
	maxArgs = 20 // flag wins over the file's max_args: 9

	cfg, err := buildConfig()
	if err != nil {
		t.Fatalf("buildConfig: %v", err)
	}
	if cfg.MinArgs != 3 {
		t.Errorf("got MinArgs=%d, want 3 from the config file", cfg.MinArgs)
	}
	if cfg.MaxArgs != 20 {
		t.Errorf("got MaxArgs=%d, want 20 from the flag override", cfg.MaxArgs)
	}
}

func TestBuildConfigPropagatesCompileError(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	minArgs, maxArgs = 5, 1
	if _, err := buildConfig(); err == nil {
		t.Error("expected an error when min_args > max_args")
	}
}

func TestBuildConfigMissingFileIsError(t *testing.T) {
	resetFlags(t)
	defer resetFlags(t)

	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := buildConfig(); err == nil {
		t.Error("expected an error for a missing --config file")
	}
}
