// Package config defines the Configuration record (K in spec.md §3)
// and its loading precedence: defaults, then an optional YAML file,
// then CLI flags (highest priority).
//
// Grounded on CWBudde-go-dws's preference for small, explicit,
// validated structs passed by value into each pipeline stage rather
// than a package-level global; the YAML layer uses
// github.com/goccy/go-yaml, the same library go-dws depends on.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/goccy/go-yaml"
)

// CleanupMode selects C8's action for dead helpers/initializers.
type CleanupMode string

const (
	CleanupNone    CleanupMode = "none"
	CleanupComment CleanupMode = "comment"
	CleanupRemove  CleanupMode = "remove"
)

// Config is the flat, immutable-for-one-run Configuration record of
// spec.md §3. It is constructed once per run and passed by value
// through the pipeline; nothing in internal/pipeline mutates it.
type Config struct {
	InterceptPattern   string `yaml:"intercept_pattern"`
	FunctionNameFilter string `yaml:"function_name_filter"`
	MinArgs            int    `yaml:"min_args"`
	MaxArgs            int    `yaml:"max_args"`
	StringReverse      bool   `yaml:"string_reverse"`
	FunctionCalls      bool   `yaml:"function_calls"`
	DisableReplace     bool   `yaml:"disable_replace"`
	CleanupMode        CleanupMode `yaml:"cleanup_mode"`

	Verbose    bool   `yaml:"verbose"`
	Debug      bool   `yaml:"debug"`
	TraceLines bool   `yaml:"trace_lines"`
	DebugOutputPath string `yaml:"debug_output_path"`

	// SandboxTimeout bounds C6's synchronous call into the evaluator
	// (spec.md §4.6: "a wall-clock timeout (default 30 s)").
	SandboxTimeout time.Duration `yaml:"-"`

	interceptRe *regexp.Regexp
	filterRe    *regexp.Regexp
}

// Default returns the Configuration record's documented defaults.
func Default() Config {
	return Config{
		InterceptPattern: `^f\d+$`,
		MinArgs:          0,
		MaxArgs:          32,
		StringReverse:    true,
		FunctionCalls:    true,
		CleanupMode:      CleanupNone,
		SandboxTimeout:   30 * time.Second,
	}
}

// LoadFile merges a YAML config file on top of base. A missing or
// malformed file is an error (the CLI collaborator only calls it when
// the user passed --config).
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return base, nil
}

// Compile validates K and pre-compiles its regular expressions. It
// must be called once after all flag/file overrides are applied and
// before the record is handed to the pipeline.
func (c *Config) Compile() error {
	if c.MinArgs > c.MaxArgs {
		return fmt.Errorf("min_args (%d) must be <= max_args (%d)", c.MinArgs, c.MaxArgs)
	}
	re, err := regexp.Compile(c.InterceptPattern)
	if err != nil {
		return fmt.Errorf("invalid intercept_pattern %q: %w", c.InterceptPattern, err)
	}
	c.interceptRe = re

	if c.FunctionNameFilter != "" {
		fre, err := regexp.Compile(c.FunctionNameFilter)
		if err != nil {
			return fmt.Errorf("invalid function_name_filter %q: %w", c.FunctionNameFilter, err)
		}
		c.filterRe = fre
	}
	switch c.CleanupMode {
	case "", CleanupNone, CleanupComment, CleanupRemove:
	default:
		return fmt.Errorf("invalid cleanup_mode %q", c.CleanupMode)
	}
	if c.CleanupMode == "" {
		c.CleanupMode = CleanupNone
	}
	if c.SandboxTimeout <= 0 {
		c.SandboxTimeout = 30 * time.Second
	}
	return nil
}

// MatchesIntercept reports whether name matches intercept_pattern,
// i.e. whether name is a candidate helper (spec.md §3, "Helper set").
func (c *Config) MatchesIntercept(name string) bool {
	return c.interceptRe != nil && c.interceptRe.MatchString(name)
}

// MatchesEvalFilter reports whether name passes function_name_filter,
// the additional restriction spec.md §3 says narrows which helpers are
// *evaluated* (not which are extracted).
func (c *Config) MatchesEvalFilter(name string) bool {
	if c.filterRe == nil {
		return true
	}
	return c.filterRe.MatchString(name)
}

// InArgWindow reports whether n falls within [MinArgs, MaxArgs].
func (c *Config) InArgWindow(n int) bool {
	return n >= c.MinArgs && n <= c.MaxArgs
}
