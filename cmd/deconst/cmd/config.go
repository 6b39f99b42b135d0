package cmd

import (
	"time"

	"github.com/cwbudde/deconst/internal/config"
)

// Flag-backed overrides shared by every subcommand, layered on top of
// defaults and an optional --config file per spec.md §6.2's
// precedence (defaults < YAML < flags).
var (
	configPath         string
	verbose            bool
	debug              bool
	interceptPattern   string
	functionNameFilter string
	minArgs            int
	maxArgs            int
	stringReverse      bool
	functionCalls      bool
	disableReplace     bool
	cleanupMode        string
	debugOutputPath    string
	traceLines         bool
	sandboxTimeout     time.Duration

	// stringReverseSet/functionCallsSet record whether --string-reverse
	// or --function-calls were explicitly passed (rootCmd's
	// PersistentPreRunE sets these via cmd.Flags().Changed). Both flags
	// default to true to mirror config.Default(), so a plain boolean
	// read can't tell "left at its default" from "explicitly re-
	// affirmed true" the way the sentinel -1 does for minArgs/maxArgs.
	stringReverseSet bool
	functionCallsSet bool
)

// buildConfig resolves defaults, an optional YAML file, then flags,
// and validates the result.
func buildConfig() (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		var err error
		cfg, err = config.LoadFile(configPath, cfg)
		if err != nil {
			return cfg, err
		}
	}

	if interceptPattern != "" {
		cfg.InterceptPattern = interceptPattern
	}
	if functionNameFilter != "" {
		cfg.FunctionNameFilter = functionNameFilter
	}
	if minArgs >= 0 {
		cfg.MinArgs = minArgs
	}
	if maxArgs >= 0 {
		cfg.MaxArgs = maxArgs
	}
	if stringReverseSet {
		cfg.StringReverse = stringReverse
	}
	if functionCallsSet {
		cfg.FunctionCalls = functionCalls
	}
	if disableReplace {
		cfg.DisableReplace = true
	}
	if cleanupMode != "" {
		cfg.CleanupMode = config.CleanupMode(cleanupMode)
	}
	if debugOutputPath != "" {
		cfg.DebugOutputPath = debugOutputPath
	}
	if sandboxTimeout > 0 {
		cfg.SandboxTimeout = sandboxTimeout
	}
	cfg.Verbose = cfg.Verbose || verbose
	cfg.Debug = cfg.Debug || debug
	cfg.TraceLines = cfg.TraceLines || traceLines

	if err := cfg.Compile(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
