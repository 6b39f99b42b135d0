package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "deconst",
	Short: "Static deobfuscator for obfuscated helper-call idioms",
	Long: `deconst partially evaluates calls to obfuscated helper functions
whose arguments are all compile-time literals, folding them to their
literal results and cleaning up helpers that are no longer referenced.

It never executes the input program in general; it assembles only the
reachable helper definitions into a sandboxed evaluator, runs it under
a wall-clock timeout, and substitutes results back into the source.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		stringReverseSet = cmd.Flags().Changed("string-reverse")
		functionCallsSet = cmd.Flags().Changed("function-calls")
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output and the JSON trace side-channel")
	rootCmd.PersistentFlags().StringVar(&interceptPattern, "intercept-pattern", "", "override intercept_pattern")
	rootCmd.PersistentFlags().StringVar(&functionNameFilter, "function-name-filter", "", "override function_name_filter")
	rootCmd.PersistentFlags().IntVar(&minArgs, "min-args", -1, "override min_args")
	rootCmd.PersistentFlags().IntVar(&maxArgs, "max-args", -1, "override max_args")
	rootCmd.PersistentFlags().BoolVar(&stringReverse, "string-reverse", true, "enable string_reverse (C1); --string-reverse=false to skip it")
	rootCmd.PersistentFlags().BoolVar(&functionCalls, "function-calls", true, "enable function_calls (C5-C7); --function-calls=false to skip them")
	rootCmd.PersistentFlags().BoolVar(&disableReplace, "disable-replace", false, "skip C7 rewriting entirely")
	rootCmd.PersistentFlags().StringVar(&cleanupMode, "cleanup-mode", "", "override cleanup_mode (none|comment|remove)")
	rootCmd.PersistentFlags().StringVar(&debugOutputPath, "debug-output", "", "override debug_output_path for the JSON trace")
	rootCmd.PersistentFlags().BoolVar(&traceLines, "trace-lines", false, "set trace_lines in the configuration (diagnostics only; the JSON trace does not change)")
	rootCmd.PersistentFlags().DurationVar(&sandboxTimeout, "timeout", 0, "override the sandbox wall-clock timeout")
}
