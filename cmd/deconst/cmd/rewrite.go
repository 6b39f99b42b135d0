package cmd

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/diag"
	"github.com/cwbudde/deconst/internal/parser"
	"github.com/cwbudde/deconst/internal/pipeline"
	"github.com/cwbudde/deconst/internal/sandbox"
	"github.com/cwbudde/deconst/internal/token"
	"github.com/cwbudde/deconst/internal/trace"
)

var (
	outputPath   string
	writeInPlace bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [pattern...]",
	Short: "Fold pure helper calls to their literal results",
	Long: `Run the full C1-C8 pipeline over one or more source files: normalize
reversed-string idioms, extract calls whose arguments are all literals,
evaluate them in a sandboxed interpreter, substitute the results back
into the source, and clean up helpers left unreferenced.

Each argument is expanded as a doublestar glob pattern (** matches
across directory boundaries), so a single invocation can sweep a whole
tree of bundles.

Examples:
  deconst rewrite bundle.js
  deconst rewrite --cleanup-mode remove -o out.js bundle.js
  deconst rewrite --write "vendor/**/*.bundle.js"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
	rewriteCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the revised source here instead of stdout (single-file only)")
	rewriteCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "overwrite each matched file with its revised source")
}

func runRewrite(_ *cobra.Command, args []string) error {
	files, err := expandPatterns(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched %v", args)
	}
	if len(files) > 1 && outputPath != "" {
		return fmt.Errorf("-o/--output requires exactly one matched file, got %d", len(files))
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	for _, filename := range files {
		if err := rewriteFile(filename, cfg, len(files) > 1); err != nil {
			return err
		}
	}
	return nil
}

// expandPatterns resolves every argument as a doublestar glob pattern
// against the working directory, deduplicating matches across
// overlapping patterns while preserving first-seen order.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// A literal filename with no glob metacharacters still
			// needs to reach rewriteFile's own os.ReadFile error if it
			// doesn't exist, rather than silently vanishing here.
			matches = []string{pattern}
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	return files, nil
}

func rewriteFile(filename string, cfg config.Config, multi bool) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	outcome := pipeline.Run(string(content), cfg)

	if len(outcome.ParseErrors) > 0 {
		errs := make([]*diag.Error, 0, len(outcome.ParseErrors))
		for _, e := range outcome.ParseErrors {
			errs = append(errs, diag.New(positionOf(e), e.Error(), string(content), filename))
		}
		return fmt.Errorf("%s", diag.FormatAll(errs, false))
	}

	switch {
	case outputPath != "":
		if err := os.WriteFile(outputPath, []byte(outcome.Output), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", outputPath, err)
		}
	case writeInPlace || multi:
		if err := os.WriteFile(filename, []byte(outcome.Output), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", filename, err)
		}
	default:
		fmt.Print(outcome.Output)
	}

	if cfg.Debug && cfg.DebugOutputPath != "" {
		if err := trace.Write(cfg.DebugOutputPath, outcome.CallLog, pipeline.Now()); err != nil {
			return err
		}
	}

	if cfg.Verbose {
		reportSummary(filename, outcome)
	}

	return nil
}

func reportSummary(filename string, o pipeline.Outcome) {
	status := "ok"
	if o.SandboxOutcome == sandbox.Timeout {
		status = "timeout"
	} else if o.SandboxOutcome == sandbox.Fatal {
		status = "fatal"
	}
	fmt.Fprintf(os.Stderr, "deconst: %s sandbox=%s rewritten=%d dead-helpers=%d dead-init-blocks=%d\n",
		filename, status, o.Rewritten, len(o.DeadHelpers), o.DeadInitBlocks)
}

// positionOf recovers the source position from a pipeline parse
// error for diagnostic formatting; parser.ParseError is the only
// concrete error type C2 ever returns, but the zero position is a
// safe fallback should that change.
func positionOf(err error) token.Position {
	if pe, ok := err.(*parser.ParseError); ok {
		return pe.Pos
	}
	return token.Position{}
}
