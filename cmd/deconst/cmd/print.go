package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/depgraph"
	"github.com/cwbudde/deconst/internal/extract"
	"github.com/cwbudde/deconst/internal/harness"
	"github.com/cwbudde/deconst/internal/lexer"
	"github.com/cwbudde/deconst/internal/normalizer"
	"github.com/cwbudde/deconst/internal/parser"
	"github.com/cwbudde/deconst/internal/printer"
	"github.com/cwbudde/deconst/internal/reserved"
)

var (
	showAssembled bool
	showPattern   bool
	showCallSites bool
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print a parsed, re-serialized source file without rewriting",
	Long: `Round-trips a source file through C1 (literal normalization), C2
(parse), and the printer, without running C3-C8. Useful for checking
that deconst's permissive parser accepts a file before attempting a
rewrite, or for inspecting the assembled evaluator program C6 would
run.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if showPattern {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: runPrint,
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().BoolVar(&showAssembled, "assemble", false, "print the assembled evaluator program (preamble+context+driver) instead of T")
	printCmd.Flags().BoolVar(&showPattern, "show-pattern", false, "print the centralized reserved-word list instead of the source")
	printCmd.Flags().BoolVar(&showCallSites, "show-call-sites", false, "print each driver call site's key instead of the assembled source")
}

func runPrint(_ *cobra.Command, args []string) error {
	if showPattern {
		for _, word := range reserved.All() {
			fmt.Println(word)
		}
		return nil
	}

	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	normalized := normalizer.Normalize(string(content))
	l := lexer.New(normalized)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		return fmt.Errorf("%d parse error(s) in %s", len(errs), filename)
	}

	if !showAssembled && !showCallSites {
		fmt.Print(printer.Print(program))
		return nil
	}

	h := classify.Classify(program, cfg)
	extracted := extract.Extract(program, cfg, h)
	dep := depgraph.Resolve(program, h, extracted)

	if showCallSites {
		for _, cs := range extracted.P {
			fmt.Println(cs.Printed)
		}
		return nil
	}

	fmt.Print(harness.Assemble(program, h, dep, extracted))
	return nil
}
