// Package pipeline wires C1 through C8 into the single sequential run
// spec.md §5 describes: each phase completes before the next begins,
// and only C6 suspends (on its one synchronous sandbox call).
//
// Grounded on CWBudde-go-dws's cmd/dwscript driver, which composes its
// compiler phases (lex -> parse -> semantic -> bytecode -> interp)
// into one linear Run function; here the phases are deconst's own
// C1-C8 instead.
package pipeline

import (
	"time"

	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/cleanup"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/depgraph"
	"github.com/cwbudde/deconst/internal/extract"
	"github.com/cwbudde/deconst/internal/harness"
	"github.com/cwbudde/deconst/internal/lexer"
	"github.com/cwbudde/deconst/internal/normalizer"
	"github.com/cwbudde/deconst/internal/parser"
	"github.com/cwbudde/deconst/internal/printer"
	"github.com/cwbudde/deconst/internal/rewrite"
	"github.com/cwbudde/deconst/internal/sandbox"
)

// Outcome is the final disposition of one Run (spec.md §7's shrink-
// only policy: a parse failure leaves Output equal to the
// literal-normalized input; a sandbox failure leaves it equal to the
// reprinted, unrewritten tree).
type Outcome struct {
	Output         string
	ParseErrors    []error
	SandboxOutcome sandbox.Outcome
	CallLog        []sandbox.CallResult
	Rewritten      int
	DeadHelpers    []string
	DeadInitBlocks int
}

// Run executes C1-C8 over source under cfg and returns the final
// Outcome. A parse failure in the *input* program is the only truly
// fatal path (ParseErrors non-empty, Output the literal-normalized
// source); every other failure mode degrades per spec.md §7 to a
// no-op rewrite of the literal-normalized source.
func Run(source string, cfg config.Config) Outcome {
	normalized := source
	if cfg.StringReverse {
		// C1 is gated on string_reverse (spec.md §3: "enables C1").
		normalized = normalizer.Normalize(source)
	}

	l := lexer.New(normalized)
	p := parser.New(l)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return Outcome{Output: normalized, ParseErrors: errs}
	}

	if !cfg.FunctionCalls {
		// C5-C7 are gated on function_calls (spec.md §3: "enables
		// C5-C7"); with it off, only C1's literal normalization (if
		// any) and a canonical reprint happen.
		return Outcome{Output: printer.Print(program)}
	}

	h := classify.Classify(program, cfg)
	extracted := extract.Extract(program, cfg, h)
	dep := depgraph.Resolve(program, h, extracted)

	hr := harness.Run(program, cfg, h, dep, extracted)
	if hr.Outcome != sandbox.OK {
		// AssemblyError / SandboxTimeout / SandboxCrash (spec.md §7):
		// R is empty, the tree is printed unchanged.
		return Outcome{
			Output:         printer.Print(program),
			SandboxOutcome: hr.Outcome,
		}
	}

	rewritten := rewrite.Run(program, cfg, h, hr.R)

	cleaned := cleanup.Run(program, cfg, h, rewritten.PerHelper)

	return Outcome{
		Output:         cleaned.Source,
		SandboxOutcome: hr.Outcome,
		CallLog:        hr.CallLog,
		Rewritten:      rewritten.Rewritten,
		DeadHelpers:    cleaned.DeadHelpers,
		DeadInitBlocks: cleaned.DeadInitBlocks,
	}
}

// Now is the single place the pipeline would call time.Now, kept as
// a seam so the trace side-channel can be stamped by the CLI
// collaborator instead of by the deterministic core (spec.md §8.4,
// "Determinism of values").
func Now() time.Time { return time.Now() }
