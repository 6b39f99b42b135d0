// Package harness implements C6, the Evaluation Harness.
//
// It assembles the three-section evaluator program spec.md §4.6
// describes (preamble, context body, driver), drives it through a
// sandbox.Evaluator, and turns the resulting CallResults into the
// Result map R keyed by each call site's printed form.
//
// Grounded on CWBudde-go-dws's cmd/dwscript's pattern of building one
// composed source string per run and handing it to the interpreter
// package as a black box; adapted here to the three-section assembly
// spec.md prescribes instead of a single compiled unit.
package harness

import (
	"strconv"
	"strings"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/depgraph"
	"github.com/cwbudde/deconst/internal/extract"
	"github.com/cwbudde/deconst/internal/printer"
	"github.com/cwbudde/deconst/internal/sandbox"
)

// Result is C6's output: R, the map from a call site's printed form
// to its captured literal value, plus bookkeeping the caller (C7, the
// trace writer) needs.
type Result struct {
	R         map[string]ast.Value
	Outcome   sandbox.Outcome
	CallLog   []sandbox.CallResult
	Assembled string
}

// Run assembles and evaluates the program, returning C6's Result.
// On any sandbox failure (timeout, assembly error, unhandled crash)
// per spec.md §4.6, R is empty and the caller proceeds as a no-op
// rewrite.
func Run(program *ast.Program, cfg config.Config, h classify.Set, dep depgraph.Result, p extract.Result) Result {
	source := Assemble(program, h, dep, p)

	ev := sandbox.NewTreeWalker()
	outcome, ctx := ev.Run(source, cfg.SandboxTimeout)

	result := Result{R: make(map[string]ast.Value), Outcome: outcome, Assembled: source}
	if outcome != sandbox.OK {
		return result
	}

	argsByKey := make(map[string][]ast.Value, len(p.P))
	for _, cs := range p.P {
		argsByKey[cs.Printed] = cs.Args
	}

	log := make([]sandbox.CallResult, len(ctx.Results))
	for i, cr := range ctx.Results {
		cr.Args = argsByKey[cr.Key]
		log[i] = cr
		if cr.Failed {
			continue
		}
		result.R[cr.Key] = cr.Value
	}
	result.CallLog = log
	return result
}

// Assemble builds the evaluator program's source text: preamble,
// context body (initializer blocks verbatim, then every helper in E
// in C4's topological order), then one driver line per call site in
// P (spec.md §4.6 steps 1-3).
func Assemble(program *ast.Program, h classify.Set, dep depgraph.Result, p extract.Result) string {
	var sb strings.Builder

	writePreamble(&sb)

	for _, block := range initializerBlocks(program) {
		sb.WriteString(printer.Print(block))
		sb.WriteString("\n")
	}
	for _, name := range dep.Order {
		helper, ok := h[name]
		if !ok || helper.Decl == nil {
			continue
		}
		sb.WriteString(printer.Print(helper.Decl))
		sb.WriteString("\n")
	}

	for _, cs := range p.P {
		sb.WriteString(driverLine(cs))
		sb.WriteString("\n")
	}

	return sb.String()
}

// writePreamble emits the fixed boilerplate every assembled program
// opens with. The real preamble spec.md §4.6 describes (a results map
// R', a call-trace log, and a safe_call wrapper declared in the
// target language) is instead realized as Go-native ambient values
// (sandbox.NewGlobalEnvironment, __safe_call__) — there is nothing
// for the assembled source itself to declare.
func writePreamble(sb *strings.Builder) {
	sb.WriteString("// assembled evaluation unit\n")
}

// initializerBlocks returns every top-level statement that is an
// initializer context per spec.md §4.4: a while/do-while loop, a
// try/catch/finally block, or an expression statement wrapping an
// IIFE. These are emitted verbatim (via the printer) ahead of the
// helper definitions so any mutation they perform on helper state is
// visible to the driver calls that follow.
func initializerBlocks(program *ast.Program) []ast.Statement {
	var blocks []ast.Statement
	for _, stmt := range program.Statements {
		switch s := stmt.(type) {
		case *ast.WhileStatement, *ast.DoWhileStatement, *ast.TryStatement:
			blocks = append(blocks, s)
		case *ast.ExpressionStatement:
			if call, ok := s.Expression.(*ast.CallExpression); ok && ast.IsIIFE(call) {
				blocks = append(blocks, s)
			}
		}
	}
	return blocks
}

// driverLine renders one driver statement: __safe_call__ wraps cs's
// own call text in a zero-argument thunk (the arguments are already
// literal, so no apply/spread machinery is needed) and keys the
// recorded result with cs.Printed — see DESIGN.md for why this is
// deconst's realization of spec.md's safe_call(f, args, key) prose.
func driverLine(cs extract.CallSite) string {
	return "__safe_call__(function() { return " + cs.Printed + "; }, " + quote(cs.Printed) + ");"
}

func quote(s string) string {
	return strconv.Quote(s)
}
