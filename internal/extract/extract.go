// Package extract implements C5, the Call-Site Extractor.
//
// One traversal yields the Pure call set P (spec.md §3, §4.5): calls
// whose every argument is a compile-time literal, which are not
// inside an initializer context, and whose resolved callee name
// passes both intercept_pattern and (if present) function_name_filter.
package extract

import (
	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/callee"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/printer"
)

// CallSite is one accepted member of P, carrying everything C6/C7
// need: the node to drive/rewrite, its resolved name, its captured
// argument values, and the stable printed form that keys R.
type CallSite struct {
	Node    *ast.CallExpression
	Name    string
	Args    []ast.Value
	Printed string
}

// Result is C5's output: the Pure call set P, plus the extra seed
// names spec.md §4.5 step 5 requires C4 to still see even though the
// call itself was rejected for rewriting (argument count outside
// [min_args, max_args]).
type Result struct {
	P         []CallSite
	ExtraSeeds map[string]struct{}
}

// Extract runs C5 over program.
func Extract(program *ast.Program, cfg config.Config, h classify.Set) Result {
	res := Result{ExtraSeeds: make(map[string]struct{})}

	ast.Walk(program, func(n ast.Node, ancestors []ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return true
		}

		name, ok := callee.Resolve(call)
		if !ok {
			return true
		}
		if _, inH := h[name]; !inH {
			return true
		}
		if !cfg.MatchesEvalFilter(name) {
			return true
		}
		if ast.InInitializerContext(ancestors) {
			return true
		}

		args, ok := captureArgs(call.Arguments)
		if !ok {
			return true
		}

		if !cfg.InArgWindow(len(args)) {
			res.ExtraSeeds[name] = struct{}{}
			return true
		}

		res.P = append(res.P, CallSite{
			Node:    call,
			Name:    name,
			Args:    args,
			Printed: printer.Print(call),
		})
		return true
	})

	return res
}

// captureArgs attempts literal capture for every argument (spec.md
// §4.5 step 4). Any non-literal argument fails the whole call.
func captureArgs(exprs []ast.Expression) ([]ast.Value, bool) {
	vals := make([]ast.Value, 0, len(exprs))
	for _, e := range exprs {
		v, ok := ast.LiteralValue(e)
		if !ok {
			return nil, false
		}
		vals = append(vals, v)
	}
	return vals, true
}
