// Package depgraph implements C4, the Dependency Resolver.
//
// It computes E, the transitive set of helper definitions that must
// be shipped to the evaluation harness, seeded from initializer
// contexts and from the Pure call set P, closed over the dependency
// graph G with visited-set discipline so cycles can't hang the
// resolver (spec.md §4.4).
package depgraph

import (
	"sort"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/callee"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/extract"
)

// Result is C4's output.
type Result struct {
	// E is the extracted set: helper names whose definitions must be
	// emitted into the evaluator's context body.
	E map[string]struct{}
	// Order is a topological linearization of E where one exists; when
	// a genuine cycle exists it is any linearization (spec.md §4.4).
	Order []string
	// HasCycle reports whether a cycle was detected among E. Per
	// spec.md §4.4 this is reported but never fatal.
	HasCycle bool
}

// Resolve runs C4.
func Resolve(program *ast.Program, h classify.Set, p extract.Result) Result {
	g := buildGraph(h)

	seeds := make(map[string]struct{})
	for name := range initializerSeeds(program, h) {
		seeds[name] = struct{}{}
	}
	for _, c := range p.P {
		seeds[c.Name] = struct{}{}
	}
	for name := range p.ExtraSeeds {
		seeds[name] = struct{}{}
	}

	e := closure(seeds, g)
	order, cycle := topoOrder(e, g)

	return Result{E: e, Order: order, HasCycle: cycle}
}

// buildGraph returns edge a -> b iff the body of a (in H) contains a
// call whose resolved callee name is b, and b is itself in H
// (spec.md §3, "Dependency graph").
func buildGraph(h classify.Set) map[string]map[string]struct{} {
	g := make(map[string]map[string]struct{}, len(h))
	for name, helper := range h {
		edges := make(map[string]struct{})
		if helper.Decl != nil && helper.Decl.Body != nil {
			ast.Walk(helper.Decl.Body, func(n ast.Node, _ []ast.Node) bool {
				call, ok := n.(*ast.CallExpression)
				if !ok {
					return true
				}
				target, ok := callee.Resolve(call)
				if !ok {
					return true
				}
				if _, inH := h[target]; inH {
					edges[target] = struct{}{}
				}
				return true
			})
		}
		g[name] = edges
	}
	return g
}

// initializerSeeds finds every call within an initializer context
// whose callee name is in H (spec.md §4.4 seed rule (i)). This is
// independent of C5: initializer calls are never candidates for P,
// but they still force their callee into E.
func initializerSeeds(program *ast.Program, h classify.Set) map[string]struct{} {
	seeds := make(map[string]struct{})
	ast.Walk(program, func(n ast.Node, ancestors []ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return true
		}
		if !ast.InInitializerContext(ancestors) {
			return true
		}
		name, ok := callee.Resolve(call)
		if !ok {
			return true
		}
		if _, inH := h[name]; inH {
			seeds[name] = struct{}{}
		}
		return true
	})
	return seeds
}

// closure computes the fixed point of seeds under g. A self-edge is
// allowed and silently absorbed: visiting a name already in the
// result set is a no-op, which naturally handles both self-edges and
// longer cycles without special-casing either.
func closure(seeds map[string]struct{}, g map[string]map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{})
	var visit func(name string)
	visit = func(name string) {
		if _, done := result[name]; done {
			return
		}
		result[name] = struct{}{}
		for next := range g[name] {
			visit(next)
		}
	}
	for name := range seeds {
		visit(name)
	}
	return result
}

// topoOrder produces a topological linearization of e under g using
// Kahn's algorithm, restricted to edges whose endpoints are both in e.
// A helper is placed after every helper it calls. When a cycle prevents
// a full linearization, the remaining names are appended in sorted
// order (the evaluator accepts forward references within one program
// unit, spec.md §4.4) and HasCycle is reported.
func topoOrder(e map[string]struct{}, g map[string]map[string]struct{}) ([]string, bool) {
	// indegree counts, for each name, the callees in e not yet placed.
	indegree := make(map[string]int, len(e))
	for name := range e {
		indegree[name] = 0
	}
	for name := range e {
		for next := range g[name] {
			if _, ok := e[next]; ok {
				indegree[name]++
			}
		}
	}

	var queue []string
	for name, d := range indegree {
		if d == 0 {
			queue = append(queue, name)
		}
	}

	var order []string
	visited := make(map[string]struct{})
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := visited[name]; done {
			continue
		}
		visited[name] = struct{}{}
		order = append(order, name)
		for other := range e {
			if _, calls := g[other][name]; !calls {
				continue
			}
			indegree[other]--
			if indegree[other] == 0 {
				queue = append(queue, other)
			}
		}
	}

	if len(order) == len(e) {
		return order, false
	}
	// A cycle remains among the names never reaching indegree 0.
	// Append them in a stable (sorted) order so output is deterministic.
	var remaining []string
	for name := range e {
		if _, done := visited[name]; !done {
			remaining = append(remaining, name)
		}
	}
	sort.Strings(remaining)
	order = append(order, remaining...)
	return order, true
}
