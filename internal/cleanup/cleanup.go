// Package cleanup implements C8, the Cleanup Analyzer.
//
// It runs after C7's rewrite and marks helper definitions and
// initializer blocks dead once every use that could observe them has
// been folded away, then applies the configured CleanupMode action
// (spec.md §4.8).
//
// Grounded on CWBudde-go-dws's dead-code elimination pass (its
// optimizer counts remaining references before deciding a declaration
// is unreachable) adapted to deconst's syntactic, not semantic,
// reference count.
package cleanup

import (
	"strings"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/callee"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/printer"
	"github.com/cwbudde/deconst/internal/token"
)

// Result is C8's output: the final source after the configured
// CleanupMode action, plus the names/blocks it judged dead.
type Result struct {
	Source         string
	DeadHelpers    []string
	DeadInitBlocks int
}

// Run analyzes program (already rewritten by C7) and applies
// cfg.CleanupMode. rewriteCounts maps a helper name to how many call
// sites were successfully rewritten to a literal referencing it — the
// count needed to tell a "fully folded away" helper from one still
// genuinely live.
func Run(program *ast.Program, cfg config.Config, h classify.Set, rewriteCounts map[string]int) Result {
	refCounts := countReferences(program)
	exported := exportedNames(program)

	dead := make(map[string]bool)
	for name := range h {
		if exported[name] {
			continue
		}
		if refCounts[name] <= rewriteCounts[name] {
			dead[name] = true
		}
	}

	deadBlocks := markDeadInitializerBlocks(program, h, dead, rewriteCounts)

	if cfg.CleanupMode != config.CleanupNone {
		applyAction(program, h, dead, deadBlocks, cfg.CleanupMode)
	}

	names := make([]string, 0, len(dead))
	for name := range dead {
		names = append(names, name)
	}

	return Result{Source: printer.Print(program), DeadHelpers: names, DeadInitBlocks: len(deadBlocks)}
}

// countReferences counts every syntactic mention of a name as a
// callee anywhere in program, including inside helper bodies
// (spec.md §4.8's "remaining syntactic references").
func countReferences(program *ast.Program) map[string]int {
	counts := make(map[string]int)
	ast.Walk(program, func(n ast.Node, _ []ast.Node) bool {
		call, ok := n.(*ast.CallExpression)
		if !ok {
			return true
		}
		if name, ok := callee.Resolve(call); ok {
			counts[name]++
		}
		return true
	})
	return counts
}

// exportedNames recognizes the common CommonJS-style top-level export
// shapes (`exports.name = ...` / `module.exports.name = ...`) as
// "exported at the top level of S" (spec.md §4.8); deconst's target
// subset has no dedicated export keyword, so this is the closest
// syntactic analogue.
func exportedNames(program *ast.Program) map[string]bool {
	exported := make(map[string]bool)
	for _, stmt := range program.Statements {
		es, ok := stmt.(*ast.ExpressionStatement)
		if !ok {
			continue
		}
		assign, ok := es.Expression.(*ast.AssignmentExpression)
		if !ok {
			continue
		}
		member, ok := assign.Target.(*ast.MemberExpression)
		if !ok {
			continue
		}
		if isExportsObject(member.Object) {
			exported[member.Property.Value] = true
		}
	}
	return exported
}

func isExportsObject(e ast.Expression) bool {
	switch o := e.(type) {
	case *ast.Identifier:
		return o.Value == "exports"
	case *ast.MemberExpression:
		id, ok := o.Object.(*ast.Identifier)
		return ok && id.Value == "module" && o.Property.Value == "exports"
	default:
		return false
	}
}

// markDeadInitializerBlocks marks a top-level initializer block dead
// when every call inside it to an H member already has every one of
// that member's observable effects folded (spec.md §4.8's "no call
// node inside it still has a callee in H that is not already keyed in
// R", modeled here via rewriteCounts/dead rather than re-threading R).
func markDeadInitializerBlocks(program *ast.Program, h classify.Set, dead map[string]bool, rewriteCounts map[string]int) map[ast.Statement]bool {
	deadBlocks := make(map[ast.Statement]bool)
	for _, stmt := range program.Statements {
		if !isInitializerStatement(stmt) {
			continue
		}
		if allCallsResolved(stmt, h, dead, rewriteCounts) {
			deadBlocks[stmt] = true
		}
	}
	return deadBlocks
}

func isInitializerStatement(stmt ast.Statement) bool {
	switch s := stmt.(type) {
	case *ast.WhileStatement, *ast.DoWhileStatement, *ast.TryStatement:
		return true
	case *ast.ExpressionStatement:
		call, ok := s.Expression.(*ast.CallExpression)
		return ok && ast.IsIIFE(call)
	default:
		return false
	}
}

func allCallsResolved(stmt ast.Statement, h classify.Set, dead map[string]bool, rewriteCounts map[string]int) bool {
	resolved := true
	ast.Walk(stmt, func(n ast.Node, _ []ast.Node) bool {
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
		if !dead[name] && rewriteCounts[name] == 0 {
			resolved = false
		}
		return true
	})
	return resolved
}

// applyAction performs mode's effect on every helper declaration or
// binding marked dead, and on every initializer block marked dead in
// deadBlocks (spec.md §4.8: the none/comment/remove action applies to
// marked initializer blocks too, not just helper declarations).
// "remove" drops the statement outright; "comment" replaces it with a
// block comment carrying its exact printed form, prefixed per
// spec.md §4.8.
func applyAction(program *ast.Program, h classify.Set, dead map[string]bool, deadBlocks map[ast.Statement]bool, mode config.CleanupMode) {
	kept := program.Statements[:0]
	for _, stmt := range program.Statements {
		name, isHelper := helperNameOf(stmt, h)
		isDead := (isHelper && dead[name]) || deadBlocks[stmt]
		if !isDead {
			kept = append(kept, stmt)
			continue
		}
		switch mode {
		case config.CleanupRemove:
			// drop the statement
		case config.CleanupComment:
			kept = append(kept, &ast.OpaqueStatement{
				Tok: token.Token{Type: token.ILLEGAL, Pos: stmt.Pos()},
				Raw: "/* [cleanup] " + strings.ReplaceAll(printer.Print(stmt), "*/", "* /") + " */",
			})
		default:
			kept = append(kept, stmt)
		}
	}
	program.Statements = kept
}

func helperNameOf(stmt ast.Statement, h classify.Set) (string, bool) {
	switch s := stmt.(type) {
	case *ast.FunctionDeclaration:
		if s.Name == nil {
			return "", false
		}
		if helper, ok := h[s.Name.Value]; ok && helper.Kind == classify.KindDeclaration {
			return s.Name.Value, true
		}
	case *ast.VarStatement:
		if helper, ok := h[s.Name.Value]; ok && helper.Kind == classify.KindBinding {
			return s.Name.Value, true
		}
	}
	return "", false
}

