// Package rewrite implements C7, the Rewriter.
//
// It traverses T once, replacing each call node whose printed form
// keys the C6 Result map R with a literal node built from the stored
// value, and re-emits the revised source via the printer (spec.md
// §4.7).
//
// Grounded on CWBudde-go-dws's own tree-rewriting passes (its
// constant-folding optimizer walks and replaces AST nodes in place
// rather than producing a parallel rewritten copy); adapted here to a
// small, explicitly-typed rewrite switch instead of a generic visitor,
// since deconst's AST only has one possible replacement shape (a call
// node becomes a literal node).
package rewrite

import (
	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/callee"
	"github.com/cwbudde/deconst/internal/classify"
	"github.com/cwbudde/deconst/internal/config"
	"github.com/cwbudde/deconst/internal/printer"
)

// Result is C7's output.
type Result struct {
	Source    string
	Rewritten int // number of call nodes actually replaced
	// PerHelper counts, by helper name, how many of its call sites were
	// folded — the input C8 needs to judge a helper "fully folded away".
	PerHelper map[string]int
}

// Run rewrites program in place against r and re-prints it. If
// cfg.DisableReplace is set, the traversal is skipped entirely
// (spec.md §4.7) and program is printed unchanged.
func Run(program *ast.Program, cfg config.Config, h classify.Set, r map[string]ast.Value) Result {
	rw := &rewriter{cfg: cfg, h: h, r: r, perHelper: make(map[string]int)}
	if !cfg.DisableReplace {
		for i, stmt := range program.Statements {
			program.Statements[i] = rw.stmt(stmt)
		}
	}
	return Result{Source: printer.Print(program), Rewritten: rw.total, PerHelper: rw.perHelper}
}

type rewriter struct {
	cfg       config.Config
	h         classify.Set
	r         map[string]ast.Value
	total     int
	perHelper map[string]int
}

func (rw *rewriter) tryReplace(call *ast.CallExpression) (ast.Expression, bool) {
	name, ok := callee.Resolve(call)
	if !ok {
		return nil, false
	}
	if _, inH := rw.h[name]; !inH {
		return nil, false
	}
	if !rw.cfg.InArgWindow(len(call.Arguments)) {
		return nil, false
	}
	key := printer.Print(call)
	v, ok := rw.r[key]
	if !ok || v.Kind == ast.KindUnrepresentable {
		return nil, false
	}
	rw.total++
	rw.perHelper[name]++
	return ast.NodeFromValue(v, call.Pos()), true
}

// expr rewrites e and everything beneath it, returning the (possibly
// replaced) expression.
func (rw *rewriter) expr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *ast.CallExpression:
		n.Callee = rw.expr(n.Callee)
		for i, a := range n.Arguments {
			n.Arguments[i] = rw.expr(a)
		}
		if repl, ok := rw.tryReplace(n); ok {
			return repl
		}
		return n

	case *ast.MemberExpression:
		n.Object = rw.expr(n.Object)
		return n

	case *ast.IndexExpression:
		n.Left = rw.expr(n.Left)
		n.Index = rw.expr(n.Index)
		return n

	case *ast.UnaryExpression:
		n.Operand = rw.expr(n.Operand)
		return n

	case *ast.BinaryExpression:
		n.Left = rw.expr(n.Left)
		n.Right = rw.expr(n.Right)
		return n

	case *ast.AssignmentExpression:
		n.Target = rw.expr(n.Target)
		n.Value = rw.expr(n.Value)
		return n

	case *ast.GroupExpression:
		n.Expression = rw.expr(n.Expression)
		return n

	case *ast.ArrayLiteral:
		for i, el := range n.Elements {
			n.Elements[i] = rw.expr(el)
		}
		return n

	case *ast.ObjectLiteral:
		for i, p := range n.Properties {
			n.Properties[i].Value = rw.expr(p.Value)
		}
		return n

	case *ast.FunctionLiteral:
		n.Body = rw.block(n.Body)
		return n

	default:
		// Identifier, literals: no children to rewrite, not themselves
		// a call node.
		return e
	}
}

func (rw *rewriter) block(b *ast.BlockStatement) *ast.BlockStatement {
	if b == nil {
		return nil
	}
	for i, s := range b.Statements {
		b.Statements[i] = rw.stmt(s)
	}
	return b
}

func (rw *rewriter) stmt(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case *ast.ExpressionStatement:
		n.Expression = rw.expr(n.Expression)
		return n

	case *ast.VarStatement:
		if n.Value != nil {
			n.Value = rw.expr(n.Value)
		}
		return n

	case *ast.ReturnStatement:
		if n.ReturnValue != nil {
			n.ReturnValue = rw.expr(n.ReturnValue)
		}
		return n

	case *ast.ThrowStatement:
		n.Value = rw.expr(n.Value)
		return n

	case *ast.BlockStatement:
		return rw.block(n)

	case *ast.IfStatement:
		n.Condition = rw.expr(n.Condition)
		n.Consequence = rw.block(n.Consequence)
		n.Alternative = rw.block(n.Alternative)
		return n

	case *ast.WhileStatement:
		n.Condition = rw.expr(n.Condition)
		n.Body = rw.block(n.Body)
		return n

	case *ast.DoWhileStatement:
		n.Body = rw.block(n.Body)
		n.Condition = rw.expr(n.Condition)
		return n

	case *ast.TryStatement:
		n.Block = rw.block(n.Block)
		n.CatchBlock = rw.block(n.CatchBlock)
		n.FinallyBlock = rw.block(n.FinallyBlock)
		return n

	case *ast.FunctionDeclaration:
		n.Body = rw.block(n.Body)
		return n

	default:
		// OpaqueStatement and anything else: nothing to rewrite.
		return s
	}
}
