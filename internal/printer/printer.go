// Package printer renders a syntax tree back to source text.
//
// print(subtree) must be deterministic: it is both the printer that
// emits the revised program (spec.md §6.4) and the function that
// forms Result-map keys (spec.md §3, "Keys are unique" under
// print(node)). Grounded on CWBudde-go-dws's String()-per-node-type
// convention (every ast node implements String() for debugging); here
// it's centralized into one recursive function instead of scattered
// per-type methods, so the single source of truth for "how does this
// print" can't drift between the output path and the keying path.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/deconst/internal/ast"
)

// Print renders node deterministically. Whitespace is normalized
// (single spaces, no original indentation) rather than preserved
// verbatim; spec.md §3 only requires print/parse round-trip up to
// whitespace and comment preservation, which this satisfies.
func Print(node ast.Node) string {
	var sb strings.Builder
	write(&sb, node)
	return sb.String()
}

func write(sb *strings.Builder, node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		for i, s := range n.Statements {
			if i > 0 {
				sb.WriteString("\n")
			}
			write(sb, s)
		}

	case *ast.Identifier:
		sb.WriteString(n.Value)

	case *ast.StringLiteral:
		sb.WriteString(quote(n.Value))

	case *ast.IntegerLiteral:
		sb.WriteString(strconv.FormatInt(n.Value, 10))

	case *ast.FractionalLiteral:
		sb.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))

	case *ast.BooleanLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))

	case *ast.NullLiteral:
		sb.WriteString("null")

	case *ast.AbsentLiteral:
		sb.WriteString("undefined")

	case *ast.UnaryExpression:
		if isWordOperator(n.Operator) {
			sb.WriteString(n.Operator)
			sb.WriteString(" ")
		} else {
			sb.WriteString(n.Operator)
		}
		write(sb, n.Operand)

	case *ast.BinaryExpression:
		write(sb, n.Left)
		sb.WriteString(" ")
		sb.WriteString(n.Operator)
		sb.WriteString(" ")
		write(sb, n.Right)

	case *ast.AssignmentExpression:
		write(sb, n.Target)
		sb.WriteString(" = ")
		write(sb, n.Value)

	case *ast.GroupExpression:
		sb.WriteString("(")
		write(sb, n.Expression)
		sb.WriteString(")")

	case *ast.CallExpression:
		write(sb, n.Callee)
		sb.WriteString("(")
		for i, a := range n.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, a)
		}
		sb.WriteString(")")

	case *ast.MemberExpression:
		write(sb, n.Object)
		sb.WriteString(".")
		sb.WriteString(n.Property.Value)

	case *ast.IndexExpression:
		write(sb, n.Left)
		sb.WriteString("[")
		write(sb, n.Index)
		sb.WriteString("]")

	case *ast.ArrayLiteral:
		sb.WriteString("[")
		for i, e := range n.Elements {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, e)
		}
		sb.WriteString("]")

	case *ast.ObjectLiteral:
		sb.WriteString("{")
		for i, p := range n.Properties {
			if i > 0 {
				sb.WriteString(", ")
			}
			write(sb, p.Key)
			sb.WriteString(": ")
			write(sb, p.Value)
		}
		sb.WriteString("}")

	case *ast.FunctionLiteral:
		sb.WriteString("function(")
		writeParams(sb, n.Parameters)
		sb.WriteString(") ")
		write(sb, n.Body)

	case *ast.FunctionDeclaration:
		sb.WriteString("function ")
		sb.WriteString(n.Name.Value)
		sb.WriteString("(")
		writeParams(sb, n.Parameters)
		sb.WriteString(") ")
		write(sb, n.Body)

	case *ast.VarStatement:
		sb.WriteString(varKindWord(n.Kind))
		sb.WriteString(" ")
		sb.WriteString(n.Name.Value)
		if n.Value != nil {
			sb.WriteString(" = ")
			write(sb, n.Value)
		}
		sb.WriteString(";")

	case *ast.ReturnStatement:
		sb.WriteString("return")
		if n.ReturnValue != nil {
			sb.WriteString(" ")
			write(sb, n.ReturnValue)
		}
		sb.WriteString(";")

	case *ast.ExpressionStatement:
		write(sb, n.Expression)
		sb.WriteString(";")

	case *ast.BlockStatement:
		sb.WriteString("{")
		for _, s := range n.Statements {
			write(sb, s)
		}
		sb.WriteString("}")

	case *ast.IfStatement:
		sb.WriteString("if (")
		write(sb, n.Condition)
		sb.WriteString(") ")
		write(sb, n.Consequence)
		if n.Alternative != nil {
			sb.WriteString(" else ")
			write(sb, n.Alternative)
		}

	case *ast.WhileStatement:
		sb.WriteString("while (")
		write(sb, n.Condition)
		sb.WriteString(") ")
		write(sb, n.Body)

	case *ast.DoWhileStatement:
		sb.WriteString("do ")
		write(sb, n.Body)
		sb.WriteString(" while (")
		write(sb, n.Condition)
		sb.WriteString(");")

	case *ast.TryStatement:
		sb.WriteString("try ")
		write(sb, n.Block)
		if n.CatchBlock != nil {
			sb.WriteString(" catch")
			if n.CatchParam != nil {
				sb.WriteString(" (")
				sb.WriteString(n.CatchParam.Value)
				sb.WriteString(")")
			}
			sb.WriteString(" ")
			write(sb, n.CatchBlock)
		}
		if n.FinallyBlock != nil {
			sb.WriteString(" finally ")
			write(sb, n.FinallyBlock)
		}

	case *ast.ThrowStatement:
		sb.WriteString("throw ")
		write(sb, n.Value)
		sb.WriteString(";")

	case *ast.OpaqueStatement:
		sb.WriteString(n.Raw)

	default:
		sb.WriteString(fmt.Sprintf("/* unprintable node %T */", node))
	}
}

func writeParams(sb *strings.Builder, params []*ast.Identifier) {
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Value)
	}
}

func varKindWord(k ast.VarKind) string {
	switch k {
	case ast.VarLet:
		return "let"
	case ast.VarConst:
		return "const"
	default:
		return "var"
	}
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "new", "void", "delete":
		return true
	}
	return false
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString("\\\"")
		case '\\':
			sb.WriteString("\\\\")
		case '\n':
			sb.WriteString("\\n")
		case '\t':
			sb.WriteString("\\t")
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
