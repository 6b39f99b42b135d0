// interp.go is the tree-walking evaluator that backs the sandbox
// Evaluator contract (§6.3). It is the "embedded interpreter" spec.md
// §1 explicitly treats as an external, black-box collaborator; this
// file is deconst's own minimal concrete instance of that contract
// (see DESIGN.md for why the corpus's yaegi — a Go interpreter, not an
// ECMAScript one — was not a fit).
//
// Grounded on CWBudde-go-dws/internal/interp/expressions.go and
// statements.go's big-switch Eval pattern, adapted to the small
// target-language subset internal/ast defines.
package sandbox

import (
	"fmt"

	"github.com/cwbudde/deconst/internal/ast"
)

type returnSignal struct{ value Value }

// eval walks node under env, returning its value. Control-flow
// signals (return, throw) are propagated as panics recovered at
// function-call and try/catch boundaries respectively — a common
// shape for a tree-walker this small, and one that keeps per-call
// containment in __safe_call__ a single recover().
func eval(node ast.Node, env *Environment) Value {
	switch n := node.(type) {
	case *ast.Program:
		// Top-level function declarations are bound before any statement
		// runs, so earlier statements may call helpers defined later.
		for _, s := range n.Statements {
			if fd, ok := s.(*ast.FunctionDeclaration); ok {
				eval(fd, env)
			}
		}
		var last Value = &AbsentVal{}
		for _, s := range n.Statements {
			last = eval(s, env)
		}
		return last

	case *ast.BlockStatement:
		var last Value = &AbsentVal{}
		for _, s := range n.Statements {
			last = eval(s, env)
		}
		return last

	case *ast.ExpressionStatement:
		return eval(n.Expression, env)

	case *ast.VarStatement:
		var v Value = &AbsentVal{}
		if n.Value != nil {
			v = eval(n.Value, env)
		}
		env.Declare(n.Name.Value, v)
		return v

	case *ast.ReturnStatement:
		var v Value = &AbsentVal{}
		if n.ReturnValue != nil {
			v = eval(n.ReturnValue, env)
		}
		panic(returnSignal{value: v})

	case *ast.IfStatement:
		if isTruthy(eval(n.Condition, env)) {
			return eval(n.Consequence, NewEnclosedEnvironment(env))
		} else if n.Alternative != nil {
			return eval(n.Alternative, NewEnclosedEnvironment(env))
		}
		return &AbsentVal{}

	case *ast.WhileStatement:
		for isTruthy(eval(n.Condition, env)) {
			eval(n.Body, NewEnclosedEnvironment(env))
		}
		return &AbsentVal{}

	case *ast.DoWhileStatement:
		for {
			eval(n.Body, NewEnclosedEnvironment(env))
			if !isTruthy(eval(n.Condition, env)) {
				break
			}
		}
		return &AbsentVal{}

	case *ast.TryStatement:
		return evalTry(n, env)

	case *ast.ThrowStatement:
		panic(thrown{value: eval(n.Value, env)})

	case *ast.OpaqueStatement:
		// Outside deconst's supported subset (SPEC_FULL.md §0); treated
		// as a no-op rather than a fatal assembly error.
		return &AbsentVal{}

	case *ast.Identifier:
		if v, ok := env.Get(n.Value); ok {
			return v
		}
		return &AbsentVal{}

	case *ast.StringLiteral:
		return &StringVal{V: n.Value}
	case *ast.IntegerLiteral:
		return &IntVal{V: n.Value}
	case *ast.FractionalLiteral:
		return &FloatVal{V: n.Value}
	case *ast.BooleanLiteral:
		return &BoolVal{V: n.Value}
	case *ast.NullLiteral:
		return &NullVal{}
	case *ast.AbsentLiteral:
		return &AbsentVal{}

	case *ast.UnaryExpression:
		return evalUnary(n, env)

	case *ast.BinaryExpression:
		return evalBinary(n, env)

	case *ast.AssignmentExpression:
		return evalAssignment(n, env)

	case *ast.GroupExpression:
		return eval(n.Expression, env)

	case *ast.ArrayLiteral:
		elems := make([]Value, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = eval(e, env)
		}
		return &ArrayVal{Elements: elems}

	case *ast.ObjectLiteral:
		fields := make(map[string]Value, len(n.Properties))
		for _, p := range n.Properties {
			fields[propKey(p.Key)] = eval(p.Value, env)
		}
		return &ObjectVal{Fields: fields}

	case *ast.FunctionLiteral:
		return &FunctionVal{Parameters: n.Parameters, Body: n.Body, Env: env}

	case *ast.FunctionDeclaration:
		fn := &FunctionVal{Parameters: n.Parameters, Body: n.Body, Env: env}
		env.Declare(n.Name.Value, fn)
		return fn

	case *ast.CallExpression:
		return evalCall(n, env)

	case *ast.MemberExpression:
		return evalMember(n, env)

	case *ast.IndexExpression:
		return evalIndex(n, env)

	default:
		panic(fmt.Sprintf("sandbox: unhandled node type %T", node))
	}
}

func propKey(key ast.Expression) string {
	switch k := key.(type) {
	case *ast.Identifier:
		return k.Value
	case *ast.StringLiteral:
		return k.Value
	default:
		return ""
	}
}

func evalTry(n *ast.TryStatement, env *Environment) (result Value) {
	result = &AbsentVal{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				t, ok := r.(thrown)
				if !ok {
					panic(r) // not a throw: let return/outer recover handle it
				}
				if n.CatchBlock != nil {
					catchEnv := NewEnclosedEnvironment(env)
					if n.CatchParam != nil {
						catchEnv.Declare(n.CatchParam.Value, t.value)
					}
					result = eval(n.CatchBlock, catchEnv)
				}
			}
		}()
		result = eval(n.Block, NewEnclosedEnvironment(env))
	}()
	if n.FinallyBlock != nil {
		eval(n.FinallyBlock, NewEnclosedEnvironment(env))
	}
	return result
}

// Call invokes fn with args, honoring both user closures and native
// host functions. Exported for __safe_call__'s use.
func Call(fn Value, args []Value) (result Value) {
	switch f := fn.(type) {
	case *NativeFunc:
		return f.Fn(args)
	case *FunctionVal:
		callEnv := NewEnclosedEnvironment(f.Env)
		for i, p := range f.Parameters {
			if i < len(args) {
				callEnv.Declare(p.Value, args[i])
			} else {
				callEnv.Declare(p.Value, &AbsentVal{})
			}
		}
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(returnSignal); ok {
					result = ret.value
					return
				}
				panic(r)
			}
		}()
		eval(f.Body, callEnv)
		return &AbsentVal{}
	default:
		panic(thrown{value: &StringVal{V: "TypeError: not a function"}})
	}
}
