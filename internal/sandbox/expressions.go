package sandbox

import (
	"strings"

	"github.com/cwbudde/deconst/internal/ast"
)

func evalUnary(n *ast.UnaryExpression, env *Environment) Value {
	switch n.Operator {
	case "-":
		v := eval(n.Operand, env)
		switch val := v.(type) {
		case *IntVal:
			return &IntVal{V: -val.V}
		case *FloatVal:
			return &FloatVal{V: -val.V}
		}
		return &AbsentVal{}
	case "!":
		return &BoolVal{V: !isTruthy(eval(n.Operand, env))}
	case "typeof":
		return &StringVal{V: strings.ToLower(eval(n.Operand, env).Type())}
	case "new":
		return eval(n.Operand, env)
	default:
		return &AbsentVal{}
	}
}

func evalBinary(n *ast.BinaryExpression, env *Environment) Value {
	if n.Operator == "&&" {
		left := eval(n.Left, env)
		if !isTruthy(left) {
			return left
		}
		return eval(n.Right, env)
	}
	if n.Operator == "||" {
		left := eval(n.Left, env)
		if isTruthy(left) {
			return left
		}
		return eval(n.Right, env)
	}

	left := eval(n.Left, env)
	right := eval(n.Right, env)

	if n.Operator == "+" {
		if ls, ok := left.(*StringVal); ok {
			return &StringVal{V: ls.V + toDisplay(right)}
		}
		if rs, ok := right.(*StringVal); ok {
			return &StringVal{V: toDisplay(left) + rs.V}
		}
	}

	switch n.Operator {
	case "==", "===":
		return &BoolVal{V: valuesEqual(left, right)}
	case "!=", "!==":
		return &BoolVal{V: !valuesEqual(left, right)}
	}

	lf, lok := numeric(left)
	rf, rok := numeric(right)
	if !lok || !rok {
		return &AbsentVal{}
	}

	switch n.Operator {
	case "+":
		return numResult(left, right, lf+rf)
	case "-":
		return numResult(left, right, lf-rf)
	case "*":
		return numResult(left, right, lf*rf)
	case "/":
		return &FloatVal{V: lf / rf}
	case "%":
		return &FloatVal{V: float64(int64(lf) % int64(rf))}
	case "<":
		return &BoolVal{V: lf < rf}
	case ">":
		return &BoolVal{V: lf > rf}
	case "<=":
		return &BoolVal{V: lf <= rf}
	case ">=":
		return &BoolVal{V: lf >= rf}
	default:
		return &AbsentVal{}
	}
}

// numResult keeps integer+integer arithmetic in IntVal and anything
// touching a float in FloatVal, mirroring ordinary numeric-tower
// coercion without modeling a full numeric type lattice.
func numResult(left, right Value, f float64) Value {
	_, lInt := left.(*IntVal)
	_, rInt := right.(*IntVal)
	if lInt && rInt {
		return &IntVal{V: int64(f)}
	}
	return &FloatVal{V: f}
}

func numeric(v Value) (float64, bool) {
	switch val := v.(type) {
	case *IntVal:
		return float64(val.V), true
	case *FloatVal:
		return val.V, true
	case *BoolVal:
		if val.V {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func toDisplay(v Value) string {
	if v == nil {
		return "undefined"
	}
	return v.String()
}

func valuesEqual(a, b Value) bool {
	if af, aok := numeric(a); aok {
		if bf, bok := numeric(b); bok {
			return af == bf
		}
	}
	as, aok := a.(*StringVal)
	bs, bok := b.(*StringVal)
	if aok && bok {
		return as.V == bs.V
	}
	_, aNull := a.(*NullVal)
	_, bNull := b.(*NullVal)
	if aNull && bNull {
		return true
	}
	_, aAbsent := a.(*AbsentVal)
	_, bAbsent := b.(*AbsentVal)
	if aAbsent && bAbsent {
		return true
	}
	return a == b
}

func evalAssignment(n *ast.AssignmentExpression, env *Environment) Value {
	v := eval(n.Value, env)
	switch target := n.Target.(type) {
	case *ast.Identifier:
		env.Set(target.Value, v)
	case *ast.IndexExpression:
		container := eval(target.Left, env)
		idx := eval(target.Index, env)
		assignIndexed(container, idx, v)
	case *ast.MemberExpression:
		container := eval(target.Object, env)
		if obj, ok := container.(*ObjectVal); ok {
			obj.Fields[target.Property.Value] = v
		}
	}
	return v
}

func assignIndexed(container Value, idx Value, v Value) {
	switch c := container.(type) {
	case *ArrayVal:
		i, ok := numeric(idx)
		if !ok {
			return
		}
		n := int(i)
		for len(c.Elements) <= n {
			c.Elements = append(c.Elements, &AbsentVal{})
		}
		c.Elements[n] = v
	case *ObjectVal:
		c.Fields[toDisplay(idx)] = v
	}
}

func evalIndex(n *ast.IndexExpression, env *Environment) Value {
	container := eval(n.Left, env)
	idx := eval(n.Index, env)
	switch c := container.(type) {
	case *ArrayVal:
		i, ok := numeric(idx)
		if !ok || int(i) < 0 || int(i) >= len(c.Elements) {
			return &AbsentVal{}
		}
		return c.Elements[int(i)]
	case *ObjectVal:
		if v, ok := c.Fields[toDisplay(idx)]; ok {
			return v
		}
		return &AbsentVal{}
	default:
		return &AbsentVal{}
	}
}

func evalMember(n *ast.MemberExpression, env *Environment) Value {
	obj := eval(n.Object, env)
	return memberGet(obj, n.Property.Value)
}

func evalCall(n *ast.CallExpression, env *Environment) Value {
	args := make([]Value, len(n.Arguments))
	for i, a := range n.Arguments {
		args[i] = eval(a, env)
	}

	// A member-expression callee (e.g. `s.toUpperCase()`) is resolved
	// against the receiver's built-in method set rather than through
	// the ordinary identifier environment.
	if member, ok := n.Callee.(*ast.MemberExpression); ok {
		receiver := eval(member.Object, env)
		if fn, ok := builtinMethod(receiver, member.Property.Value); ok {
			return fn(args)
		}
		fn := memberGet(receiver, member.Property.Value)
		return Call(fn, args)
	}

	fn := eval(n.Callee, env)
	return Call(fn, args)
}
