package sandbox

import (
	"fmt"
	"strconv"

	"github.com/cwbudde/deconst/internal/ast"
)

// Value is a runtime value inside the tree-walking evaluator.
//
// Grounded on CWBudde-go-dws/internal/interp/value.go's Value
// interface (one Go type per runtime kind, Type()+String() methods);
// adapted to the smaller value domain the target-language subset
// needs: numbers, strings, booleans, null/undefined, arrays, objects,
// and callables.
type Value interface {
	Type() string
	String() string
}

type StringVal struct{ V string }

func (s *StringVal) Type() string   { return "STRING" }
func (s *StringVal) String() string { return s.V }

type IntVal struct{ V int64 }

func (i *IntVal) Type() string   { return "INTEGER" }
func (i *IntVal) String() string { return strconv.FormatInt(i.V, 10) }

type FloatVal struct{ V float64 }

func (f *FloatVal) Type() string   { return "FLOAT" }
func (f *FloatVal) String() string { return strconv.FormatFloat(f.V, 'g', -1, 64) }

type BoolVal struct{ V bool }

func (b *BoolVal) Type() string   { return "BOOLEAN" }
func (b *BoolVal) String() string { return strconv.FormatBool(b.V) }

type NullVal struct{}

func (n *NullVal) Type() string   { return "NULL" }
func (n *NullVal) String() string { return "null" }

type AbsentVal struct{}

func (u *AbsentVal) Type() string   { return "ABSENT" }
func (u *AbsentVal) String() string { return "undefined" }

type ArrayVal struct{ Elements []Value }

func (a *ArrayVal) Type() string   { return "ARRAY" }
func (a *ArrayVal) String() string { return fmt.Sprintf("[array:%d]", len(a.Elements)) }

type ObjectVal struct{ Fields map[string]Value }

func (o *ObjectVal) Type() string   { return "OBJECT" }
func (o *ObjectVal) String() string { return "[object]" }

// FunctionVal is a closure: a user-defined routine plus the
// environment it closes over.
type FunctionVal struct {
	Parameters []*ast.Identifier
	Body       *ast.BlockStatement
	Env        *Environment
}

func (f *FunctionVal) Type() string   { return "FUNCTION" }
func (f *FunctionVal) String() string { return "[function]" }

// NativeFunc is a host-bound intrinsic (console, require, Math.*,
// __safe_call__) — the only place Go code reaches into the sandboxed
// program, matching spec.md §4.6's "minimal set of ambient values".
type NativeFunc struct {
	Name string
	Fn   func(args []Value) Value
}

func (n *NativeFunc) Type() string   { return "NATIVE" }
func (n *NativeFunc) String() string { return "[native " + n.Name + "]" }

// thrown is panicked by eval's ThrowStatement case (and by Call on a
// non-function) and recovered by try/catch and by
// __safe_call__, giving contained per-call failure (spec.md §7,
// PerCallFailure) without threading an error return through every
// eval call.
type thrown struct{ value Value }

// ToASTValue converts a representable runtime Value to the ast.Value
// captured-literal representation used by the Result map R. Arrays,
// objects, functions, and natives are not representable (spec.md §3
// kind "unrepresentable").
func ToASTValue(v Value) (ast.Value, bool) {
	switch val := v.(type) {
	case *StringVal:
		return ast.Value{Kind: ast.KindString, Str: val.V}, true
	case *IntVal:
		return ast.Value{Kind: ast.KindInteger, Int: val.V}, true
	case *FloatVal:
		return ast.Value{Kind: ast.KindFractional, Float: val.V}, true
	case *BoolVal:
		return ast.Value{Kind: ast.KindBoolean, Bool: val.V}, true
	case *NullVal:
		return ast.Value{Kind: ast.KindNull}, true
	case *AbsentVal, nil:
		return ast.Value{Kind: ast.KindAbsent}, true
	default:
		return ast.Value{Kind: ast.KindUnrepresentable}, false
	}
}

func isTruthy(v Value) bool {
	switch val := v.(type) {
	case *BoolVal:
		return val.V
	case *NullVal:
		return false
	case *AbsentVal, nil:
		return false
	case *IntVal:
		return val.V != 0
	case *FloatVal:
		return val.V != 0
	case *StringVal:
		return val.V != ""
	default:
		return true
	}
}
