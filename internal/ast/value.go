package ast

import "github.com/cwbudde/deconst/internal/token"

// Value is a captured compile-time-known value: an argument in a Q
// triple, or an entry in the Result map R (spec.md §3). Only one field
// is meaningful, selected by Kind.
type Value struct {
	Kind  LiteralKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
}

// LiteralValue attempts to read expr as a compile-time literal per
// spec.md §4.5 step 4: a string, integer, fractional, boolean, null,
// or absent literal, or a unary negation of a numeric literal. Any
// other expression shape fails the capture, which is what makes a
// call's argument (and therefore the whole call) non-pure.
func LiteralValue(expr Expression) (Value, bool) {
	switch e := expr.(type) {
	case *StringLiteral:
		return Value{Kind: KindString, Str: e.Value}, true
	case *IntegerLiteral:
		return Value{Kind: KindInteger, Int: e.Value}, true
	case *FractionalLiteral:
		return Value{Kind: KindFractional, Float: e.Value}, true
	case *BooleanLiteral:
		return Value{Kind: KindBoolean, Bool: e.Value}, true
	case *NullLiteral:
		return Value{Kind: KindNull}, true
	case *AbsentLiteral:
		return Value{Kind: KindAbsent}, true
	case *UnaryExpression:
		if e.Operator != "-" {
			return Value{}, false
		}
		switch operand := e.Operand.(type) {
		case *IntegerLiteral:
			return Value{Kind: KindInteger, Int: -operand.Value}, true
		case *FractionalLiteral:
			return Value{Kind: KindFractional, Float: -operand.Value}, true
		}
		return Value{}, false
	case *GroupExpression:
		return LiteralValue(e.Expression)
	default:
		return Value{}, false
	}
}

// NodeFromValue constructs the literal node a Value encodes, for use
// by C7 when replacing a call node with its captured result. pos is
// used only for the synthetic token position; it carries no semantic
// weight.
func NodeFromValue(v Value, pos token.Position) Expression {
	tok := token.Token{Pos: pos}
	switch v.Kind {
	case KindString:
		return &StringLiteral{Token: tok, Value: v.Str}
	case KindInteger:
		if v.Int < 0 {
			inner := &IntegerLiteral{Token: tok, Value: -v.Int}
			return &UnaryExpression{Token: tok, Operator: "-", Operand: inner}
		}
		return &IntegerLiteral{Token: tok, Value: v.Int}
	case KindFractional:
		if v.Float < 0 {
			inner := &FractionalLiteral{Token: tok, Value: -v.Float}
			return &UnaryExpression{Token: tok, Operator: "-", Operand: inner}
		}
		return &FractionalLiteral{Token: tok, Value: v.Float}
	case KindBoolean:
		return &BooleanLiteral{Token: tok, Value: v.Bool}
	case KindNull:
		return &NullLiteral{Token: tok}
	case KindAbsent:
		return &AbsentLiteral{Token: tok}
	default:
		return nil // KindUnrepresentable: callers must not reach here (§4.7 step 3)
	}
}
