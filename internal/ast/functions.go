package ast

import "github.com/cwbudde/deconst/internal/token"

// FunctionDeclaration is a named routine definition:
// `function name(params) { body }`. This is the "function definition"
// variant of spec.md §3.
type FunctionDeclaration struct {
	Token      token.Token
	Name       *Identifier
	Parameters []*Identifier
	Body       *BlockStatement
}

func (f *FunctionDeclaration) statementNode()     {}
func (f *FunctionDeclaration) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclaration) Pos() token.Position  { return f.Token.Pos }

// FunctionLiteral is an anonymous routine value: `function(params) {
// body }`, used on the right-hand side of a binding. This is the
// "function-valued binding" variant when it appears as a VarStatement
// initializer.
type FunctionLiteral struct {
	Token      token.Token
	Parameters []*Identifier
	Body       *BlockStatement
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() token.Position  { return f.Token.Pos }

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token     token.Token // the '(' token
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }

// MemberExpression is `object.property`.
type MemberExpression struct {
	Token    token.Token // the '.' token
	Object   Expression
	Property *Identifier
}

func (m *MemberExpression) expressionNode()      {}
func (m *MemberExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpression) Pos() token.Position  { return m.Token.Pos }

// IsIIFE reports whether call is an immediately-invoked routine block:
// a call whose callee is an inline FunctionLiteral, optionally
// wrapped in parentheses (GroupExpression).
func IsIIFE(call *CallExpression) bool {
	callee := call.Callee
	if g, ok := callee.(*GroupExpression); ok {
		callee = g.Expression
	}
	_, ok := callee.(*FunctionLiteral)
	return ok
}

// GroupExpression is a parenthesized expression, `(expr)`. The printer
// re-emits the parentheses; IsIIFE looks through it to find an inline
// routine literal the same way spec.md §3 requires ("optionally
// wrapped").
type GroupExpression struct {
	Token      token.Token
	Expression Expression
}

func (g *GroupExpression) expressionNode()      {}
func (g *GroupExpression) TokenLiteral() string { return g.Token.Literal }
func (g *GroupExpression) Pos() token.Position  { return g.Token.Pos }
