// Package parser implements a Pratt (precedence-climbing) recursive
// descent parser over the target-language subset deconst supports
// (SPEC_FULL.md §0).
//
// Grounded on CWBudde-go-dws/internal/parser/parser.go's precedence
// table plus prefix/infix parse-function registries; the statement
// grammar is pared down to the shapes spec.md §3's node variants and
// §4.4's initializer-context rules require.
package parser

import (
	"fmt"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/lexer"
	"github.com/cwbudde/deconst/internal/token"
)

const (
	_ int = iota
	LOWEST
	ASSIGN
	LOGICAL
	EQUALS
	LESSGREATER
	SUM
	PRODUCT
	PREFIX
	CALL
	INDEX
	MEMBER
)

var precedences = map[token.Type]int{
	token.ASSIGN:     ASSIGN,
	token.OR:         LOGICAL,
	token.AND:        LOGICAL,
	token.EQ:         EQUALS,
	token.STRICT_EQ:  EQUALS,
	token.NOT_EQ:     EQUALS,
	token.LT:         LESSGREATER,
	token.GT:         LESSGREATER,
	token.LE:         LESSGREATER,
	token.GE:         LESSGREATER,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
	token.LPAREN:     CALL,
	token.LBRACKET:   INDEX,
	token.DOT:        MEMBER,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// ParseError is a fatal parse failure naming the offending offset
// (spec.md §2.2/§7: "Reported with offset and cause").
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d (offset %d): %s", e.Pos.Line, e.Pos.Column, e.Pos.Offset, e.Message)
}

// Parser turns a token stream into a *ast.Program.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []error

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New constructs a Parser over l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.INT:       p.parseIntegerLiteral,
		token.FLOAT:     p.parseFloatLiteral,
		token.STRING:    p.parseStringLiteral,
		token.TRUE:      p.parseBooleanLiteral,
		token.FALSE:     p.parseBooleanLiteral,
		token.NULL:      p.parseNullLiteral,
		token.UNDEFINED: p.parseAbsentLiteral,
		token.BANG:      p.parseUnaryExpression,
		token.MINUS:     p.parseUnaryExpression,
		token.TYPEOF:    p.parseUnaryExpression,
		token.NEW:       p.parseNewExpression,
		token.LPAREN:    p.parseGroupedOrArrow,
		token.LBRACKET:  p.parseArrayLiteral,
		token.LBRACE:    p.parseObjectLiteral,
		token.FUNCTION:  p.parseFunctionLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:      p.parseBinaryExpression,
		token.MINUS:     p.parseBinaryExpression,
		token.ASTERISK:  p.parseBinaryExpression,
		token.SLASH:     p.parseBinaryExpression,
		token.PERCENT:   p.parseBinaryExpression,
		token.LT:        p.parseBinaryExpression,
		token.GT:        p.parseBinaryExpression,
		token.LE:        p.parseBinaryExpression,
		token.GE:        p.parseBinaryExpression,
		token.EQ:        p.parseBinaryExpression,
		token.STRICT_EQ: p.parseBinaryExpression,
		token.NOT_EQ:    p.parseBinaryExpression,
		token.AND:       p.parseBinaryExpression,
		token.OR:        p.parseBinaryExpression,
		token.LPAREN:    p.parseCallExpression,
		token.DOT:       p.parseMemberExpression,
		token.LBRACKET:  p.parseIndexExpression,
		token.ASSIGN:    p.parseAssignmentExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error accumulated during ParseProgram.
func (p *Parser) Errors() []error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Pos, "expected next token to be %v, got %v (%q)", t, p.peekToken.Type, p.peekToken.Literal)
	return false
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

// ParseProgram parses the whole token stream. Callers that need a
// fatal error per spec.md §2.2/§7 should check Errors() afterward;
// ParseProgram itself never panics.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	return program
}
