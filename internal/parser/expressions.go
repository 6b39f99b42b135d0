package parser

import (
	"strconv"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.errorf(p.curToken.Pos, "no prefix parse function for %v (%q)", p.curToken.Type, p.curToken.Literal)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	v, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
	if err != nil {
		p.errorf(p.curToken.Pos, "invalid integer literal %q", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	v, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.errorf(p.curToken.Pos, "invalid fractional literal %q", p.curToken.Literal)
		return nil
	}
	return &ast.FractionalLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curToken.Type == token.TRUE}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parseAbsentLiteral() ast.Expression {
	return &ast.AbsentLiteral{Token: p.curToken}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.curToken, Operator: p.curToken.Literal}
	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	return expr
}

// parseNewExpression treats `new Foo(args)` as an ordinary call
// expression on the constructor name; deconst never classifies or
// rewrites such calls (construction has side effects by nature) but
// must still parse and print them back unchanged.
func (p *Parser) parseNewExpression() ast.Expression {
	newTok := p.curToken
	p.nextToken()
	callee := p.parseExpression(CALL)
	call, ok := callee.(*ast.CallExpression)
	if !ok {
		call = &ast.CallExpression{Token: newTok, Callee: callee}
	}
	return &ast.UnaryExpression{Token: newTok, Operator: "new", Operand: call}
}

func (p *Parser) parseGroupedOrArrow() ast.Expression {
	tok := p.curToken
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return &ast.GroupExpression{Token: tok, Expression: expr}
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	arr := &ast.ArrayLiteral{Token: p.curToken}
	arr.Elements = p.parseExpressionList(token.RBRACKET)
	return arr
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken}
	for !p.peekIs(token.RBRACE) {
		p.nextToken()
		var key ast.Expression
		if p.curIs(token.STRING) {
			key = &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
		} else {
			key = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
		}
		if !p.expectPeek(token.COLON) {
			return obj
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		obj.Properties = append(obj.Properties, ast.ObjectProperty{Key: key, Value: value})

		if p.peekIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return obj
	}
	return obj
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return fn
	}
	fn.Parameters = p.parseParameterList()
	if !p.expectPeek(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseBlockStatement()
	return fn
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.curToken, Operator: p.curToken.Literal, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	tok := p.curToken
	// The property may lex as a keyword token (e.g. `.typeof`, `.new`);
	// accept any single token as the property name here and let
	// spec.md §4.5 reject reserved-word property access at extraction
	// time instead of at parse time.
	p.nextToken()
	prop := &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
	return &ast.MemberExpression{Token: tok, Object: object, Property: prop}
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return &ast.IndexExpression{Token: tok, Left: left, Index: index}
	}
	return &ast.IndexExpression{Token: tok, Left: left, Index: index}
}

func (p *Parser) parseAssignmentExpression(target ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.AssignmentExpression{Token: tok, Target: target, Value: value}
}
