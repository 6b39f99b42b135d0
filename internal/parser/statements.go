package parser

import (
	"strings"

	"github.com/cwbudde/deconst/internal/ast"
	"github.com/cwbudde/deconst/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR, token.LET, token.CONST:
		return p.parseVarStatement()
	case token.FUNCTION:
		if p.peekIs(token.IDENT) {
			return p.parseFunctionDeclaration()
		}
	case token.RETURN:
		return p.parseReturnStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.FOR:
		return p.parseOpaqueStatement("for")
	case token.SEMICOLON:
		return nil
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseVarStatement() *ast.VarStatement {
	stmt := &ast.VarStatement{Token: p.curToken}
	switch p.curToken.Type {
	case token.VAR:
		stmt.Kind = ast.VarVar
	case token.LET:
		stmt.Kind = ast.VarLet
	case token.CONST:
		stmt.Kind = ast.VarConst
	}

	if !p.expectPeek(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}

	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	fn := &ast.FunctionDeclaration{Token: p.curToken}
	p.nextToken() // consume 'function', cur is name
	fn.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

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

func (p *Parser) parseParameterList() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseReturnStatement() *ast.ReturnStatement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekIs(token.SEMICOLON) || p.peekIs(token.RBRACE) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken() // consume '{'
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseIfStatement() *ast.IfStatement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return stmt
		}
		stmt.Alternative = p.parseBlockStatement()
	}
	return stmt
}

func (p *Parser) parseWhileStatement() *ast.WhileStatement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() *ast.DoWhileStatement {
	stmt := &ast.DoWhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Body = p.parseBlockStatement()
	if !p.expectPeek(token.WHILE) {
		return stmt
	}
	if !p.expectPeek(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return stmt
	}
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseTryStatement() *ast.TryStatement {
	stmt := &ast.TryStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return stmt
	}
	stmt.Block = p.parseBlockStatement()

	if p.peekIs(token.CATCH) {
		p.nextToken()
		if p.peekIs(token.LPAREN) {
			p.nextToken()
			if p.expectPeek(token.IDENT) {
				stmt.CatchParam = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
			}
			p.expectPeek(token.RPAREN)
		}
		if p.expectPeek(token.LBRACE) {
			stmt.CatchBlock = p.parseBlockStatement()
		}
	}
	if p.peekIs(token.FINALLY) {
		p.nextToken()
		if p.expectPeek(token.LBRACE) {
			stmt.FinallyBlock = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseThrowStatement() *ast.ThrowStatement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

// parseOpaqueStatement consumes a balanced-brace construct deconst
// doesn't model (e.g. `for`) and preserves its exact source text so
// the printer can round-trip it untouched (SPEC_FULL.md §0).
func (p *Parser) parseOpaqueStatement(_ string) *ast.OpaqueStatement {
	start := p.curToken
	var sb strings.Builder
	sb.WriteString(p.curToken.Literal)

	depth := 0
	for {
		if p.curIs(token.LBRACE) {
			depth++
		}
		if p.curIs(token.RBRACE) {
			depth--
			if depth <= 0 {
				break
			}
		}
		if p.peekIs(token.EOF) {
			break
		}
		p.nextToken()
		sb.WriteString(" ")
		sb.WriteString(p.curToken.Literal)
	}
	return &ast.OpaqueStatement{Tok: start, Raw: sb.String()}
}
