package parser

import (
	"strconv"
	"strings"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/config"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > config.MaxRecursionDepth {
		p.addError(diagnostics.ErrP006, p.curToken,
			"expression too complex: recursion depth limit exceeded")
		p.skipToStatementBoundary()
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		next := infix(leftExp)
		if next == nil {
			return leftExp
		}
		leftExp = next
	}

	return leftExp
}

func (p *Parser) noPrefixParseFnError(tok token.Token) {
	p.addError(diagnostics.ErrP001, tok,
		"unexpected "+describeToken(tok)+" in expression")
}

func describeToken(tok token.Token) string {
	if tok.Type == token.EOF {
		return "end of program"
	}
	return "'" + tok.Lexeme + "'"
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseUserVariable() ast.Expression {
	return &ast.UserVariable{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseSystemVariable() ast.Expression {
	return &ast.SystemVariable{Token: p.curToken, Name: p.curToken.Literal}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(diagnostics.ErrP001, p.curToken,
			"invalid number literal "+p.curToken.Lexeme)
		return nil
	}
	return &ast.NumberLiteral{
		Token:     p.curToken,
		Value:     value,
		IsInteger: !strings.Contains(p.curToken.Literal, "."),
	}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expr := &ast.PrefixExpression{Token: p.curToken, Operator: strings.ToLower(p.curToken.Lexeme)}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expr := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: strings.ToLower(p.curToken.Literal),
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

// parseCastExpression handles `expr as Type`, bare or parenthesized.
func (p *Parser) parseCastExpression(left ast.Expression) ast.Expression {
	expr := &ast.CastExpression{Token: p.curToken, Expression: left}
	p.nextToken()
	expr.TargetType = p.parseTypeNode()
	if expr.TargetType == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Function: fn}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

// parseIndexExpression handles both a[1][2] (chained, as nested index
// nodes) and a[1,2] (one node, two indices).
func (p *Parser) parseIndexExpression(base ast.Expression) ast.Expression {
	idx := &ast.IndexExpression{Token: p.curToken, Base: base}
	idx.Indices = p.parseExpressionList(token.RBRACKET)
	return idx
}

func (p *Parser) parseMemberAccess(object ast.Expression) ast.Expression {
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected member name after '.', found "+describeToken(p.peekToken))
		return object
	}
	p.nextToken()
	return &ast.MemberAccess{Token: p.curToken, Object: object, Member: p.curToken.Lexeme}
}

// parseCreateExpression handles `create PKG:SUB:Class(args)`, argument
// list optional.
func (p *Parser) parseCreateExpression() ast.Expression {
	expr := &ast.CreateExpression{Token: p.curToken}
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected class name after 'create'")
		return nil
	}
	p.nextToken()
	expr.Class = p.parseAppClassPath()
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		expr.Arguments = p.parseExpressionList(token.RPAREN)
	}
	return expr
}

// parseAtReference handles the dynamic reference form @("REC.FIELD").
func (p *Parser) parseAtReference() ast.Expression {
	expr := &ast.AtReference{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Expression = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return expr
	}
	return expr
}

// parseExpressionList consumes a comma-separated list up to the given
// end token. The opening delimiter is the current token.
func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	if e := p.parseExpression(LOWEST); e != nil {
		list = append(list, e)
	}

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		if e := p.parseExpression(LOWEST); e != nil {
			list = append(list, e)
		}
	}

	p.expectPeek(end)
	return list
}
