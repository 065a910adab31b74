package parser

import (
	"fmt"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/token"
)

// ParseProgram parses the whole token stream into a Program. It always
// returns a tree; errors are collected on the pipeline context.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.SEMICOLON:
			// empty statement
		case token.IMPORT:
			if imp := p.parseImportDeclaration(); imp != nil {
				prog.Imports = append(prog.Imports, imp)
			}
		case token.CLASS, token.INTERFACE:
			decl := p.parseClassDeclaration()
			if decl != nil {
				if prog.AppClass != nil {
					p.addError(diagnostics.ErrP001, decl.Token,
						"a program may declare at most one class or interface")
				} else {
					prog.AppClass = decl
				}
			}
		case token.FUNCTION:
			if fn := p.parseFunctionDeclaration(); fn != nil {
				prog.Functions = append(prog.Functions, fn)
			}
		case token.DECLARE:
			// External function declaration; no type information to
			// extract, so consume through the terminating semicolon.
			// skipToStatementBoundary would stop on the Function keyword
			// right after Declare, so scan for the semicolon directly.
			for !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
				p.nextToken()
			}
		case token.METHOD:
			if impl := p.parseMethodImplementation(ast.ImplMethod, token.END_METHOD); impl != nil {
				prog.Statements = append(prog.Statements, impl)
			}
		case token.GET:
			if impl := p.parseMethodImplementation(ast.ImplGetter, token.END_GET); impl != nil {
				prog.Statements = append(prog.Statements, impl)
			}
		case token.SET:
			if impl := p.parseMethodImplementation(ast.ImplSetter, token.END_SET); impl != nil {
				prog.Statements = append(prog.Statements, impl)
			}
		default:
			if stmt := p.parseStatement(); stmt != nil {
				prog.Statements = append(prog.Statements, stmt)
			}
		}
		p.nextToken()
	}

	return prog
}

// parseStatement parses one statement with the current token on its
// first token, returning with the current token on its last.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.LOCAL, token.GLOBAL, token.COMPONENT:
		return p.parseLocalVariableDeclaration()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.REPEAT:
		return p.parseRepeatStatement()
	case token.EVALUATE:
		return p.parseEvaluateStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.BREAK:
		return &ast.BreakStatement{Token: p.curToken}
	case token.CONTINUE:
		return &ast.ContinueStatement{Token: p.curToken}
	case token.EXIT:
		return p.parseExitStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseBlock collects statements until one of the stop tokens, leaving
// the current token on the stop token (or EOF for an unterminated
// block).
func (p *Parser) parseBlock(stops ...token.Type) *ast.Block {
	block := &ast.Block{Token: p.curToken}
	for {
		for p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		if p.curTokenIs(token.EOF) {
			p.addError(diagnostics.ErrP004, p.curToken,
				fmt.Sprintf("unterminated block: expected %s", stops[0]))
			return block
		}
		for _, stop := range stops {
			if p.curTokenIs(stop) {
				return block
			}
		}
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.curToken
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		p.skipToStatementBoundary()
		return nil
	}
	// A top-level `=` in statement position is an assignment, not a
	// comparison.
	if infix, ok := expr.(*ast.InfixExpression); ok && infix.Operator == "=" {
		return &ast.AssignmentStatement{Token: infix.Token, Target: infix.Left, Value: infix.Right}
	}
	return &ast.ExpressionStatement{Token: start, Expression: expr}
}

// parseLocalVariableDeclaration:
// Local <type> &a, &b;   Global number &n = 1;
func (p *Parser) parseLocalVariableDeclaration() ast.Statement {
	decl := &ast.LocalVariableDeclaration{Token: p.curToken}
	switch p.curToken.Type {
	case token.GLOBAL:
		decl.Scope = ast.ScopeGlobal
	case token.COMPONENT:
		decl.Scope = ast.ScopeComponent
	default:
		decl.Scope = ast.ScopeLocal
	}

	p.nextToken()
	decl.Type = p.parseTypeNode()
	if decl.Type == nil {
		p.skipToStatementBoundary()
		return nil
	}

	if !p.expectPeek(token.USERVAR) {
		p.skipToStatementBoundary()
		return nil
	}
	decl.Names = append(decl.Names, p.curToken)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.USERVAR) {
			break
		}
		decl.Names = append(decl.Names, p.curToken)
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		decl.Value = p.parseExpression(LOWEST)
	}

	return decl
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.THEN) {
		p.skipToStatementBoundary()
	}
	p.nextToken()
	stmt.Then = p.parseBlock(token.ELSE, token.END_IF)
	if p.curTokenIs(token.ELSE) {
		p.nextToken()
		stmt.Else = p.parseBlock(token.END_IF)
	}
	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.USERVAR) {
		p.skipToStatementBoundary()
		return nil
	}
	stmt.Variable = &ast.UserVariable{Token: p.curToken, Name: p.curToken.Literal}
	if !p.expectPeek(token.ASSIGN) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	stmt.From = p.parseExpression(LOWEST)
	if !p.expectPeek(token.TO) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	stmt.To = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.STEP) {
		p.nextToken()
		p.nextToken()
		stmt.Step = p.parseExpression(LOWEST)
	}
	p.nextToken()
	stmt.Body = p.parseBlock(token.END_FOR)
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	p.nextToken()
	stmt.Body = p.parseBlock(token.END_WHILE)
	return stmt
}

func (p *Parser) parseRepeatStatement() ast.Statement {
	stmt := &ast.RepeatStatement{Token: p.curToken}
	p.nextToken()
	stmt.Body = p.parseBlock(token.UNTIL)
	if p.curTokenIs(token.UNTIL) {
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseEvaluateStatement() ast.Statement {
	stmt := &ast.EvaluateStatement{Token: p.curToken}
	p.nextToken()
	stmt.Subject = p.parseExpression(LOWEST)
	p.nextToken()

	for {
		for p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		switch p.curToken.Type {
		case token.WHEN:
			clause := &ast.WhenClause{Token: p.curToken, Operator: "="}
			if op, ok := comparisonLexeme(p.peekToken.Type); ok {
				p.nextToken()
				clause.Operator = op
			}
			p.nextToken()
			clause.Value = p.parseExpression(LOWEST)
			p.nextToken()
			clause.Body = p.parseBlock(token.WHEN, token.WHEN_OTHER, token.END_EVALUATE)
			stmt.Whens = append(stmt.Whens, clause)
		case token.WHEN_OTHER:
			p.nextToken()
			stmt.Other = p.parseBlock(token.END_EVALUATE)
		case token.END_EVALUATE, token.EOF:
			if p.curTokenIs(token.EOF) {
				p.addError(diagnostics.ErrP004, p.curToken, "unterminated Evaluate")
			}
			return stmt
		default:
			p.addError(diagnostics.ErrP001, p.curToken,
				"expected When, When-Other, or End-Evaluate, found "+describeToken(p.curToken))
			p.skipToStatementBoundary()
			p.nextToken()
		}
	}
}

func comparisonLexeme(t token.Type) (string, bool) {
	switch t {
	case token.ASSIGN, token.NOT_EQ, token.LT, token.LTE, token.GT, token.GTE:
		return string(t), true
	}
	return "", false
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}
	p.nextToken()
	stmt.Body = p.parseBlock(token.CATCH, token.END_TRY)
	for p.curTokenIs(token.CATCH) {
		clause := &ast.CatchClause{Token: p.curToken}
		p.nextToken()
		clause.ExceptionType = p.parseTypeNode()
		if p.expectPeek(token.USERVAR) {
			clause.Variable = p.curToken
		}
		p.nextToken()
		clause.Body = p.parseBlock(token.CATCH, token.END_TRY)
		stmt.Catches = append(stmt.Catches, clause)
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if !p.peekTokenIs(token.SEMICOLON) && !isStatementStart(p.peekToken.Type) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	return stmt
}

func (p *Parser) parseExitStatement() ast.Statement {
	stmt := &ast.ExitStatement{Token: p.curToken}
	if p.peekTokenIs(token.NUMBER) || p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}
