// Package parser builds a PeopleCode AST from a token stream. It is
// recursive descent with Pratt expression parsing, and it never gives
// up: malformed input produces diagnostics and local resynchronization
// so the rest of the file still parses.
package parser

import (
	"fmt"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/pipeline"
	"github.com/pcodekit/pcheck/internal/token"
)

// Operator precedence, lowest first.
const (
	LOWEST int = iota
	OR_PREC
	AND_PREC
	COMPARE // = <> < <= > >=
	CAST    // as
	CONCAT  // |
	SUM     // + -
	PRODUCT // * /
	EXPONENT
	PREFIX
	CALL // foo(...) a[...] a.b
)

var precedences = map[token.Type]int{
	token.OR:       OR_PREC,
	token.AND:      AND_PREC,
	token.ASSIGN:   COMPARE,
	token.NOT_EQ:   COMPARE,
	token.LT:       COMPARE,
	token.LTE:      COMPARE,
	token.GT:       COMPARE,
	token.GTE:      COMPARE,
	token.AS:       CAST,
	token.PIPE:     CONCAT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.POWER:    EXPONENT,
	token.LPAREN:   CALL,
	token.LBRACKET: CALL,
	token.DOT:      CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.Context
	depth int

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.Context) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:   p.parseIdentifier,
		token.USERVAR: p.parseUserVariable,
		token.SYSVAR:  p.parseSystemVariable,
		token.NUMBER:  p.parseNumberLiteral,
		token.STRING:  p.parseStringLiteral,
		token.TRUE:    p.parseBooleanLiteral,
		token.FALSE:   p.parseBooleanLiteral,
		token.NULL:    p.parseNullLiteral,
		token.MINUS:   p.parsePrefixExpression,
		token.NOT:     p.parsePrefixExpression,
		token.LPAREN:  p.parseGroupedExpression,
		token.CREATE:  p.parseCreateExpression,
		token.AT:      p.parseAtReference,
	}
	p.infixParseFns = map[token.Type]infixParseFn{
		token.OR:       p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.ASSIGN:   p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.LTE:      p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.GTE:      p.parseInfixExpression,
		token.PIPE:     p.parseInfixExpression,
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.POWER:    p.parseInfixExpression,
		token.AS:       p.parseCastExpression,
		token.LPAREN:   p.parseCallExpression,
		token.LBRACKET: p.parseIndexExpression,
		token.DOT:      p.parseMemberAccess,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF}
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// expectPeek advances when the next token matches, otherwise records a
// diagnostic and stays put.
func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addError(diagnostics.ErrP002, p.peekToken,
		fmt.Sprintf("expected %s, found %q", t, p.peekToken.Lexeme))
	return false
}

func (p *Parser) addError(code string, tok token.Token, msg string) {
	p.ctx.AddError(diagnostics.NewError(code, tok, msg))
}

// skipToStatementBoundary advances to the next semicolon or the token
// just before a statement-starting keyword so one bad statement does
// not cascade. The caller's usual nextToken then lands on the start of
// the next statement.
func (p *Parser) skipToStatementBoundary() {
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.SEMICOLON) {
			return
		}
		if isStatementStart(p.peekToken.Type) {
			return
		}
		p.nextToken()
	}
}

func isStatementStart(t token.Type) bool {
	switch t {
	case token.IF, token.FOR, token.WHILE, token.REPEAT, token.EVALUATE,
		token.TRY, token.RETURN, token.THROW, token.BREAK, token.CONTINUE,
		token.EXIT, token.LOCAL, token.GLOBAL, token.COMPONENT,
		token.FUNCTION, token.METHOD, token.CLASS, token.INTERFACE,
		token.IMPORT, token.END_IF, token.END_FOR, token.END_WHILE,
		token.END_EVALUATE, token.END_TRY, token.END_METHOD,
		token.END_FUNCTION, token.END_CLASS, token.END_GET, token.END_SET:
		return true
	}
	return false
}

// isNameToken reports whether tok can serve as a member or declaration
// name. Keywords double as member names in PeopleCode (rec.Delete,
// &file.Open), so any word-shaped token qualifies.
func isNameToken(tok token.Token) bool {
	if tok.Type == token.IDENT {
		return true
	}
	if len(tok.Lexeme) == 0 {
		return false
	}
	c := tok.Lexeme[0]
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
