package parser

import (
	"strconv"
	"strings"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/token"
)

// parseTypeNode parses a type annotation starting at the current
// token, leaving the current token on the annotation's last token.
// Forms: number | Rowset | array of number | array2 of string |
// PKG:SUB:Class.
func (p *Parser) parseTypeNode() ast.TypeNode {
	if p.curTokenIs(token.ARRAY) {
		return p.parseArrayTypeNode(1)
	}

	if !isNameToken(p.curToken) {
		p.addError(diagnostics.ErrP003, p.curToken,
			"expected type name, found "+describeToken(p.curToken))
		return nil
	}

	// ArrayN shorthand lexes as a plain identifier.
	if dims, ok := arrayDims(p.curToken.Lexeme); ok {
		return p.parseArrayTypeNode(dims)
	}

	if p.peekTokenIs(token.COLON) {
		return p.parseAppClassPath()
	}

	return &ast.NamedTypeNode{Token: p.curToken, Name: p.curToken.Lexeme}
}

// parseArrayTypeNode parses `array [of T]` with the current token on
// 'array' (or the ArrayN identifier).
func (p *Parser) parseArrayTypeNode(dims int) ast.TypeNode {
	node := &ast.ArrayTypeNode{Token: p.curToken, Dimensions: dims}
	if p.peekTokenIs(token.OF) {
		p.nextToken()
		p.nextToken()
		elem := p.parseTypeNode()
		if inner, ok := elem.(*ast.ArrayTypeNode); ok {
			node.Dimensions += inner.Dimensions
			node.ElementType = inner.ElementType
		} else {
			node.ElementType = elem
		}
	}
	return node
}

// parseAppClassPath parses PKG:SUB:Class with the current token on the
// first segment.
func (p *Parser) parseAppClassPath() *ast.AppClassTypeNode {
	node := &ast.AppClassTypeNode{Token: p.curToken}
	segments := []string{p.curToken.Lexeme}
	for p.peekTokenIs(token.COLON) {
		p.nextToken()
		if !isNameToken(p.peekToken) && !p.peekTokenIs(token.ASTERISK) {
			p.addError(diagnostics.ErrP003, p.peekToken,
				"expected package path segment after ':'")
			break
		}
		p.nextToken()
		segments = append(segments, p.curToken.Lexeme)
	}
	node.ClassName = segments[len(segments)-1]
	node.PackagePath = segments[:len(segments)-1]
	return node
}

// arrayDims recognizes the ArrayN spelling: Array2, Array3, ...
func arrayDims(name string) (int, bool) {
	lower := strings.ToLower(name)
	if !strings.HasPrefix(lower, "array") || len(lower) == len("array") {
		return 0, false
	}
	n, err := strconv.Atoi(lower[len("array"):])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
