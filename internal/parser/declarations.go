package parser

import (
	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/token"
)

// parseImportDeclaration:
// import PKG:SUB:Class;   import PKG:*;
func (p *Parser) parseImportDeclaration() *ast.ImportDeclaration {
	decl := &ast.ImportDeclaration{Token: p.curToken}
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected package name after 'import'")
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()

	segments := []string{p.curToken.Lexeme}
	wildcard := false
	for p.peekTokenIs(token.COLON) {
		p.nextToken()
		if p.peekTokenIs(token.ASTERISK) {
			p.nextToken()
			wildcard = true
			break
		}
		if !isNameToken(p.peekToken) {
			p.addError(diagnostics.ErrP002, p.peekToken,
				"expected package path segment after ':'")
			break
		}
		p.nextToken()
		segments = append(segments, p.curToken.Lexeme)
	}

	if wildcard {
		decl.PackagePath = segments
		decl.Wildcard = true
	} else {
		decl.PackagePath = segments[:len(segments)-1]
		decl.ClassName = segments[len(segments)-1]
	}
	return decl
}

// parseClassDeclaration parses a class or interface header and its
// member declarations through End-Class / End-Interface.
func (p *Parser) parseClassDeclaration() *ast.ClassDeclaration {
	decl := &ast.ClassDeclaration{
		Token:       p.curToken,
		IsInterface: p.curTokenIs(token.INTERFACE),
	}
	end := token.END_CLASS
	if decl.IsInterface {
		end = token.END_INTERFACE
	}

	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected class name, found "+describeToken(p.peekToken))
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	decl.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		if isNameToken(p.peekToken) {
			p.nextToken()
			decl.BaseClass = p.parseAppClassPath()
		} else {
			p.addError(diagnostics.ErrP002, p.peekToken,
				"expected base class name after 'extends'")
		}
	}
	if p.peekTokenIs(token.IMPLEMENTS) {
		p.nextToken()
		if isNameToken(p.peekToken) {
			p.nextToken()
			decl.Implements = p.parseAppClassPath()
		} else {
			p.addError(diagnostics.ErrP002, p.peekToken,
				"expected interface name after 'implements'")
		}
	}
	p.nextToken()

	for {
		for p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		switch p.curToken.Type {
		case end:
			return decl
		case token.EOF:
			p.addError(diagnostics.ErrP004, p.curToken,
				"unterminated class declaration: expected "+string(end))
			return decl
		case token.PRIVATE, token.PROTECTED:
			// visibility section marker
		case token.METHOD:
			if m := p.parseMethodHeader(); m != nil {
				decl.Methods = append(decl.Methods, m)
			}
		case token.PROPERTY:
			if prop := p.parsePropertyDeclaration(); prop != nil {
				decl.Properties = append(decl.Properties, prop)
			}
		case token.INSTANCE:
			if inst := p.parseInstanceDeclaration(); inst != nil {
				decl.Instances = append(decl.Instances, inst)
			}
		case token.CONSTANT:
			if c := p.parseConstantDeclaration(); c != nil {
				decl.Constants = append(decl.Constants, c)
			}
		default:
			p.addError(diagnostics.ErrP001, p.curToken,
				"unexpected "+describeToken(p.curToken)+" in class body")
			p.skipToStatementBoundary()
		}
		p.nextToken()
	}
}

// parseMethodHeader:
// method Name(&p As number, &out As Rowset out) Returns string abstract;
func (p *Parser) parseMethodHeader() *ast.MethodDeclaration {
	decl := &ast.MethodDeclaration{Token: p.curToken}
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected method name, found "+describeToken(p.peekToken))
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	decl.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		decl.Parameters = p.parseParameterList()
	}
	if p.peekTokenIs(token.RETURNS) {
		p.nextToken()
		p.nextToken()
		decl.ReturnType = p.parseTypeNode()
	}
	if p.peekTokenIs(token.ABSTRACT) {
		p.nextToken()
		decl.IsAbstract = true
	}
	return decl
}

// parsePropertyDeclaration:
// property number Total get set;   property string Name readonly;
func (p *Parser) parsePropertyDeclaration() *ast.PropertyDeclaration {
	decl := &ast.PropertyDeclaration{Token: p.curToken}
	p.nextToken()
	decl.Type = p.parseTypeNode()
	if decl.Type == nil {
		p.skipToStatementBoundary()
		return nil
	}
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected property name, found "+describeToken(p.peekToken))
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	decl.Name = p.curToken.Lexeme

	for {
		switch p.peekToken.Type {
		case token.GET:
			decl.HasGet = true
		case token.SET:
			decl.HasSet = true
		case token.READONLY:
			decl.ReadOnly = true
		case token.ABSTRACT:
			decl.Abstract = true
		default:
			return decl
		}
		p.nextToken()
	}
}

// parseInstanceDeclaration:
// instance Rowset &a, &b;
func (p *Parser) parseInstanceDeclaration() *ast.InstanceDeclaration {
	decl := &ast.InstanceDeclaration{Token: p.curToken}
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
	return decl
}

// parseConstantDeclaration:
// Constant &kLimit = 10;
func (p *Parser) parseConstantDeclaration() *ast.ConstantDeclaration {
	decl := &ast.ConstantDeclaration{Token: p.curToken}
	if !p.expectPeek(token.USERVAR) {
		p.skipToStatementBoundary()
		return nil
	}
	decl.Name = p.curToken
	if !p.expectPeek(token.ASSIGN) {
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	decl.Value = p.parseExpression(LOWEST)
	return decl
}

// parseMethodImplementation parses a method, getter, or setter body
// following the class declaration.
// method Name ... end-method;   get Total ... end-get;
func (p *Parser) parseMethodImplementation(kind ast.ImplementationKind, end token.Type) *ast.MethodImplementation {
	impl := &ast.MethodImplementation{Token: p.curToken, Kind: kind}
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected name, found "+describeToken(p.peekToken))
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	impl.Name = p.curToken.Lexeme

	// Method bodies may restate the parameter list.
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		impl.Parameters = p.parseParameterList()
	}
	if p.peekTokenIs(token.RETURNS) {
		p.nextToken()
		p.nextToken()
		p.parseTypeNode()
	}
	p.nextToken()
	impl.Body = p.parseBlock(end)
	return impl
}

// parseFunctionDeclaration:
// Function Total(&r As Record) Returns number ... End-Function;
func (p *Parser) parseFunctionDeclaration() *ast.FunctionDeclaration {
	decl := &ast.FunctionDeclaration{Token: p.curToken}
	if !isNameToken(p.peekToken) {
		p.addError(diagnostics.ErrP002, p.peekToken,
			"expected function name, found "+describeToken(p.peekToken))
		p.skipToStatementBoundary()
		return nil
	}
	p.nextToken()
	decl.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		decl.Parameters = p.parseParameterList()
	}
	if p.peekTokenIs(token.RETURNS) {
		p.nextToken()
		p.nextToken()
		decl.ReturnType = p.parseTypeNode()
	}
	p.nextToken()
	decl.Body = p.parseBlock(token.END_FUNCTION)
	return decl
}

// parseParameterList parses `(&a As type [out], ...)` with the current
// token on '(', leaving the current token on ')'.
func (p *Parser) parseParameterList() []*ast.Parameter {
	var params []*ast.Parameter

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		if !p.expectPeek(token.USERVAR) {
			p.skipToStatementBoundary()
			return params
		}
		param := &ast.Parameter{Token: p.curToken, Name: p.curToken.Literal}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			p.nextToken()
			param.Type = p.parseTypeNode()
		}
		if p.peekTokenIs(token.OUT) {
			p.nextToken()
			param.Out = true
		}
		params = append(params, param)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.expectPeek(token.RPAREN)
	return params
}
