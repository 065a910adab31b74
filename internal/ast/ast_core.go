// Package ast defines the PeopleCode syntax tree and its visitor
// framework. Nodes are owned by the Program root for its lifetime and
// rebuilt on re-parse; inferred types live in a side table owned by
// the inference pass, never on the nodes.
package ast

import (
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	Accept(v Visitor)
	GetToken() token.Token
}

// Statement is a Node that represents a statement or declaration.
// Statements never carry a type.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that represents an expression. Every expression
// receives exactly one inferred type per inference run.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of every AST our parser produces.
type Program struct {
	File       string
	Imports    []*ImportDeclaration
	AppClass   *ClassDeclaration // class or interface declaration, if any
	Functions  []*FunctionDeclaration
	Statements []Statement // main block / method implementations

	typeErrors []*diagnostics.DiagnosticError
	errorSet   map[string]bool
}

func (p *Program) Accept(v Visitor) { v.VisitProgram(p) }
func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) GetToken() token.Token {
	if p == nil || len(p.Statements) == 0 {
		return token.Token{}
	}
	return p.Statements[0].GetToken()
}

// AddTypeError records a type diagnostic on the program, deduplicating
// by position and code.
func (p *Program) AddTypeError(err *diagnostics.DiagnosticError) {
	if err == nil {
		return
	}
	if err.File == "" {
		err.File = p.File
	}
	if p.errorSet == nil {
		p.errorSet = make(map[string]bool)
	}
	key := err.Key()
	if p.errorSet[key] {
		return
	}
	p.errorSet[key] = true
	p.typeErrors = append(p.typeErrors, err)
}

// GetAllTypeErrors returns every type error and warning recorded by the
// inference and checking passes, in the order they were found.
func (p *Program) GetAllTypeErrors() []*diagnostics.DiagnosticError {
	return p.typeErrors
}

// ImportDeclaration is an application-package import.
// import PKG:SUB:ClassName or import PKG:SUB:*;
type ImportDeclaration struct {
	Token       token.Token // the 'import' token
	PackagePath []string
	ClassName   string // empty for wildcard imports
	Wildcard    bool
}

func (id *ImportDeclaration) Accept(v Visitor)     { v.VisitImportDeclaration(id) }
func (id *ImportDeclaration) statementNode()       {}
func (id *ImportDeclaration) TokenLiteral() string { return id.Token.Lexeme }
func (id *ImportDeclaration) GetToken() token.Token {
	if id == nil {
		return token.Token{}
	}
	return id.Token
}

// ClassDeclaration is a class or interface declaration header with its
// member declarations. Method bodies live in separate
// MethodImplementation statements appended after the declaration.
type ClassDeclaration struct {
	Token       token.Token // the 'class' or 'interface' token
	Name        string
	IsInterface bool
	BaseClass   *AppClassTypeNode // extends, may be nil
	Implements  *AppClassTypeNode // implements, may be nil
	Methods     []*MethodDeclaration
	Properties  []*PropertyDeclaration
	Instances   []*InstanceDeclaration
	Constants   []*ConstantDeclaration
}

func (cd *ClassDeclaration) Accept(v Visitor)     { v.VisitClassDeclaration(cd) }
func (cd *ClassDeclaration) statementNode()       {}
func (cd *ClassDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// MethodDeclaration is a method header inside a class declaration.
type MethodDeclaration struct {
	Token      token.Token // the 'method' token
	Name       string
	Parameters []*Parameter
	ReturnType TypeNode // nil for procedures
	IsAbstract bool
}

func (md *MethodDeclaration) Accept(v Visitor)     { v.VisitMethodDeclaration(md) }
func (md *MethodDeclaration) statementNode()       {}
func (md *MethodDeclaration) TokenLiteral() string { return md.Token.Lexeme }
func (md *MethodDeclaration) GetToken() token.Token {
	if md == nil {
		return token.Token{}
	}
	return md.Token
}

// PropertyDeclaration is a property header inside a class declaration.
// property number Total get set;   property string Name readonly;
type PropertyDeclaration struct {
	Token    token.Token // the 'property' token
	Name     string
	Type     TypeNode
	HasGet   bool
	HasSet   bool
	ReadOnly bool
	Abstract bool
}

func (pd *PropertyDeclaration) Accept(v Visitor)     { v.VisitPropertyDeclaration(pd) }
func (pd *PropertyDeclaration) statementNode()       {}
func (pd *PropertyDeclaration) TokenLiteral() string { return pd.Token.Lexeme }
func (pd *PropertyDeclaration) GetToken() token.Token {
	if pd == nil {
		return token.Token{}
	}
	return pd.Token
}

// InstanceDeclaration declares instance variables. A comma-separated
// declaration carries every name; each name is an independent variable
// of the same type.
// instance Rowset &a, &b, &c;
type InstanceDeclaration struct {
	Token token.Token // the 'instance' token
	Type  TypeNode
	Names []token.Token // USERVAR tokens, one per declared variable
}

func (id *InstanceDeclaration) Accept(v Visitor)     { v.VisitInstanceDeclaration(id) }
func (id *InstanceDeclaration) statementNode()       {}
func (id *InstanceDeclaration) TokenLiteral() string { return id.Token.Lexeme }
func (id *InstanceDeclaration) GetToken() token.Token {
	if id == nil {
		return token.Token{}
	}
	return id.Token
}

// ConstantDeclaration declares a class constant.
// Constant &kLimit = 10;
type ConstantDeclaration struct {
	Token token.Token // the 'constant' token
	Name  token.Token // USERVAR token
	Value Expression
}

func (cd *ConstantDeclaration) Accept(v Visitor)     { v.VisitConstantDeclaration(cd) }
func (cd *ConstantDeclaration) statementNode()       {}
func (cd *ConstantDeclaration) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ConstantDeclaration) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// MethodImplementation is a method, getter, or setter body following a
// class declaration, paired with its header by name.
type MethodImplementation struct {
	Token      token.Token // the 'method'/'get'/'set' token
	Name       string
	Kind       ImplementationKind
	Parameters []*Parameter // re-annotated on method bodies, may be empty
	Body       *Block
}

// ImplementationKind distinguishes method bodies from property
// accessor bodies.
type ImplementationKind int

const (
	ImplMethod ImplementationKind = iota
	ImplGetter
	ImplSetter
)

func (mi *MethodImplementation) Accept(v Visitor)     { v.VisitMethodImplementation(mi) }
func (mi *MethodImplementation) statementNode()       {}
func (mi *MethodImplementation) TokenLiteral() string { return mi.Token.Lexeme }
func (mi *MethodImplementation) GetToken() token.Token {
	if mi == nil {
		return token.Token{}
	}
	return mi.Token
}

// FunctionDeclaration is a file-local function with its body.
// Function Total(&r As number) Returns number ... End-Function;
type FunctionDeclaration struct {
	Token      token.Token // the 'function' token
	Name       string
	Parameters []*Parameter
	ReturnType TypeNode // nil for procedures
	Body       *Block
}

func (fd *FunctionDeclaration) Accept(v Visitor)     { v.VisitFunctionDeclaration(fd) }
func (fd *FunctionDeclaration) statementNode()       {}
func (fd *FunctionDeclaration) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDeclaration) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// Parameter is a declared function or method parameter.
type Parameter struct {
	Token token.Token // USERVAR token
	Name  string
	Type  TypeNode // nil when undeclared
	Out   bool
}

func (p *Parameter) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// Block is a statement sequence; scope introduction is decided by the
// owning construct.
type Block struct {
	Token      token.Token
	Statements []Statement
}

func (b *Block) Accept(v Visitor)     { v.VisitBlock(b) }
func (b *Block) statementNode()       {}
func (b *Block) TokenLiteral() string { return b.Token.Lexeme }
func (b *Block) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}
