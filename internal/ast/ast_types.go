package ast

import (
	"strings"

	"github.com/pcodekit/pcheck/internal/token"
)

// TypeNode is a type annotation in source: a builtin/primitive name,
// an array form, or an application-class path.
type TypeNode interface {
	Node
	typeNode()
	TypeName() string
}

// NamedTypeNode is a simple named type: number, string, Rowset, ...
type NamedTypeNode struct {
	Token token.Token
	Name  string
}

func (nt *NamedTypeNode) Accept(v Visitor)     { v.VisitNamedTypeNode(nt) }
func (nt *NamedTypeNode) typeNode()            {}
func (nt *NamedTypeNode) TokenLiteral() string { return nt.Token.Lexeme }
func (nt *NamedTypeNode) TypeName() string     { return nt.Name }
func (nt *NamedTypeNode) GetToken() token.Token {
	if nt == nil {
		return token.Token{}
	}
	return nt.Token
}

// ArrayTypeNode is `array of T`, `array2 of T`, or nested
// `array of array of T`.
type ArrayTypeNode struct {
	Token       token.Token // the 'array' token
	Dimensions  int
	ElementType TypeNode // nil means array of Any
}

func (at *ArrayTypeNode) Accept(v Visitor)     { v.VisitArrayTypeNode(at) }
func (at *ArrayTypeNode) typeNode()            {}
func (at *ArrayTypeNode) TokenLiteral() string { return at.Token.Lexeme }
func (at *ArrayTypeNode) TypeName() string {
	var sb strings.Builder
	for i := 0; i < at.Dimensions; i++ {
		sb.WriteString("array of ")
	}
	if at.ElementType == nil {
		sb.WriteString("any")
	} else {
		sb.WriteString(at.ElementType.TypeName())
	}
	return sb.String()
}
func (at *ArrayTypeNode) GetToken() token.Token {
	if at == nil {
		return token.Token{}
	}
	return at.Token
}

// AppClassTypeNode is a colon-delimited application-class path:
// PKG:SUB:ClassName.
type AppClassTypeNode struct {
	Token       token.Token
	PackagePath []string
	ClassName   string
}

func (ac *AppClassTypeNode) Accept(v Visitor)     { v.VisitAppClassTypeNode(ac) }
func (ac *AppClassTypeNode) typeNode()            {}
func (ac *AppClassTypeNode) TokenLiteral() string { return ac.Token.Lexeme }
func (ac *AppClassTypeNode) TypeName() string     { return ac.QualifiedName() }
func (ac *AppClassTypeNode) GetToken() token.Token {
	if ac == nil {
		return token.Token{}
	}
	return ac.Token
}

// QualifiedName returns the full colon-delimited name.
func (ac *AppClassTypeNode) QualifiedName() string {
	if ac == nil {
		return ""
	}
	if len(ac.PackagePath) == 0 {
		return ac.ClassName
	}
	return strings.Join(ac.PackagePath, ":") + ":" + ac.ClassName
}
