package ast

import "github.com/pcodekit/pcheck/internal/token"

// Identifier is a plain bare identifier (no & or % prefix). In
// PeopleCode these bind implicitly to record fields when they resolve
// to nothing else.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)     { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// UserVariable is a &-prefixed variable reference.
type UserVariable struct {
	Token token.Token
	Name  string // without the leading '&'
}

func (uv *UserVariable) Accept(v Visitor)     { v.VisitUserVariable(uv) }
func (uv *UserVariable) expressionNode()      {}
func (uv *UserVariable) TokenLiteral() string { return uv.Token.Lexeme }
func (uv *UserVariable) GetToken() token.Token {
	if uv == nil {
		return token.Token{}
	}
	return uv.Token
}

// SystemVariable is a %-prefixed meta identifier (%This, %Super,
// %Date, %UserId, ...).
type SystemVariable struct {
	Token token.Token
	Name  string // without the leading '%'
}

func (sv *SystemVariable) Accept(v Visitor)     { v.VisitSystemVariable(sv) }
func (sv *SystemVariable) expressionNode()      {}
func (sv *SystemVariable) TokenLiteral() string { return sv.Token.Lexeme }
func (sv *SystemVariable) GetToken() token.Token {
	if sv == nil {
		return token.Token{}
	}
	return sv.Token
}

// NumberLiteral is a numeric literal. IsInteger records the source
// form; both forms infer as number.
type NumberLiteral struct {
	Token     token.Token
	Value     float64
	IsInteger bool
}

func (nl *NumberLiteral) Accept(v Visitor)     { v.VisitNumberLiteral(nl) }
func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NumberLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)     { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// BooleanLiteral is True or False.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) Accept(v Visitor)     { v.VisitBooleanLiteral(bl) }
func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}

// NullLiteral is the Null keyword.
type NullLiteral struct {
	Token token.Token
}

func (nl *NullLiteral) Accept(v Visitor)     { v.VisitNullLiteral(nl) }
func (nl *NullLiteral) expressionNode()      {}
func (nl *NullLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NullLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// PrefixExpression is a unary operation: -x, Not b.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)     { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}

// InfixExpression is a binary operation: a + b, a | b, a = b.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)     { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// MemberAccess is a dotted member reference: expr.Member.
type MemberAccess struct {
	Token  token.Token // the member token
	Object Expression
	Member string
}

func (ma *MemberAccess) Accept(v Visitor)     { v.VisitMemberAccess(ma) }
func (ma *MemberAccess) expressionNode()      {}
func (ma *MemberAccess) TokenLiteral() string { return ma.Token.Lexeme }
func (ma *MemberAccess) GetToken() token.Token {
	if ma == nil {
		return token.Token{}
	}
	return ma.Token
}

// CallExpression is a function or method invocation: callee(args).
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) Accept(v Visitor)     { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// IndexExpression is an array access. Both a[1][2] (as nested
// IndexExpressions) and a[1,2] (one node, two indices) occur; they are
// semantically equivalent.
type IndexExpression struct {
	Token   token.Token // the '[' token
	Base    Expression
	Indices []Expression
}

func (ie *IndexExpression) Accept(v Visitor)     { v.VisitIndexExpression(ie) }
func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// CastExpression is `expr as Type`, bare or parenthesized. The result
// type is always exactly the named target type.
type CastExpression struct {
	Token      token.Token // the 'as' token
	Expression Expression
	TargetType TypeNode
}

func (ce *CastExpression) Accept(v Visitor)     { v.VisitCastExpression(ce) }
func (ce *CastExpression) expressionNode()      {}
func (ce *CastExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CastExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// CreateExpression instantiates an application class:
// create PKG:SUB:Class(args).
type CreateExpression struct {
	Token     token.Token // the 'create' token
	Class     *AppClassTypeNode
	Arguments []Expression
}

func (ce *CreateExpression) Accept(v Visitor)     { v.VisitCreateExpression(ce) }
func (ce *CreateExpression) expressionNode()      {}
func (ce *CreateExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *CreateExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// AtReference is a dynamic definition reference: @("RECORD.FIELD").
// Its static type is Any.
type AtReference struct {
	Token      token.Token // the '@' token
	Expression Expression
}

func (ar *AtReference) Accept(v Visitor)     { v.VisitAtReference(ar) }
func (ar *AtReference) expressionNode()      {}
func (ar *AtReference) TokenLiteral() string { return ar.Token.Lexeme }
func (ar *AtReference) GetToken() token.Token {
	if ar == nil {
		return token.Token{}
	}
	return ar.Token
}
