package ast

import "github.com/pcodekit/pcheck/internal/token"

// VariableScope distinguishes Local, Global, and Component variable
// declarations.
type VariableScope int

const (
	ScopeLocal VariableScope = iota
	ScopeGlobal
	ScopeComponent
)

// LocalVariableDeclaration declares one or more variables of a type,
// with an optional initializer on single-name declarations.
// Local Rowset &rs, &other;   Local number &n = 1;
type LocalVariableDeclaration struct {
	Token token.Token // the 'Local'/'Global'/'Component' token
	Scope VariableScope
	Type  TypeNode
	Names []token.Token // USERVAR tokens
	Value Expression    // may be nil
}

func (lv *LocalVariableDeclaration) Accept(v Visitor)     { v.VisitLocalVariableDeclaration(lv) }
func (lv *LocalVariableDeclaration) statementNode()       {}
func (lv *LocalVariableDeclaration) TokenLiteral() string { return lv.Token.Lexeme }
func (lv *LocalVariableDeclaration) GetToken() token.Token {
	if lv == nil {
		return token.Token{}
	}
	return lv.Token
}

// AssignmentStatement assigns Value to Target.
type AssignmentStatement struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (as *AssignmentStatement) Accept(v Visitor)     { v.VisitAssignmentStatement(as) }
func (as *AssignmentStatement) statementNode()       {}
func (as *AssignmentStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssignmentStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

// IfStatement: If cond Then ... [Else ...] End-If;
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      *Block
	Else      *Block // may be nil
}

func (is *IfStatement) Accept(v Visitor)     { v.VisitIfStatement(is) }
func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// ForStatement: For &i = from To to [Step step] ... End-For;
type ForStatement struct {
	Token    token.Token
	Variable Expression
	From     Expression
	To       Expression
	Step     Expression // may be nil
	Body     *Block
}

func (fs *ForStatement) Accept(v Visitor)     { v.VisitForStatement(fs) }
func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// WhileStatement: While cond ... End-While;
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *Block
}

func (ws *WhileStatement) Accept(v Visitor)     { v.VisitWhileStatement(ws) }
func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// RepeatStatement: Repeat ... Until cond;
type RepeatStatement struct {
	Token     token.Token
	Body      *Block
	Condition Expression
}

func (rs *RepeatStatement) Accept(v Visitor)     { v.VisitRepeatStatement(rs) }
func (rs *RepeatStatement) statementNode()       {}
func (rs *RepeatStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *RepeatStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// WhenClause is one arm of an Evaluate statement.
type WhenClause struct {
	Token token.Token
	// Comparison operator lexeme ("=", "<", ...); "=" when omitted.
	Operator string
	Value    Expression // nil for When-Other
	Body     *Block
}

func (wc *WhenClause) GetToken() token.Token {
	if wc == nil {
		return token.Token{}
	}
	return wc.Token
}

// EvaluateStatement: Evaluate expr When ... When-Other ... End-Evaluate;
type EvaluateStatement struct {
	Token   token.Token
	Subject Expression
	Whens   []*WhenClause
	Other   *Block // may be nil
}

func (es *EvaluateStatement) Accept(v Visitor)     { v.VisitEvaluateStatement(es) }
func (es *EvaluateStatement) statementNode()       {}
func (es *EvaluateStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *EvaluateStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// CatchClause is one catch arm of a Try statement.
type CatchClause struct {
	Token         token.Token
	ExceptionType TypeNode    // usually Exception or an app class
	Variable      token.Token // USERVAR token
	Body          *Block
}

func (cc *CatchClause) GetToken() token.Token {
	if cc == nil {
		return token.Token{}
	}
	return cc.Token
}

// TryStatement: try ... catch Exception &e ... end-try;
type TryStatement struct {
	Token   token.Token
	Body    *Block
	Catches []*CatchClause
}

func (ts *TryStatement) Accept(v Visitor)     { v.VisitTryStatement(ts) }
func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// ReturnStatement: Return [expr];
type ReturnStatement struct {
	Token token.Token
	Value Expression // may be nil
}

func (rs *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(rs) }
func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// ThrowStatement: throw expr;
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (ts *ThrowStatement) Accept(v Visitor)     { v.VisitThrowStatement(ts) }
func (ts *ThrowStatement) statementNode()       {}
func (ts *ThrowStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *ThrowStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// BreakStatement exits the innermost loop or Evaluate.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) Accept(v Visitor)     { v.VisitBreakStatement(bs) }
func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// ContinueStatement continues the innermost loop.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) Accept(v Visitor)     { v.VisitContinueStatement(cs) }
func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// ExitStatement: Exit [code];
type ExitStatement struct {
	Token token.Token
	Value Expression // may be nil
}

func (es *ExitStatement) Accept(v Visitor)     { v.VisitExitStatement(es) }
func (es *ExitStatement) statementNode()       {}
func (es *ExitStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExitStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// ExpressionStatement wraps a bare expression used as a statement,
// typically a call.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) Accept(v Visitor)     { v.VisitExpressionStatement(es) }
func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}
