package ast

// Visitor is the double-dispatch interface over the node hierarchy.
// Passes implement it, usually by embedding BaseVisitor and overriding
// only the node kinds they care about.
type Visitor interface {
	VisitProgram(n *Program)
	VisitImportDeclaration(n *ImportDeclaration)
	VisitClassDeclaration(n *ClassDeclaration)
	VisitMethodDeclaration(n *MethodDeclaration)
	VisitPropertyDeclaration(n *PropertyDeclaration)
	VisitInstanceDeclaration(n *InstanceDeclaration)
	VisitConstantDeclaration(n *ConstantDeclaration)
	VisitMethodImplementation(n *MethodImplementation)
	VisitFunctionDeclaration(n *FunctionDeclaration)
	VisitBlock(n *Block)

	VisitLocalVariableDeclaration(n *LocalVariableDeclaration)
	VisitAssignmentStatement(n *AssignmentStatement)
	VisitIfStatement(n *IfStatement)
	VisitForStatement(n *ForStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitRepeatStatement(n *RepeatStatement)
	VisitEvaluateStatement(n *EvaluateStatement)
	VisitTryStatement(n *TryStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitThrowStatement(n *ThrowStatement)
	VisitBreakStatement(n *BreakStatement)
	VisitContinueStatement(n *ContinueStatement)
	VisitExitStatement(n *ExitStatement)
	VisitExpressionStatement(n *ExpressionStatement)

	VisitIdentifier(n *Identifier)
	VisitUserVariable(n *UserVariable)
	VisitSystemVariable(n *SystemVariable)
	VisitNumberLiteral(n *NumberLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitBooleanLiteral(n *BooleanLiteral)
	VisitNullLiteral(n *NullLiteral)
	VisitPrefixExpression(n *PrefixExpression)
	VisitInfixExpression(n *InfixExpression)
	VisitMemberAccess(n *MemberAccess)
	VisitCallExpression(n *CallExpression)
	VisitIndexExpression(n *IndexExpression)
	VisitCastExpression(n *CastExpression)
	VisitCreateExpression(n *CreateExpression)
	VisitAtReference(n *AtReference)

	VisitNamedTypeNode(n *NamedTypeNode)
	VisitArrayTypeNode(n *ArrayTypeNode)
	VisitAppClassTypeNode(n *AppClassTypeNode)
}

// BaseVisitor implements Visitor by recursing into all children, so a
// pass that embeds it only overrides the node kinds it needs. Self must
// point at the embedding visitor; child dispatch goes through it so
// overridden methods are reached from default traversal.
type BaseVisitor struct {
	Self Visitor
}

// NewBaseVisitor wires a BaseVisitor to the embedding visitor.
func NewBaseVisitor(self Visitor) BaseVisitor {
	return BaseVisitor{Self: self}
}

func (b *BaseVisitor) self() Visitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b *BaseVisitor) visit(n Node) {
	if n != nil {
		n.Accept(b.self())
	}
}

func (b *BaseVisitor) VisitProgram(n *Program) {
	for _, imp := range n.Imports {
		b.visit(imp)
	}
	if n.AppClass != nil {
		b.visit(n.AppClass)
	}
	for _, fn := range n.Functions {
		b.visit(fn)
	}
	for _, stmt := range n.Statements {
		b.visit(stmt)
	}
}

func (b *BaseVisitor) VisitImportDeclaration(n *ImportDeclaration) {}

func (b *BaseVisitor) VisitClassDeclaration(n *ClassDeclaration) {
	for _, m := range n.Methods {
		b.visit(m)
	}
	for _, p := range n.Properties {
		b.visit(p)
	}
	for _, i := range n.Instances {
		b.visit(i)
	}
	for _, c := range n.Constants {
		b.visit(c)
	}
}

func (b *BaseVisitor) VisitMethodDeclaration(n *MethodDeclaration) {
	for _, p := range n.Parameters {
		if p.Type != nil {
			b.visit(p.Type)
		}
	}
	if n.ReturnType != nil {
		b.visit(n.ReturnType)
	}
}

func (b *BaseVisitor) VisitPropertyDeclaration(n *PropertyDeclaration) {
	if n.Type != nil {
		b.visit(n.Type)
	}
}

func (b *BaseVisitor) VisitInstanceDeclaration(n *InstanceDeclaration) {
	if n.Type != nil {
		b.visit(n.Type)
	}
}

func (b *BaseVisitor) VisitConstantDeclaration(n *ConstantDeclaration) {
	b.visit(n.Value)
}

func (b *BaseVisitor) VisitMethodImplementation(n *MethodImplementation) {
	for _, p := range n.Parameters {
		if p.Type != nil {
			b.visit(p.Type)
		}
	}
	b.visit(n.Body)
}

func (b *BaseVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) {
	for _, p := range n.Parameters {
		if p.Type != nil {
			b.visit(p.Type)
		}
	}
	if n.ReturnType != nil {
		b.visit(n.ReturnType)
	}
	b.visit(n.Body)
}

func (b *BaseVisitor) VisitBlock(n *Block) {
	for _, stmt := range n.Statements {
		b.visit(stmt)
	}
}

func (b *BaseVisitor) VisitLocalVariableDeclaration(n *LocalVariableDeclaration) {
	if n.Type != nil {
		b.visit(n.Type)
	}
	b.visit(n.Value)
}

func (b *BaseVisitor) VisitAssignmentStatement(n *AssignmentStatement) {
	b.visit(n.Target)
	b.visit(n.Value)
}

func (b *BaseVisitor) VisitIfStatement(n *IfStatement) {
	b.visit(n.Condition)
	b.visit(n.Then)
	if n.Else != nil {
		b.visit(n.Else)
	}
}

func (b *BaseVisitor) VisitForStatement(n *ForStatement) {
	b.visit(n.Variable)
	b.visit(n.From)
	b.visit(n.To)
	b.visit(n.Step)
	b.visit(n.Body)
}

func (b *BaseVisitor) VisitWhileStatement(n *WhileStatement) {
	b.visit(n.Condition)
	b.visit(n.Body)
}

func (b *BaseVisitor) VisitRepeatStatement(n *RepeatStatement) {
	b.visit(n.Body)
	b.visit(n.Condition)
}

func (b *BaseVisitor) VisitEvaluateStatement(n *EvaluateStatement) {
	b.visit(n.Subject)
	for _, w := range n.Whens {
		b.visit(w.Value)
		b.visit(w.Body)
	}
	if n.Other != nil {
		b.visit(n.Other)
	}
}

func (b *BaseVisitor) VisitTryStatement(n *TryStatement) {
	b.visit(n.Body)
	for _, c := range n.Catches {
		if c.ExceptionType != nil {
			b.visit(c.ExceptionType)
		}
		b.visit(c.Body)
	}
}

func (b *BaseVisitor) VisitReturnStatement(n *ReturnStatement) {
	b.visit(n.Value)
}

func (b *BaseVisitor) VisitThrowStatement(n *ThrowStatement) {
	b.visit(n.Value)
}

func (b *BaseVisitor) VisitBreakStatement(n *BreakStatement)       {}
func (b *BaseVisitor) VisitContinueStatement(n *ContinueStatement) {}

func (b *BaseVisitor) VisitExitStatement(n *ExitStatement) {
	b.visit(n.Value)
}

func (b *BaseVisitor) VisitExpressionStatement(n *ExpressionStatement) {
	b.visit(n.Expression)
}

func (b *BaseVisitor) VisitIdentifier(n *Identifier)         {}
func (b *BaseVisitor) VisitUserVariable(n *UserVariable)     {}
func (b *BaseVisitor) VisitSystemVariable(n *SystemVariable) {}
func (b *BaseVisitor) VisitNumberLiteral(n *NumberLiteral)   {}
func (b *BaseVisitor) VisitStringLiteral(n *StringLiteral)   {}
func (b *BaseVisitor) VisitBooleanLiteral(n *BooleanLiteral) {}
func (b *BaseVisitor) VisitNullLiteral(n *NullLiteral)       {}

func (b *BaseVisitor) VisitPrefixExpression(n *PrefixExpression) {
	b.visit(n.Right)
}

func (b *BaseVisitor) VisitInfixExpression(n *InfixExpression) {
	b.visit(n.Left)
	b.visit(n.Right)
}

func (b *BaseVisitor) VisitMemberAccess(n *MemberAccess) {
	b.visit(n.Object)
}

func (b *BaseVisitor) VisitCallExpression(n *CallExpression) {
	b.visit(n.Function)
	for _, arg := range n.Arguments {
		b.visit(arg)
	}
}

func (b *BaseVisitor) VisitIndexExpression(n *IndexExpression) {
	b.visit(n.Base)
	for _, idx := range n.Indices {
		b.visit(idx)
	}
}

func (b *BaseVisitor) VisitCastExpression(n *CastExpression) {
	b.visit(n.Expression)
	if n.TargetType != nil {
		b.visit(n.TargetType)
	}
}

func (b *BaseVisitor) VisitCreateExpression(n *CreateExpression) {
	if n.Class != nil {
		b.visit(n.Class)
	}
	for _, arg := range n.Arguments {
		b.visit(arg)
	}
}

func (b *BaseVisitor) VisitAtReference(n *AtReference) {
	b.visit(n.Expression)
}

func (b *BaseVisitor) VisitNamedTypeNode(n *NamedTypeNode) {}
func (b *BaseVisitor) VisitArrayTypeNode(n *ArrayTypeNode) {
	if n.ElementType != nil {
		b.visit(n.ElementType)
	}
}
func (b *BaseVisitor) VisitAppClassTypeNode(n *AppClassTypeNode) {}
