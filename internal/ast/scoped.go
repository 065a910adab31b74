package ast

import (
	"strings"

	"github.com/pcodekit/pcheck/internal/typesystem"
)

// ResolveTypeNode converts a source type annotation to a type value.
// A nil annotation means the variable was declared without a type and
// resolves to Any.
func ResolveTypeNode(t TypeNode) typesystem.Type {
	switch n := t.(type) {
	case nil:
		return typesystem.TAny
	case *NamedTypeNode:
		resolved := typesystem.ParseTypeName(n.Name)
		if typesystem.IsUnknown(resolved) {
			// A bare class name (imported or same-package) is still an
			// app class even without a colon in the annotation.
			return typesystem.AppClass{QualifiedName: n.Name}
		}
		return resolved
	case *ArrayTypeNode:
		elem := typesystem.Type(typesystem.TAny)
		dims := n.Dimensions
		if n.ElementType != nil {
			elem = ResolveTypeNode(n.ElementType)
			if inner, ok := elem.(typesystem.Array); ok {
				dims += inner.Dimensions
				elem = inner.Element
			}
		}
		return typesystem.Array{Dimensions: dims, Element: elem}
	case *AppClassTypeNode:
		return typesystem.AppClass{QualifiedName: n.QualifiedName()}
	}
	return typesystem.TUnknown
}

// scope is one lexical frame: &-variable name (folded) to type.
type scope map[string]typesystem.Type

// ScopedVisitor layers lexical-scope tracking over BaseVisitor:
// entering a function, method body, or catch clause pushes a frame,
// local declarations register their names, and Lookup answers "what is
// &x here". Passes that need visibility answers embed it instead of
// BaseVisitor.
type ScopedVisitor struct {
	BaseVisitor
	scopes []scope
}

// NewScopedVisitor wires a ScopedVisitor to the embedding visitor and
// opens the program-level frame.
func NewScopedVisitor(self Visitor) ScopedVisitor {
	sv := ScopedVisitor{BaseVisitor: BaseVisitor{Self: self}}
	sv.PushScope()
	return sv
}

// PushScope opens a new lexical frame.
func (sv *ScopedVisitor) PushScope() {
	sv.scopes = append(sv.scopes, scope{})
}

// PopScope closes the innermost frame. The program-level frame is
// never popped.
func (sv *ScopedVisitor) PopScope() {
	if len(sv.scopes) > 1 {
		sv.scopes = sv.scopes[:len(sv.scopes)-1]
	}
}

// Declare registers a &-variable in the innermost frame. Names compare
// case-insensitively, as everywhere in PeopleCode.
func (sv *ScopedVisitor) Declare(name string, t typesystem.Type) {
	if len(sv.scopes) == 0 {
		sv.PushScope()
	}
	sv.scopes[len(sv.scopes)-1][strings.ToLower(name)] = t
}

// Lookup resolves a &-variable through the frame stack, innermost
// first.
func (sv *ScopedVisitor) Lookup(name string) (typesystem.Type, bool) {
	key := strings.ToLower(name)
	for i := len(sv.scopes) - 1; i >= 0; i-- {
		if t, ok := sv.scopes[i][key]; ok {
			return t, true
		}
	}
	return nil, false
}

// DeclareParameters registers a parameter list in the current frame.
func (sv *ScopedVisitor) DeclareParameters(params []*Parameter) {
	for _, p := range params {
		sv.Declare(p.Name, ResolveTypeNode(p.Type))
	}
}

func (sv *ScopedVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) {
	sv.PushScope()
	sv.DeclareParameters(n.Parameters)
	sv.visit(n.Body)
	sv.PopScope()
}

func (sv *ScopedVisitor) VisitMethodImplementation(n *MethodImplementation) {
	sv.PushScope()
	sv.DeclareParameters(n.Parameters)
	sv.visit(n.Body)
	sv.PopScope()
}

func (sv *ScopedVisitor) VisitLocalVariableDeclaration(n *LocalVariableDeclaration) {
	t := ResolveTypeNode(n.Type)
	for _, name := range n.Names {
		sv.Declare(name.Literal, t)
	}
	sv.visit(n.Value)
}

func (sv *ScopedVisitor) VisitTryStatement(n *TryStatement) {
	sv.visit(n.Body)
	for _, c := range n.Catches {
		sv.PushScope()
		if c.Variable.Literal != "" {
			sv.Declare(c.Variable.Literal, ResolveTypeNode(c.ExceptionType))
		}
		sv.visit(c.Body)
		sv.PopScope()
	}
}
