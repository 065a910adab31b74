// Package checker is the second typed pass: it reads the inference
// side table without modifying it, validates call sites against their
// signatures, and flags incompatible assignments. All findings go into
// the same per-program diagnostic collection the arithmetic type
// errors use.
package checker

import (
	"fmt"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/inference"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/signatures"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// Checker walks a typed program and records call and assignment
// diagnostics. One Checker checks one program.
type Checker struct {
	ast.BaseVisitor

	prog  *ast.Program
	bind  *inference.Binding
	types map[ast.Node]typesystem.Type
	h     typesystem.HierarchyLookup
}

// New builds a Checker over prog and the side table produced by the
// inference pass.
func New(prog *ast.Program, md *metadata.TypeMetadata, resolver metadata.Resolver, catalog *signatures.Catalog, types map[ast.Node]typesystem.Type) *Checker {
	if resolver == nil {
		resolver = metadata.NullResolver{}
	}
	if catalog == nil {
		catalog = signatures.Default
	}
	c := &Checker{
		prog:  prog,
		bind:  &inference.Binding{Prog: prog, Metadata: md, Resolver: resolver, Catalog: catalog},
		types: types,
		h:     metadata.HierarchyWith(resolver, md),
	}
	c.BaseVisitor = ast.NewBaseVisitor(c)
	return c
}

// Run performs the checking pass.
func (c *Checker) Run() {
	c.prog.Accept(c)
}

func (c *Checker) typeOf(n ast.Node) typesystem.Type {
	if t, ok := c.types[n]; ok {
		return t
	}
	return typesystem.TUnknown
}

func (c *Checker) walk(n ast.Node) {
	if n != nil {
		n.Accept(c)
	}
}

func (c *Checker) addError(code string, n ast.Node, msg string) {
	c.prog.AddTypeError(diagnostics.NewError(code, n.GetToken(), msg))
}

func (c *Checker) addWarning(code string, n ast.Node, msg string) {
	c.prog.AddTypeError(diagnostics.NewWarning(code, n.GetToken(), msg))
}

func (c *Checker) VisitCallExpression(n *ast.CallExpression) {
	for _, arg := range n.Arguments {
		c.walk(arg)
	}

	switch fn := n.Function.(type) {
	case *ast.Identifier:
		if sig, ok := c.bind.NamedCall(fn.Value); ok {
			c.validateCall(n, sig)
		}

	case *ast.MemberAccess:
		c.walk(fn.Object)
		if sig, ok := c.bind.MethodOn(c.typeOf(fn.Object), fn.Member); ok {
			c.validateCall(n, sig)
		}

	default:
		c.walk(n.Function)
		if _, isPrim := c.typeOf(n.Function).(typesystem.Primitive); isPrim {
			c.addError(diagnostics.ErrT005, n,
				fmt.Sprintf("expression of type %s is not callable", c.typeOf(n.Function)))
		}
	}
}

func (c *Checker) validateCall(n *ast.CallExpression, sig *signatures.FunctionInfo) {
	args := make([]typesystem.Type, len(n.Arguments))
	for i, arg := range n.Arguments {
		args[i] = c.typeOf(arg)
	}

	res := signatures.Validate(sig, args, c.h)
	if !res.IsValid {
		c.addError(diagnostics.ErrT003, n, res.Explanation)
		return
	}
	for _, w := range res.Warnings {
		c.addWarning(diagnostics.ErrW001, n, w.String())
	}
}

func (c *Checker) VisitAssignmentStatement(n *ast.AssignmentStatement) {
	c.walk(n.Target)
	c.walk(n.Value)
	c.checkAssign(n, c.typeOf(n.Target), c.typeOf(n.Value))
}

func (c *Checker) VisitLocalVariableDeclaration(n *ast.LocalVariableDeclaration) {
	if n.Value == nil {
		return
	}
	c.walk(n.Value)
	c.checkAssign(n, ast.ResolveTypeNode(n.Type), c.typeOf(n.Value))
}

// checkAssign flags target = value when the types are known to be
// incompatible. Field targets are skipped: the field's underlying data
// type is a runtime property of the record definition.
func (c *Checker) checkAssign(n ast.Node, target, value typesystem.Type) {
	switch target.(type) {
	case typesystem.Field, typesystem.Reference, typesystem.UnknownType:
		return
	}
	if typesystem.IsUnknown(value) {
		return
	}

	ok, warn := typesystem.IsAssignableFrom(target, value, c.h)
	if !ok {
		c.addError(diagnostics.ErrT004, n,
			fmt.Sprintf("cannot assign %s to %s", value, target))
		return
	}
	if warn == typesystem.WarnImplicitNarrowingToAppClass {
		c.addWarning(diagnostics.ErrW001, n,
			fmt.Sprintf("%s implicitly narrowed to %s", value, target))
	}
}
