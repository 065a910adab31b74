// Package metadata extracts the flat per-program type summary used for
// cross-program lookups: methods, properties, instance variables, the
// constructor, and the base class.
package metadata

import (
	"strings"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/signatures"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// AccessorKind records which accessors a property exposes.
type AccessorKind int

const (
	AccessorGet AccessorKind = iota
	AccessorSet
	AccessorGetSet
	AccessorReadOnly
)

// PropertyInfo is one declared property.
type PropertyInfo struct {
	Name   string
	Type   typesystem.Type
	Access AccessorKind
}

// TypeMetadata is the summary of one compiled unit. Built once from a
// completed AST; immutable afterward. Map keys are lower-cased.
type TypeMetadata struct {
	QualifiedName string
	BaseClass     string // qualified name, "" when the class extends nothing
	IsInterface   bool
	Methods       map[string]*signatures.FunctionInfo
	Properties    map[string]*PropertyInfo
	Instances     map[string]typesystem.Type
	Constructor   *signatures.FunctionInfo
}

// Method resolves a declared method by name.
func (m *TypeMetadata) Method(name string) (*signatures.FunctionInfo, bool) {
	fn, ok := m.Methods[strings.ToLower(name)]
	return fn, ok
}

// Property resolves a declared property by name.
func (m *TypeMetadata) Property(name string) (*PropertyInfo, bool) {
	p, ok := m.Properties[strings.ToLower(name)]
	return p, ok
}

// Instance resolves a declared instance variable by name (without the
// leading '&').
func (m *TypeMetadata) Instance(name string) (typesystem.Type, bool) {
	t, ok := m.Instances[strings.ToLower(name)]
	return t, ok
}

// Build extracts metadata from a parsed program. It is a pure function
// of the AST: no resolver access, no caching.
func Build(prog *ast.Program) *TypeMetadata {
	md := &TypeMetadata{
		Methods:    make(map[string]*signatures.FunctionInfo),
		Properties: make(map[string]*PropertyInfo),
		Instances:  make(map[string]typesystem.Type),
	}
	b := &builder{md: md}
	b.BaseVisitor = ast.NewBaseVisitor(b)
	prog.Accept(b)
	return md
}

type builder struct {
	ast.BaseVisitor
	md *TypeMetadata
}

func (b *builder) VisitClassDeclaration(n *ast.ClassDeclaration) {
	b.md.QualifiedName = n.Name
	b.md.IsInterface = n.IsInterface
	if n.BaseClass != nil {
		b.md.BaseClass = n.BaseClass.QualifiedName()
	}

	for _, m := range n.Methods {
		fn := methodSignature(m)
		// The method sharing the class name is the constructor, kept
		// out of the general method map.
		if strings.EqualFold(m.Name, n.Name) {
			b.md.Constructor = fn
			continue
		}
		b.md.Methods[strings.ToLower(m.Name)] = fn
	}

	for _, p := range n.Properties {
		access := AccessorGetSet
		switch {
		case p.ReadOnly:
			access = AccessorReadOnly
		case p.HasGet && p.HasSet:
			access = AccessorGetSet
		case p.HasSet:
			access = AccessorSet
		case p.HasGet:
			access = AccessorGet
		}
		b.md.Properties[strings.ToLower(p.Name)] = &PropertyInfo{
			Name:   p.Name,
			Type:   ast.ResolveTypeNode(p.Type),
			Access: access,
		}
	}

	// Multi-name declarations expand to one independent entry per
	// declared name.
	for _, inst := range n.Instances {
		t := ast.ResolveTypeNode(inst.Type)
		for _, name := range inst.Names {
			b.md.Instances[strings.ToLower(name.Literal)] = t
		}
	}

	for _, c := range n.Constants {
		b.md.Instances[strings.ToLower(c.Name.Literal)] = constantType(c.Value)
	}
}

func methodSignature(m *ast.MethodDeclaration) *signatures.FunctionInfo {
	params := make([]signatures.Parameter, 0, len(m.Parameters))
	for _, p := range m.Parameters {
		params = append(params, &signatures.SingleParameter{
			Name: p.Name,
			Type: ast.ResolveTypeNode(p.Type),
		})
	}
	var ret typesystem.Type
	if m.ReturnType != nil {
		ret = ast.ResolveTypeNode(m.ReturnType)
	}
	return &signatures.FunctionInfo{Name: m.Name, ReturnType: ret, Parameters: params}
}

// FunctionSignature converts a file-local function declaration to a
// signature for call validation.
func FunctionSignature(f *ast.FunctionDeclaration) *signatures.FunctionInfo {
	params := make([]signatures.Parameter, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, &signatures.SingleParameter{
			Name: p.Name,
			Type: ast.ResolveTypeNode(p.Type),
		})
	}
	var ret typesystem.Type
	if f.ReturnType != nil {
		ret = ast.ResolveTypeNode(f.ReturnType)
	}
	return &signatures.FunctionInfo{Name: f.Name, ReturnType: ret, Parameters: params}
}

func constantType(value ast.Expression) typesystem.Type {
	switch value.(type) {
	case *ast.NumberLiteral:
		return typesystem.TNumber
	case *ast.StringLiteral:
		return typesystem.TString
	case *ast.BooleanLiteral:
		return typesystem.TBoolean
	}
	return typesystem.TAny
}
