package inference

import (
	"strings"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/signatures"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// Binding resolves call names to signatures for one program. The
// inference pass uses it for return types; the checker reuses it so
// both passes agree on which signature a call site means.
type Binding struct {
	Prog     *ast.Program
	Metadata *metadata.TypeMetadata
	Resolver metadata.Resolver
	Catalog  *signatures.Catalog
}

// NamedCall resolves an identifier-style call: file-local function,
// then the builtin catalog, then a method of the current class
// including inherited ones.
func (b *Binding) NamedCall(name string) (*signatures.FunctionInfo, bool) {
	for _, f := range b.Prog.Functions {
		if strings.EqualFold(f.Name, name) {
			return metadata.FunctionSignature(f), true
		}
	}
	if sig, ok := b.Catalog.Lookup(name); ok {
		return sig, true
	}
	if b.Metadata != nil && b.Metadata.QualifiedName != "" {
		if sig, ok := metadata.FindMethod(b.Resolver, b.Metadata, b.Metadata.QualifiedName, name); ok {
			return sig, true
		}
	}
	return nil, false
}

// MethodOn resolves a member-access call against the statically known
// target type.
func (b *Binding) MethodOn(target typesystem.Type, method string) (*signatures.FunctionInfo, bool) {
	switch v := target.(type) {
	case typesystem.AppClass:
		return metadata.FindMethod(b.Resolver, b.Metadata, v.QualifiedName, method)
	case typesystem.Array:
		return b.Catalog.Method("Array", method)
	default:
		if name, ok := typesystem.BuiltinObjectName(target); ok {
			return b.Catalog.Method(name, method)
		}
	}
	return nil, false
}
