package pipeline

import (
	"context"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/signatures"
	"github.com/pcodekit/pcheck/internal/token"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// Context carries one source unit through the stages. Stages read what
// earlier stages produced and append their diagnostics; nothing is
// shared between two Contexts except Resolver and Catalog.
type Context struct {
	Ctx      context.Context
	RunID    string
	Canceled error

	FilePath   string
	SourceCode string

	// Stage products.
	Tokens   []token.Token
	AstRoot  ast.Node
	Metadata *metadata.TypeMetadata
	Types    map[ast.Node]typesystem.Type

	// Lexical and syntax diagnostics, in discovery order. Type errors
	// and warnings live on the Program root (GetAllTypeErrors).
	Errors []*diagnostics.DiagnosticError

	// Collaborators. Resolver may be nil (degrades to NullResolver);
	// Catalog may be nil (degrades to signatures.Default).
	Resolver metadata.Resolver
	Catalog  *signatures.Catalog
}

// Program returns the typed AST root, or nil before parsing.
func (c *Context) Program() *ast.Program {
	if p, ok := c.AstRoot.(*ast.Program); ok {
		return p
	}
	return nil
}

// AddError appends a lexical or syntax diagnostic, filling in the file
// path.
func (c *Context) AddError(err *diagnostics.DiagnosticError) {
	if err == nil {
		return
	}
	if err.File == "" {
		err.File = c.FilePath
	}
	c.Errors = append(c.Errors, err)
}

// EffectiveResolver returns the configured resolver or the null one.
func (c *Context) EffectiveResolver() metadata.Resolver {
	if c.Resolver != nil {
		return c.Resolver
	}
	return metadata.NullResolver{}
}

// EffectiveCatalog returns the configured catalog or the embedded
// default.
func (c *Context) EffectiveCatalog() *signatures.Catalog {
	if c.Catalog != nil {
		return c.Catalog
	}
	return signatures.Default
}
