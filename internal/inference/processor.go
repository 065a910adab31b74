package inference

import (
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/pipeline"
)

// MetadataProcessor builds the program's type metadata and primes the
// shared cache with it so self-references and same-run cross-references
// resolve without a resolver round trip.
type MetadataProcessor struct{}

func (mp *MetadataProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog := ctx.Program()
	if prog == nil {
		return ctx
	}
	md := metadata.Build(prog)
	ctx.Metadata = md
	if cache, ok := ctx.Resolver.(*metadata.Cache); ok && md.QualifiedName != "" {
		cache.Put(md.QualifiedName, md)
	}
	return ctx
}

// InferenceProcessor is the type-inference pipeline stage.
type InferenceProcessor struct{}

func (ip *InferenceProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog := ctx.Program()
	if prog == nil {
		return ctx
	}
	inf := New(prog, ctx.Metadata, ctx.EffectiveResolver(), ctx.EffectiveCatalog())
	ctx.Types = inf.Run()
	return ctx
}
