// Package pipeline wires the analysis stages (lex, parse, metadata,
// infer, check) into a single run over one source unit. A run is
// synchronous and sequential; concurrency only exists across runs,
// which share nothing but the metadata resolver/cache.
package pipeline

import (
	"context"

	"github.com/google/uuid"
)

// Processor is one analysis stage.
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Stages keep running after errors so every
// stage contributes diagnostics (a host needs both parse and type
// errors from a single run). Cancellation is checked between stages: a
// newer request should cancel and discard a stale run rather than
// interrupt it mid-stage.
func (p *Pipeline) Run(ctx *Context) *Context {
	if ctx.RunID == "" {
		ctx.RunID = uuid.NewString()
	}
	if ctx.Ctx == nil {
		ctx.Ctx = context.Background()
	}
	for _, processor := range p.processors {
		if err := ctx.Ctx.Err(); err != nil {
			ctx.Canceled = err
			return ctx
		}
		ctx = processor.Process(ctx)
	}
	return ctx
}
