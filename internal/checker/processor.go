package checker

import "github.com/pcodekit/pcheck/internal/pipeline"

// CheckerProcessor is the call- and assignment-checking pipeline
// stage.
type CheckerProcessor struct{}

func (cp *CheckerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	prog := ctx.Program()
	if prog == nil || ctx.Types == nil {
		return ctx
	}
	New(prog, ctx.Metadata, ctx.EffectiveResolver(), ctx.EffectiveCatalog(), ctx.Types).Run()
	return ctx
}
