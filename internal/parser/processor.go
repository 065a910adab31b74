package parser

import "github.com/pcodekit/pcheck/internal/pipeline"

// ParserProcessor is the AST-building pipeline stage.
type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	p := New(ctx.Tokens, ctx)
	prog := p.ParseProgram()
	prog.File = ctx.FilePath
	ctx.AstRoot = prog
	return ctx
}
