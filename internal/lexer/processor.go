package lexer

import "github.com/pcodekit/pcheck/internal/pipeline"

// LexerProcessor is the tokenizing pipeline stage.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := New(ctx.SourceCode)
	tokens, errs := l.Tokenize()
	ctx.Tokens = tokens
	for _, err := range errs {
		ctx.AddError(err)
	}
	return ctx
}
