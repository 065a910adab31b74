// Package cli implements the pcheck command: run the analysis pipeline
// over PeopleCode sources and print the collected diagnostics.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/pcodekit/pcheck/internal/checker"
	"github.com/pcodekit/pcheck/internal/config"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/inference"
	"github.com/pcodekit/pcheck/internal/lexer"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/parser"
	"github.com/pcodekit/pcheck/internal/pipeline"
)

const usage = `usage: pcheck [file.pcode ...]

Analyzes PeopleCode sources and reports lexical, syntax, and type
diagnostics. With no files, reads one program from standard input.
`

// ansi color codes; empty when the output is not a terminal.
type palette struct {
	red, yellow, bold, reset string
}

func detectPalette(w io.Writer) palette {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return palette{}
	}
	f, ok := w.(*os.File)
	if !ok || (!isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())) {
		return palette{}
	}
	if os.Getenv("TERM") == "dumb" {
		return palette{}
	}
	return palette{red: "\033[31m", yellow: "\033[33m", bold: "\033[1m", reset: "\033[0m"}
}

// Run executes the command and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	for _, arg := range args {
		if arg == "-h" || arg == "--help" {
			fmt.Fprint(stdout, usage)
			return 0
		}
	}

	// One cache for the whole invocation: programs analyzed earlier in
	// the argument list resolve as app classes for the later ones.
	cache := metadata.NewCache(nil)
	analysis := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&inference.MetadataProcessor{},
		&inference.InferenceProcessor{},
		&checker.CheckerProcessor{},
	)
	colors := detectPalette(stderr)

	var errCount, warnCount int
	report := func(d *diagnostics.DiagnosticError) {
		color := colors.red
		if d.Severity == diagnostics.SeverityWarning {
			color = colors.yellow
			warnCount++
		} else {
			errCount++
		}
		fmt.Fprintf(stderr, "%s%s%s\n", color, d.Error(), colors.reset)
	}

	analyze := func(path, source string) {
		ctx := analysis.Run(&pipeline.Context{
			FilePath:   path,
			SourceCode: source,
			Resolver:   cache,
		})
		for _, d := range ctx.Errors {
			report(d)
		}
		if prog := ctx.Program(); prog != nil {
			for _, d := range prog.GetAllTypeErrors() {
				report(d)
			}
		}
	}

	if len(args) == 0 {
		source, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "pcheck: reading stdin: %s\n", err)
			return 1
		}
		analyze("<stdin>", string(source))
	}

	for _, path := range args {
		if !isSourceFile(path) {
			fmt.Fprintf(stderr, "pcheck: skipping %s: not a %s file\n", path, config.SourceFileExt)
			continue
		}
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "pcheck: %s\n", err)
			errCount++
			continue
		}
		analyze(path, string(source))
	}

	if errCount > 0 || warnCount > 0 {
		fmt.Fprintf(stderr, "%s%d error(s), %d warning(s)%s\n",
			colors.bold, errCount, warnCount, colors.reset)
	}
	if errCount > 0 {
		return 1
	}
	return 0
}

func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
