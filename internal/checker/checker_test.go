package checker

import (
	"strings"
	"testing"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/inference"
	"github.com/pcodekit/pcheck/internal/lexer"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/parser"
	"github.com/pcodekit/pcheck/internal/pipeline"
)

// check runs the full lex-parse-infer-check sequence and returns the
// program with its collected type diagnostics.
func check(t *testing.T, src string) *ast.Program {
	t.Helper()
	ctx := &pipeline.Context{FilePath: "test.pcode", SourceCode: src}
	tokens, lexErrs := lexer.New(src).Tokenize()
	if len(lexErrs) != 0 {
		t.Fatalf("lex errors: %v", lexErrs)
	}
	prog := parser.New(tokens, ctx).ParseProgram()
	if len(ctx.Errors) != 0 {
		t.Fatalf("parse errors: %v", ctx.Errors)
	}
	md := metadata.Build(prog)
	types := inference.New(prog, md, nil, nil).Run()
	New(prog, md, nil, nil, types).Run()
	return prog
}

func diagnosticsOf(prog *ast.Program, code string) []*diagnostics.DiagnosticError {
	var out []*diagnostics.DiagnosticError
	for _, e := range prog.GetAllTypeErrors() {
		if e.Code == code {
			out = append(out, e)
		}
	}
	return out
}

func TestValidCallsAreSilent(t *testing.T) {
	prog := check(t, `
Upper("hello");
Len(123);
Local Rowset &rs;
&rs.GetRow(1);
`)
	if errs := prog.GetAllTypeErrors(); len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
}

func TestBuiltinArgumentMismatch(t *testing.T) {
	prog := check(t, `Upper(1);`)
	errs := diagnosticsOf(prog, diagnostics.ErrT003)
	if len(errs) != 1 {
		t.Fatalf("got %d T003 diagnostics, want 1: %v", len(errs), prog.GetAllTypeErrors())
	}
	if !strings.Contains(errs[0].Message, "Upper") {
		t.Errorf("message %q does not name the function", errs[0].Message)
	}
	if errs[0].Severity != diagnostics.SeverityError {
		t.Error("T003 must be an error")
	}
}

func TestMethodArgumentMismatch(t *testing.T) {
	prog := check(t, `
Local Rowset &rs;
&rs.GetRow("first");
`)
	errs := diagnosticsOf(prog, diagnostics.ErrT003)
	if len(errs) != 1 {
		t.Fatalf("got %d T003 diagnostics, want 1: %v", len(errs), prog.GetAllTypeErrors())
	}
}

func TestFileLocalCallValidated(t *testing.T) {
	prog := check(t, `
Function Twice(&n As number) Returns number
   Return &n * 2;
End-Function;

Twice("nope");
`)
	errs := diagnosticsOf(prog, diagnostics.ErrT003)
	if len(errs) != 1 {
		t.Fatalf("got %d T003 diagnostics, want 1: %v", len(errs), prog.GetAllTypeErrors())
	}
}

func TestNarrowingToAppClassWarns(t *testing.T) {
	prog := check(t, `
Function Feed(&animal As MYPKG:Animal)
End-Function;

Local object &o;
Feed(&o);
`)
	warns := diagnosticsOf(prog, diagnostics.ErrW001)
	if len(warns) != 1 {
		t.Fatalf("got %d W001 diagnostics, want 1: %v", len(warns), prog.GetAllTypeErrors())
	}
	if warns[0].Severity != diagnostics.SeverityWarning {
		t.Error("W001 must be a warning")
	}
	if !strings.Contains(warns[0].Message, "implicitly narrowed to MYPKG:Animal") {
		t.Errorf("message %q does not name the class", warns[0].Message)
	}
	if len(diagnosticsOf(prog, diagnostics.ErrT003)) != 0 {
		t.Error("narrowing must stay a warning, not an error")
	}
}

func TestIncompatibleAssignment(t *testing.T) {
	prog := check(t, `
Local number &n;
&n = "five";
`)
	errs := diagnosticsOf(prog, diagnostics.ErrT004)
	if len(errs) != 1 {
		t.Fatalf("got %d T004 diagnostics, want 1: %v", len(errs), prog.GetAllTypeErrors())
	}
	if !strings.Contains(errs[0].Message, "cannot assign string to number") {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestDeclarationInitializerChecked(t *testing.T) {
	prog := check(t, `Local number &n = "five";`)
	if len(diagnosticsOf(prog, diagnostics.ErrT004)) != 1 {
		t.Fatalf("diagnostics: %v", prog.GetAllTypeErrors())
	}

	prog = check(t, `Local number &n = 5;`)
	if len(prog.GetAllTypeErrors()) != 0 {
		t.Fatalf("valid initializer flagged: %v", prog.GetAllTypeErrors())
	}
}

func TestFieldTargetsAreNotChecked(t *testing.T) {
	// A field's data type belongs to the record definition, so
	// assigning to one is never flagged here.
	prog := check(t, `VENDOR.NAME1 = 123;`)
	if errs := prog.GetAllTypeErrors(); len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
}

func TestAssignmentNarrowingWarns(t *testing.T) {
	prog := check(t, `
Local object &o;
Local MYPKG:Animal &pet;
&pet = &o;
`)
	warns := diagnosticsOf(prog, diagnostics.ErrW001)
	if len(warns) != 1 {
		t.Fatalf("got %d W001 diagnostics, want 1: %v", len(warns), prog.GetAllTypeErrors())
	}
}

func TestPrimitiveIsNotCallable(t *testing.T) {
	prog := check(t, `
Local number &n;
&n(1);
`)
	errs := diagnosticsOf(prog, diagnostics.ErrT005)
	if len(errs) != 1 {
		t.Fatalf("got %d T005 diagnostics, want 1: %v", len(errs), prog.GetAllTypeErrors())
	}
}

func TestRowsetDefaultCallIsNotAnError(t *testing.T) {
	prog := check(t, `
Local Rowset &rs;
Local any &row = &rs(1);
`)
	if errs := prog.GetAllTypeErrors(); len(errs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", errs)
	}
}
