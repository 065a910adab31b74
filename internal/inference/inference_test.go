package inference

import (
	"testing"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/lexer"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/parser"
	"github.com/pcodekit/pcheck/internal/pipeline"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

func inferProgram(t *testing.T, src string, r metadata.Resolver) (*ast.Program, map[ast.Node]typesystem.Type) {
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
	types := New(prog, md, r, nil).Run()
	return prog, types
}

// collectReturns gathers Return statements from the top level and from
// method implementation bodies, in source order.
func collectReturns(prog *ast.Program) []*ast.ReturnStatement {
	var out []*ast.ReturnStatement
	var fromBlock func(b *ast.Block)
	fromBlock = func(b *ast.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Statements {
			if r, ok := s.(*ast.ReturnStatement); ok {
				out = append(out, r)
			}
		}
	}
	for _, fn := range prog.Functions {
		fromBlock(fn.Body)
	}
	for _, s := range prog.Statements {
		switch v := s.(type) {
		case *ast.ReturnStatement:
			out = append(out, v)
		case *ast.MethodImplementation:
			fromBlock(v.Body)
		}
	}
	return out
}

// returnType runs inference and yields the type of the sole Return
// statement's value.
func returnType(t *testing.T, src string) typesystem.Type {
	t.Helper()
	prog, types := inferProgram(t, src, nil)
	returns := collectReturns(prog)
	if len(returns) != 1 || returns[0].Value == nil {
		t.Fatalf("want exactly one Return with a value, got %d", len(returns))
	}
	if typ, ok := types[returns[0].Value]; ok {
		return typ
	}
	t.Fatal("Return value has no inferred type")
	return nil
}

func errorCodes(prog *ast.Program) []string {
	var codes []string
	for _, e := range prog.GetAllTypeErrors() {
		codes = append(codes, e.Code)
	}
	return codes
}

func TestLiteralTypes(t *testing.T) {
	tests := []struct {
		src  string
		want typesystem.Type
	}{
		{`Return 42;`, typesystem.TNumber},
		{`Return 3.14;`, typesystem.TNumber},
		{`Return "hi";`, typesystem.TString},
		{`Return True;`, typesystem.TBoolean},
	}
	for _, tt := range tests {
		if got := returnType(t, tt.src); !typesystem.Equal(got, tt.want) {
			t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestBareIdentifierIsImplicitField(t *testing.T) {
	got := returnType(t, `Return PTADSRELNAME;`)
	f, ok := got.(typesystem.Field)
	if !ok || f.RecordName != "" || f.FieldName != "PTADSRELNAME" {
		t.Fatalf("got %s, want unbound field PTADSRELNAME", got)
	}
}

func TestDottedPairIsBoundField(t *testing.T) {
	got := returnType(t, `Return PSADSRELATION.PTADSRELNAME;`)
	f, ok := got.(typesystem.Field)
	if !ok || f.RecordName != "PSADSRELATION" || f.FieldName != "PTADSRELNAME" {
		t.Fatalf("got %s, want PSADSRELATION.PTADSRELNAME", got)
	}
}

func TestDefinitionReferences(t *testing.T) {
	tests := []struct {
		src  string
		kind string
	}{
		{`Return Record.VENDOR;`, "Record"},
		{`Return Field.NAME1;`, "Field"},
		{`Return Page.VNDR_ID;`, "Page"},
		{`Return SQL.FETCH_VENDOR;`, "SQL"},
		{`Return Scroll.VNDR_ADDR;`, "Scroll"},
	}
	for _, tt := range tests {
		got := returnType(t, tt.src)
		ref, ok := got.(typesystem.Reference)
		if !ok {
			t.Errorf("%s = %s, want a definition reference", tt.src, got)
			continue
		}
		name, _ := typesystem.BuiltinObjectName(ref.Target)
		if name != tt.kind {
			t.Errorf("%s references %s, want %s", tt.src, name, tt.kind)
		}
	}
}

func TestUserVariableScope(t *testing.T) {
	got := returnType(t, `Local number &n; Return &n;`)
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("declared &n = %s, want number", got)
	}

	// An undeclared &-variable is Any, never an implicit field.
	got = returnType(t, `Return &mystery;`)
	if !typesystem.IsAny(got) {
		t.Errorf("undeclared &mystery = %s, want any", got)
	}
}

func TestIndexingReducesArrays(t *testing.T) {
	tests := []struct {
		src  string
		want typesystem.Type
	}{
		{`Local array2 of number &g; Return &g[1];`, typesystem.Array{Dimensions: 1, Element: typesystem.TNumber}},
		{`Local array2 of number &g; Return &g[1][2];`, typesystem.TNumber},
		{`Local array2 of number &g; Return &g[1, 2];`, typesystem.TNumber},
		{`Local array of string &a; Return &a[9];`, typesystem.TString},
		// Indexing an auto-declared variable stays Any.
		{`Return &rows[1];`, typesystem.TAny},
	}
	for _, tt := range tests {
		if got := returnType(t, tt.src); !typesystem.Equal(got, tt.want) {
			t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestCastIsAlwaysTargetType(t *testing.T) {
	got := returnType(t, `Local any &x; Return &x as number;`)
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("cast to number = %s", got)
	}

	got = returnType(t, `Local any &x; Return (&x as MYPKG:Shapes:Circle);`)
	ac, ok := got.(typesystem.AppClass)
	if !ok || ac.QualifiedName != "MYPKG:Shapes:Circle" {
		t.Errorf("cast to app class = %s", got)
	}

	// The cast holds even against a contradicting operand type.
	got = returnType(t, `Local string &s; Return &s as date;`)
	if !typesystem.Equal(got, typesystem.TDate) {
		t.Errorf("cast string to date = %s", got)
	}

	// Indexed operands cast the element, not the array.
	got = returnType(t, `Local array2 of number &g; Return &g[1][2] as string;`)
	if !typesystem.Equal(got, typesystem.TString) {
		t.Errorf("cast of indexed element = %s", got)
	}

	// A cast nested in an argument list keeps its target type there.
	got = returnType(t, `Local any &x; Return Len(&x as string);`)
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("Len over a cast argument = %s", got)
	}

	got = returnType(t, `Local array of string &a; Local any &i; Return &a[&i as number];`)
	if !typesystem.Equal(got, typesystem.TString) {
		t.Errorf("index with cast subscript = %s", got)
	}
}

func TestDateTimePromotions(t *testing.T) {
	tests := []struct {
		src  string
		want typesystem.Type
	}{
		{`Return %Date + 1;`, typesystem.TDate},
		{`Return 1 + %Date;`, typesystem.TDate},
		{`Return %Time + 1;`, typesystem.TTime},
		{`Return %Date + %Time;`, typesystem.TDateTime},
		{`Return %Datetime + 1;`, typesystem.TDateTime},
		{`Return %Date - 1;`, typesystem.TDate},
		{`Return %Date - %Date;`, typesystem.TNumber},
		{`Return %Time - %Time;`, typesystem.TNumber},
		{`Return %Datetime - %Datetime;`, typesystem.TNumber},
	}
	for _, tt := range tests {
		if got := returnType(t, tt.src); !typesystem.Equal(got, tt.want) {
			t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestInvalidDateTimeCombinations(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{`Return %Date + %Date;`, "Cannot add date to date"},
		{`Return %Time + %Time;`, "Cannot add time to time"},
		{`Return 1 - %Date;`, "Cannot subtract date from number"},
		{`Return 1 - %Time;`, "Cannot subtract time from number"},
		{`Return %Date - %Time;`, "Cannot subtract time from date"},
		{`Return %Datetime + %Datetime;`, "Cannot add datetime to datetime"},
		{`Return %Datetime + %Time;`, "Cannot add time to datetime"},
		{`Return %Time - %Datetime;`, "Cannot subtract datetime from time"},
		{`Return %Datetime - %Time;`, "Cannot subtract time from datetime"},
	}
	for _, tt := range tests {
		prog, types := inferProgram(t, tt.src, nil)
		returns := collectReturns(prog)
		if len(returns) != 1 {
			t.Fatalf("%s: expected one Return", tt.src)
		}
		if got := types[returns[0].Value]; !typesystem.IsUnknown(got) {
			t.Errorf("%s = %s, want unknown", tt.src, got)
		}
		errs := prog.GetAllTypeErrors()
		if len(errs) != 1 || errs[0].Code != diagnostics.ErrT001 {
			t.Fatalf("%s: errors = %v, want one T001", tt.src, errorCodes(prog))
		}
		if errs[0].Message != tt.message {
			t.Errorf("%s: message = %q, want %q", tt.src, errs[0].Message, tt.message)
		}
	}
}

func TestMultiplicationRejectsDates(t *testing.T) {
	prog, _ := inferProgram(t, `Return %Date * 2;`, nil)
	codes := errorCodes(prog)
	if len(codes) != 1 || codes[0] != diagnostics.ErrT002 {
		t.Fatalf("errors = %v, want one T002", codes)
	}
}

func TestConcatenationIsString(t *testing.T) {
	got := returnType(t, `Return "n=" | 42;`)
	if !typesystem.Equal(got, typesystem.TString) {
		t.Errorf("concatenation = %s, want string", got)
	}
}

func TestComparisonsAreBoolean(t *testing.T) {
	for _, src := range []string{
		`Return 1 < 2;`,
		`Return "a" = "b";`,
		`Local boolean &p; Return &p And True;`,
	} {
		if got := returnType(t, src); !typesystem.Equal(got, typesystem.TBoolean) {
			t.Errorf("%s = %s, want boolean", src, got)
		}
	}
}

func TestBuiltinCallReturnTypes(t *testing.T) {
	tests := []struct {
		src  string
		want typesystem.Type
	}{
		{`Return Len("x");`, typesystem.TNumber},
		{`Return Upper("x");`, typesystem.TString},
		{`Return GetRowset(Scroll.VNDR);`, typesystem.BuiltinObject{Name: "Rowset"}},
		{`Return CreateRecord(Record.VENDOR);`, typesystem.BuiltinObject{Name: "Record"}},
	}
	for _, tt := range tests {
		if got := returnType(t, tt.src); !typesystem.Equal(got, tt.want) {
			t.Errorf("%s = %s, want %s", tt.src, got, tt.want)
		}
	}
}

func TestRowsetDefaultCall(t *testing.T) {
	got := returnType(t, `Local Rowset &rs; Return &rs(1);`)
	if !typesystem.Equal(got, typesystem.BuiltinObject{Name: "Row"}) {
		t.Errorf("&rs(1) = %s, want Row", got)
	}
}

func TestRowChainResolvesThroughContainment(t *testing.T) {
	// Row -> implicit record -> implicit field -> .Value, which is Any
	// under the null resolver.
	got := returnType(t, `Local Row &row; Return &row.PSADSRELATION.PTADSRELNAME.Value;`)
	if !typesystem.IsAny(got) {
		t.Errorf("chain = %s, want any", got)
	}

	got = returnType(t, `Local Row &row; Return &row.PSADSRELATION;`)
	rec, ok := got.(typesystem.Record)
	if !ok || rec.RecordName != "PSADSRELATION" {
		t.Errorf("row member = %s, want Record(PSADSRELATION)", got)
	}
}

func TestCreateExpression(t *testing.T) {
	got := returnType(t, `Return create MYPKG:Fruits:Banana();`)
	ac, ok := got.(typesystem.AppClass)
	if !ok || ac.QualifiedName != "MYPKG:Fruits:Banana" {
		t.Errorf("create = %s", got)
	}
}

func TestAtReferenceIsAny(t *testing.T) {
	got := returnType(t, `Return @("VENDOR.NAME1");`)
	if !typesystem.IsAny(got) {
		t.Errorf("@() = %s, want any", got)
	}
}

func TestThisAndSuper(t *testing.T) {
	src := `
class Dog extends MYPKG:Animal
   method Bark() Returns string;
end-class;

method Bark
   Return %This;
end-method;
`
	got := returnType(t, src)
	ac, ok := got.(typesystem.AppClass)
	if !ok || ac.QualifiedName != "Dog" {
		t.Errorf("%%This = %s, want Dog", got)
	}

	src = `
class Dog extends MYPKG:Animal
   method Bark() Returns string;
end-class;

method Bark
   Return %Super;
end-method;
`
	got = returnType(t, src)
	ac, ok = got.(typesystem.AppClass)
	if !ok || ac.QualifiedName != "MYPKG:Animal" {
		t.Errorf("%%Super = %s, want MYPKG:Animal", got)
	}
}

func TestMethodBodySeesHeaderParameters(t *testing.T) {
	src := `
class Calc
   method Calc(&seed As number);
   method Bump(&delta As number) Returns number;
end-class;

method Bump
   Return &delta + 1;
end-method;
`
	got := returnType(t, src)
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("&delta + 1 = %s, want number", got)
	}
}

func TestConstructorBodySeesConstructorParameters(t *testing.T) {
	src := `
class Calc
   method Calc(&seed As number);
end-class;

method Calc
   Return &seed;
end-method;
`
	got := returnType(t, src)
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("&seed = %s, want number", got)
	}
}

func TestSetterSeesNewValue(t *testing.T) {
	src := `
class Box
   property number Width get set;
end-class;

set Width
   Return &NewValue;
end-set;
`
	got := returnType(t, src)
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("&NewValue = %s, want number", got)
	}
}

func TestInstanceVariablesResolve(t *testing.T) {
	src := `
class Holder
   method Peek() Returns string;
private
   instance string &label;
end-class;

method Peek
   Return &label;
end-method;
`
	got := returnType(t, src)
	if !typesystem.Equal(got, typesystem.TString) {
		t.Errorf("instance &label = %s, want string", got)
	}
}

func TestFileLocalFunctionCalls(t *testing.T) {
	src := `
Function Half(&n As number) Returns number
   Return &n / 2;
End-Function;

Return Half(10);
`
	prog, types := inferProgram(t, src, nil)
	returns := collectReturns(prog)
	// One Return in the function body, one at the top level.
	if len(returns) != 2 {
		t.Fatalf("got %d returns, want 2", len(returns))
	}
	got := types[returns[1].Value]
	if !typesystem.Equal(got, typesystem.TNumber) {
		t.Errorf("Half(10) = %s, want number", got)
	}
}

func TestUnknownFunctionDegrades(t *testing.T) {
	got := returnType(t, `Return NoSuchThing(1);`)
	if !typesystem.IsUnknown(got) {
		t.Errorf("unknown call = %s, want unknown", got)
	}
}
