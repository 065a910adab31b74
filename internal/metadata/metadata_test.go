package metadata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcodekit/pcheck/internal/lexer"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/parser"
	"github.com/pcodekit/pcheck/internal/pipeline"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

func buildFrom(t *testing.T, src string) *metadata.TypeMetadata {
	t.Helper()
	ctx := &pipeline.Context{FilePath: "test.pcode", SourceCode: src}
	tokens, lexErrs := lexer.New(src).Tokenize()
	require.Empty(t, lexErrs)
	prog := parser.New(tokens, ctx).ParseProgram()
	require.Empty(t, ctx.Errors)
	return metadata.Build(prog)
}

func TestBuildClassMetadata(t *testing.T) {
	md := buildFrom(t, `
class Dog extends PKG:Animal
   method Dog(&name As string);
   method Bark(&times As number) Returns string;
   property number Age get set;
   property string Name readonly;
private
   instance Rowset &a, &b, &c;
   Constant &kMaxAge = 20;
end-class;

method Dog
end-method;

method Bark
   Return "woof";
end-method;
`)

	assert.Equal(t, "Dog", md.QualifiedName)
	assert.Equal(t, "PKG:Animal", md.BaseClass)
	assert.False(t, md.IsInterface)

	// The method named after the class is the constructor, not a
	// regular method.
	require.NotNil(t, md.Constructor)
	assert.Equal(t, "Dog", md.Constructor.Name)
	_, ok := md.Method("Dog")
	assert.False(t, ok)

	bark, ok := md.Method("BARK")
	require.True(t, ok, "method lookup must be case-insensitive")
	require.Len(t, bark.Parameters, 1)
	assert.True(t, typesystem.Equal(bark.ReturnType, typesystem.TString))

	age, ok := md.Property("age")
	require.True(t, ok)
	assert.Equal(t, metadata.AccessorGetSet, age.Access)
	assert.True(t, typesystem.Equal(age.Type, typesystem.TNumber))

	name, ok := md.Property("Name")
	require.True(t, ok)
	assert.Equal(t, metadata.AccessorReadOnly, name.Access)

	// One comma declaration, three independent variables.
	for _, n := range []string{"a", "b", "c"} {
		it, ok := md.Instance(n)
		require.True(t, ok, "instance &%s missing", n)
		assert.True(t, typesystem.Equal(it, typesystem.BuiltinObject{Name: "Rowset"}))
	}

	kMax, ok := md.Instance("kMaxAge")
	require.True(t, ok)
	assert.True(t, typesystem.Equal(kMax, typesystem.TNumber))
}

func TestBuildInterfaceMetadata(t *testing.T) {
	md := buildFrom(t, `
interface Edible
   method Eat() Returns boolean;
end-interface;
`)
	assert.True(t, md.IsInterface)
	_, ok := md.Method("Eat")
	assert.True(t, ok)
}

func TestFunctionSignature(t *testing.T) {
	src := `
Function Tally(&r As Record, &count As number) Returns number
   Return &count;
End-Function;
`
	ctx := &pipeline.Context{FilePath: "test.pcode", SourceCode: src}
	tokens, _ := lexer.New(src).Tokenize()
	prog := parser.New(tokens, ctx).ParseProgram()
	require.Empty(t, ctx.Errors)
	require.Len(t, prog.Functions, 1)

	fn := metadata.FunctionSignature(prog.Functions[0])
	assert.Equal(t, "Tally", fn.Name)
	assert.Len(t, fn.Parameters, 2)
	assert.True(t, typesystem.Equal(fn.ReturnType, typesystem.TNumber))
}

// fixtureResolver serves canned metadata keyed by lower-cased name.
type fixtureResolver struct {
	classes map[string]*metadata.TypeMetadata
}

func (f fixtureResolver) GetTypeMetadata(name string) (*metadata.TypeMetadata, bool) {
	md, ok := f.classes[strings.ToLower(name)]
	return md, ok
}
func (f fixtureResolver) GetFieldType(string, string) typesystem.Type { return typesystem.TAny }
func (f fixtureResolver) GetClassesInPackage(string) []string         { return nil }

func TestFindMethodWalksInheritance(t *testing.T) {
	base := buildFrom(t, `
class Animal
   method Animal();
   method Speak() Returns string;
   property number Legs get;
   instance string &habitat;
end-class;

method Animal
end-method;

method Speak
   Return "";
end-method;
`)
	base.QualifiedName = "PKG:Animal"

	self := buildFrom(t, `
class Dog extends PKG:Animal
   method Bark() Returns string;
end-class;

method Bark
   Return "woof";
end-method;
`)

	r := fixtureResolver{classes: map[string]*metadata.TypeMetadata{
		"pkg:animal": base,
	}}

	// Own method resolves from the in-flight metadata, inherited
	// members from the resolver chain.
	_, ok := metadata.FindMethod(r, self, "Dog", "Bark")
	assert.True(t, ok)

	speak, ok := metadata.FindMethod(r, self, "Dog", "Speak")
	require.True(t, ok)
	assert.Equal(t, "Speak", speak.Name)

	legs, ok := metadata.FindProperty(r, self, "Dog", "Legs")
	require.True(t, ok)
	assert.Equal(t, "Legs", legs.Name)

	habitat, ok := metadata.FindInstance(r, self, "Dog", "habitat")
	require.True(t, ok)
	assert.True(t, typesystem.Equal(habitat, typesystem.TString))

	// The constructor is inherited when the class declares none.
	ctor, ok := metadata.FindConstructor(r, self, "Dog")
	require.True(t, ok)
	assert.Equal(t, "Animal", ctor.Name)

	_, ok = metadata.FindMethod(r, self, "Dog", "Meow")
	assert.False(t, ok)
}

func TestFindMethodTerminatesOnCycle(t *testing.T) {
	a := &metadata.TypeMetadata{QualifiedName: "P:A", BaseClass: "P:B"}
	b := &metadata.TypeMetadata{QualifiedName: "P:B", BaseClass: "P:A"}
	r := fixtureResolver{classes: map[string]*metadata.TypeMetadata{
		"p:a": a, "p:b": b,
	}}
	_, ok := metadata.FindMethod(r, nil, "P:A", "Anything")
	assert.False(t, ok)
}

func TestHierarchyWithPrefersSelf(t *testing.T) {
	self := &metadata.TypeMetadata{QualifiedName: "PKG:Dog", BaseClass: "PKG:Animal"}
	r := fixtureResolver{classes: map[string]*metadata.TypeMetadata{
		"pkg:animal": {QualifiedName: "PKG:Animal", BaseClass: "PKG:Creature"},
	}}

	h := metadata.HierarchyWith(r, self)
	base, ok := h.BaseClassOf("pkg:dog")
	require.True(t, ok)
	assert.Equal(t, "PKG:Animal", base)

	base, ok = h.BaseClassOf("PKG:Animal")
	require.True(t, ok)
	assert.Equal(t, "PKG:Creature", base)

	_, ok = h.BaseClassOf("PKG:Stranger")
	assert.False(t, ok)
}
