// Package inference computes a static type for every expression in a
// parsed program. It is a single bottom-up pass: a node's type is
// derived from its children's types, written exactly once per run into
// a side table keyed by node. Anything it cannot resolve degrades to
// Any or Unknown instead of failing; the source is live-edited input.
package inference

import (
	"fmt"
	"strings"

	"github.com/pcodekit/pcheck/internal/ast"
	"github.com/pcodekit/pcheck/internal/diagnostics"
	"github.com/pcodekit/pcheck/internal/metadata"
	"github.com/pcodekit/pcheck/internal/signatures"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// Inferrer is the type-inference visitor. One Inferrer types one
// program; instantiate a fresh one per run.
type Inferrer struct {
	ast.ScopedVisitor

	prog     *ast.Program
	md       *metadata.TypeMetadata
	resolver metadata.Resolver
	catalog  *signatures.Catalog
	types    map[ast.Node]typesystem.Type
}

// New builds an Inferrer for prog. md may be nil for programs without
// a class declaration.
func New(prog *ast.Program, md *metadata.TypeMetadata, resolver metadata.Resolver, catalog *signatures.Catalog) *Inferrer {
	if resolver == nil {
		resolver = metadata.NullResolver{}
	}
	if catalog == nil {
		catalog = signatures.Default
	}
	inf := &Inferrer{
		prog:     prog,
		md:       md,
		resolver: resolver,
		catalog:  catalog,
		types:    make(map[ast.Node]typesystem.Type),
	}
	inf.ScopedVisitor = ast.NewScopedVisitor(inf)
	return inf
}

// Run walks the program and returns the node-to-type side table.
func (inf *Inferrer) Run() map[ast.Node]typesystem.Type {
	inf.prog.Accept(inf)
	return inf.types
}

func (inf *Inferrer) walk(n ast.Node) {
	if n != nil {
		n.Accept(inf)
	}
}

func (inf *Inferrer) setType(n ast.Node, t typesystem.Type) {
	if t == nil {
		t = typesystem.TUnknown
	}
	inf.types[n] = t
}

// TypeOf returns the inferred type of a visited node, Unknown for
// nodes the pass never reached.
func (inf *Inferrer) TypeOf(n ast.Node) typesystem.Type {
	if t, ok := inf.types[n]; ok {
		return t
	}
	return typesystem.TUnknown
}

func (inf *Inferrer) addError(code string, n ast.Node, msg string) {
	inf.prog.AddTypeError(diagnostics.NewError(code, n.GetToken(), msg))
}

// --- declarations and scope ---

// VisitMethodImplementation opens the body scope with the parameters
// from the class declaration's method header; a body that restates
// its parameter list uses the restated annotations. Setter bodies see
// the implicit &NewValue carrying the property type.
func (inf *Inferrer) VisitMethodImplementation(n *ast.MethodImplementation) {
	inf.PushScope()
	defer inf.PopScope()

	switch {
	case len(n.Parameters) > 0:
		inf.DeclareParameters(n.Parameters)
	case inf.md != nil:
		if fn, ok := inf.md.Method(n.Name); ok {
			inf.declareSignature(fn)
		} else if inf.md.Constructor != nil && strings.EqualFold(n.Name, inf.md.QualifiedName) {
			inf.declareSignature(inf.md.Constructor)
		}
	}

	if n.Kind == ast.ImplSetter && inf.md != nil {
		if p, ok := inf.md.Property(n.Name); ok {
			inf.Declare("NewValue", p.Type)
		}
	}

	inf.walk(n.Body)
}

func (inf *Inferrer) declareSignature(fn *signatures.FunctionInfo) {
	for _, p := range fn.Parameters {
		if sp, ok := p.(*signatures.SingleParameter); ok {
			inf.Declare(sp.Name, sp.Type)
		}
	}
}

// --- leaves ---

func (inf *Inferrer) VisitNumberLiteral(n *ast.NumberLiteral)   { inf.setType(n, typesystem.TNumber) }
func (inf *Inferrer) VisitStringLiteral(n *ast.StringLiteral)   { inf.setType(n, typesystem.TString) }
func (inf *Inferrer) VisitBooleanLiteral(n *ast.BooleanLiteral) { inf.setType(n, typesystem.TBoolean) }
func (inf *Inferrer) VisitNullLiteral(n *ast.NullLiteral)       { inf.setType(n, typesystem.TAny) }

// VisitIdentifier types a plain bare identifier as an implicit
// record-field reference with an unknown record context.
func (inf *Inferrer) VisitIdentifier(n *ast.Identifier) {
	inf.setType(n, typesystem.Field{FieldName: n.Value})
}

// VisitUserVariable resolves &name through the lexical scope stack,
// then the class's instance variables and constants. An undeclared
// &-variable is Any, never an implicit field.
func (inf *Inferrer) VisitUserVariable(n *ast.UserVariable) {
	if t, ok := inf.Lookup(n.Name); ok {
		inf.setType(n, t)
		return
	}
	if inf.md != nil {
		if t, ok := metadata.FindInstance(inf.resolver, inf.md, inf.md.QualifiedName, n.Name); ok {
			inf.setType(n, t)
			return
		}
	}
	inf.setType(n, typesystem.TAny)
}

func (inf *Inferrer) VisitSystemVariable(n *ast.SystemVariable) {
	inf.setType(n, inf.systemVariableType(n.Name))
}

func (inf *Inferrer) systemVariableType(name string) typesystem.Type {
	switch strings.ToLower(name) {
	case "this":
		if inf.md != nil && inf.md.QualifiedName != "" {
			return typesystem.AppClass{QualifiedName: inf.md.QualifiedName}
		}
		return typesystem.TAny
	case "super":
		if inf.md != nil && inf.md.BaseClass != "" {
			return typesystem.AppClass{QualifiedName: inf.md.BaseClass}
		}
		return typesystem.TAny
	case "date":
		return typesystem.TDate
	case "time":
		return typesystem.TTime
	case "datetime":
		return typesystem.TDateTime
	case "userid", "operatorid", "emplid", "language", "market",
		"page", "component", "menu", "mode", "action":
		return typesystem.TString
	case "sqlrows", "maxinterlinksize":
		return typesystem.TNumber
	}
	return typesystem.TAny
}

// --- operators ---

func (inf *Inferrer) VisitPrefixExpression(n *ast.PrefixExpression) {
	inf.walk(n.Right)
	right := inf.TypeOf(n.Right)

	if n.Operator == "not" {
		inf.setType(n, typesystem.TBoolean)
		return
	}

	// unary minus
	switch {
	case typesystem.IsAny(right):
		inf.setType(n, typesystem.TAny)
	case typesystem.Equal(right, typesystem.TNumber):
		inf.setType(n, typesystem.TNumber)
	default:
		if k, ok := primitiveKind(right); ok && typesystem.IsDateTimeKind(k) {
			inf.addError(diagnostics.ErrT002, n,
				fmt.Sprintf("operator '-' cannot be applied to %s", right))
		}
		inf.setType(n, typesystem.TUnknown)
	}
}

func (inf *Inferrer) VisitInfixExpression(n *ast.InfixExpression) {
	inf.walk(n.Left)
	inf.walk(n.Right)
	left, right := inf.TypeOf(n.Left), inf.TypeOf(n.Right)

	switch n.Operator {
	case "and", "or", "not", "=", "<>", "<", "<=", ">", ">=":
		inf.setType(n, typesystem.TBoolean)
	case "|":
		inf.setType(n, typesystem.TString)
	case "+", "-":
		inf.setType(n, inf.additive(n, left, right))
	case "*", "/", "**":
		inf.setType(n, inf.multiplicative(n, left, right))
	default:
		inf.setType(n, typesystem.TUnknown)
	}
}

// additive applies the date/time promotion table. Combinations the
// table rejects are type errors; the node degrades to Unknown so the
// error does not cascade.
func (inf *Inferrer) additive(n *ast.InfixExpression, left, right typesystem.Type) typesystem.Type {
	if typesystem.IsAny(left) || typesystem.IsAny(right) {
		return typesystem.TAny
	}
	if typesystem.IsUnknown(left) || typesystem.IsUnknown(right) {
		return typesystem.TUnknown
	}

	lk, lok := primitiveKind(left)
	rk, rok := primitiveKind(right)
	if !lok || !rok {
		return typesystem.TUnknown
	}

	if t, ok := typesystem.Promote(n.Operator, lk, rk); ok {
		return t
	}
	if typesystem.IsDateTimeKind(lk) || typesystem.IsDateTimeKind(rk) {
		verb, prep := "add", "to"
		if n.Operator == "-" {
			verb, prep = "subtract", "from"
		}
		inf.addError(diagnostics.ErrT001, n,
			fmt.Sprintf("Cannot %s %s %s %s", verb, right, prep, left))
	}
	return typesystem.TUnknown
}

func (inf *Inferrer) multiplicative(n *ast.InfixExpression, left, right typesystem.Type) typesystem.Type {
	if typesystem.IsAny(left) || typesystem.IsAny(right) {
		return typesystem.TAny
	}
	lk, lok := primitiveKind(left)
	rk, rok := primitiveKind(right)
	if lok && rok {
		if lk == typesystem.KindNumber && rk == typesystem.KindNumber {
			return typesystem.TNumber
		}
		if typesystem.IsDateTimeKind(lk) || typesystem.IsDateTimeKind(rk) {
			inf.addError(diagnostics.ErrT002, n,
				fmt.Sprintf("operator '%s' cannot be applied to %s and %s", n.Operator, left, right))
		}
	}
	return typesystem.TUnknown
}

func primitiveKind(t typesystem.Type) (typesystem.PrimitiveKind, bool) {
	p, ok := t.(typesystem.Primitive)
	if !ok {
		return 0, false
	}
	return p.Kind, true
}

// --- composite expressions ---

// VisitCastExpression: the cast's type is always exactly the named
// target, regardless of the operand or the surrounding context.
func (inf *Inferrer) VisitCastExpression(n *ast.CastExpression) {
	inf.walk(n.Expression)
	inf.setType(n, ast.ResolveTypeNode(n.TargetType))
}

func (inf *Inferrer) VisitCreateExpression(n *ast.CreateExpression) {
	for _, arg := range n.Arguments {
		inf.walk(arg)
	}
	if n.Class == nil {
		inf.setType(n, typesystem.TUnknown)
		return
	}
	inf.setType(n, typesystem.AppClass{QualifiedName: n.Class.QualifiedName()})
}

// VisitAtReference types a dynamic @("...") reference as Any: the
// referenced definition is a runtime value.
func (inf *Inferrer) VisitAtReference(n *ast.AtReference) {
	inf.walk(n.Expression)
	inf.setType(n, typesystem.TAny)
}

// VisitIndexExpression reduces array dimensionality by the index
// count; a[i][j] arrives here as two chained nodes reducing once each,
// a[i,j] as one node reducing twice. Unresolved bases stay Any.
func (inf *Inferrer) VisitIndexExpression(n *ast.IndexExpression) {
	inf.walk(n.Base)
	for _, idx := range n.Indices {
		inf.walk(idx)
	}

	base := inf.TypeOf(n.Base)
	switch b := base.(type) {
	case typesystem.Array:
		inf.setType(n, b.Reduce(len(n.Indices)))
	case typesystem.AnyType, typesystem.Field:
		inf.setType(n, typesystem.TAny)
	default:
		inf.setType(n, typesystem.TUnknown)
	}
}

// defRefPrefixes maps the identifier prefixes of definition references
// (Record.NAME, Page.NAME, ...) to the referenced definition kind.
var defRefPrefixes = map[string]string{
	"record":     "Record",
	"field":      "Field",
	"page":       "Page",
	"scroll":     "Scroll",
	"sql":        "SQL",
	"message":    "Message",
	"component":  "Component",
	"menu":       "Menu",
	"barname":    "BarName",
	"itemname":   "ItemName",
	"compintfc":  "CompIntfc",
	"filelayout": "FileLayout",
	"style":      "Style",
	"html":       "HTML",
	"image":      "Image",
	"interlink":  "Interlink",
	"operation":  "Operation",
}

func (inf *Inferrer) VisitMemberAccess(n *ast.MemberAccess) {
	// Definition references: Record.VENDOR is a @Record value, not a
	// member lookup.
	if ident, ok := n.Object.(*ast.Identifier); ok {
		if kind, ok := defRefPrefixes[strings.ToLower(ident.Value)]; ok {
			ref := typesystem.Reference{Target: typesystem.BuiltinObject{Name: kind}}
			inf.setType(n.Object, ref)
			inf.setType(n, ref)
			return
		}
	}

	inf.walk(n.Object)
	inf.setType(n, inf.memberType(n.Object, inf.TypeOf(n.Object), n.Member))
}

// memberType resolves one member access given the object's inferred
// type, applying the implicit containment fallbacks: an unknown member
// on a Row is a record, on a Record a field.
func (inf *Inferrer) memberType(object ast.Expression, t typesystem.Type, member string) typesystem.Type {
	switch v := t.(type) {
	case typesystem.AnyType:
		return typesystem.TAny

	case typesystem.Field:
		// A bare identifier is an implicit record context, so A.B is
		// the field B on record A.
		if _, bare := object.(*ast.Identifier); bare && v.RecordName == "" {
			return typesystem.Field{RecordName: v.FieldName, FieldName: member}
		}
		if strings.EqualFold(member, "Value") {
			if v.RecordName == "" {
				return typesystem.TAny
			}
			return inf.resolver.GetFieldType(v.RecordName, v.FieldName)
		}
		if pt, ok := inf.catalog.Property("Field", member); ok {
			return pt
		}
		return typesystem.TUnknown

	case typesystem.Record:
		if pt, ok := inf.catalog.Property("Record", member); ok {
			return pt
		}
		if _, isMethod := inf.catalog.Method("Record", member); isMethod {
			return typesystem.TUnknown
		}
		return typesystem.Field{RecordName: v.RecordName, FieldName: member}

	case typesystem.Array:
		if pt, ok := inf.catalog.Property("Array", member); ok {
			return pt
		}
		return typesystem.TUnknown

	case typesystem.AppClass:
		if p, ok := metadata.FindProperty(inf.resolver, inf.md, v.QualifiedName, member); ok {
			return p.Type
		}
		if it, ok := metadata.FindInstance(inf.resolver, inf.md, v.QualifiedName, member); ok {
			return it
		}
		return typesystem.TUnknown

	case typesystem.BuiltinObject:
		if pt, ok := inf.catalog.Property(v.Name, member); ok {
			return pt
		}
		if _, isMethod := inf.catalog.Method(v.Name, member); isMethod {
			return typesystem.TUnknown
		}
		switch {
		case strings.EqualFold(v.Name, "Row"):
			return typesystem.Record{RecordName: member}
		case strings.EqualFold(v.Name, "Record"):
			return typesystem.Field{FieldName: member}
		}
		return typesystem.TUnknown
	}

	return typesystem.TUnknown
}

func (inf *Inferrer) VisitCallExpression(n *ast.CallExpression) {
	for _, arg := range n.Arguments {
		inf.walk(arg)
	}

	switch fn := n.Function.(type) {
	case *ast.Identifier:
		if sig, ok := inf.ResolveNamedCall(fn.Value); ok {
			result := returnOf(sig)
			inf.setType(fn, result)
			inf.setType(n, result)
			return
		}
		inf.setType(fn, typesystem.TUnknown)
		inf.setType(n, typesystem.TUnknown)

	case *ast.MemberAccess:
		inf.walk(fn.Object)
		target := inf.TypeOf(fn.Object)
		if sig, ok := inf.ResolveMethodOn(target, fn.Member); ok {
			result := returnOf(sig)
			inf.setType(fn, result)
			inf.setType(n, result)
			return
		}
		// Not a known method: type the member itself, then apply the
		// default-call rule below.
		inf.walk(fn)
		inf.setType(n, defaultCall(inf.TypeOf(fn)))

	default:
		inf.walk(n.Function)
		inf.setType(n, defaultCall(inf.TypeOf(n.Function)))
	}
}

// defaultCall resolves calling a non-function value: a Rowset invoked
// with arguments goes through its implicit default accessor to Row.
func defaultCall(t typesystem.Type) typesystem.Type {
	if name, ok := typesystem.BuiltinObjectName(t); ok && strings.EqualFold(name, "Rowset") {
		return typesystem.BuiltinObject{Name: "Row"}
	}
	if typesystem.IsAny(t) {
		return typesystem.TAny
	}
	return typesystem.TUnknown
}

// Binding returns the call-name binding the pass resolves through.
func (inf *Inferrer) Binding() *Binding {
	return &Binding{Prog: inf.prog, Metadata: inf.md, Resolver: inf.resolver, Catalog: inf.catalog}
}

// ResolveNamedCall resolves an identifier-style call through the
// binding order.
func (inf *Inferrer) ResolveNamedCall(name string) (*signatures.FunctionInfo, bool) {
	return inf.Binding().NamedCall(name)
}

// ResolveMethodOn resolves a member-access call against the statically
// known target type.
func (inf *Inferrer) ResolveMethodOn(target typesystem.Type, method string) (*signatures.FunctionInfo, bool) {
	return inf.Binding().MethodOn(target, method)
}

func returnOf(sig *signatures.FunctionInfo) typesystem.Type {
	if sig.ReturnType == nil {
		return typesystem.TAny
	}
	return sig.ReturnType
}
