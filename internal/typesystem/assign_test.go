package typesystem

import "testing"

// chain is a canned inheritance lookup for tests.
type chain map[string]string

func (c chain) BaseClassOf(name string) (string, bool) {
	base, ok := c[name]
	return base, ok
}

func TestIsAssignableFrom(t *testing.T) {
	h := chain{
		"PKG:Dog":    "PKG:Animal",
		"PKG:Puppy":  "PKG:Dog",
		"PKG:Animal": "",
	}

	tests := []struct {
		name     string
		target   Type
		source   Type
		want     bool
		wantWarn AssignWarning
	}{
		{"same primitive", TNumber, TNumber, true, WarnNone},
		{"string to number", TNumber, TString, false, WarnNone},
		{"date to datetime", TDateTime, TDate, false, WarnNone},
		{"any to primitive", TNumber, TAny, true, WarnNone},
		{"primitive to any", TAny, TString, true, WarnNone},
		{"unknown never assigns", TNumber, TUnknown, false, WarnNone},
		{"unknown never receives", TUnknown, TNumber, false, WarnNone},

		{"array same shape", Array{Dimensions: 2, Element: TNumber}, Array{Dimensions: 2, Element: TNumber}, true, WarnNone},
		{"array dim mismatch", Array{Dimensions: 2, Element: TNumber}, Array{Dimensions: 1, Element: TNumber}, false, WarnNone},
		{"array element mismatch", Array{Dimensions: 1, Element: TNumber}, Array{Dimensions: 1, Element: TString}, false, WarnNone},
		{"array of any element accepts", Array{Dimensions: 1}, Array{Dimensions: 1, Element: TString}, true, WarnNone},

		{"object accepts rowset", TObject, BuiltinObject{Name: "Rowset"}, true, WarnNone},
		{"object accepts app class", TObject, AppClass{QualifiedName: "PKG:Dog"}, true, WarnNone},
		{"object accepts bound field", TObject, Field{RecordName: "VENDOR", FieldName: "NAME1"}, true, WarnNone},
		{"object rejects number", TObject, TNumber, false, WarnNone},
		{"rowset by name", BuiltinObject{Name: "Rowset"}, BuiltinObject{Name: "rowset"}, true, WarnNone},
		{"rowset rejects record", BuiltinObject{Name: "Rowset"}, Record{}, false, WarnNone},
		{"object widens into rowset", BuiltinObject{Name: "Rowset"}, TObject, true, WarnNone},

		{"field accepts bound field", Field{}, Field{RecordName: "VENDOR", FieldName: "NAME1"}, true, WarnNone},
		{"record accepts bound record", Record{}, Record{RecordName: "VENDOR"}, true, WarnNone},
		{"record rejects field", Record{}, Field{}, false, WarnNone},

		{"class to itself", AppClass{QualifiedName: "PKG:Dog"}, AppClass{QualifiedName: "pkg:dog"}, true, WarnNone},
		{"subclass to base", AppClass{QualifiedName: "PKG:Animal"}, AppClass{QualifiedName: "PKG:Puppy"}, true, WarnNone},
		{"base to subclass", AppClass{QualifiedName: "PKG:Puppy"}, AppClass{QualifiedName: "PKG:Animal"}, false, WarnNone},
		{"unrelated classes", AppClass{QualifiedName: "PKG:Cat"}, AppClass{QualifiedName: "PKG:Dog"}, false, WarnNone},
		{"any narrows to class", AppClass{QualifiedName: "PKG:Dog"}, TAny, true, WarnImplicitNarrowingToAppClass},
		{"object narrows to class", AppClass{QualifiedName: "PKG:Dog"}, TObject, true, WarnImplicitNarrowingToAppClass},
		{"rowset never narrows to class", AppClass{QualifiedName: "PKG:Dog"}, BuiltinObject{Name: "Rowset"}, false, WarnNone},

		{"reference matches target", Reference{Target: BuiltinObject{Name: "Record"}}, Reference{Target: BuiltinObject{Name: "Record"}}, true, WarnNone},
		{"reference target mismatch", Reference{Target: BuiltinObject{Name: "Record"}}, Reference{Target: BuiltinObject{Name: "Field"}}, false, WarnNone},
		{"reference rejects plain value", Reference{Target: BuiltinObject{Name: "Record"}}, BuiltinObject{Name: "Record"}, false, WarnNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warn := IsAssignableFrom(tt.target, tt.source, h)
			if got != tt.want || warn != tt.wantWarn {
				t.Errorf("IsAssignableFrom(%s, %s) = %v/%v, want %v/%v",
					tt.target, tt.source, got, warn, tt.want, tt.wantWarn)
			}
		})
	}
}

func TestInheritanceWithoutHierarchy(t *testing.T) {
	// With no lookup, only exact class names match.
	ok, _ := IsAssignableFrom(AppClass{QualifiedName: "PKG:Animal"}, AppClass{QualifiedName: "PKG:Dog"}, nil)
	if ok {
		t.Error("subclass matched base with nil hierarchy")
	}
	ok, _ = IsAssignableFrom(AppClass{QualifiedName: "PKG:Dog"}, AppClass{QualifiedName: "PKG:DOG"}, nil)
	if !ok {
		t.Error("case-insensitive self match failed with nil hierarchy")
	}
}

func TestInheritanceCycleTerminates(t *testing.T) {
	h := chain{"A:X": "A:Y", "A:Y": "A:X"}
	ok, _ := IsAssignableFrom(AppClass{QualifiedName: "A:Z"}, AppClass{QualifiedName: "A:X"}, h)
	if ok {
		t.Error("cyclic chain resolved to an unrelated class")
	}
}

func TestArrayReduce(t *testing.T) {
	arr := Array{Dimensions: 3, Element: TString}
	if got := arr.Reduce(1); !Equal(got, Array{Dimensions: 2, Element: TString}) {
		t.Errorf("Reduce(1) = %s", got)
	}
	if got := arr.Reduce(3); !Equal(got, TString) {
		t.Errorf("Reduce(3) = %s", got)
	}
	// Over-indexing bottoms out at the element type.
	if got := arr.Reduce(5); !Equal(got, TString) {
		t.Errorf("Reduce(5) = %s", got)
	}
	if got := (Array{Dimensions: 1}).Reduce(1); !IsAny(got) {
		t.Errorf("untyped element Reduce = %s", got)
	}
}

func TestCommonType(t *testing.T) {
	tests := []struct {
		a, b, want Type
	}{
		{TNumber, TNumber, TNumber},
		{TNumber, TString, TAny},
		{TObject, BuiltinObject{Name: "Rowset"}, TObject},
		{TObject, AppClass{QualifiedName: "PKG:Dog"}, TObject},
		{TObject, TNumber, TAny},
		{TAny, TNumber, TAny},
		{AppClass{QualifiedName: "PKG:Dog"}, AppClass{QualifiedName: "pkg:dog"}, AppClass{QualifiedName: "PKG:Dog"}},
	}
	for _, tt := range tests {
		if got := CommonType(tt.a, tt.b); !Equal(got, tt.want) {
			t.Errorf("CommonType(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestEqualIgnoresFieldBinding(t *testing.T) {
	if !Equal(Field{RecordName: "VENDOR", FieldName: "NAME1"}, Field{}) {
		t.Error("bound and unbound Field should compare equal")
	}
	if !Equal(Record{RecordName: "VENDOR"}, BuiltinObject{Name: "record"}) {
		t.Error("bound Record should equal the Record builtin")
	}
	if Equal(Field{}, Record{}) {
		t.Error("Field and Record must not compare equal")
	}
}
