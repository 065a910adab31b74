// Package typesystem models the PeopleCode type universe: primitives,
// multi-dimensional arrays, builtin object types, application classes,
// definition references, plus the Any top type and the Unknown failure
// sentinel.
package typesystem

import (
	"fmt"
	"strings"
)

// Type is the interface for all types in our system. The variant set is
// closed; pattern-match with a type switch.
type Type interface {
	String() string
	typeInfo()
}

// PrimitiveKind enumerates the scalar types. Integer literals normalize
// to Number during inference, so there is no Integer kind here.
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota
	KindNumber
	KindBoolean
	KindDate
	KindTime
	KindDateTime
)

// Primitive is a scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p Primitive) typeInfo() {}
func (p Primitive) String() string {
	switch p.Kind {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	}
	return "primitive"
}

// Process-wide singletons. Primitives are immutable value objects, so
// sharing is safe.
var (
	TString   = Primitive{Kind: KindString}
	TNumber   = Primitive{Kind: KindNumber}
	TBoolean  = Primitive{Kind: KindBoolean}
	TDate     = Primitive{Kind: KindDate}
	TTime     = Primitive{Kind: KindTime}
	TDateTime = Primitive{Kind: KindDateTime}
)

// Array is a (possibly multi-dimensional) array type.
type Array struct {
	Dimensions int
	Element    Type
}

func (a Array) typeInfo() {}
func (a Array) String() string {
	var sb strings.Builder
	for i := 0; i < a.Dimensions; i++ {
		sb.WriteString("array of ")
	}
	if a.Element == nil {
		sb.WriteString("any")
	} else {
		sb.WriteString(a.Element.String())
	}
	return sb.String()
}

// Reduce returns the type produced by indexing the array with n
// indices: dimensionality drops by n, bottoming out at the element
// type.
func (a Array) Reduce(n int) Type {
	if n >= a.Dimensions {
		if a.Element == nil {
			return TAny
		}
		return a.Element
	}
	return Array{Dimensions: a.Dimensions - n, Element: a.Element}
}

// BuiltinObject is one of the fixed vocabulary of builtin object types
// (Record, Row, Rowset, Message, ...) including the Object supertype.
type BuiltinObject struct {
	Name string
}

func (b BuiltinObject) typeInfo()      {}
func (b BuiltinObject) String() string { return b.Name }

// TObject is the supertype of every object-flavored value.
var TObject = BuiltinObject{Name: "Object"}

// IsObjectSupertype reports whether t is the Object supertype.
func IsObjectSupertype(t Type) bool {
	b, ok := t.(BuiltinObject)
	return ok && strings.EqualFold(b.Name, "Object")
}

// Field is the builtin Field object type carrying its record-field
// binding when known. A bare identifier in PeopleCode is an implicit
// record-field reference, modeled as a Field with an empty record name.
type Field struct {
	RecordName string
	FieldName  string
}

func (f Field) typeInfo() {}
func (f Field) String() string {
	if f.RecordName == "" && f.FieldName == "" {
		return "Field"
	}
	return fmt.Sprintf("Field(%s.%s)", f.RecordName, f.FieldName)
}

// Record is the builtin Record object type, optionally bound to a
// named record definition.
type Record struct {
	RecordName string
}

func (r Record) typeInfo() {}
func (r Record) String() string {
	if r.RecordName == "" {
		return "Record"
	}
	return fmt.Sprintf("Record(%s)", r.RecordName)
}

// AppClass is an application-class instance type identified by its
// colon-delimited qualified name. Member lookup resolves lazily through
// the metadata resolver; the class graph is never materialized here.
type AppClass struct {
	QualifiedName string
}

func (a AppClass) typeInfo()      {}
func (a AppClass) String() string { return a.QualifiedName }

// Reference is a definition reference (@Record, @Field, ...): a marker
// used only inside signatures, never a runtime value. Target is the
// referenced type.
type Reference struct {
	Target Type
}

func (r Reference) typeInfo() {}
func (r Reference) String() string {
	if r.Target == nil {
		return "@?"
	}
	return "@" + r.Target.String()
}

// AnyType is the universal top type.
type AnyType struct{}

func (AnyType) typeInfo()      {}
func (AnyType) String() string { return "any" }

// UnknownType is the failure sentinel. It must never be treated as a
// valid concrete type by downstream consumers.
type UnknownType struct{}

func (UnknownType) typeInfo()      {}
func (UnknownType) String() string { return "unknown" }

var (
	TAny     = AnyType{}
	TUnknown = UnknownType{}
)

// IsAny reports whether t is the Any top type.
func IsAny(t Type) bool {
	_, ok := t.(AnyType)
	return ok
}

// IsUnknown reports whether t is the Unknown sentinel.
func IsUnknown(t Type) bool {
	_, ok := t.(UnknownType)
	return ok
}

// BuiltinObjectName returns the builtin-object vocabulary name for t,
// folding the bound Field/Record variants into their object names.
func BuiltinObjectName(t Type) (string, bool) {
	switch v := t.(type) {
	case BuiltinObject:
		return v.Name, true
	case Field:
		return "Field", true
	case Record:
		return "Record", true
	}
	return "", false
}
