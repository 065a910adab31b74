package typesystem

import "strings"

// HierarchyLookup resolves an application class's base class by
// qualified name. Implemented by the metadata layer; kept as an
// interface here so assignability can walk inheritance chains without
// owning cross-program state.
type HierarchyLookup interface {
	BaseClassOf(qualifiedName string) (string, bool)
}

// AssignWarning qualifies an assignability verdict that succeeded but
// deserves a diagnostic.
type AssignWarning int

const (
	WarnNone AssignWarning = iota
	// WarnImplicitNarrowingToAppClass: Object/Any passed where a
	// specific application class is expected. Valid, but the narrowing
	// is unchecked.
	WarnImplicitNarrowingToAppClass
)

// maxInheritanceDepth guards against cyclic extends chains coming from
// a misbehaving resolver.
const maxInheritanceDepth = 64

// IsAssignableFrom reports whether a value of type source can be
// assigned to a slot of type target. h may be nil when no
// application-class hierarchy is available; inheritance then degrades
// to exact-name matching.
func IsAssignableFrom(target, source Type, h HierarchyLookup) (bool, AssignWarning) {
	if target == nil || source == nil {
		return false, WarnNone
	}

	// Any accepts everything; an Any source is accepted everywhere
	// except where noted below.
	if IsAny(target) {
		return true, WarnNone
	}
	if IsUnknown(target) || IsUnknown(source) {
		return false, WarnNone
	}

	switch t := target.(type) {
	case Primitive:
		// Exact primitive match only. Integer folding happened during
		// inference, never here.
		if s, ok := source.(Primitive); ok {
			return s.Kind == t.Kind, WarnNone
		}
		if IsAny(source) {
			return true, WarnNone
		}
		return false, WarnNone

	case Array:
		if IsAny(source) {
			return true, WarnNone
		}
		s, ok := source.(Array)
		if !ok {
			return false, WarnNone
		}
		if s.Dimensions != t.Dimensions {
			return false, WarnNone
		}
		if t.Element == nil || s.Element == nil {
			return true, WarnNone
		}
		ok, _ = IsAssignableFrom(t.Element, s.Element, h)
		return ok, WarnNone

	case BuiltinObject:
		if IsObjectSupertype(t) {
			// Object accepts any object-flavored value and Any, but
			// rejects every primitive.
			switch source.(type) {
			case BuiltinObject, AppClass, Array, Field, Record, AnyType:
				return true, WarnNone
			}
			return false, WarnNone
		}
		if IsAny(source) || IsObjectSupertype(source) {
			return true, WarnNone
		}
		name, ok := BuiltinObjectName(source)
		return ok && strings.EqualFold(name, t.Name), WarnNone

	case Field:
		if IsAny(source) || IsObjectSupertype(source) {
			return true, WarnNone
		}
		name, ok := BuiltinObjectName(source)
		return ok && name == "Field", WarnNone

	case Record:
		if IsAny(source) || IsObjectSupertype(source) {
			return true, WarnNone
		}
		name, ok := BuiltinObjectName(source)
		return ok && name == "Record", WarnNone

	case AppClass:
		switch s := source.(type) {
		case AppClass:
			return inChainOf(s.QualifiedName, t.QualifiedName, h), WarnNone
		case AnyType:
			return true, WarnImplicitNarrowingToAppClass
		case BuiltinObject:
			if IsObjectSupertype(s) {
				return true, WarnImplicitNarrowingToAppClass
			}
			return false, WarnNone
		}
		return false, WarnNone

	case Reference:
		if IsAny(source) {
			return true, WarnNone
		}
		s, ok := source.(Reference)
		if !ok {
			return false, WarnNone
		}
		if t.Target == nil || s.Target == nil {
			return true, WarnNone
		}
		ok, _ = IsAssignableFrom(t.Target, s.Target, h)
		return ok, WarnNone
	}

	return false, WarnNone
}

// inChainOf reports whether target appears in source's inheritance
// chain (source itself included).
func inChainOf(source, target string, h HierarchyLookup) bool {
	name := source
	for depth := 0; depth < maxInheritanceDepth; depth++ {
		if strings.EqualFold(name, target) {
			return true
		}
		if h == nil {
			return false
		}
		base, ok := h.BaseClassOf(name)
		if !ok || base == "" {
			return false
		}
		name = base
	}
	return false
}

// CommonType returns the join of two types: Object with a primitive is
// Any; Object with an object-flavored type is Object; identical types
// join to themselves; everything else joins to Any.
func CommonType(a, b Type) Type {
	if a == nil || b == nil {
		return TAny
	}
	if IsAny(a) || IsAny(b) {
		return TAny
	}
	if IsObjectSupertype(a) || IsObjectSupertype(b) {
		other := a
		if IsObjectSupertype(a) {
			other = b
		}
		switch other.(type) {
		case Primitive:
			return TAny
		case BuiltinObject, AppClass, Array, Field, Record:
			return TObject
		}
		return TAny
	}
	if Equal(a, b) {
		return a
	}
	return TAny
}

// Equal reports structural equality of two types. Application-class
// and builtin names compare case-insensitively; bound Field/Record
// variants compare by their object identity, not their binding.
func Equal(a, b Type) bool {
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Kind == bv.Kind
	case AnyType:
		_, ok := b.(AnyType)
		return ok
	case UnknownType:
		_, ok := b.(UnknownType)
		return ok
	case Array:
		bv, ok := b.(Array)
		if !ok || av.Dimensions != bv.Dimensions {
			return false
		}
		if av.Element == nil || bv.Element == nil {
			return av.Element == nil && bv.Element == nil
		}
		return Equal(av.Element, bv.Element)
	case AppClass:
		bv, ok := b.(AppClass)
		return ok && strings.EqualFold(av.QualifiedName, bv.QualifiedName)
	case Reference:
		bv, ok := b.(Reference)
		if !ok {
			return false
		}
		if av.Target == nil || bv.Target == nil {
			return av.Target == nil && bv.Target == nil
		}
		return Equal(av.Target, bv.Target)
	default:
		an, aok := BuiltinObjectName(a)
		bn, bok := BuiltinObjectName(b)
		return aok && bok && strings.EqualFold(an, bn)
	}
}
