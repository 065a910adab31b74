package metadata

import (
	"strings"

	"github.com/pcodekit/pcheck/internal/signatures"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// maxChainDepth bounds inheritance walks so a cyclic extends chain from
// a misbehaving resolver terminates.
const maxChainDepth = 64

// chainWalker visits a class and its ancestors, preferring the
// in-flight program's own metadata over the resolver so self-reference
// works before the cache is primed.
func chainWalker(r Resolver, self *TypeMetadata, qualifiedName string, visit func(*TypeMetadata) bool) {
	name := qualifiedName
	for depth := 0; depth < maxChainDepth && name != ""; depth++ {
		var md *TypeMetadata
		if self != nil && strings.EqualFold(self.QualifiedName, name) {
			md = self
		} else if r != nil {
			found, ok := r.GetTypeMetadata(name)
			if !ok || found == nil {
				return
			}
			md = found
		} else {
			return
		}
		if visit(md) {
			return
		}
		name = md.BaseClass
	}
}

// FindMethod resolves a method on a class or any of its ancestors.
func FindMethod(r Resolver, self *TypeMetadata, qualifiedName, name string) (*signatures.FunctionInfo, bool) {
	var fn *signatures.FunctionInfo
	chainWalker(r, self, qualifiedName, func(md *TypeMetadata) bool {
		if f, ok := md.Method(name); ok {
			fn = f
			return true
		}
		return false
	})
	return fn, fn != nil
}

// FindProperty resolves a property on a class or any of its ancestors.
func FindProperty(r Resolver, self *TypeMetadata, qualifiedName, name string) (*PropertyInfo, bool) {
	var prop *PropertyInfo
	chainWalker(r, self, qualifiedName, func(md *TypeMetadata) bool {
		if p, ok := md.Property(name); ok {
			prop = p
			return true
		}
		return false
	})
	return prop, prop != nil
}

// FindInstance resolves an instance variable on a class or any of its
// ancestors.
func FindInstance(r Resolver, self *TypeMetadata, qualifiedName, name string) (typesystem.Type, bool) {
	var t typesystem.Type
	chainWalker(r, self, qualifiedName, func(md *TypeMetadata) bool {
		if it, ok := md.Instance(name); ok {
			t = it
			return true
		}
		return false
	})
	return t, t != nil
}

// HierarchyWith returns a base-class lookup that consults the current
// program's metadata before the resolver, so a class under analysis
// resolves its own chain before the cache is primed.
func HierarchyWith(r Resolver, self *TypeMetadata) typesystem.HierarchyLookup {
	return selfHierarchy{r: r, self: self}
}

type selfHierarchy struct {
	r    Resolver
	self *TypeMetadata
}

func (h selfHierarchy) BaseClassOf(qualifiedName string) (string, bool) {
	if h.self != nil && strings.EqualFold(h.self.QualifiedName, qualifiedName) {
		if h.self.BaseClass == "" {
			return "", false
		}
		return h.self.BaseClass, true
	}
	return Hierarchy{R: h.r}.BaseClassOf(qualifiedName)
}

// FindConstructor resolves a class's constructor, falling back to an
// inherited one.
func FindConstructor(r Resolver, self *TypeMetadata, qualifiedName string) (*signatures.FunctionInfo, bool) {
	var fn *signatures.FunctionInfo
	chainWalker(r, self, qualifiedName, func(md *TypeMetadata) bool {
		if md.Constructor != nil {
			fn = md.Constructor
			return true
		}
		return false
	})
	return fn, fn != nil
}
