package metadata

import "github.com/pcodekit/pcheck/internal/typesystem"

// Resolver supplies cross-program metadata: the engine consumes it,
// the host implements it (database, file system, test fixture). Every
// method degrades gracefully: a miss means "no metadata available",
// never an error, because the engine must keep working with no
// backing store at all.
type Resolver interface {
	// GetTypeMetadata returns the metadata for a qualified
	// application-class name.
	GetTypeMetadata(qualifiedName string) (*TypeMetadata, bool)
	// GetFieldType returns the data type of a record field, or Any
	// when the record is unknown.
	GetFieldType(recordName, fieldName string) typesystem.Type
	// GetClassesInPackage lists class names under a package path.
	GetClassesInPackage(path string) []string
}

// NullResolver resolves nothing. Standalone analysis (no database, no
// project) runs against it.
type NullResolver struct{}

func (NullResolver) GetTypeMetadata(string) (*TypeMetadata, bool) { return nil, false }
func (NullResolver) GetFieldType(string, string) typesystem.Type  { return typesystem.TAny }
func (NullResolver) GetClassesInPackage(string) []string          { return nil }

// Hierarchy adapts a Resolver to the assignability layer's base-class
// lookup.
type Hierarchy struct {
	R Resolver
}

func (h Hierarchy) BaseClassOf(qualifiedName string) (string, bool) {
	if h.R == nil {
		return "", false
	}
	md, ok := h.R.GetTypeMetadata(qualifiedName)
	if !ok || md == nil || md.BaseClass == "" {
		return "", false
	}
	return md.BaseClass, true
}
