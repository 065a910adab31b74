package typesystem

import "strings"

// builtinObjectNames is the fixed vocabulary of builtin object types.
// Canonical casing is the value; lookup is case-insensitive.
var builtinObjectNames = map[string]string{
	"object":         "Object",
	"record":         "Record",
	"field":          "Field",
	"row":            "Row",
	"rowset":         "Rowset",
	"message":        "Message",
	"xmldoc":         "XmlDoc",
	"xmlnode":        "XmlNode",
	"soapdoc":        "SOAPDoc",
	"file":           "File",
	"sql":            "SQL",
	"grid":           "Grid",
	"gridcolumn":     "GridColumn",
	"page":           "Page",
	"chart":          "Chart",
	"apiobject":      "ApiObject",
	"javaobject":     "JavaObject",
	"component":      "Component",
	"exception":      "Exception",
	"transferobject": "TransferObject",
}

// LookupBuiltinObject resolves a name to its canonical builtin object
// type, case-insensitively.
func LookupBuiltinObject(name string) (BuiltinObject, bool) {
	canonical, ok := builtinObjectNames[strings.ToLower(name)]
	if !ok {
		return BuiltinObject{}, false
	}
	return BuiltinObject{Name: canonical}, true
}

// ParseTypeName converts a textual type name to a Type. It understands
// primitives (integer and float fold into number), "any", builtin
// object names, "array of T" / "arrayN of T" forms, and colon-delimited
// application-class paths. Unrecognized names map to Unknown.
func ParseTypeName(name string) Type {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)

	switch lower {
	case "string":
		return TString
	case "number", "integer", "int", "float", "decimal":
		return TNumber
	case "boolean", "bool":
		return TBoolean
	case "date":
		return TDate
	case "time":
		return TTime
	case "datetime":
		return TDateTime
	case "any":
		return TAny
	}

	// array of T, array2 of T, arrayN of array of T ...
	if strings.HasPrefix(lower, "array") {
		rest := lower[len("array"):]
		dims := 1
		if i := strings.Index(rest, " of "); i >= 0 {
			if n, ok := parseDims(rest[:i]); ok {
				dims = n
			}
			elem := ParseTypeName(name[len(name)-len(rest)+i+len(" of "):])
			if inner, ok := elem.(Array); ok {
				return Array{Dimensions: dims + inner.Dimensions, Element: inner.Element}
			}
			if IsUnknown(elem) {
				elem = TAny
			}
			return Array{Dimensions: dims, Element: elem}
		}
		if rest == "" {
			return Array{Dimensions: 1, Element: TAny}
		}
		if n, ok := parseDims(rest); ok {
			return Array{Dimensions: n, Element: TAny}
		}
	}

	if b, ok := LookupBuiltinObject(name); ok {
		return b
	}

	if strings.Contains(name, ":") {
		return AppClass{QualifiedName: name}
	}

	return TUnknown
}

func parseDims(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 {
		return 0, false
	}
	return n, true
}
