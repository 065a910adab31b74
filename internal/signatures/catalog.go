package signatures

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pcodekit/pcheck/internal/typesystem"
)

//go:embed builtins.yaml
var builtinsYAML []byte

//go:embed objects.yaml
var objectsYAML []byte

// ObjectInfo is the member surface of one builtin object type.
type ObjectInfo struct {
	Name       string
	Properties map[string]typesystem.Type // lower-cased keys
	Methods    map[string]*FunctionInfo   // lower-cased keys
}

// Catalog holds the builtin function table and the builtin object
// member tables. All lookups are case-insensitive.
type Catalog struct {
	functions map[string]*FunctionInfo
	objects   map[string]*ObjectInfo
}

// Lookup resolves a builtin function by name.
func (c *Catalog) Lookup(name string) (*FunctionInfo, bool) {
	fn, ok := c.functions[strings.ToLower(name)]
	return fn, ok
}

// Object resolves a builtin object's member tables by type name.
func (c *Catalog) Object(name string) (*ObjectInfo, bool) {
	obj, ok := c.objects[strings.ToLower(name)]
	return obj, ok
}

// Method resolves a method on a builtin object type.
func (c *Catalog) Method(object, method string) (*FunctionInfo, bool) {
	obj, ok := c.Object(object)
	if !ok {
		return nil, false
	}
	fn, ok := obj.Methods[strings.ToLower(method)]
	return fn, ok
}

// Property resolves a property on a builtin object type.
func (c *Catalog) Property(object, property string) (typesystem.Type, bool) {
	obj, ok := c.Object(object)
	if !ok {
		return nil, false
	}
	t, ok := obj.Properties[strings.ToLower(property)]
	return t, ok
}

// --- YAML schema ---

// paramSpec is the recursive YAML form of a Parameter. Exactly one of
// the shape keys (type/ref/union/group/variable) is set.
type paramSpec struct {
	Name     string      `yaml:"name"`
	Type     string      `yaml:"type"`
	Ref      string      `yaml:"ref"`
	Union    []paramSpec `yaml:"union"`
	Group    []paramSpec `yaml:"group"`
	Variable *varSpec    `yaml:"variable"`
	Optional bool        `yaml:"optional"`
}

type varSpec struct {
	Min int       `yaml:"min"`
	Max int       `yaml:"max"`
	Of  paramSpec `yaml:"of"`
}

type functionSpec struct {
	Name    string      `yaml:"name"`
	Returns string      `yaml:"returns"`
	Params  []paramSpec `yaml:"params"`
}

type builtinsFile struct {
	Functions []functionSpec `yaml:"functions"`
}

type methodSpec struct {
	Returns string      `yaml:"returns"`
	Params  []paramSpec `yaml:"params"`
}

type objectSpec struct {
	Properties map[string]string     `yaml:"properties"`
	Methods    map[string]methodSpec `yaml:"methods"`
}

type objectsFile struct {
	Objects map[string]objectSpec `yaml:"objects"`
}

func (s paramSpec) build() (Parameter, error) {
	var p Parameter
	switch {
	case s.Variable != nil:
		inner, err := s.Variable.Of.build()
		if err != nil {
			return nil, err
		}
		if s.Variable.Max < s.Variable.Min || s.Variable.Max == 0 {
			return nil, fmt.Errorf("variable parameter bounds {%d-%d} are invalid", s.Variable.Min, s.Variable.Max)
		}
		p = &VariableParameter{Min: s.Variable.Min, Max: s.Variable.Max, Inner: inner}
	case len(s.Group) > 0:
		params, err := buildParams(s.Group)
		if err != nil {
			return nil, err
		}
		p = &ParameterGroup{Params: params}
	case len(s.Union) > 0:
		options, err := buildParams(s.Union)
		if err != nil {
			return nil, err
		}
		p = &UnionParameter{Name: s.Name, Options: options}
	case s.Ref != "":
		p = &ReferenceParameter{Name: s.Name, Target: s.Ref}
	case s.Type != "":
		t := typesystem.ParseTypeName(s.Type)
		if typesystem.IsUnknown(t) {
			return nil, fmt.Errorf("unknown parameter type %q", s.Type)
		}
		p = &SingleParameter{Name: s.Name, Type: t}
	default:
		return nil, fmt.Errorf("parameter %q has no shape", s.Name)
	}

	if s.Optional {
		if _, already := p.(*VariableParameter); !already {
			p = Optional(p)
		}
	}
	return p, nil
}

func buildParams(specs []paramSpec) ([]Parameter, error) {
	params := make([]Parameter, 0, len(specs))
	for _, s := range specs {
		p, err := s.build()
		if err != nil {
			return nil, err
		}
		params = append(params, p)
	}
	return params, nil
}

func buildReturn(name string) typesystem.Type {
	if name == "" {
		return typesystem.TAny
	}
	t := typesystem.ParseTypeName(name)
	if typesystem.IsUnknown(t) {
		return typesystem.TAny
	}
	return t
}

// Load parses the embedded catalogs.
func Load() (*Catalog, error) {
	var bf builtinsFile
	if err := yaml.Unmarshal(builtinsYAML, &bf); err != nil {
		return nil, fmt.Errorf("builtins catalog: %w", err)
	}
	var of objectsFile
	if err := yaml.Unmarshal(objectsYAML, &of); err != nil {
		return nil, fmt.Errorf("objects catalog: %w", err)
	}

	c := &Catalog{
		functions: make(map[string]*FunctionInfo, len(bf.Functions)),
		objects:   make(map[string]*ObjectInfo, len(of.Objects)),
	}

	for _, fs := range bf.Functions {
		params, err := buildParams(fs.Params)
		if err != nil {
			return nil, fmt.Errorf("builtin %s: %w", fs.Name, err)
		}
		c.functions[strings.ToLower(fs.Name)] = &FunctionInfo{
			Name:       fs.Name,
			ReturnType: buildReturn(fs.Returns),
			Parameters: params,
		}
	}

	for name, os := range of.Objects {
		info := &ObjectInfo{
			Name:       name,
			Properties: make(map[string]typesystem.Type, len(os.Properties)),
			Methods:    make(map[string]*FunctionInfo, len(os.Methods)),
		}
		for prop, tn := range os.Properties {
			info.Properties[strings.ToLower(prop)] = buildReturn(tn)
		}
		for mname, ms := range os.Methods {
			params, err := buildParams(ms.Params)
			if err != nil {
				return nil, fmt.Errorf("object %s method %s: %w", name, mname, err)
			}
			info.Methods[strings.ToLower(mname)] = &FunctionInfo{
				Name:       name + "." + mname,
				ReturnType: buildReturn(ms.Returns),
				Parameters: params,
			}
		}
		c.objects[strings.ToLower(name)] = info
	}

	return c, nil
}

// Default is the process-wide catalog built from the embedded data
// files. The files ship with the binary; failing to parse them is a
// programming error, not an input condition.
var Default = mustLoad()

func mustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}
