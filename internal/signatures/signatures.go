// Package signatures models function signatures as declarative
// parameter trees and validates call sites against them. The builtin
// function and object catalogs are data files, not code.
package signatures

import (
	"fmt"
	"strings"

	"github.com/pcodekit/pcheck/internal/typesystem"
)

// Parameter is one node of a signature's parameter tree. The variant
// set is closed.
type Parameter interface {
	parameterNode()
	String() string
}

// SingleParameter accepts one argument of a fixed type.
type SingleParameter struct {
	Name string
	Type typesystem.Type
}

func (p *SingleParameter) parameterNode() {}
func (p *SingleParameter) String() string {
	if p.Name != "" {
		return fmt.Sprintf("%s: %s", p.Name, p.Type)
	}
	return fmt.Sprint(p.Type)
}

// ReferenceParameter accepts a definition reference (@Record, @Field,
// ...). Target names the referenced definition kind.
type ReferenceParameter struct {
	Name   string
	Target string
}

func (p *ReferenceParameter) parameterNode() {}
func (p *ReferenceParameter) String() string {
	if p.Name != "" {
		return fmt.Sprintf("%s: @%s", p.Name, p.Target)
	}
	return "@" + p.Target
}

// UnionParameter accepts one argument matching any of its options;
// the first structural match wins.
type UnionParameter struct {
	Name    string
	Options []Parameter
}

func (p *UnionParameter) parameterNode() {}
func (p *UnionParameter) String() string {
	parts := make([]string, len(p.Options))
	for i, o := range p.Options {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}

// ParameterGroup matches its sub-parameters contiguously as a unit.
type ParameterGroup struct {
	Params []Parameter
}

func (p *ParameterGroup) parameterNode() {}
func (p *ParameterGroup) String() string {
	parts := make([]string, len(p.Params))
	for i, o := range p.Params {
		parts[i] = o.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// VariableParameter matches its inner parameter between Min and Max
// times. Min 0, Max 1 expresses an optional parameter.
type VariableParameter struct {
	Min   int
	Max   int
	Inner Parameter
}

func (p *VariableParameter) parameterNode() {}
func (p *VariableParameter) String() string {
	return fmt.Sprintf("%s{%d-%d}", p.Inner, p.Min, p.Max)
}

// FunctionInfo describes a callable: name, return type, and the
// ordered parameter tree.
type FunctionInfo struct {
	Name       string
	ReturnType typesystem.Type
	Parameters []Parameter
}

// String renders the signature for diagnostics.
func (f *FunctionInfo) String() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.String()
	}
	ret := ""
	if f.ReturnType != nil && !typesystem.IsUnknown(f.ReturnType) {
		ret = " returns " + f.ReturnType.String()
	}
	return fmt.Sprintf("%s(%s)%s", f.Name, strings.Join(parts, ", "), ret)
}

// Optional wraps a parameter as {0-1}.
func Optional(inner Parameter) *VariableParameter {
	return &VariableParameter{Min: 0, Max: 1, Inner: inner}
}
