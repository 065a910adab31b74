package signatures

import (
	"fmt"
	"strings"

	"github.com/pcodekit/pcheck/internal/config"
	"github.com/pcodekit/pcheck/internal/typesystem"
)

// WarningKind classifies validation warnings.
type WarningKind int

const (
	// ImplicitNarrowingToAppClass: object/any passed where a specific
	// application class is expected.
	ImplicitNarrowingToAppClass WarningKind = iota
)

// Warning is a valid-but-suspicious argument.
type Warning struct {
	Kind     WarningKind
	ArgIndex int
	Expected string
	Found    string
	Function string
}

func (w Warning) String() string {
	switch w.Kind {
	case ImplicitNarrowingToAppClass:
		return fmt.Sprintf("argument %d of %s: %s implicitly narrowed to %s",
			w.ArgIndex+1, w.Function, w.Found, w.Expected)
	}
	return fmt.Sprintf("argument %d of %s: expected %s, found %s",
		w.ArgIndex+1, w.Function, w.Expected, w.Found)
}

// ValidationResult is the outcome of matching a call site against a
// signature.
type ValidationResult struct {
	IsValid     bool
	Warnings    []Warning
	Explanation string
}

// Validate performs a depth-first backtracking match of the flat
// argument list against fn's parameter tree. Repetition counts of
// VariableParameters are explored greedily with backtracking: when a
// later sibling cannot match, the matcher retries with fewer
// repetitions. The search carries a step budget so pathological
// signatures fail instead of hanging.
func Validate(fn *FunctionInfo, args []typesystem.Type, h typesystem.HierarchyLookup) ValidationResult {
	m := &matcher{fn: fn, args: args, h: h, budget: config.ValidatorStepBudget}
	state := matchState{}
	final, ok := m.matchSeq(fn.Parameters, 0, state)
	if !ok {
		expl := m.failure
		if expl == "" {
			expl = fmt.Sprintf("arguments do not match %s", fn.String())
		}
		return ValidationResult{IsValid: false, Explanation: expl}
	}
	if final.argIndex != len(args) {
		return ValidationResult{
			IsValid: false,
			Explanation: fmt.Sprintf("%s accepts %d argument(s) here; %d supplied",
				fn.Name, final.argIndex, len(args)),
		}
	}
	return ValidationResult{IsValid: true, Warnings: final.warnings}
}

// matchState is the immutable cursor of one search branch. Warnings are
// copy-appended so abandoned branches leave no trace.
type matchState struct {
	argIndex int
	warnings []Warning
}

type matcher struct {
	fn      *FunctionInfo
	args    []typesystem.Type
	h       typesystem.HierarchyLookup
	budget  int
	failure string
}

// matchSeq matches params[pi:] starting at state; on success the
// returned state has consumed every argument the sequence accepts.
// The sequence succeeds only if the *remainder* of the whole signature
// succeeds, which is what forces backtracking through repetition
// counts: matchSeq for a VariableParameter tries each count and
// recurses into the rest of the sequence before committing.
func (m *matcher) matchSeq(params []Parameter, pi int, state matchState) (matchState, bool) {
	if m.budget <= 0 {
		m.failure = fmt.Sprintf("%s: signature match exceeded search budget", m.fn.Name)
		return state, false
	}
	m.budget--

	if pi == len(params) {
		return state, true
	}

	switch p := params[pi].(type) {
	case *VariableParameter:
		// Greedy first: try the highest repetition count that fits,
		// then back off until the rest of the sequence matches.
		states := m.repetitionStates(p, state)
		for i := len(states) - 1; i >= 0; i-- {
			if out, ok := m.matchSeq(params, pi+1, states[i]); ok {
				return out, true
			}
		}
		return state, false

	case *ParameterGroup:
		// Splice the group's children into the surrounding sequence.
		// Matching the group in isolation would commit to its first
		// internal solution, and a repetition inside the group could
		// never back off in favor of a sibling that follows it.
		return m.matchSeq(m.splice(p.Params, params, pi), 0, state)

	case *UnionParameter:
		for _, opt := range p.Options {
			if out, ok := m.matchSeq(m.splice([]Parameter{opt}, params, pi), 0, state); ok {
				return out, true
			}
		}
		if m.failure == "" {
			m.failure = m.explainAt(p, state.argIndex)
		}
		return state, false

	default:
		mid, ok := m.matchLeaf(params[pi], state)
		if !ok {
			return state, false
		}
		return m.matchSeq(params, pi+1, mid)
	}
}

// splice prepends inner to the tail of outer after position pi, in a
// fresh slice so catalog parameter lists are never aliased.
func (m *matcher) splice(inner, outer []Parameter, pi int) []Parameter {
	out := make([]Parameter, 0, len(inner)+len(outer)-pi-1)
	out = append(out, inner...)
	return append(out, outer[pi+1:]...)
}

// repetitionStates returns the reachable states after 0..n repetitions
// of v's inner parameter, index i holding the state after i
// repetitions, capped by v.Max and by where matching stops. States
// below v.Min are excluded.
func (m *matcher) repetitionStates(v *VariableParameter, state matchState) []matchState {
	states := []matchState{state}
	cur := state
	for rep := 1; rep <= v.Max; rep++ {
		next, ok := m.matchSeq([]Parameter{v.Inner}, 0, cur)
		if !ok || next.argIndex == cur.argIndex {
			break
		}
		states = append(states, next)
		cur = next
	}
	if v.Min > 0 {
		if v.Min >= len(states) {
			return nil
		}
		states = states[v.Min:]
	}
	return states
}

// matchLeaf matches a single argument against a Single or Reference
// parameter.
func (m *matcher) matchLeaf(p Parameter, state matchState) (matchState, bool) {
	if state.argIndex >= len(m.args) {
		if m.failure == "" {
			m.failure = fmt.Sprintf("%s: missing argument for parameter %s", m.fn.Name, p)
		}
		return state, false
	}
	arg := m.args[state.argIndex]

	switch leaf := p.(type) {
	case *SingleParameter:
		ok, warn := typesystem.IsAssignableFrom(leaf.Type, arg, m.h)
		if !ok {
			if m.failure == "" {
				m.failure = m.explainAt(p, state.argIndex)
			}
			return state, false
		}
		next := matchState{argIndex: state.argIndex + 1, warnings: state.warnings}
		if warn == typesystem.WarnImplicitNarrowingToAppClass {
			next.warnings = append(append([]Warning(nil), state.warnings...), Warning{
				Kind:     ImplicitNarrowingToAppClass,
				ArgIndex: state.argIndex,
				Expected: leaf.Type.String(),
				Found:    arg.String(),
				Function: m.fn.Name,
			})
		}
		return next, true

	case *ReferenceParameter:
		if !m.matchesReference(leaf, arg) {
			if m.failure == "" {
				m.failure = m.explainAt(p, state.argIndex)
			}
			return state, false
		}
		return matchState{argIndex: state.argIndex + 1, warnings: state.warnings}, true
	}

	return state, false
}

// matchesReference accepts a definition reference of the right kind,
// or Any. A bound Field/Record value also satisfies @Field/@Record:
// PeopleCode call sites pass RECORD.FIELD references that inference
// types as bound fields.
func (m *matcher) matchesReference(p *ReferenceParameter, arg typesystem.Type) bool {
	if typesystem.IsAny(arg) {
		return true
	}
	if ref, ok := arg.(typesystem.Reference); ok {
		name, ok := typesystem.BuiltinObjectName(ref.Target)
		return ok && strings.EqualFold(name, p.Target)
	}
	if name, ok := typesystem.BuiltinObjectName(arg); ok {
		return strings.EqualFold(name, p.Target)
	}
	return false
}

func (m *matcher) explainAt(p Parameter, argIndex int) string {
	found := "nothing"
	if argIndex < len(m.args) {
		found = m.args[argIndex].String()
	}
	return fmt.Sprintf("%s: argument %d does not match parameter %s (found %s)",
		m.fn.Name, argIndex+1, p, found)
}
