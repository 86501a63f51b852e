package ghost

import (
	"fmt"
	"strings"
)

// Builder is the user-supplied factory the driver calls once per worker to
// produce an independent model instance. Implementations declare
// variables first, then constraints and (optionally) an objective and
// auxiliary data over those variables. DeclareObjective and
// DeclareAuxiliaryData may return nil to opt out; BuildModel substitutes
// NullObjective / NullAuxiliaryData in that case.
type Builder interface {
	DeclareVariables() ([]*Variable, error)
	DeclareConstraints(vars []*Variable) ([]Constraint, error)
	DeclareObjective(vars []*Variable) (Objective, error)
	DeclareAuxiliaryData(vars []*Variable) (AuxiliaryData, error)
	// Permutation reports whether this model is solved in permutation
	// mode: every accepted move swaps two variables' values instead of
	// assigning one, and the starting multiset of values is preserved for
	// the life of the search.
	Permutation() bool
}

// Model is one independent instance of a problem: its own variables,
// constraints, objective and auxiliary data. The parallel driver builds one
// per worker from the same Builder so workers never share mutable state.
type Model struct {
	Variables   []*Variable
	Constraints []Constraint
	Objective   Objective
	Auxiliary   AuxiliaryData
	Permutation bool
}

// BuildModel constructs one fresh Model from b. Variable and constraint ids
// are assigned here, from slice position, so two models built from the same
// Builder never collide and no id is ever allocated from process-global
// state.
func BuildModel(b Builder) (*Model, error) {
	vars, err := b.DeclareVariables()
	if err != nil {
		return nil, &ModelError{Component: "variables", Err: err}
	}
	if len(vars) == 0 {
		return nil, &ModelError{Component: "variables", Err: fmt.Errorf("a model needs at least one variable")}
	}
	for i, v := range vars {
		v.id = i
	}

	constraints, err := b.DeclareConstraints(vars)
	if err != nil {
		return nil, &ModelError{Component: "constraints", Err: err}
	}
	for i, c := range constraints {
		c.SetID(i)
		for _, id := range c.Scope() {
			if id < 0 || id >= len(vars) {
				return nil, &ModelError{
					Component: fmt.Sprintf("constraint[%d]", i),
					Err:       ErrUnknownVariable,
				}
			}
		}
	}

	objective, err := b.DeclareObjective(vars)
	if err != nil {
		return nil, &ModelError{Component: "objective", Err: err}
	}
	if objective == nil {
		objective = NullObjective{}
	}
	for _, id := range objective.Scope() {
		if id < 0 || id >= len(vars) {
			return nil, &ModelError{Component: "objective", Err: ErrUnknownVariable}
		}
	}

	aux, err := b.DeclareAuxiliaryData(vars)
	if err != nil {
		return nil, &ModelError{Component: "auxiliary data", Err: err}
	}
	if aux == nil {
		aux = NullAuxiliaryData{}
	}

	return &Model{
		Variables:   vars,
		Constraints: constraints,
		Objective:   objective,
		Auxiliary:   aux,
		Permutation: b.Permutation(),
	}, nil
}

// Incidence returns, for each variable id, the sorted ids of the
// constraints whose scope contains it.
func (m *Model) Incidence() [][]int {
	incidence := make([][]int, len(m.Variables))
	for _, c := range m.Constraints {
		for _, id := range c.Scope() {
			incidence[id] = append(incidence[id], c.ID())
		}
	}
	return incidence
}

// FormatAssignment renders the model's current variable values as a single
// line, e.g. "x0=1 x1=9 x2=5". Used by the search unit's diagnostic logging.
func (m *Model) FormatAssignment() string {
	var b strings.Builder
	for i, v := range m.Variables {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// Values returns a snapshot of every variable's current value, indexed by
// variable id.
func (m *Model) Values() []int {
	out := make([]int, len(m.Variables))
	for i, v := range m.Variables {
		out[i] = v.Value()
	}
	return out
}

// ApplyValues moves every variable to the value at its id's position in
// values. Used to restore the best-known snapshot before returning from a
// search, and to seed a custom starting point.
func (m *Model) ApplyValues(values []int) error {
	for i, v := range m.Variables {
		if err := v.SetValue(values[i]); err != nil {
			return err
		}
	}
	return nil
}
