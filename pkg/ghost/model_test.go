package ghost

import (
	"errors"
	"testing"
)

type stubBuilder struct {
	vars        []*Variable
	constraints []Constraint
	objective   Objective
	aux         AuxiliaryData
	permutation bool
	varsErr     error
	constrErr   error
}

func (s stubBuilder) DeclareVariables() ([]*Variable, error) { return s.vars, s.varsErr }
func (s stubBuilder) DeclareConstraints(vars []*Variable) ([]Constraint, error) {
	return s.constraints, s.constrErr
}
func (s stubBuilder) DeclareObjective([]*Variable) (Objective, error)         { return s.objective, nil }
func (s stubBuilder) DeclareAuxiliaryData([]*Variable) (AuxiliaryData, error) { return s.aux, nil }
func (s stubBuilder) Permutation() bool                                      { return s.permutation }

type stubConstraint struct {
	BaseConstraint
}

func (*stubConstraint) RequiredError([]*Variable) float64               { return 0 }
func (*stubConstraint) SimulateDelta([]*Variable, []int, []int) float64 { return 0 }
func (*stubConstraint) ConditionalUpdateDataStructures([]*Variable, int, int) {}

func threeVars(t *testing.T) []*Variable {
	t.Helper()
	vars, err := CreateNVariables("x", 3, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	return vars
}

func TestBuildModelAssignsSequentialIDs(t *testing.T) {
	vars := threeVars(t)
	c := &stubConstraint{BaseConstraint: NewBaseConstraint([]int{0, 1})}
	model, err := BuildModel(stubBuilder{vars: vars, constraints: []Constraint{c}})
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range model.Variables {
		if v.ID() != i {
			t.Fatalf("variable %d has id %d", i, v.ID())
		}
	}
	for i, c := range model.Constraints {
		if c.ID() != i {
			t.Fatalf("constraint %d has id %d", i, c.ID())
		}
	}
}

func TestBuildModelRejectsEmptyVariables(t *testing.T) {
	_, err := BuildModel(stubBuilder{})
	if err == nil {
		t.Fatal("expected error for empty variable set")
	}
}

func TestBuildModelRejectsUnknownConstraintScope(t *testing.T) {
	vars := threeVars(t)
	c := &stubConstraint{BaseConstraint: NewBaseConstraint([]int{0, 9})}
	_, err := BuildModel(stubBuilder{vars: vars, constraints: []Constraint{c}})
	var modelErr *ModelError
	if !errors.As(err, &modelErr) || !errors.Is(modelErr.Err, ErrUnknownVariable) {
		t.Fatalf("got %v, want ModelError wrapping ErrUnknownVariable", err)
	}
}

func TestBuildModelDefaultsNilObjectiveAndAux(t *testing.T) {
	vars := threeVars(t)
	model, err := BuildModel(stubBuilder{vars: vars})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := model.Objective.(NullObjective); !ok {
		t.Fatalf("expected NullObjective, got %T", model.Objective)
	}
	if _, ok := model.Auxiliary.(NullAuxiliaryData); !ok {
		t.Fatalf("expected NullAuxiliaryData, got %T", model.Auxiliary)
	}
}

func TestModelValuesAndApplyValues(t *testing.T) {
	vars := threeVars(t)
	model, err := BuildModel(stubBuilder{vars: vars})
	if err != nil {
		t.Fatal(err)
	}
	if err := model.ApplyValues([]int{2, 1, 0}); err != nil {
		t.Fatal(err)
	}
	got := model.Values()
	want := []int{2, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values() = %v, want %v", got, want)
		}
	}
}
