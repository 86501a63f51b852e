package ghostconstraints_test

import (
	"context"
	"testing"
	"time"

	"github.com/gokando/ghost/pkg/ghost"
	"github.com/gokando/ghost/pkg/ghostconstraints"
)

func idsOf(vars []*ghost.Variable) []int {
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	return ids
}

// allDifferentBuilder is the smallest satisfaction scenario: three
// variables over [1, 3] pairwise distinct, which forces exactly the
// assignment {1, 2, 3} in some order.
type allDifferentBuilder struct{ n, start, size int }

func (b allDifferentBuilder) DeclareVariables() ([]*ghost.Variable, error) {
	return ghost.CreateNVariables("x", b.n, b.start, b.size)
}
func (b allDifferentBuilder) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	return []ghost.Constraint{ghostconstraints.NewAllDifferent(idsOf(vars))}, nil
}
func (allDifferentBuilder) DeclareObjective([]*ghost.Variable) (ghost.Objective, error) { return nil, nil }
func (allDifferentBuilder) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}
func (allDifferentBuilder) Permutation() bool { return false }

func TestThreeVariableAllDifferentSatisfies(t *testing.T) {
	result, err := ghost.Solve(context.Background(), allDifferentBuilder{3, 1, 3}, ghost.DefaultOptions(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Satisfied {
		t.Fatalf("expected a satisfying assignment, got %+v", result)
	}
	seen := make(map[int]bool, 3)
	for _, v := range result.Values {
		if seen[v] {
			t.Fatalf("values %v are not pairwise distinct", result.Values)
		}
		seen[v] = true
	}
}

// knapsackSatBuilder packs bottles/sandwiches under a weight capacity with
// no objective: any packing under capacity satisfies it.
type knapsackSatBuilder struct{}

const (
	knapCapacity  = 15
	bottleWeight  = 1
	maxBottles    = 51
	sandWeight    = 3
	maxSandwiches = 11
)

func (knapsackSatBuilder) DeclareVariables() ([]*ghost.Variable, error) {
	bottle, err := ghost.NewVariableRange("bottle", 0, maxBottles)
	if err != nil {
		return nil, err
	}
	sandwich, err := ghost.NewVariableRange("sandwich", 0, maxSandwiches)
	if err != nil {
		return nil, err
	}
	return []*ghost.Variable{bottle, sandwich}, nil
}
func (knapsackSatBuilder) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	return []ghost.Constraint{
		ghostconstraints.NewLinearEquation(idsOf(vars), []float64{bottleWeight, sandWeight}, knapCapacity, ghostconstraints.LinearLE),
	}, nil
}
func (knapsackSatBuilder) DeclareObjective([]*ghost.Variable) (ghost.Objective, error) { return nil, nil }
func (knapsackSatBuilder) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}
func (knapsackSatBuilder) Permutation() bool { return false }

func TestKnapsackAsSatisfaction(t *testing.T) {
	result, err := ghost.Solve(context.Background(), knapsackSatBuilder{}, ghost.DefaultOptions(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Satisfied {
		t.Fatalf("expected a satisfying packing, got %+v", result)
	}
	weight := result.Values[0]*bottleWeight + result.Values[1]*sandWeight
	if weight > knapCapacity {
		t.Fatalf("packing weighs %d, over capacity %d", weight, knapCapacity)
	}
}

// knapsackOptBuilder adds a value-maximizing objective over the same
// capacity constraint.
type knapsackOptBuilder struct{ knapsackSatBuilder }

const (
	bottleValue   = 500
	sandwichValue = 650
)

func (knapsackOptBuilder) DeclareObjective(vars []*ghost.Variable) (ghost.Objective, error) {
	return ghostconstraints.NewLinearObjective(idsOf(vars), []float64{bottleValue, sandwichValue}, ghost.Maximize), nil
}

func TestKnapsackAsOptimization(t *testing.T) {
	result, err := ghost.Solve(context.Background(), knapsackOptBuilder{}, ghost.DefaultOptions(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Satisfied {
		t.Fatalf("expected a satisfying packing, got %+v", result)
	}
	weight := result.Values[0]*bottleWeight + result.Values[1]*sandWeight
	if weight > knapCapacity {
		t.Fatalf("packing weighs %d, over capacity %d", weight, knapCapacity)
	}
	value := float64(result.Values[0])*bottleValue + float64(result.Values[1])*sandwichValue
	// the optimum for this instance packs 15 bottles and 0 sandwiches for
	// a value of 7500; accept anything reasonably close since local search
	// is not exact.
	if value < 7000 {
		t.Fatalf("packed value %g, want a near-optimal packing (>= 7000)", value)
	}
}

// linearLEBuilder is a 4-variable inequality over a modest domain.
type linearLEBuilder struct{}

func (linearLEBuilder) DeclareVariables() ([]*ghost.Variable, error) {
	return ghost.CreateNVariables("x", 4, 0, 11)
}
func (linearLEBuilder) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	weights := []float64{1, 1, 1, 1}
	return []ghost.Constraint{ghostconstraints.NewLinearEquation(idsOf(vars), weights, 20, ghostconstraints.LinearLE)}, nil
}
func (linearLEBuilder) DeclareObjective([]*ghost.Variable) (ghost.Objective, error) { return nil, nil }
func (linearLEBuilder) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}
func (linearLEBuilder) Permutation() bool { return false }

func TestFourVariableLinearInequalitySatisfies(t *testing.T) {
	result, err := ghost.Solve(context.Background(), linearLEBuilder{}, ghost.DefaultOptions(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Satisfied {
		t.Fatalf("expected a satisfying assignment, got %+v", result)
	}
	sum := 0
	for _, v := range result.Values {
		sum += v
	}
	if sum > 20 {
		t.Fatalf("sum %d exceeds target 20", sum)
	}
}

// permutationBuilder is a 5-item permutation-mode problem: positions 0..4
// assigned pairwise distinct, weighted sum equal to a target reachable by
// exactly one permutation family.
type permutationBuilder struct{}

func (permutationBuilder) DeclareVariables() ([]*ghost.Variable, error) {
	return ghost.CreateNVariables("pos", 5, 0, 5)
}
func (permutationBuilder) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	ids := idsOf(vars)
	weights := []float64{1, 2, 3, 4, 5}
	return []ghost.Constraint{
		ghostconstraints.NewAllDifferent(ids),
		ghostconstraints.NewLinearEquation(ids, weights, 40, ghostconstraints.LinearEQ),
	}, nil
}
func (permutationBuilder) DeclareObjective([]*ghost.Variable) (ghost.Objective, error) { return nil, nil }
func (permutationBuilder) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}
func (permutationBuilder) Permutation() bool { return true }

func TestPermutationModePreservesStartingMultiset(t *testing.T) {
	result, err := ghost.Solve(context.Background(), permutationBuilder{}, ghost.DefaultOptions(), 2*time.Second)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[int]bool, 5)
	for _, v := range result.Values {
		if v < 0 || v >= 5 {
			t.Fatalf("value %d outside the shared domain [0,5)", v)
		}
		if seen[v] {
			t.Fatalf("values %v are not a permutation of the shared domain", result.Values)
		}
		seen[v] = true
	}
}

// sixVariableAllDifferentBuilder lets Adaptive Search and Culprit Search be
// compared on the same instance.
type sixVariableAllDifferentBuilder struct{}

func (sixVariableAllDifferentBuilder) DeclareVariables() ([]*ghost.Variable, error) {
	return ghost.CreateNVariables("x", 6, 1, 6)
}
func (sixVariableAllDifferentBuilder) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	return []ghost.Constraint{ghostconstraints.NewAllDifferent(idsOf(vars))}, nil
}
func (sixVariableAllDifferentBuilder) DeclareObjective([]*ghost.Variable) (ghost.Objective, error) {
	return nil, nil
}
func (sixVariableAllDifferentBuilder) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}
func (sixVariableAllDifferentBuilder) Permutation() bool { return false }

func TestAdaptiveAndCulpritSearchBothSatisfySixVariableAllDifferent(t *testing.T) {
	adaptive := ghost.DefaultOptions()
	culprit := ghost.NewOptions(ghost.WithHeuristics(
		ghost.AntidoteSearchVariableHeuristic{},
		ghost.AntidoteSearchValueHeuristic{},
		&ghost.CulpritSearchProjection{},
	))

	for name, options := range map[string]ghost.Options{"adaptive": adaptive, "culprit": culprit} {
		t.Run(name, func(t *testing.T) {
			result, err := ghost.Solve(context.Background(), sixVariableAllDifferentBuilder{}, options, 2*time.Second)
			if err != nil {
				t.Fatal(err)
			}
			if !result.Satisfied {
				t.Fatalf("%s: expected a satisfying assignment, got %+v", name, result)
			}
		})
	}
}

func TestSolveTerminatesWithinBudgetOnAnUnsatisfiableModel(t *testing.T) {
	// Two variables over a single shared value cannot both be pairwise
	// distinct: AllDifferent's error can never reach zero, so Search must
	// still return once the budget elapses instead of looping forever.
	build := allDifferentBuilder{2, 1, 1}

	budget := 200 * time.Millisecond
	start := time.Now()
	result, err := ghost.Solve(context.Background(), build, ghost.DefaultOptions(), budget)
	elapsed := time.Since(start)
	if err != nil {
		t.Fatal(err)
	}
	if result.Satisfied {
		t.Fatalf("a single-value domain cannot satisfy AllDifferent over 2 variables")
	}
	if elapsed > budget+500*time.Millisecond {
		t.Fatalf("Search ran %v, well past its %v budget", elapsed, budget)
	}
}
