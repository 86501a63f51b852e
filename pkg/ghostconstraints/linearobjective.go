package ghostconstraints

import "github.com/gokando/ghost/pkg/ghost"

// LinearObjective is a weighted sum of a subset of variables, minimized or
// maximized. Maximize is implemented by negating the weighted sum
// internally, per ghost.Objective's contract that RequiredCost already
// returns the sign-flipped value for a Maximize objective.
type LinearObjective struct {
	scope     []int
	positions map[int]int
	weights   []float64
	kind      ghost.ObjectiveKind
	cost      float64
}

// NewLinearObjective builds a LinearObjective over scope with per-variable
// weights (weights[i] applies to scope[i]) and the given direction.
func NewLinearObjective(scope []int, weights []float64, kind ghost.ObjectiveKind) *LinearObjective {
	if len(weights) != len(scope) {
		panic("ghostconstraints: LinearObjective weight count must match scope size")
	}
	positions := make(map[int]int, len(scope))
	cp := make([]int, len(scope))
	copy(cp, scope)
	for i, id := range cp {
		positions[id] = i
	}
	w := make([]float64, len(weights))
	copy(w, weights)
	return &LinearObjective{scope: cp, positions: positions, weights: w, kind: kind}
}

func (o *LinearObjective) Kind() ghost.ObjectiveKind { return o.kind }
func (o *LinearObjective) IsOptimization() bool      { return o.kind != ghost.Null }
func (o *LinearObjective) Scope() []int              { return o.scope }

func (o *LinearObjective) HasVariable(id int) bool {
	_, ok := o.positions[id]
	return ok
}

func (o *LinearObjective) RequiredCost(vars []*ghost.Variable) float64 {
	sum := 0.0
	for i, id := range o.scope {
		sum += o.weights[i] * float64(vars[id].Value())
	}
	if o.kind == ghost.Maximize {
		return -sum
	}
	return sum
}

func (o *LinearObjective) Cost() float64       { return o.cost }
func (o *LinearObjective) SetCost(c float64)   { o.cost = c }

func (o *LinearObjective) Update(vars []*ghost.Variable, variableID int, newValue int) {
	o.cost = o.RequiredCost(vars)
}

// HeuristicValue prefers, among tied candidates, the one that most improves
// (or least worsens) the weighted sum for variableID.
func (o *LinearObjective) HeuristicValue(vars []*ghost.Variable, variableID int, candidates []int) int {
	pos, ok := o.positions[variableID]
	if !ok || len(candidates) == 0 {
		return 0
	}
	weight := o.weights[pos]
	if o.kind == ghost.Maximize {
		weight = -weight
	}
	best := 0
	bestVal := weight * float64(candidates[0])
	for i := 1; i < len(candidates); i++ {
		v := weight * float64(candidates[i])
		if v < bestVal {
			bestVal = v
			best = i
		}
	}
	return best
}

// HeuristicValuePermutation breaks ties between partner variables by
// preferring the swap that most improves the weighted sum.
func (o *LinearObjective) HeuristicValuePermutation(vars []*ghost.Variable, variableID int, candidatePartners []int) int {
	posA, ok := o.positions[variableID]
	if !ok || len(candidatePartners) == 0 {
		return 0
	}
	weightA := o.weights[posA]
	valueA := float64(vars[variableID].Value())
	best := 0
	bestCost := o.swapCost(weightA, valueA, candidatePartners[0], vars)
	for i := 1; i < len(candidatePartners); i++ {
		c := o.swapCost(weightA, valueA, candidatePartners[i], vars)
		if c < bestCost {
			bestCost = c
			best = i
		}
	}
	return best
}

// swapCost returns how much the weighted sum changes (sign-flipped for
// Maximize) when variableID and partner exchange values.
func (o *LinearObjective) swapCost(weightA, valueA float64, partner int, vars []*ghost.Variable) float64 {
	valueB := float64(vars[partner].Value())
	cost := weightA * (valueB - valueA)
	if posB, ok := o.positions[partner]; ok {
		cost += o.weights[posB] * (valueA - valueB)
	}
	if o.kind == ghost.Maximize {
		return -cost
	}
	return cost
}
