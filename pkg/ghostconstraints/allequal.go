package ghostconstraints

import "github.com/gokando/ghost/pkg/ghost"

// AllEqual requires every variable in its scope to share the same value.
// Its error is the number of variables that disagree with the majority
// value.
type AllEqual struct {
	ghost.BaseConstraint
	counts map[int]int
}

// NewAllEqual builds an AllEqual constraint over scope.
func NewAllEqual(scope []int) *AllEqual {
	return &AllEqual{BaseConstraint: ghost.NewBaseConstraint(scope)}
}

func disagreementCount(counts map[int]int, scopeSize int) int {
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return scopeSize - max
}

func (c *AllEqual) RequiredError(vars []*ghost.Variable) float64 {
	counts := make(map[int]int, len(c.Scope()))
	for _, id := range c.Scope() {
		counts[vars[id].Value()]++
	}
	c.counts = counts
	return float64(disagreementCount(counts, len(c.Scope())))
}

func (c *AllEqual) SimulateDelta(vars []*ghost.Variable, changedIDs []int, newValues []int) float64 {
	if c.counts == nil {
		c.RequiredError(vars)
	}
	counts := make(map[int]int, len(c.counts))
	for k, v := range c.counts {
		counts[k] = v
	}
	before := disagreementCount(counts, len(c.Scope()))
	for _, id := range changedIDs {
		if !c.HasVariable(id) {
			continue
		}
		counts[vars[id].Value()]--
	}
	for i, id := range changedIDs {
		if !c.HasVariable(id) {
			continue
		}
		counts[newValues[i]]++
	}
	after := disagreementCount(counts, len(c.Scope()))
	return float64(after - before)
}

func (c *AllEqual) ConditionalUpdateDataStructures(vars []*ghost.Variable, changedID int, newValue int) {
	if !c.HasVariable(changedID) {
		return
	}
	c.RequiredError(vars)
}
