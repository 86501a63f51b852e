package ghostconstraints

import "github.com/gokando/ghost/pkg/ghost"

// AllDifferent requires every variable in its scope to take a distinct
// value. Its error is the number of "extra" occurrences across the scope:
// zero variables sharing a value contributes nothing, three variables
// sharing one value contributes two.
type AllDifferent struct {
	ghost.BaseConstraint
	counts map[int]int
}

// NewAllDifferent builds an AllDifferent constraint over scope.
func NewAllDifferent(scope []int) *AllDifferent {
	return &AllDifferent{BaseConstraint: ghost.NewBaseConstraint(scope)}
}

func extraOccurrences(counts map[int]int) int {
	extra := 0
	for _, n := range counts {
		if n > 1 {
			extra += n - 1
		}
	}
	return extra
}

func (c *AllDifferent) RequiredError(vars []*ghost.Variable) float64 {
	counts := make(map[int]int, len(c.Scope()))
	for _, id := range c.Scope() {
		counts[vars[id].Value()]++
	}
	c.counts = counts
	return float64(extraOccurrences(counts))
}

func (c *AllDifferent) SimulateDelta(vars []*ghost.Variable, changedIDs []int, newValues []int) float64 {
	if c.counts == nil {
		c.RequiredError(vars)
	}
	counts := make(map[int]int, len(c.counts))
	for k, v := range c.counts {
		counts[k] = v
	}
	before := extraOccurrences(counts)
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
	after := extraOccurrences(counts)
	return float64(after - before)
}

func (c *AllDifferent) ConditionalUpdateDataStructures(vars []*ghost.Variable, changedID int, newValue int) {
	if !c.HasVariable(changedID) {
		return
	}
	c.RequiredError(vars)
}
