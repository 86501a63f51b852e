package ghostconstraints

import "github.com/gokando/ghost/pkg/ghost"

// FixValue pins a single variable to a target value. Its error is 0 when
// the variable equals the target, 1 otherwise. It is mostly useful to pin
// part of a larger assignment while letting the rest of the model search
// freely.
type FixValue struct {
	ghost.BaseConstraint
	target int
}

// NewFixValue builds a FixValue constraint pinning variableID to target.
func NewFixValue(variableID, target int) *FixValue {
	return &FixValue{BaseConstraint: ghost.NewBaseConstraint([]int{variableID}), target: target}
}

func (c *FixValue) RequiredError(vars []*ghost.Variable) float64 {
	id := c.Scope()[0]
	if vars[id].Value() == c.target {
		return 0
	}
	return 1
}

func (c *FixValue) SimulateDelta(vars []*ghost.Variable, changedIDs []int, newValues []int) float64 {
	id := c.Scope()[0]
	before := c.RequiredError(vars)
	after := before
	for i, cid := range changedIDs {
		if cid != id {
			continue
		}
		if newValues[i] == c.target {
			after = 0
		} else {
			after = 1
		}
	}
	return after - before
}

func (c *FixValue) ConditionalUpdateDataStructures([]*ghost.Variable, int, int) {}
