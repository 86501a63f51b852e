package ghostconstraints

import "github.com/gokando/ghost/pkg/ghost"

// LinearMode selects which relation a LinearEquation enforces between the
// weighted sum of its scope and its target constant.
type LinearMode int

const (
	// LinearLE enforces sum(coeff*value) <= target.
	LinearLE LinearMode = iota
	// LinearEQ enforces sum(coeff*value) == target.
	LinearEQ
	// LinearGE enforces sum(coeff*value) >= target.
	LinearGE
)

// LinearEquation enforces a weighted sum of its scope against a target
// constant, in one of three relations. Coefficients are matched to scope
// by position.
type LinearEquation struct {
	ghost.BaseConstraint
	coeffs []float64
	target float64
	mode   LinearMode
	sum    float64
}

// NewLinearEquation builds a LinearEquation over scope with the given
// per-variable coefficients (coeffs[i] applies to scope[i]), target
// constant and relation. It panics if len(coeffs) != len(scope), a
// programmer error at model-construction time.
func NewLinearEquation(scope []int, coeffs []float64, target float64, mode LinearMode) *LinearEquation {
	if len(coeffs) != len(scope) {
		panic("ghostconstraints: LinearEquation coefficient count must match scope size")
	}
	cp := make([]float64, len(coeffs))
	copy(cp, coeffs)
	return &LinearEquation{
		BaseConstraint: ghost.NewBaseConstraint(scope),
		coeffs:         cp,
		target:         target,
		mode:           mode,
	}
}

func (c *LinearEquation) errorFromSum(sum float64) float64 {
	switch c.mode {
	case LinearLE:
		if sum > c.target {
			return sum - c.target
		}
		return 0
	case LinearGE:
		if sum < c.target {
			return c.target - sum
		}
		return 0
	default: // LinearEQ
		if sum > c.target {
			return sum - c.target
		}
		return c.target - sum
	}
}

func (c *LinearEquation) computeSum(vars []*ghost.Variable) float64 {
	sum := 0.0
	for i, id := range c.Scope() {
		sum += c.coeffs[i] * float64(vars[id].Value())
	}
	return sum
}

func (c *LinearEquation) RequiredError(vars []*ghost.Variable) float64 {
	c.sum = c.computeSum(vars)
	return c.errorFromSum(c.sum)
}

func (c *LinearEquation) SimulateDelta(vars []*ghost.Variable, changedIDs []int, newValues []int) float64 {
	sum := c.sum
	for i, id := range changedIDs {
		pos, ok := c.Position(id)
		if !ok {
			continue
		}
		sum += c.coeffs[pos] * float64(newValues[i]-vars[id].Value())
	}
	return c.errorFromSum(sum) - c.errorFromSum(c.sum)
}

func (c *LinearEquation) ConditionalUpdateDataStructures(vars []*ghost.Variable, changedID int, newValue int) {
	if !c.HasVariable(changedID) {
		return
	}
	c.sum = c.computeSum(vars)
}
