package ghost

// CulpritSearchProjection is GHOST's sharper, more expensive error
// projection. For every constraint with a positive current error, it
// probes each scope variable's previous and next domain value (wrapping;
// a two-value domain probes its other value twice, a singleton probes
// itself), sums the simulated deltas those probes would cause, and turns
// smaller probed deltas into larger blame: a variable whose neighboring
// values would make things worse if changed is *not* the culprit, so it
// gets a smaller share of the constraint's error. Shares are normalized to
// sum back to the constraint's current error, then accumulated into the
// variable-error vector.
//
// Because recomputing a constraint's share from scratch on every move
// would be as expensive as a full Compute, CulpritSearchProjection keeps
// the last share vector per constraint and Update subtracts the old
// contribution, recomputes only the touched constraint's share, and adds
// the new contribution back in.
type CulpritSearchProjection struct {
	shares map[int][]float64
}

func (p *CulpritSearchProjection) Name() string { return "culprit-search" }

func (p *CulpritSearchProjection) Compute(model *Model, data *SearchUnitData) {
	for v := range data.ErrorVariables {
		data.ErrorVariables[v] = 0
	}
	p.shares = make(map[int][]float64, len(model.Constraints))
	for _, c := range model.Constraints {
		if c.CurrentError() <= 0 {
			continue
		}
		share := culpritShare(c, model.Variables)
		p.shares[c.ID()] = share
		scope := c.Scope()
		for i, v := range scope {
			data.ErrorVariables[v] += share[i]
		}
	}
}

func (p *CulpritSearchProjection) Update(model *Model, data *SearchUnitData, constraintID int, delta float64) {
	if p.shares == nil {
		p.shares = make(map[int][]float64)
	}
	c := model.Constraints[constraintID]
	scope := c.Scope()
	if old, ok := p.shares[constraintID]; ok {
		for i, v := range scope {
			data.ErrorVariables[v] -= old[i]
		}
		delete(p.shares, constraintID)
	}
	if c.CurrentError() <= 0 {
		return
	}
	share := culpritShare(c, model.Variables)
	p.shares[constraintID] = share
	for i, v := range scope {
		data.ErrorVariables[v] += share[i]
	}
}

// culpritShare computes how much of c's current error each of its scope
// variables is to blame for.
func culpritShare(c Constraint, vars []*Variable) []float64 {
	scope := c.Scope()
	probed := make([]float64, len(scope))
	maxProbed := 0.0
	for i, id := range scope {
		v := vars[id]
		prevVal, nextVal := neighborValues(v)
		d := c.SimulateDelta(vars, []int{id}, []int{prevVal}) +
			c.SimulateDelta(vars, []int{id}, []int{nextVal})
		probed[i] = d
		if i == 0 || d > maxProbed {
			maxProbed = d
		}
	}

	inverted := make([]float64, len(scope))
	total := 0.0
	for i, d := range probed {
		inverted[i] = maxProbed - d
		total += inverted[i]
	}

	share := make([]float64, len(scope))
	currentError := c.CurrentError()
	if total > 0 {
		for i, w := range inverted {
			share[i] = currentError * w / total
		}
	} else {
		even := currentError / float64(len(scope))
		for i := range share {
			share[i] = even
		}
	}
	return share
}

// neighborValues returns v's previous and next domain values, wrapping at
// either end. A two-value domain returns its other value for both (there is
// only one neighbor to probe); a singleton domain returns its own value for
// both (there is no other value to probe).
func neighborValues(v *Variable) (prev, next int) {
	size := v.DomainSize()
	if size == 1 {
		return v.Value(), v.Value()
	}
	if size == 2 {
		full := v.FullDomain()
		other := full[0]
		if other == v.Value() {
			other = full[1]
		}
		return other, other
	}
	window := v.PartialDomain(3)
	current := v.Value()
	neighbors := make([]int, 0, 2)
	for _, val := range window {
		if val != current {
			neighbors = append(neighbors, val)
		}
	}
	return neighbors[0], neighbors[1]
}
