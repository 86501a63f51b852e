package ghost

// AdaptiveSearchProjection is GHOST's default error projection: a
// variable's projected error is simply the sum of the current_error of
// every constraint touching it. It is cheap (O(incidence)) and does not
// distinguish between a variable whose value is the actual culprit and one
// that merely happens to share a violated constraint.
type AdaptiveSearchProjection struct{}

func (AdaptiveSearchProjection) Name() string { return "adaptive-search" }

func (AdaptiveSearchProjection) Compute(model *Model, data *SearchUnitData) {
	for v := range data.ErrorVariables {
		var sum float64
		for _, cid := range data.Incidence[v] {
			sum += model.Constraints[cid].CurrentError()
		}
		data.ErrorVariables[v] = sum
	}
}

func (AdaptiveSearchProjection) Update(model *Model, data *SearchUnitData, constraintID int, delta float64) {
	if delta == 0 {
		return
	}
	for _, v := range model.Constraints[constraintID].Scope() {
		data.ErrorVariables[v] += delta
	}
}
