package ghost

import "math/rand"

// AntidoteSearchVariableHeuristic treats the projected-error vector as
// unnormalized sampling weights, after masking tabu variables to zero. When
// every weight is zero it falls back to uniform sampling over the untabu
// variables.
type AntidoteSearchVariableHeuristic struct{}

func (AntidoteSearchVariableHeuristic) Name() string { return "antidote-search" }

func (AntidoteSearchVariableHeuristic) SelectVariable(model *Model, data *SearchUnitData, rng *rand.Rand) int {
	weights := make([]float64, data.NumVariables)
	var untabu []int
	total := 0.0
	for v := 0; v < data.NumVariables; v++ {
		if data.IsTabu(v) {
			continue
		}
		untabu = append(untabu, v)
		w := data.ErrorVariables[v]
		if w < 0 {
			w = 0
		}
		weights[v] = w
		total += w
	}
	if len(untabu) == 0 {
		return -1
	}
	if total <= 0 {
		return untabu[rng.Intn(len(untabu))]
	}
	target := rng.Float64() * total
	acc := 0.0
	for _, v := range untabu {
		acc += weights[v]
		if acc >= target {
			return v
		}
	}
	return untabu[len(untabu)-1]
}
