package ghost

import "math/rand"

// AdaptiveSearchValueHeuristic picks the candidate with the lowest
// cumulated delta. Ties are broken by the objective's heuristic (when
// optimizing) or uniformly at random (pure satisfaction).
type AdaptiveSearchValueHeuristic struct{}

func (AdaptiveSearchValueHeuristic) Name() string { return "adaptive-search" }

func (AdaptiveSearchValueHeuristic) SelectValue(
	model *Model, varID int, candidates []int, deltas []float64, permutation, optimizing bool, rng *rand.Rand,
) (int, float64) {
	if len(candidates) == 0 {
		return -1, 0
	}
	min := deltas[0]
	var ties []int
	for i, d := range deltas {
		switch {
		case i == 0 || d < min:
			min = d
			ties = ties[:0]
			ties = append(ties, i)
		case d == min:
			ties = append(ties, i)
		}
	}
	if len(ties) == 1 {
		return ties[0], min
	}
	if optimizing {
		tied := make([]int, len(ties))
		for i, idx := range ties {
			tied[i] = candidates[idx]
		}
		var pick int
		if permutation {
			pick = model.Objective.HeuristicValuePermutation(model.Variables, varID, tied)
		} else {
			pick = model.Objective.HeuristicValue(model.Variables, varID, tied)
		}
		if pick >= 0 && pick < len(ties) {
			return ties[pick], min
		}
	}
	return ties[rng.Intn(len(ties))], min
}
