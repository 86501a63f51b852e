package ghost

import "math/rand"

// AntidoteSearchValueHeuristic transforms each candidate's delta d into the
// weight max(0, -d) — only improving candidates get any weight — and
// samples from that distribution. When every weight is zero it falls back
// to uniform sampling over all candidates.
type AntidoteSearchValueHeuristic struct{}

func (AntidoteSearchValueHeuristic) Name() string { return "antidote-search" }

func (AntidoteSearchValueHeuristic) SelectValue(
	model *Model, varID int, candidates []int, deltas []float64, permutation, optimizing bool, rng *rand.Rand,
) (int, float64) {
	if len(candidates) == 0 {
		return -1, 0
	}
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, d := range deltas {
		w := -d
		if w < 0 {
			w = 0
		}
		weights[i] = w
		total += w
	}
	if total <= 0 {
		idx := rng.Intn(len(candidates))
		return idx, deltas[idx]
	}
	target := rng.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc >= target {
			return i, deltas[i]
		}
	}
	last := len(candidates) - 1
	return last, deltas[last]
}
