package ghost

import "math/rand"

// ValueHeuristic picks, among the candidates the search unit enumerated for
// the selected variable, which one to move to. In non-permutation mode
// candidates are domain values; in permutation mode they are partner
// variable ids to swap with. deltas[i] is the cumulated simulated-delta sum
// for candidates[i].
type ValueHeuristic interface {
	// SelectValue returns the index into candidates that was chosen, and
	// that candidate's cumulated delta (the move's min_conflict).
	SelectValue(model *Model, varID int, candidates []int, deltas []float64, permutation, optimizing bool, rng *rand.Rand) (chosenIndex int, minConflict float64)
	Name() string
}
