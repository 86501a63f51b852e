package ghost

import "math/rand"

// VariableHeuristic picks which variable the next move will touch.
type VariableHeuristic interface {
	// SelectVariable returns a variable id, or -1 if every variable is
	// ineligible (tabu or isolated).
	SelectVariable(model *Model, data *SearchUnitData, rng *rand.Rand) int
	Name() string
}
