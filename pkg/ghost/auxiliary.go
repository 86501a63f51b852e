package ghost

// AuxiliaryData is user-provided derived state that shadows the variables —
// a running sum, a precomputed index, anything a constraint or objective
// finds cheaper to read than to recompute. The search unit notifies it on
// every accepted change. When it simulates a move to compare objective
// costs, it also notifies it of the simulated values and rebuilds it with
// UpdateAll after rolling the move back.
type AuxiliaryData interface {
	// UpdateAll rebuilds the auxiliary state from scratch against vars. Used
	// after each sampled start, after a reset/restart, after rolling back a
	// simulated move, and when the best assignment is restored.
	UpdateAll(vars []*Variable)
	// UpdateVariable notifies the auxiliary state that variableID took
	// newValue.
	UpdateVariable(vars []*Variable, variableID int, newValue int)
}

// NullAuxiliaryData is the no-op AuxiliaryData every model without derived
// state uses.
type NullAuxiliaryData struct{}

func (NullAuxiliaryData) UpdateAll([]*Variable)                  {}
func (NullAuxiliaryData) UpdateVariable([]*Variable, int, int)   {}
