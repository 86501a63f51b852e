package ghost

// ErrorProjection attributes the total satisfaction error to individual
// variables, giving variable selection a per-variable signal instead of
// only a scalar total. GHOST ships two: Adaptive Search (cheap, uniform
// blame) and Culprit Search (probes neighboring values to concentrate blame
// on the variables whose current value actually hurts).
type ErrorProjection interface {
	// Compute rebuilds data.ErrorVariables from scratch against the
	// model's current assignment and constraint errors.
	Compute(model *Model, data *SearchUnitData)
	// Update incrementally adjusts data.ErrorVariables after constraintID's
	// CurrentError changed by delta. Called once per touched constraint on
	// every accepted move, instead of a full Compute.
	Update(model *Model, data *SearchUnitData, constraintID int, delta float64)
	// Name identifies the projection for diagnostics and tests.
	Name() string
}
