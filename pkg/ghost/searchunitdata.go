package ghost

// SearchUnitData is the ephemeral per-worker search state: everything that
// changes move to move but does not belong to the model itself, so a model
// can be reused across independent searches by resetting only this struct.
type SearchUnitData struct {
	NumVariables   int
	NumConstraints int
	IsOptimization bool

	// Incidence[v] lists, in ascending order, the ids of the constraints
	// whose scope contains variable v.
	Incidence [][]int

	// TabuList[v] is the move counter value below which variable v may not
	// be selected again.
	TabuList []int

	// ErrorVariables[v] is the projected error currently attributed to
	// variable v, kept in sync by the active ErrorProjection.
	ErrorVariables []float64

	CurrentSatError float64
	CurrentOptCost  float64
	BestSatError    float64
	BestOptCost     float64

	Restarts         int
	Resets           int
	LocalMoves       int
	SearchIterations int
	LocalMinimum     int
	PlateauMoves     int
	PlateauEscapes   int
}

// NewSearchUnitData allocates a zeroed SearchUnitData sized for a model with
// the given incidence matrix, except BestSatError, which starts at -1 to
// mark that no best assignment has been recorded yet.
func NewSearchUnitData(incidence [][]int, numConstraints int, isOptimization bool) *SearchUnitData {
	n := len(incidence)
	return &SearchUnitData{
		NumVariables:   n,
		NumConstraints: numConstraints,
		IsOptimization: isOptimization,
		Incidence:      incidence,
		TabuList:       make([]int, n),
		ErrorVariables: make([]float64, n),
		BestSatError:   -1,
		BestOptCost:    0,
	}
}

// IsTabu reports whether variable v may not be selected at the current
// move counter.
func (d *SearchUnitData) IsTabu(v int) bool {
	return d.TabuList[v] > d.LocalMoves
}

// MarkTabu forbids variable v from selection until LocalMoves reaches
// LocalMoves+duration.
func (d *SearchUnitData) MarkTabu(v, duration int) {
	d.TabuList[v] = d.LocalMoves + duration
}

// IsIsolated reports whether variable v has no constraint touching it and
// is not exempt by the optimizing-with-satisfied-config rule (4.4).
func (d *SearchUnitData) IsIsolated(v int) bool {
	if len(d.Incidence[v]) > 0 {
		return false
	}
	return !(d.IsOptimization && d.CurrentSatError == 0)
}

// CountTabu returns the number of variables still tabu at the current move
// counter. This shrinks on its own as LocalMoves advances past stored
// deadlines, unlike a simple event tally.
func (d *SearchUnitData) CountTabu() int {
	n := 0
	for v := range d.TabuList {
		if d.IsTabu(v) {
			n++
		}
	}
	return n
}
