package ghost

import (
	"context"
	"math/rand"
	"time"
)

// SearchUnit runs one independent local search over one Model instance. It
// owns its own random source and SearchUnitData; nothing about it is safe
// to share across goroutines, which is exactly why the parallel driver
// gives every worker its own SearchUnit over its own Model.
type SearchUnit struct {
	model      *Model
	options    Options
	rng        *rand.Rand
	data       *SearchUnitData
	bestValues []int
}

// NewSearchUnit validates options and builds a SearchUnit ready to run
// Search over model.
func NewSearchUnit(model *Model, options Options, seed int64) (*SearchUnit, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}
	incidence := model.Incidence()
	data := NewSearchUnitData(incidence, len(model.Constraints), model.Objective.IsOptimization())
	return &SearchUnit{
		model:   model,
		options: options,
		rng:     rand.New(rand.NewSource(seed)),
		data:    data,
	}, nil
}

// Data exposes the search unit's counters and error vector, read-only from
// the caller's perspective (nothing prevents mutation, but nothing in this
// package expects it).
func (su *SearchUnit) Data() *SearchUnitData { return su.data }

// Search runs until ctx is cancelled, budget elapses (budget <= 0 means no
// limit), or a satisfying assignment is found for a pure satisfaction
// problem. It returns whether the best-known assignment satisfies every
// constraint, and restores that assignment into the model's variables
// before returning.
func (su *SearchUnit) Search(ctx context.Context, budget time.Duration) (bool, error) {
	start := time.Now()

	su.initialize()
	su.updateBest()

	for {
		select {
		case <-ctx.Done():
			su.finish()
			return su.data.BestSatError == 0, nil
		default:
		}
		if budget > 0 && time.Since(start) >= budget {
			su.finish()
			return su.data.BestSatError == 0, nil
		}
		if su.data.BestSatError == 0 && !su.data.IsOptimization {
			su.finish()
			return true, nil
		}

		if su.data.CountTabu() >= su.options.ResetThreshold {
			su.reset()
			continue
		}

		su.logger().Printf("iter %d: %s (sat_error=%.4g)", su.data.SearchIterations, su.model.FormatAssignment(), su.data.CurrentSatError)

		varID := su.options.VariableHeuristic.SelectVariable(su.model, su.data, su.rng)
		if varID == -1 {
			su.reset()
			continue
		}
		su.data.SearchIterations++

		candidates, deltas := su.enumerateCandidates(varID)
		if len(candidates) == 0 {
			su.localMinimumManagement(varID)
			continue
		}

		chosenIdx, minConflict := su.options.ValueHeuristic.SelectValue(
			su.model, varID, candidates, deltas, su.model.Permutation, su.data.IsOptimization, su.rng)
		move := su.buildMove(varID, candidates[chosenIdx])

		switch {
		case minConflict < 0:
			su.performLocalMove(varID, move)
		case minConflict == 0:
			if su.data.IsOptimization {
				switch objDelta := su.simulateObjectiveDelta(move); {
				case objDelta < 0:
					su.performLocalMove(varID, move)
				case objDelta == 0:
					su.performPlateau(varID, move)
				default:
					su.localMinimumManagement(varID)
				}
			} else {
				su.performPlateau(varID, move)
			}
		default:
			su.localMinimumManagement(varID)
		}
		su.updateBest()
	}
}

func (su *SearchUnit) buildMove(varID, candidate int) Move {
	if su.model.Permutation {
		return SwapMove(varID, candidate)
	}
	return AssignMove(varID, candidate)
}

// initialize either trusts the caller's starting assignment
// (CustomStartingPoint) or samples one, then computes the full error state.
func (su *SearchUnit) initialize() {
	if su.options.ResumeSearch {
		su.computeAllErrors()
		return
	}
	if su.options.CustomStartingPoint {
		su.model.Auxiliary.UpdateAll(su.model.Variables)
		su.computeAllErrors()
		return
	}
	if su.model.Permutation {
		su.samplePermutationStart()
	} else {
		su.sampleStart()
	}
}

func (su *SearchUnit) computeAllErrors() {
	total := 0.0
	for _, c := range su.model.Constraints {
		e := c.RequiredError(su.model.Variables)
		c.SetCurrentError(e)
		total += e
	}
	su.data.CurrentSatError = total
	if su.data.IsOptimization {
		cost := su.model.Objective.RequiredCost(su.model.Variables)
		su.model.Objective.SetCost(cost)
		su.data.CurrentOptCost = cost
	}
	su.options.Projection.Compute(su.model, su.data)
}

// sampleStart draws NumberStartSamplings independent uniform assignments and
// keeps the one with the lowest satisfaction error.
func (su *SearchUnit) sampleStart() {
	var bestVals []int
	bestErr := 0.0

	for s := 0; s < su.options.NumberStartSamplings; s++ {
		for _, v := range su.model.Variables {
			v.pickRandomValue(su.rng)
		}
		su.model.Auxiliary.UpdateAll(su.model.Variables)
		su.computeAllErrors()
		if s == 0 || su.data.CurrentSatError < bestErr {
			bestErr = su.data.CurrentSatError
			bestVals = su.model.Values()
		}
	}

	_ = su.model.ApplyValues(bestVals)
	su.model.Auxiliary.UpdateAll(su.model.Variables)
	su.computeAllErrors()
}

// samplePermutationStart draws NumberStartSamplings pairwise-swap trials
// starting from the identity assignment over the first variable's domain
// (or from the current assignment when the caller supplied the starting
// point), keeping the lowest-error configuration found. Every trial is a
// swap, so the starting value multiset is preserved automatically.
func (su *SearchUnit) samplePermutationStart() {
	nv := len(su.model.Variables)
	if !su.options.CustomStartingPoint && !su.options.ResumeSearch {
		domain := su.model.Variables[0].FullDomain()
		for i, v := range su.model.Variables {
			if i < len(domain) {
				_ = v.SetValue(domain[i])
			}
		}
	}
	su.model.Auxiliary.UpdateAll(su.model.Variables)
	su.computeAllErrors()
	bestVals := su.model.Values()
	bestErr := su.data.CurrentSatError

	for s := 0; s < su.options.NumberStartSamplings && nv >= 2; s++ {
		a := su.rng.Intn(nv)
		b := su.rng.Intn(nv)
		if a == b {
			continue
		}
		va, vb := su.model.Variables[a], su.model.Variables[b]
		oldA, oldB := va.Value(), vb.Value()
		_ = va.SetValue(oldB)
		_ = vb.SetValue(oldA)
		su.model.Auxiliary.UpdateAll(su.model.Variables)
		su.computeAllErrors()
		if su.data.CurrentSatError < bestErr {
			bestErr = su.data.CurrentSatError
			bestVals = su.model.Values()
		} else {
			_ = va.SetValue(oldA)
			_ = vb.SetValue(oldB)
		}
	}

	_ = su.model.ApplyValues(bestVals)
	su.model.Auxiliary.UpdateAll(su.model.Variables)
	su.computeAllErrors()
}

// enumerateCandidates lists, for the selected variable, every legal move and
// its cumulated simulated delta: domain values other than its current one in
// non-permutation mode, or partner variables holding a different value in
// permutation mode.
func (su *SearchUnit) enumerateCandidates(varID int) ([]int, []float64) {
	if su.model.Permutation {
		return su.enumeratePermutationCandidates(varID)
	}
	v := su.model.Variables[varID]
	domain := v.FullDomain()
	current := v.Value()
	candidates := make([]int, 0, len(domain))
	deltas := make([]float64, 0, len(domain))
	for _, val := range domain {
		if val == current {
			continue
		}
		total := 0.0
		for _, cid := range su.data.Incidence[varID] {
			total += su.safeSimulateDelta(su.model.Constraints[cid], []int{varID}, []int{val})
		}
		candidates = append(candidates, val)
		deltas = append(deltas, total)
	}
	return candidates, deltas
}

func (su *SearchUnit) enumeratePermutationCandidates(varID int) ([]int, []float64) {
	n := len(su.model.Variables)
	a := su.model.Variables[varID]
	candidates := make([]int, 0, n)
	deltas := make([]float64, 0, n)
	for partner := 0; partner < n; partner++ {
		if partner == varID {
			continue
		}
		b := su.model.Variables[partner]
		if a.Value() == b.Value() {
			continue
		}
		candidates = append(candidates, partner)
		deltas = append(deltas, su.simulateSwapDelta(varID, partner))
	}
	return candidates, deltas
}

// simulateSwapDelta sums simulated deltas over every constraint touching
// either variable, visiting a constraint that touches both exactly once.
func (su *SearchUnit) simulateSwapDelta(a, b int) float64 {
	av, bv := su.model.Variables[a].Value(), su.model.Variables[b].Value()
	visited := make(map[int]bool)
	total := 0.0
	for _, cid := range su.data.Incidence[a] {
		visited[cid] = true
		total += su.safeSimulateDelta(su.model.Constraints[cid], []int{a, b}, []int{bv, av})
	}
	for _, cid := range su.data.Incidence[b] {
		if visited[cid] {
			continue
		}
		total += su.safeSimulateDelta(su.model.Constraints[cid], []int{a, b}, []int{bv, av})
	}
	return total
}

// safeSimulateDelta calls a constraint's SimulateDelta, and on panic falls
// back to a full before/after RequiredError recomputation instead of
// propagating the panic. A misbehaving constraint never takes the whole
// search down.
func (su *SearchUnit) safeSimulateDelta(c Constraint, changedIDs, newValues []int) (delta float64) {
	defer func() {
		if r := recover(); r != nil {
			su.logger().Printf("constraint %d: SimulateDelta panicked (%v), falling back to full recompute", c.ID(), r)
			delta = su.fallbackDelta(c, changedIDs, newValues)
		}
	}()
	return c.SimulateDelta(su.model.Variables, changedIDs, newValues)
}

func (su *SearchUnit) fallbackDelta(c Constraint, changedIDs, newValues []int) float64 {
	before := c.CurrentError()
	prev := make([]int, len(changedIDs))
	for i, id := range changedIDs {
		v := su.model.Variables[id]
		prev[i] = v.Value()
		_ = v.SetValue(newValues[i])
	}
	after := c.RequiredError(su.model.Variables)
	for i, id := range changedIDs {
		_ = su.model.Variables[id].SetValue(prev[i])
	}
	return after - before
}

// touchedConstraints returns, de-duplicated, every constraint touching any
// of changedIDs.
func (su *SearchUnit) touchedConstraints(changedIDs []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, id := range changedIDs {
		for _, cid := range su.data.Incidence[id] {
			if !seen[cid] {
				seen[cid] = true
				out = append(out, cid)
			}
		}
	}
	return out
}

// applyAndCommit mutates the model by move, refreshes every touched
// constraint's cached error and the error projection, runs
// ConditionalUpdateDataStructures, and notifies the objective and auxiliary
// data. It is the single path every accepted move (local or plateau) goes
// through.
func (su *SearchUnit) applyAndCommit(varID int, move Move) float64 {
	changedIDs, newValues := move.changedIDs(su.model.Variables)
	touched := su.touchedConstraints(changedIDs)
	perConstraintDelta := make(map[int]float64, len(touched))
	total := 0.0
	for _, cid := range touched {
		d := su.safeSimulateDelta(su.model.Constraints[cid], changedIDs, newValues)
		perConstraintDelta[cid] = d
		total += d
	}

	su.data.LocalMoves++
	su.data.CurrentSatError += total
	su.data.MarkTabu(varID, su.options.TabuTimeSelected)

	move.apply(su.model.Variables)
	for cid, d := range perConstraintDelta {
		c := su.model.Constraints[cid]
		c.SetCurrentError(c.CurrentError() + d)
		su.options.Projection.Update(su.model, su.data, cid, d)
		for i, id := range changedIDs {
			c.ConditionalUpdateDataStructures(su.model.Variables, id, newValues[i])
		}
	}
	for i, id := range changedIDs {
		if su.data.IsOptimization {
			su.model.Objective.Update(su.model.Variables, id, newValues[i])
		}
		su.model.Auxiliary.UpdateVariable(su.model.Variables, id, newValues[i])
	}
	if su.data.IsOptimization {
		su.data.CurrentOptCost = su.model.Objective.Cost()
	}
	return total
}

func (su *SearchUnit) performLocalMove(varID int, move Move) {
	su.applyAndCommit(varID, move)
	su.logger().Printf("local move: variable %d, sat_error now %.4g", varID, su.data.CurrentSatError)
}

// performPlateau accepts a zero-delta move most of the time, or escapes the
// plateau by marking the variable tabu instead.
func (su *SearchUnit) performPlateau(varID int, move Move) {
	if su.rng.Intn(100) < su.options.PercentChanceEscapePlateau {
		su.data.MarkTabu(varID, su.options.TabuTimeLocalMin)
		su.options.Projection.Compute(su.model, su.data)
		su.data.PlateauEscapes++
		su.logger().Printf("plateau escape: variable %d marked tabu", varID)
		return
	}
	su.applyAndCommit(varID, move)
	su.data.PlateauMoves++
	su.logger().Printf("plateau move accepted: variable %d", varID)
}

// simulateObjectiveDelta applies move, reads the objective cost, and rolls
// everything back, used only to compare objective cost on a
// satisfaction-neutral move.
func (su *SearchUnit) simulateObjectiveDelta(move Move) float64 {
	before := su.data.CurrentOptCost
	changedIDs, newValues := move.changedIDs(su.model.Variables)
	prevA, prevB := move.apply(su.model.Variables)
	for i, id := range changedIDs {
		su.model.Auxiliary.UpdateVariable(su.model.Variables, id, newValues[i])
	}
	after := su.model.Objective.RequiredCost(su.model.Variables)
	move.revert(su.model.Variables, prevA, prevB)
	su.model.Auxiliary.UpdateAll(su.model.Variables)
	return after - before
}

// localMinimumManagement marks varID tabu and counts a local minimum. The
// single-variable-per-iteration design means there is no separate
// worst-variables worklist to exhaust, so this always marks tabu rather than
// branching on a 10% retry as the probed-worklist original does.
func (su *SearchUnit) localMinimumManagement(varID int) {
	su.data.MarkTabu(varID, su.options.TabuTimeLocalMin)
	su.data.LocalMinimum++
	su.logger().Printf("local minimum: variable %d marked tabu", varID)
}

// reset re-samples a handful of variables, or performs a full restart every
// RestartThreshold resets.
func (su *SearchUnit) reset() {
	su.data.Resets++
	if su.options.RestartThreshold > 0 && su.data.Resets%su.options.RestartThreshold == 0 {
		su.data.Restarts++
		su.logger().Printf("restart #%d", su.data.Restarts)
		if su.model.Permutation {
			su.samplePermutationStart()
		} else {
			su.sampleStart()
		}
		su.clearTabu()
		return
	}
	su.logger().Printf("reset #%d", su.data.Resets)
	su.resampleVariables(su.options.NumberVariablesToReset)
	su.clearTabu()
	su.model.Auxiliary.UpdateAll(su.model.Variables)
	su.computeAllErrors()
}

func (su *SearchUnit) clearTabu() {
	for i := range su.data.TabuList {
		su.data.TabuList[i] = 0
	}
}

// resampleVariables re-draws up to k variables. In permutation mode it
// permutes their current values among themselves so the starting multiset
// is preserved; otherwise it draws a fresh independent uniform value for
// each.
func (su *SearchUnit) resampleVariables(k int) {
	n := len(su.model.Variables)
	if k > n {
		k = n
	}
	idxs := su.rng.Perm(n)[:k]
	if su.model.Permutation {
		vals := make([]int, k)
		for i, idx := range idxs {
			vals[i] = su.model.Variables[idx].Value()
		}
		perm := su.rng.Perm(k)
		for i, idx := range idxs {
			_ = su.model.Variables[idx].SetValue(vals[perm[i]])
		}
		return
	}
	for _, idx := range idxs {
		su.model.Variables[idx].pickRandomValue(su.rng)
	}
}

func (su *SearchUnit) updateBest() {
	improved := su.data.BestSatError < 0 || su.data.CurrentSatError < su.data.BestSatError
	if !improved && su.data.IsOptimization && su.data.CurrentSatError == 0 && su.data.BestSatError == 0 {
		improved = su.data.CurrentOptCost < su.data.BestOptCost
	}
	if !improved {
		return
	}
	su.data.BestSatError = su.data.CurrentSatError
	if su.data.IsOptimization {
		su.data.BestOptCost = su.data.CurrentOptCost
	}
	su.bestValues = su.model.Values()
}

// finish restores the best-known snapshot into the model's variables.
func (su *SearchUnit) finish() {
	if su.bestValues == nil {
		return
	}
	_ = su.model.ApplyValues(su.bestValues)
	su.model.Auxiliary.UpdateAll(su.model.Variables)
}

func (su *SearchUnit) logger() Logger {
	if su.options.Logger == nil {
		return NoopLogger
	}
	return su.options.Logger
}
