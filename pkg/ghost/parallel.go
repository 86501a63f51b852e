package ghost

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// Solve builds one or more model instances from b and searches them within
// budget (<= 0 means no limit). With options.ParallelRuns unset it runs a
// single in-process SearchUnit; with it set, it runs
// options.NumberThreads independent workers (0 means runtime.NumCPU(),
// clamped to at least 2) and returns the dominant result.
func Solve(ctx context.Context, b Builder, options Options, budget time.Duration) (SolveResult, error) {
	if err := options.Validate(); err != nil {
		return SolveResult{}, err
	}
	if !options.ParallelRuns {
		return solveOne(ctx, b, options, budget, 0, options.RandomSeed)
	}
	return solveParallel(ctx, b, options, budget)
}

func solveOne(ctx context.Context, b Builder, options Options, budget time.Duration, workerIndex int, seed int64) (SolveResult, error) {
	model, err := BuildModel(b)
	if err != nil {
		return SolveResult{}, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano() + int64(workerIndex)*2654435761
	}
	su, err := NewSearchUnit(model, options, seed)
	if err != nil {
		return SolveResult{}, err
	}
	satisfied, err := su.Search(ctx, budget)
	if err != nil {
		return SolveResult{}, err
	}
	return SolveResult{
		Values:         model.Values(),
		SatError:       su.data.BestSatError,
		OptCost:        su.data.BestOptCost,
		Satisfied:      satisfied,
		IsOptimization: su.data.IsOptimization,
		WorkerIndex:    workerIndex,
		Data:           *su.data,
	}, nil
}

// solveParallel runs N independent workers, each over its own model
// instance built fresh from b, and stops the rest as soon as one worker
// reports a fully satisfying assignment on a pure satisfaction problem. It
// joins every worker before returning, so cancellation is always bounded by
// one worker iteration, never abandoned mid-flight.
func solveParallel(ctx context.Context, b Builder, options Options, budget time.Duration) (SolveResult, error) {
	n := options.NumberThreads
	if n <= 0 {
		n = runtime.NumCPU()
	}
	if n < 2 {
		n = 2
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]SolveResult, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	var stopOnce sync.Once

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seed := options.RandomSeed
			if seed != 0 {
				seed += int64(i)
			}
			res, err := solveOne(workerCtx, b, options, budget, i, seed)
			results[i] = res
			errs[i] = err
			if err == nil && res.Satisfied && !res.IsOptimization {
				stopOnce.Do(cancel)
			}
		}(i)
	}
	wg.Wait()

	best := -1
	for i, err := range errs {
		if err != nil {
			continue
		}
		if best == -1 || results[i].dominates(results[best]) {
			best = i
		}
	}
	if best == -1 {
		return SolveResult{}, errs[0]
	}
	return results[best], nil
}
