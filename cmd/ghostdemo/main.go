// Command ghostdemo runs one of a few small built-in problems through the
// ghost search engine and prints the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gokando/ghost/pkg/ghost"
	"github.com/gokando/ghost/pkg/ghostconstraints"
)

func main() {
	problem := flag.String("problem", "alldifferent", "which demo problem to solve: alldifferent, knapsack")
	budget := flag.Duration("budget", 2*time.Second, "search time budget")
	parallel := flag.Bool("parallel", false, "run the parallel driver instead of a single worker")
	threads := flag.Int("threads", 0, "worker count for -parallel (0 = runtime.NumCPU())")
	verbose := flag.Bool("v", false, "trace every search iteration to stderr")
	flag.Parse()

	options := ghost.DefaultOptions()
	options.ParallelRuns = *parallel
	options.NumberThreads = *threads
	if *verbose {
		options.Logger = ghost.NewStdLogger(os.Stderr)
	}

	var builder ghost.Builder
	switch *problem {
	case "alldifferent":
		builder = threeVariableAllDifferent{}
	case "knapsack":
		builder = knapsackOptimization{}
	default:
		log.Fatalf("unknown -problem %q (want alldifferent or knapsack)", *problem)
	}

	start := time.Now()
	result, err := ghost.Solve(context.Background(), builder, options, *budget)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}

	fmt.Printf("problem: %s\n", *problem)
	fmt.Printf("elapsed: %v\n", time.Since(start))
	fmt.Printf("satisfied: %v\n", result.Satisfied)
	fmt.Printf("satisfaction error: %g\n", result.SatError)
	if result.IsOptimization {
		fmt.Printf("objective cost: %g\n", result.OptCost)
	}
	fmt.Printf("assignment: %v\n", result.Values)
}

// threeVariableAllDifferent is the 3-variable AllDifferent satisfaction
// problem from the test suite: x0, x1, x2 each range over [1, 3] and must
// take pairwise distinct values.
type threeVariableAllDifferent struct{}

func (threeVariableAllDifferent) DeclareVariables() ([]*ghost.Variable, error) {
	return ghost.CreateNVariables("x", 3, 1, 3)
}

func (threeVariableAllDifferent) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	return []ghost.Constraint{ghostconstraints.NewAllDifferent(ids)}, nil
}

func (threeVariableAllDifferent) DeclareObjective([]*ghost.Variable) (ghost.Objective, error) {
	return nil, nil
}

func (threeVariableAllDifferent) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}

func (threeVariableAllDifferent) Permutation() bool { return false }

// knapsackOptimization is the classic bottle/sandwich knapsack: choose how
// many of each to pack (bounded by availability) within a weight capacity,
// maximizing total value.
type knapsackOptimization struct{}

const (
	knapsackCapacity = 15
	bottleWeight     = 1
	bottleValue      = 500
	maxBottles       = 51
	sandwichWeight   = 3
	sandwichValue    = 650
	maxSandwiches    = 11
)

func (knapsackOptimization) DeclareVariables() ([]*ghost.Variable, error) {
	bottle, err := ghost.NewVariableRange("bottle", 0, maxBottles)
	if err != nil {
		return nil, err
	}
	sandwich, err := ghost.NewVariableRange("sandwich", 0, maxSandwiches)
	if err != nil {
		return nil, err
	}
	return []*ghost.Variable{bottle, sandwich}, nil
}

func (knapsackOptimization) DeclareConstraints(vars []*ghost.Variable) ([]ghost.Constraint, error) {
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	weights := []float64{bottleWeight, sandwichWeight}
	return []ghost.Constraint{
		ghostconstraints.NewLinearEquation(ids, weights, knapsackCapacity, ghostconstraints.LinearLE),
	}, nil
}

func (knapsackOptimization) DeclareObjective(vars []*ghost.Variable) (ghost.Objective, error) {
	ids := make([]int, len(vars))
	for i, v := range vars {
		ids[i] = v.ID()
	}
	return ghostconstraints.NewLinearObjective(ids, []float64{bottleValue, sandwichValue}, ghost.Maximize), nil
}

func (knapsackOptimization) DeclareAuxiliaryData([]*ghost.Variable) (ghost.AuxiliaryData, error) {
	return nil, nil
}

func (knapsackOptimization) Permutation() bool { return false }
