package ghost

// Options configures a search run. The zero value is not ready to use;
// start from DefaultOptions and override with either direct field
// assignment or the With* functional options passed to NewOptions.
type Options struct {
	// CustomStartingPoint, when true, skips monte-carlo sampling and
	// starts from whatever values the caller already assigned to the
	// model's variables.
	CustomStartingPoint bool
	// ResumeSearch, when true, makes Search continue from the model's
	// current assignment without sampling a new start or rebuilding the
	// auxiliary data. Counters and the tabu list of a SearchUnit's data
	// carry over between Search calls whether or not it is set.
	ResumeSearch bool

	// ParallelRuns, when true, launches NumberThreads independent workers
	// instead of a single in-process search.
	ParallelRuns bool
	// NumberThreads is the worker count when ParallelRuns is set. Zero
	// means runtime.NumCPU(), clamped to at least 2. Validate rejects a
	// negative count when ParallelRuns is set.
	NumberThreads int

	TabuTimeLocalMin           int
	TabuTimeSelected           int
	PercentChanceEscapePlateau int
	ResetThreshold             int
	RestartThreshold           int
	NumberVariablesToReset     int
	NumberStartSamplings       int

	VariableHeuristic VariableHeuristic
	ValueHeuristic    ValueHeuristic
	Projection        ErrorProjection

	// Logger receives diagnostic traces; defaults to NoopLogger.
	Logger Logger

	// RandomSeed fixes the search's random source. Zero means derive one
	// from the current time (single run) or from the worker index (one of
	// several parallel workers), so repeated zero-seeded runs still differ.
	RandomSeed int64
}

// DefaultOptions returns the configuration GHOST uses when a caller
// supplies no overrides: Adaptive Search projection, heuristics and a
// conservative tabu/plateau/reset schedule.
func DefaultOptions() Options {
	return Options{
		TabuTimeLocalMin:           7,
		TabuTimeSelected:           3,
		PercentChanceEscapePlateau: 10,
		ResetThreshold:             30,
		RestartThreshold:           0,
		NumberVariablesToReset:     2,
		NumberStartSamplings:       1,
		VariableHeuristic:          AdaptiveSearchVariableHeuristic{},
		ValueHeuristic:             AdaptiveSearchValueHeuristic{},
		Projection:                 &AdaptiveSearchProjection{},
		Logger:                     NoopLogger,
	}
}

// Option mutates an Options value under construction.
type Option func(*Options)

// NewOptions builds Options starting from DefaultOptions and applies each
// Option in order.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

// WithTabuTimes overrides the two tabu durations.
func WithTabuTimes(localMin, selected int) Option {
	return func(o *Options) {
		o.TabuTimeLocalMin = localMin
		o.TabuTimeSelected = selected
	}
}

// WithParallelRuns enables the parallel driver with n workers. n == 0 means
// runtime.NumCPU(); a negative n makes Validate fail.
func WithParallelRuns(n int) Option {
	return func(o *Options) {
		o.ParallelRuns = true
		o.NumberThreads = n
	}
}

// WithHeuristics overrides the variable/value selection heuristics and the
// error projection strategy together, since GHOST pairs them (Adaptive
// Search or Antidote/Culprit Search) rather than mixing families.
func WithHeuristics(v VariableHeuristic, val ValueHeuristic, proj ErrorProjection) Option {
	return func(o *Options) {
		o.VariableHeuristic = v
		o.ValueHeuristic = val
		o.Projection = proj
	}
}

// WithResetSchedule overrides the tabu threshold that triggers a reset, how
// many variables a reset re-samples, and every how many resets becomes a
// full restart instead (0 = never restart).
func WithResetSchedule(resetThreshold, numberVariablesToReset, restartThreshold int) Option {
	return func(o *Options) {
		o.ResetThreshold = resetThreshold
		o.NumberVariablesToReset = numberVariablesToReset
		o.RestartThreshold = restartThreshold
	}
}

// WithLogger overrides the diagnostic sink.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithRandomSeed fixes the search's random source.
func WithRandomSeed(seed int64) Option {
	return func(o *Options) { o.RandomSeed = seed }
}

// Validate reports whether o is a runnable configuration.
func (o *Options) Validate() error {
	if o.TabuTimeLocalMin < 0 || o.TabuTimeSelected < 0 {
		return NewValidationError("tabu durations must be non-negative")
	}
	if o.PercentChanceEscapePlateau < 0 || o.PercentChanceEscapePlateau > 100 {
		return NewValidationError("PercentChanceEscapePlateau must be within [0, 100]")
	}
	if o.ResetThreshold <= 0 {
		return NewValidationError("ResetThreshold must be positive")
	}
	if o.RestartThreshold < 0 {
		return NewValidationError("RestartThreshold must be non-negative")
	}
	if o.NumberVariablesToReset <= 0 {
		return NewValidationError("NumberVariablesToReset must be positive")
	}
	if o.NumberStartSamplings <= 0 {
		return NewValidationError("NumberStartSamplings must be positive")
	}
	if o.ParallelRuns && o.NumberThreads < 0 {
		return NewValidationError("NumberThreads must be non-negative")
	}
	if o.VariableHeuristic == nil {
		return NewValidationError("VariableHeuristic must not be nil")
	}
	if o.ValueHeuristic == nil {
		return NewValidationError("ValueHeuristic must not be nil")
	}
	if o.Projection == nil {
		return NewValidationError("Projection must not be nil")
	}
	return nil
}
