package ghost

import (
	"fmt"
	"math/rand"
)

// Variable is a decision variable with a finite, ordered integer domain and a
// current value pointed to by an index into that domain.
//
// Variable ids are assigned by BuildModel from slice position, so callers
// never allocate them directly. A Variable is only ever mutated by the
// search unit that owns its model instance; it carries no synchronization of
// its own.
type Variable struct {
	id     int
	name   string
	domain []int
	index  int
}

// NewVariable builds a variable over an explicit, ordered set of values. The
// variable starts at domain[0]. domain must be non-empty and free of
// duplicates.
func NewVariable(name string, domain []int) (*Variable, error) {
	if len(domain) == 0 {
		return nil, ErrEmptyDomain
	}
	seen := make(map[int]struct{}, len(domain))
	for _, v := range domain {
		if _, ok := seen[v]; ok {
			return nil, ErrDuplicateDomainValue
		}
		seen[v] = struct{}{}
	}
	cp := make([]int, len(domain))
	copy(cp, domain)
	return &Variable{name: name, domain: cp, index: 0}, nil
}

// NewVariableRange builds a variable over the contiguous range
// [start, start+size). It is a thin convenience over NewVariable used by
// CreateNVariables when a problem's variables share one interval domain.
func NewVariableRange(name string, start, size int) (*Variable, error) {
	if size <= 0 {
		return nil, ErrEmptyDomain
	}
	domain := make([]int, size)
	for i := range domain {
		domain[i] = start + i
	}
	return NewVariable(name, domain)
}

// CreateNVariables returns n variables named prefix0..prefix(n-1), each with
// the same contiguous domain [start, start+size).
func CreateNVariables(prefix string, n, start, size int) ([]*Variable, error) {
	vars := make([]*Variable, n)
	for i := 0; i < n; i++ {
		v, err := NewVariableRange(fmt.Sprintf("%s%d", prefix, i), start, size)
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}
	return vars, nil
}

// CreateNVariablesFromDomain returns n variables named prefix0..prefix(n-1),
// each sharing the given explicit domain.
func CreateNVariablesFromDomain(prefix string, n int, domain []int) ([]*Variable, error) {
	vars := make([]*Variable, n)
	for i := 0; i < n; i++ {
		v, err := NewVariable(fmt.Sprintf("%s%d", prefix, i), domain)
		if err != nil {
			return nil, err
		}
		vars[i] = v
	}
	return vars, nil
}

// ID returns the variable's id, assigned by BuildModel from its slice
// position among the model's variables.
func (v *Variable) ID() int { return v.id }

// Name returns the variable's display name.
func (v *Variable) Name() string { return v.name }

// Value returns the variable's current value.
func (v *Variable) Value() int { return v.domain[v.index] }

// TryValue is a safe alternative to Value that never panics. It always
// succeeds since a Variable's index invariant is maintained internally;
// it reports an error instead of panicking if that invariant is ever
// broken. Nothing in this module calls it; the engine and the CLI use
// Value.
func (v *Variable) TryValue() (int, error) {
	if v.index < 0 || v.index >= len(v.domain) {
		return 0, fmt.Errorf("ghost: variable %s has an out-of-range index %d", v.name, v.index)
	}
	return v.domain[v.index], nil
}

// Index returns the position of the current value within the domain slice
// returned by FullDomain.
func (v *Variable) Index() int { return v.index }

// DomainSize returns the number of values in the variable's domain.
func (v *Variable) DomainSize() int { return len(v.domain) }

// FullDomain returns a copy of the variable's entire domain, in declaration
// order.
func (v *Variable) FullDomain() []int {
	cp := make([]int, len(v.domain))
	copy(cp, v.domain)
	return cp
}

// PartialDomain returns a window of up to k domain values centered on the
// current value, in ascending domain order. The window wraps around the
// domain when the current index is near either end. When k is at least the
// domain size, the full domain is returned unchanged. CulpritSearchProjection
// calls this with k=3 to find a variable's two neighboring values when
// apportioning blame for a constraint's error.
func (v *Variable) PartialDomain(k int) []int {
	n := len(v.domain)
	if k <= 0 {
		return nil
	}
	if k >= n {
		return v.FullDomain()
	}
	before := k / 2
	included := make([]bool, n)
	idx := (v.index - before + n) % n
	for i := 0; i < k; i++ {
		included[idx] = true
		idx = (idx + 1) % n
	}
	out := make([]int, 0, k)
	for i := 0; i < n; i++ {
		if included[i] {
			out = append(out, v.domain[i])
		}
	}
	return out
}

// SetValue moves the variable to value, which must already be present in
// its domain.
func (v *Variable) SetValue(value int) error {
	for i, d := range v.domain {
		if d == value {
			v.index = i
			return nil
		}
	}
	return ErrValueOutOfDomain
}

// setIndex moves the variable directly to a known domain index, skipping the
// value lookup SetValue performs. Used on the hot path by Move.apply to
// exchange two variables' indices when applying a permutation swap.
func (v *Variable) setIndex(i int) { v.index = i }

// pickRandomValue moves the variable to a uniformly random value in its
// domain and returns that value.
func (v *Variable) pickRandomValue(rng *rand.Rand) int {
	v.index = rng.Intn(len(v.domain))
	return v.domain[v.index]
}

// String renders the variable as "name=value".
func (v *Variable) String() string {
	return fmt.Sprintf("%s=%d", v.name, v.Value())
}

// Clone returns an independent copy of the variable. BuildModel does not
// call it: each worker gets its own variables from its own
// Builder.DeclareVariables call.
func (v *Variable) Clone() *Variable {
	cp := *v
	cp.domain = v.FullDomain()
	return &cp
}
