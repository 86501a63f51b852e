package ghost

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewVariableRejectsEmptyDomain(t *testing.T) {
	if _, err := NewVariable("x", nil); !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("got %v, want ErrEmptyDomain", err)
	}
}

func TestNewVariableRejectsDuplicateDomain(t *testing.T) {
	if _, err := NewVariable("x", []int{1, 2, 2}); !errors.Is(err, ErrDuplicateDomainValue) {
		t.Fatalf("got %v, want ErrDuplicateDomainValue", err)
	}
}

func TestSetValueRoundTrip(t *testing.T) {
	v, err := NewVariable("x", []int{1, 9, 5, 7, 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.SetValue(7); err != nil {
		t.Fatal(err)
	}
	if v.Value() != 7 {
		t.Fatalf("got %d, want 7", v.Value())
	}
	if err := v.SetValue(42); !errors.Is(err, ErrValueOutOfDomain) {
		t.Fatalf("got %v, want ErrValueOutOfDomain", err)
	}
	// a failed SetValue must not move the variable.
	if v.Value() != 7 {
		t.Fatalf("value moved after failed SetValue: got %d", v.Value())
	}
}

func TestPartialDomainWrap(t *testing.T) {
	newAt := func(domain []int, value int) *Variable {
		v, err := NewVariable("v", domain)
		if err != nil {
			t.Fatal(err)
		}
		if err := v.SetValue(value); err != nil {
			t.Fatal(err)
		}
		return v
	}

	cases := []struct {
		name   string
		domain []int
		value  int
		k      int
		want   []int
	}{
		{"five-element-k3", []int{1, 9, 5, 7, 3}, 7, 3, []int{5, 7, 3}},
		{"five-element-k5-full", []int{1, 9, 5, 7, 3}, 7, 5, []int{1, 9, 5, 7, 3}},
		{"five-element-after-move-k4", []int{1, 9, 5, 7, 3}, 5, 4, []int{1, 9, 5, 7}},
		{"wrap-at-start-k3", []int{2, 8, 6, 4, 0}, 2, 3, []int{2, 8, 0}},
		{"wrap-after-move-k4", []int{2, 8, 6, 4, 0}, 0, 4, []int{2, 6, 4, 0}},
		{"ten-element-k5-wrap", rangeDomain(7, 10), 8, 5, []int{7, 8, 9, 10, 16}},
		{"ten-element-k5-no-wrap", rangeDomain(7, 10), 9, 5, []int{7, 8, 9, 10, 11}},
		{"ten-element-k10-full", rangeDomain(7, 10), 8, 10, rangeDomain(7, 10)},
		{"five-contig-k3-wrap", rangeDomain(4, 5), 4, 3, []int{4, 5, 8}},
		{"five-contig-k1-low", rangeDomain(4, 5), 4, 1, []int{4}},
		{"five-contig-k1-mid", rangeDomain(4, 5), 6, 1, []int{6}},
		{"five-contig-k1-high", rangeDomain(4, 5), 8, 1, []int{8}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := newAt(c.domain, c.value)
			got := v.PartialDomain(c.k)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("PartialDomain(%d) = %v, want %v", c.k, got, c.want)
			}
		})
	}
}

func rangeDomain(start, size int) []int {
	d := make([]int, size)
	for i := range d {
		d[i] = start + i
	}
	return d
}

func TestCloneIsIndependent(t *testing.T) {
	v, err := NewVariable("x", []int{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	_ = v.SetValue(2)
	cp := v.Clone()
	_ = cp.SetValue(3)
	if v.Value() == cp.Value() {
		t.Fatalf("clone shares state with original")
	}
}
