package layout

import (
	"slices"
	"testing"
)

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func TestNthChild(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		n, start int
		want     []int
	}{
		{"every element", seq(5), 1, 1, []int{1, 2, 3, 4, 5}},
		{"odd positions", seq(7), 2, 1, []int{1, 3, 5, 7}},
		{"even positions", seq(7), 2, 2, []int{2, 4, 6}},
		{"every 12th of 60", seq(60), 12, 1, []int{1, 13, 25, 37, 49}},
		{"start mid-way", seq(10), 3, 4, []int{4, 7, 10}},
		{"start past end", seq(3), 2, 4, nil},
		{"start at end", seq(3), 5, 3, []int{3}},
		{"negative start skips", seq(10), 3, -1, []int{2, 5, 8}},
		{"zero start skips", seq(6), 2, 0, []int{2, 4, 6}},
		{"empty input", nil, 2, 1, nil},
		{"zero step", seq(5), 0, 3, []int{3}},
		{"zero step out of range", seq(5), 0, 9, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NthChild(tt.input, tt.n, tt.start)
			if !slices.Equal(got, tt.want) {
				t.Errorf("NthChild(%v, %d, %d) = %v, want %v", tt.input, tt.n, tt.start, got, tt.want)
			}
		})
	}
}

func TestNthChildIdentity(t *testing.T) {
	for _, n := range []int{1, 2, 13, 60} {
		s := seq(n)
		if got := NthChild(s, 1, 1); !slices.Equal(got, s) {
			t.Errorf("NthChild(seq(%d), 1, 1) = %v, want the input", n, got)
		}
	}
}

func TestNthChildPartition(t *testing.T) {
	for _, n := range []int{0, 1, 2, 9, 13, 14} {
		s := seq(n)
		odd := NthChild(s, 2, 1)
		even := NthChild(s, 2, 2)

		if len(odd)+len(even) != n {
			t.Fatalf("len %d: partitions have %d+%d elements", n, len(odd), len(even))
		}

		merged := append(slices.Clone(odd), even...)
		slices.Sort(merged)
		if !slices.Equal(merged, s) && n > 0 {
			t.Errorf("len %d: union %v does not rebuild %v", n, merged, s)
		}
	}
}

func TestNthChildDoesNotModifyInput(t *testing.T) {
	s := seq(6)
	got := NthChild(s, 2, 1)
	got[0] = 99
	if s[0] != 1 {
		t.Error("NthChild result must not alias the input")
	}
}

func TestNthChildPointersShareElements(t *testing.T) {
	s := seq(6)
	for _, p := range NthChild(refs(s), 3, 1) {
		*p = 0
	}
	if want := []int{0, 2, 3, 0, 5, 6}; !slices.Equal(s, want) {
		t.Errorf("after mutation through refs: %v, want %v", s, want)
	}
}
