package layout

import (
	"math"
	"testing"

	"github.com/matzehuels/oldglory/pkg/errors"
)

const eps = 1e-9

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestComputeMetrics(t *testing.T) {
	m, err := ComputeMetrics(250)
	if err != nil {
		t.Fatalf("ComputeMetrics(250) error: %v", err)
	}

	hoist := 250 / 1.9
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"fly", m.Fly(), 250},
		{"hoist", m.Hoist(), hoist},
		{"canton width", m.CantonSize.W, hoist * 0.76},
		{"canton height", m.CantonSize.H, hoist * 0.5385},
		{"stripe width", m.StripeSize.W, 250},
		{"stripe height", m.StripeSize.H, hoist * 0.0769},
		{"star width", m.StarSize.W, hoist * 0.0616},
		{"star height", m.StarSize.H, hoist * 0.0616},
		{"star offset x", m.StarOffset.X, hoist * 0.063},
		{"star offset y", m.StarOffset.Y, hoist * 0.054},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !approx(tt.got, tt.want, eps) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if !approx(m.CantonSize.W, 100, 1e-9) {
		t.Errorf("canton width for 250 = %v, want 100", m.CantonSize.W)
	}
}

func TestComputeMetricsScalesLinearly(t *testing.T) {
	for _, w := range []float64{1, 37.5, 250, 1024, 5000} {
		m1 := MustComputeMetrics(w)
		m2 := MustComputeMetrics(2 * w)

		pairs := [][2]float64{
			{m1.CantonSize.W, m2.CantonSize.W},
			{m1.CantonSize.H, m2.CantonSize.H},
			{m1.StripeSize.W, m2.StripeSize.W},
			{m1.StripeSize.H, m2.StripeSize.H},
			{m1.FlagSize.W, m2.FlagSize.W},
			{m1.FlagSize.H, m2.FlagSize.H},
			{m1.StarSize.W, m2.StarSize.W},
			{m1.StarOffset.X, m2.StarOffset.X},
			{m1.StarOffset.Y, m2.StarOffset.Y},
		}
		for i, p := range pairs {
			if !approx(2*p[0], p[1], 1e-9*p[1]) {
				t.Errorf("width %v field %d: 2*%v != %v", w, i, p[0], p[1])
			}
		}
		if !approx(m1.Hoist(), w/1.9, eps*w) {
			t.Errorf("hoist(%v) = %v, want %v", w, m1.Hoist(), w/1.9)
		}
	}
}

func TestComputeMetricsInvalidWidth(t *testing.T) {
	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := ComputeMetrics(w)
		if !errors.Is(err, errors.ErrCodeInvalidWidth) {
			t.Errorf("ComputeMetrics(%v) error = %v, want INVALID_WIDTH", w, err)
		}
	}
}

func TestMustComputeMetricsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustComputeMetrics(-5) should panic")
		}
	}()
	MustComputeMetrics(-5)
}

func TestCellSize(t *testing.T) {
	m := MustComputeMetrics(190)
	got := m.CellSize()
	if !approx(got.W, 2*6.3, 1e-9) || !approx(got.H, 5.4, 1e-9) {
		t.Errorf("CellSize() = %v, want 12.6x5.4", got)
	}
}
