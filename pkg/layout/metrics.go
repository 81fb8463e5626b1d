package layout

import (
	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/geom"
)

// Proportions relative to the hoist.
const (
	FlyRatio          = 1.9
	CantonWidthRatio  = 0.76
	CantonHeightRatio = 0.5385
	StarDiameterRatio = 0.0616
	StripeHeightRatio = 0.0769
	StarOffsetYRatio  = 0.054
	StarOffsetXRatio  = 0.063
)

// Counts fixed by the flag.
const (
	StripeCount = 13 // original colonies
	StarCount   = 50 // states
	StarRows    = 9
	StarColumns = 6 // stars in a long row; short rows carry one fewer
)

// Metrics holds every derived measurement for a flag of a given width.
type Metrics struct {
	CantonSize geom.Size
	StripeSize geom.Size
	FlagSize   geom.Size
	StarSize   geom.Size
	StarOffset geom.Point
}

// ComputeMetrics derives the flag measurements from its width (fly).
// It fails with [errors.ErrCodeInvalidWidth] for zero, negative, NaN or
// infinite widths.
func ComputeMetrics(width float64) (Metrics, error) {
	if err := errors.ValidateWidth(width); err != nil {
		return Metrics{}, err
	}

	fly := width
	hoist := fly / FlyRatio
	star := hoist * StarDiameterRatio

	return Metrics{
		CantonSize: geom.Sz(hoist*CantonWidthRatio, hoist*CantonHeightRatio),
		StripeSize: geom.Sz(fly, hoist*StripeHeightRatio),
		FlagSize:   geom.Sz(fly, hoist),
		StarSize:   geom.Sz(star, star),
		StarOffset: geom.Pt(hoist*StarOffsetXRatio, hoist*StarOffsetYRatio),
	}, nil
}

// MustComputeMetrics is like ComputeMetrics but panics on invalid width.
func MustComputeMetrics(width float64) Metrics {
	m, err := ComputeMetrics(width)
	if err != nil {
		panic(err)
	}
	return m
}

// Hoist returns the flag height.
func (m Metrics) Hoist() float64 { return m.FlagSize.H }

// Fly returns the flag width.
func (m Metrics) Fly() float64 { return m.FlagSize.W }

// CellSize is the reference cell used to derive star centers.
func (m Metrics) CellSize() geom.Size {
	return geom.Sz(m.StarOffset.X*2, m.StarOffset.Y)
}
