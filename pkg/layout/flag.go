package layout

import (
	"fmt"
	"slices"

	"github.com/matzehuels/oldglory/pkg/assets"
	"github.com/matzehuels/oldglory/pkg/geom"
)

// Kind names the role of a region in the flag tree.
type Kind string

const (
	KindFlag   Kind = "flag"
	KindStripe Kind = "stripe"
	KindCanton Kind = "canton"
	KindStar   Kind = "star"
)

// Fill is the logical color of a region. Sinks map it to concrete colors
// through a palette.
type Fill string

const (
	FillNone  Fill = ""
	FillRed   Fill = "red"
	FillWhite Fill = "white"
	FillBlue  Fill = "blue"
)

// Region is one node of the composed flag tree. Frames are expressed in the
// coordinate space of the parent region; the canton sits at the flag's
// origin, so star frames are also valid flag coordinates.
type Region struct {
	Kind     Kind
	Index    int // 0-based position among siblings of the same kind
	Frame    geom.Rect
	Fill     Fill
	Asset    string // image drawn in the region, if any
	Children []Region
}

// Option configures [New].
type Option func(*config)

type config struct {
	star  *assets.Image
	store *assets.Store
}

// WithStar uses img for every star instead of looking one up.
func WithStar(img assets.Image) Option {
	return func(c *config) { c.star = &img }
}

// WithAssets resolves the star image from s instead of the embedded store.
func WithAssets(s *assets.Store) Option {
	return func(c *config) { c.store = s }
}

// Flag is a fully laid out flag. It is immutable and safe for concurrent use.
type Flag struct {
	metrics Metrics
	star    assets.Image
	stripes []Region
	canton  Region
	points  []geom.Point
}

// Compose builds a flag of the given width with the embedded star asset.
func Compose(width float64) (*Flag, error) {
	return New(width)
}

// FromFrame builds a flag sized to the width of frame. The frame height is
// ignored; the hoist always follows from the width.
func FromFrame(frame geom.Rect, opts ...Option) (*Flag, error) {
	return New(frame.Width(), opts...)
}

// New lays out a flag of the given width.
//
// The star image is a hard precondition: when it cannot be resolved from the
// configured store New panics instead of returning an error. Invalid widths
// and an exhausted star grid are reported as errors.
func New(width float64, opts ...Option) (*Flag, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	star := cfg.resolveStar()

	m, err := ComputeMetrics(width)
	if err != nil {
		return nil, err
	}

	points, err := StarPoints(m)
	if err != nil {
		return nil, fmt.Errorf("place stars for width %v: %w", width, err)
	}

	return &Flag{
		metrics: m,
		star:    star,
		stripes: buildStripes(m),
		canton:  buildCanton(m, points, star.Name),
		points:  points,
	}, nil
}

func (c config) resolveStar() assets.Image {
	if c.star != nil {
		return *c.star
	}
	store := c.store
	if store == nil {
		store = assets.Default()
	}
	return store.MustLookup(assets.StarName)
}

// buildStripes stacks the stripes top to bottom, red on odd 1-based
// positions and white on even ones.
func buildStripes(m Metrics) []Region {
	stripes := make([]Region, StripeCount)
	for i := range stripes {
		stripes[i] = Region{
			Kind:  KindStripe,
			Index: i,
			Frame: geom.R(0, m.StripeSize.H*float64(i), m.StripeSize.W, m.StripeSize.H),
		}
	}

	for _, s := range NthChild(refs(stripes), 2, 1) {
		s.Fill = FillRed
	}
	for _, s := range NthChild(refs(stripes), 2, 2) {
		s.Fill = FillWhite
	}
	return stripes
}

func buildCanton(m Metrics, points []geom.Point, asset string) Region {
	stars := make([]Region, len(points))
	for i, p := range points {
		stars[i] = Region{
			Kind:  KindStar,
			Index: i,
			Frame: geom.CenteredAt(p, m.StarSize),
			Fill:  FillWhite,
			Asset: asset,
		}
	}
	return Region{
		Kind:     KindCanton,
		Frame:    geom.Rect{Size: m.CantonSize},
		Fill:     FillBlue,
		Children: stars,
	}
}

// Metrics returns the measurements the flag was built from.
func (f *Flag) Metrics() Metrics { return f.metrics }

// Frame returns the flag's bounds, anchored at the origin.
func (f *Flag) Frame() geom.Rect { return geom.Rect{Size: f.metrics.FlagSize} }

// Star returns the image drawn for each star.
func (f *Flag) Star() assets.Image { return f.star }

// Stripes returns a copy of the stripe regions, top to bottom.
func (f *Flag) Stripes() []Region { return slices.Clone(f.stripes) }

// Canton returns a copy of the canton region including its stars.
func (f *Flag) Canton() Region {
	c := f.canton
	c.Children = slices.Clone(c.Children)
	return c
}

// StarPoints returns a copy of the star centers in canton coordinates.
func (f *Flag) StarPoints() []geom.Point { return slices.Clone(f.points) }

// Root returns the whole region tree: the flag with the stripes as its first
// children (painted first) and the canton last.
func (f *Flag) Root() Region {
	children := make([]Region, 0, len(f.stripes)+1)
	children = append(children, f.stripes...)
	children = append(children, f.Canton())
	return Region{
		Kind:     KindFlag,
		Frame:    f.Frame(),
		Children: children,
	}
}

// Walk visits r and its descendants depth-first, parents before children,
// passing each region's frame translated into root coordinates. Returning
// false from fn skips the region's children.
func Walk(r Region, fn func(r Region, abs geom.Rect) bool) {
	walk(r, geom.Point{}, fn)
}

func walk(r Region, offset geom.Point, fn func(Region, geom.Rect) bool) {
	abs := r.Frame.Offset(offset.X, offset.Y)
	if !fn(r, abs) {
		return
	}
	for _, c := range r.Children {
		walk(c, abs.Origin, fn)
	}
}
