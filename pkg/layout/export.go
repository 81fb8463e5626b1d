package layout

import "encoding/json"

// Document is the JSON form of a composed flag.
type Document struct {
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	Metrics MetricsDoc `json:"metrics"`
	Star    string     `json:"star"`
	Root    RegionDoc  `json:"root"`
	Points  []PointDoc `json:"star_points"`
}

// MetricsDoc is the JSON form of [Metrics].
type MetricsDoc struct {
	Hoist        float64 `json:"hoist"`
	CantonWidth  float64 `json:"canton_width"`
	CantonHeight float64 `json:"canton_height"`
	StripeHeight float64 `json:"stripe_height"`
	StarDiameter float64 `json:"star_diameter"`
	StarOffsetX  float64 `json:"star_offset_x"`
	StarOffsetY  float64 `json:"star_offset_y"`
}

// RegionDoc is the JSON form of a [Region].
type RegionDoc struct {
	Kind     Kind        `json:"kind"`
	Index    int         `json:"index"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Fill     Fill        `json:"fill,omitempty"`
	Asset    string      `json:"asset,omitempty"`
	Children []RegionDoc `json:"children,omitempty"`
}

// PointDoc is the JSON form of a star center.
type PointDoc struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Document exports the flag for serialization.
func (f *Flag) Document() Document {
	m := f.metrics
	points := make([]PointDoc, len(f.points))
	for i, p := range f.points {
		points[i] = PointDoc{X: p.X, Y: p.Y}
	}
	return Document{
		Width:  m.FlagSize.W,
		Height: m.FlagSize.H,
		Metrics: MetricsDoc{
			Hoist:        m.Hoist(),
			CantonWidth:  m.CantonSize.W,
			CantonHeight: m.CantonSize.H,
			StripeHeight: m.StripeSize.H,
			StarDiameter: m.StarSize.W,
			StarOffsetX:  m.StarOffset.X,
			StarOffsetY:  m.StarOffset.Y,
		},
		Star:   f.star.Name,
		Root:   exportRegion(f.Root()),
		Points: points,
	}
}

func exportRegion(r Region) RegionDoc {
	doc := RegionDoc{
		Kind:   r.Kind,
		Index:  r.Index,
		X:      r.Frame.MinX(),
		Y:      r.Frame.MinY(),
		Width:  r.Frame.Width(),
		Height: r.Frame.Height(),
		Fill:   r.Fill,
		Asset:  r.Asset,
	}
	for _, c := range r.Children {
		doc.Children = append(doc.Children, exportRegion(c))
	}
	return doc
}

// MarshalJSON encodes the flag as its [Document].
func (f *Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Document())
}

// UnmarshalJSON always panics. A Flag is derived from a width and is never
// restored from a serialized document; call [New] with the document's width
// instead.
func (f *Flag) UnmarshalJSON([]byte) error {
	panic("layout: decoding a Flag is not supported; build it with layout.New(width)")
}
