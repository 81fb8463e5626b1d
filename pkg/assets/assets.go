// Package assets is the named image store the flag composer draws from.
//
// Images are small SVG documents holding a single <polygon>. They are
// embedded into the binary with go:embed and addressed by file stem, so
// data/star.svg is the asset "star". Sinks use the polygon directly: the SVG
// sink emits it as a <symbol>, raster sinks fill it.
//
// A missing required asset is a broken build, not a runtime condition, so
// [Store.MustLookup] panics rather than returning an error.
package assets

import (
	"embed"
	"encoding/xml"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/geom"
)

// StarName is the asset every flag needs.
const StarName = "star"

//go:embed data/*.svg
var embedded embed.FS

// Image is a polygon shape drawn inside a view box.
type Image struct {
	Name    string
	ViewBox geom.Size    // width and height of the source coordinate space
	Points  []geom.Point // vertices in view box coordinates
}

// Fit maps the polygon into r, stretching the view box onto it.
func (img Image) Fit(r geom.Rect) []geom.Point {
	sx := r.Width() / img.ViewBox.W
	sy := r.Height() / img.ViewBox.H
	out := make([]geom.Point, len(img.Points))
	for i, p := range img.Points {
		out[i] = geom.Pt(r.MinX()+p.X*sx, r.MinY()+p.Y*sy)
	}
	return out
}

// PointsAttr formats the vertices as an SVG points attribute.
func (img Image) PointsAttr() string {
	parts := make([]string, len(img.Points))
	for i, p := range img.Points {
		parts[i] = strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}

// Store holds images by name. It is read-only after construction.
type Store struct {
	images map[string]Image
}

// NewStore loads every *.svg under the root of fsys (or under data/ when
// fsys is the embedded tree).
func NewStore(fsys fs.FS) (*Store, error) {
	files, err := fs.Glob(fsys, "*.svg")
	if err != nil {
		return nil, err
	}
	nested, err := fs.Glob(fsys, "data/*.svg")
	if err != nil {
		return nil, err
	}
	files = append(files, nested...)

	s := &Store{images: make(map[string]Image, len(files))}
	for _, f := range files {
		data, err := fs.ReadFile(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("read asset %s: %w", f, err)
		}
		name := strings.TrimSuffix(path.Base(f), ".svg")
		img, err := parseSVG(name, data)
		if err != nil {
			return nil, err
		}
		s.images[name] = img
	}
	return s, nil
}

var (
	defaultStore     *Store
	defaultStoreOnce sync.Once
)

// Default returns the store backed by the embedded assets.
func Default() *Store {
	defaultStoreOnce.Do(func() {
		s, err := NewStore(embedded)
		if err != nil {
			panic(fmt.Sprintf("assets: embedded store is corrupt: %v", err))
		}
		defaultStore = s
	})
	return defaultStore
}

// Lookup returns the named image.
func (s *Store) Lookup(name string) (Image, error) {
	img, ok := s.images[name]
	if !ok {
		return Image{}, errors.New(errors.ErrCodeAssetNotFound, "asset %q not found", name)
	}
	return img, nil
}

// MustLookup returns the named image and panics when it does not exist.
// Use it for assets the program cannot run without.
func (s *Store) MustLookup(name string) Image {
	img, err := s.Lookup(name)
	if err != nil {
		panic(fmt.Sprintf("assets: required asset %q is missing from the store", name))
	}
	return img
}

// Names lists the stored images in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.images))
	for n := range s.images {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

type svgDoc struct {
	ViewBox  string `xml:"viewBox,attr"`
	Polygons []struct {
		Points string `xml:"points,attr"`
	} `xml:"polygon"`
}

func parseSVG(name string, data []byte) (Image, error) {
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Image{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "asset %q: parse svg", name)
	}
	if len(doc.Polygons) != 1 {
		return Image{}, errors.New(errors.ErrCodeInvalidInput, "asset %q: want exactly one polygon, got %d", name, len(doc.Polygons))
	}

	box, err := parseFloats(strings.Fields(doc.ViewBox))
	if err != nil || len(box) != 4 || box[2] <= 0 || box[3] <= 0 {
		return Image{}, errors.New(errors.ErrCodeInvalidInput, "asset %q: bad viewBox %q", name, doc.ViewBox)
	}

	var pts []geom.Point
	for _, pair := range strings.Fields(doc.Polygons[0].Points) {
		xy, err := parseFloats(strings.Split(pair, ","))
		if err != nil || len(xy) != 2 {
			return Image{}, errors.New(errors.ErrCodeInvalidInput, "asset %q: bad point %q", name, pair)
		}
		pts = append(pts, geom.Pt(xy[0]-box[0], xy[1]-box[1]))
	}
	if len(pts) < 3 {
		return Image{}, errors.New(errors.ErrCodeInvalidInput, "asset %q: polygon needs at least 3 points", name)
	}

	return Image{Name: name, ViewBox: geom.Sz(box[2], box[3]), Points: pts}, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
