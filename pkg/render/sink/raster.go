package sink

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/geom"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

// MaxPixels bounds the drawing surface of a raster render, supersampling
// included.
const MaxPixels = 1 << 26

// RasterOption configures PNG, BMP and ANSI rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	palette     styles.Palette
	scale       float64
	supersample int
}

// WithRasterPalette draws the flag with p instead of [styles.Official].
func WithRasterPalette(p styles.Palette) RasterOption {
	return func(r *rasterRenderer) { r.palette = p }
}

// WithScale sets the pixels per layout unit (default 1).
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

// WithSupersample draws at n times the output resolution before
// downsampling (default 4). Values below 1 disable supersampling; values
// above [errors.MaxSupersample] are rejected when drawing.
func WithSupersample(n int) RasterOption {
	return func(r *rasterRenderer) { r.supersample = max(n, 1) }
}

func newRasterRenderer(opts ...RasterOption) rasterRenderer {
	r := rasterRenderer{palette: styles.Official, scale: 1, supersample: 4}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Rasterize draws the flag into an image of ceil(width*scale) by
// ceil(hoist*scale) pixels.
func Rasterize(f *layout.Flag, opts ...RasterOption) (image.Image, error) {
	r := newRasterRenderer(opts...)
	if err := errors.ValidateScale(r.scale); err != nil {
		return nil, err
	}
	m := f.Metrics()
	w := int(math.Ceil(m.Fly() * r.scale))
	h := int(math.Ceil(m.Hoist() * r.scale))
	return r.draw(f, w, h)
}

// draw paints the region tree onto a w by h image, stretching the flag to
// fill it.
func (r rasterRenderer) draw(f *layout.Flag, w, h int) (image.Image, error) {
	w, h = max(w, 1), max(h, 1)
	ss := r.supersample
	if err := errors.ValidateSupersample(ss); err != nil {
		return nil, err
	}
	if float64(w)*float64(h)*float64(ss)*float64(ss) > MaxPixels {
		return nil, errors.New(errors.ErrCodeInvalidScale,
			"raster of %dx%d at %dx supersampling exceeds %d pixels", w, h, ss, MaxPixels)
	}

	m := f.Metrics()
	dc := gg.NewContext(w*ss, h*ss)
	dc.Scale(float64(w*ss)/m.Fly(), float64(h*ss)/m.Hoist())

	star := f.Star()
	layout.Walk(f.Root(), func(reg layout.Region, abs geom.Rect) bool {
		if reg.Fill == layout.FillNone {
			return true
		}
		dc.SetColor(r.palette.Color(reg.Fill))
		if reg.Kind == layout.KindStar {
			drawPolygon(dc, star.Fit(abs))
		} else {
			dc.DrawRectangle(abs.MinX(), abs.MinY(), abs.Width(), abs.Height())
		}
		dc.Fill()
		return true
	})

	img := dc.Image()
	if ss > 1 {
		img = imaging.Resize(img, w, h, imaging.Box)
	}
	return img, nil
}

func drawPolygon(dc *gg.Context, pts []geom.Point) {
	for i, p := range pts {
		if i == 0 {
			dc.MoveTo(p.X, p.Y)
		} else {
			dc.LineTo(p.X, p.Y)
		}
	}
	dc.ClosePath()
}

// RenderPNG renders the flag as PNG.
func RenderPNG(f *layout.Flag, opts ...RasterOption) ([]byte, error) {
	img, err := Rasterize(f, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// RenderBMP renders the flag as an uncompressed 24-bit BMP. Uncovered pixels
// are flattened onto white.
func RenderBMP(f *layout.Flag, opts ...RasterOption) ([]byte, error) {
	img, err := Rasterize(f, opts...)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := bmp.Encode(&buf, flat); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode bmp")
	}
	return buf.Bytes(), nil
}
