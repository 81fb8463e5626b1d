package sink

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/oldglory/pkg/geom"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

const gridStroke = "#9AA0A6"

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	palette styles.Palette
	grid    bool
}

// WithPalette draws the flag with p instead of [styles.Official].
func WithPalette(p styles.Palette) SVGOption { return func(r *svgRenderer) { r.palette = p } }

// WithGrid overlays the star reference grid.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

func RenderSVG(f *layout.Flag, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	frame := f.Frame()
	star := f.Star()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(frame.Width()), num(frame.Height()), num(frame.Width()), num(frame.Height()))

	fmt.Fprintf(&buf, "  <defs>\n    <symbol id=\"%s\" viewBox=\"0 0 %s %s\"><polygon points=\"%s\"/></symbol>\n  </defs>\n",
		star.Name, num(star.ViewBox.W), num(star.ViewBox.H), star.PointsAttr())

	layout.Walk(f.Root(), func(reg layout.Region, abs geom.Rect) bool {
		switch reg.Kind {
		case layout.KindStripe, layout.KindCanton:
			renderRect(&buf, reg, abs, r.palette)
		case layout.KindStar:
			renderUse(&buf, reg, abs, r.palette)
		}
		return true
	})

	if r.grid {
		renderGrid(&buf, f.Metrics())
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{palette: styles.Official}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func renderRect(buf *bytes.Buffer, reg layout.Region, abs geom.Rect, p styles.Palette) {
	fmt.Fprintf(buf, `  <rect class="%s" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		reg.Kind, num(abs.MinX()), num(abs.MinY()), num(abs.Width()), num(abs.Height()), p.Hex(reg.Fill))
}

func renderUse(buf *bytes.Buffer, reg layout.Region, abs geom.Rect, p styles.Palette) {
	fmt.Fprintf(buf, `  <use class="star" xlink:href="#%s" x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		reg.Asset, num(abs.MinX()), num(abs.MinY()), num(abs.Width()), num(abs.Height()), p.Hex(reg.Fill))
}

func renderGrid(buf *bytes.Buffer, m layout.Metrics) {
	stroke := num(m.Hoist() / 500)
	fmt.Fprintf(buf, `  <g class="grid" fill="none" stroke="%s" stroke-width="%s">`+"\n", gridStroke, stroke)
	for _, c := range layout.StarGrid(m) {
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s"/>`+"\n",
			num(c.MinX()), num(c.MinY()), num(c.Width()), num(c.Height()))
	}
	buf.WriteString("  </g>\n")
}

// num formats v with at most four decimals and no trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}
