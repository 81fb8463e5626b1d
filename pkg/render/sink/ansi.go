package sink

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

// halfBlock paints its top half in the foreground color and its bottom half
// in the background color, so one terminal cell shows two pixels.
const halfBlock = "▀"

// RenderANSI draws the flag cols cells wide for a terminal. Each cell carries
// two vertically stacked pixels, which roughly squares them up. The scale
// option is ignored; the size follows from cols.
func RenderANSI(f *layout.Flag, cols int, opts ...RasterOption) (string, error) {
	if cols < 1 {
		return "", errors.New(errors.ErrCodeInvalidInput, "terminal width must be positive, got %d", cols)
	}
	r := newRasterRenderer(opts...)
	m := f.Metrics()

	rows := int(math.Round(m.Hoist() * float64(cols) / m.Fly() / 2))
	rows = max(rows, 1)
	img, err := r.draw(f, cols, rows*2)
	if err != nil {
		return "", err
	}

	cache := make(map[[2]string]lipgloss.Style)
	lines := make([]string, rows)
	for y := range rows {
		var sb strings.Builder
		for x := range cols {
			key := [2]string{pixelHex(img, x, 2*y), pixelHex(img, x, 2*y+1)}
			style, ok := cache[key]
			if !ok {
				style = lipgloss.NewStyle().
					Foreground(lipgloss.Color(key[0])).
					Background(lipgloss.Color(key[1]))
				cache[key] = style
			}
			sb.WriteString(style.Render(halfBlock))
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n"), nil
}

func pixelHex(img image.Image, x, y int) string {
	b := img.Bounds()
	c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
	return styles.Hex(c)
}
