// Package styles defines the color palettes a flag can be drawn with.
//
// A palette maps the logical fills of the layout (red, white, blue) to
// concrete colors. Two palettes ship with the binary:
//
//   - "official": the Old Glory Red and Old Glory Blue shades
//   - "primary": pure red, white and blue
package styles

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/layout"
)

// DefaultName is the palette used when none is requested.
const DefaultName = "official"

// Palette maps layout fills to colors.
type Palette struct {
	Name  string
	Red   color.RGBA
	White color.RGBA
	Blue  color.RGBA
}

var (
	// Official uses Old Glory Red (#B22234) and Old Glory Blue (#3C3B6E).
	Official = Palette{
		Name:  "official",
		Red:   color.RGBA{0xB2, 0x22, 0x34, 0xFF},
		White: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Blue:  color.RGBA{0x3C, 0x3B, 0x6E, 0xFF},
	}

	// Primary uses the plain system colors.
	Primary = Palette{
		Name:  "primary",
		Red:   color.RGBA{0xFF, 0x00, 0x00, 0xFF},
		White: color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Blue:  color.RGBA{0x00, 0x00, 0xFF, 0xFF},
	}
)

var palettes = map[string]Palette{
	Official.Name: Official,
	Primary.Name:  Primary,
}

// Lookup returns the palette registered under name. The empty name selects
// [DefaultName].
func Lookup(name string) (Palette, error) {
	if name == "" {
		name = DefaultName
	}
	p, ok := palettes[name]
	if !ok {
		return Palette{}, errors.New(errors.ErrCodeInvalidPalette,
			"unknown palette %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the registered palettes in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for n := range palettes {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Color returns the color for a fill. [layout.FillNone] is transparent.
func (p Palette) Color(f layout.Fill) color.RGBA {
	switch f {
	case layout.FillRed:
		return p.Red
	case layout.FillWhite:
		return p.White
	case layout.FillBlue:
		return p.Blue
	}
	return color.RGBA{}
}

// Hex returns the fill's color as #RRGGBB, or "none" for [layout.FillNone].
func (p Palette) Hex(f layout.Fill) string {
	if f == layout.FillNone {
		return "none"
	}
	return Hex(p.Color(f))
}

// Hex formats c as #RRGGBB, ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
