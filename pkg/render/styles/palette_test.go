package styles

import (
	"image/color"
	"regexp"
	"slices"
	"testing"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/layout"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"", DefaultName},
		{"official", "official"},
		{"primary", "primary"},
	}
	for _, tt := range tests {
		p, err := Lookup(tt.name)
		if err != nil {
			t.Fatalf("Lookup(%q) error: %v", tt.name, err)
		}
		if p.Name != tt.want {
			t.Errorf("Lookup(%q).Name = %q, want %q", tt.name, p.Name, tt.want)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("sepia")
	if !errors.Is(err, errors.ErrCodeInvalidPalette) {
		t.Fatalf("Lookup(sepia) error = %v, want INVALID_PALETTE", err)
	}
}

func TestNames(t *testing.T) {
	if got, want := Names(), []string{"official", "primary"}; !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestPaletteHex(t *testing.T) {
	tests := []struct {
		palette Palette
		fill    layout.Fill
		want    string
	}{
		{Official, layout.FillRed, "#B22234"},
		{Official, layout.FillWhite, "#FFFFFF"},
		{Official, layout.FillBlue, "#3C3B6E"},
		{Primary, layout.FillRed, "#FF0000"},
		{Primary, layout.FillBlue, "#0000FF"},
		{Primary, layout.FillNone, "none"},
	}
	for _, tt := range tests {
		if got := tt.palette.Hex(tt.fill); got != tt.want {
			t.Errorf("%s.Hex(%q) = %q, want %q", tt.palette.Name, tt.fill, got, tt.want)
		}
	}
}

func TestPaletteColor(t *testing.T) {
	hexColor := regexp.MustCompile(`^#[0-9A-F]{6}$`)
	for _, name := range Names() {
		p, _ := Lookup(name)
		for _, f := range []layout.Fill{layout.FillRed, layout.FillWhite, layout.FillBlue} {
			c := p.Color(f)
			if c.A != 0xFF {
				t.Errorf("%s %s is not opaque: %v", name, f, c)
			}
			if !hexColor.MatchString(Hex(c)) {
				t.Errorf("Hex(%v) = %q", c, Hex(c))
			}
		}
		if c := p.Color(layout.FillNone); c != (color.RGBA{}) {
			t.Errorf("%s none = %v, want transparent", name, c)
		}
	}
}
