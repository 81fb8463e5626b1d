package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestRasterize(t *testing.T) {
	f := testFlag(t, 250)
	img, err := Rasterize(f)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 132 {
		t.Fatalf("bounds = %v, want 250x132", b)
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"top stripe", 200, 5, styles.Official.Red},
		{"second stripe", 200, 15, styles.Official.White},
		{"ninth stripe", 200, 85, styles.Official.Red},
		{"canton between stars", 4, 40, styles.Official.Blue},
	}
	for _, tt := range tests {
		got := nrgbaAt(img, tt.x, tt.y)
		want := color.NRGBA{tt.want.R, tt.want.G, tt.want.B, tt.want.A}
		if got != want {
			t.Errorf("%s pixel (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, want)
		}
	}

	// First star is centered near (8.29, 7.1).
	if c := nrgbaAt(img, 8, 7); c.R < 200 || c.B < 200 {
		t.Errorf("star pixel = %v, want near white", c)
	}
}

func TestRasterizeScale(t *testing.T) {
	img, err := Rasterize(testFlag(t, 100), WithScale(2.5), WithSupersample(1))
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 132 {
		t.Errorf("bounds = %v, want 250x132", b)
	}
}

func TestRasterizeInvalid(t *testing.T) {
	f := testFlag(t, 250)

	tests := []struct {
		name string
		opts []RasterOption
	}{
		{"zero scale", []RasterOption{WithScale(0)}},
		{"scale above max", []RasterOption{WithScale(errors.MaxScale + 1)}},
		{"too many pixels", []RasterOption{WithScale(errors.MaxScale), WithSupersample(16)}},
		{"supersample above max", []RasterOption{WithSupersample(errors.MaxSupersample + 1)}},
		{"overflowing supersample", []RasterOption{WithScale(2), WithSupersample(1 << 30)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Rasterize(f, tt.opts...)
			if !errors.Is(err, errors.ErrCodeInvalidScale) {
				t.Errorf("Rasterize() error = %v, want INVALID_SCALE", err)
			}
		})
	}
}

func TestRenderPNGHugeSupersample(t *testing.T) {
	_, err := RenderPNG(testFlag(t, 250), WithScale(2), WithSupersample(1<<30))
	if !errors.Is(err, errors.ErrCodeInvalidScale) {
		t.Errorf("RenderPNG() error = %v, want INVALID_SCALE", err)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testFlag(t, 250), WithRasterPalette(styles.Primary))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if got := nrgbaAt(img, 200, 5); got != (color.NRGBA{0xFF, 0, 0, 0xFF}) {
		t.Errorf("top stripe = %v, want primary red", got)
	}
}

func TestRenderBMP(t *testing.T) {
	data, err := RenderBMP(testFlag(t, 250))
	if err != nil {
		t.Fatalf("RenderBMP() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("BM")) {
		t.Fatalf("missing BMP signature")
	}
	img, err := bmp.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode bmp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 132 {
		t.Errorf("bounds = %v, want 250x132", b)
	}
	if got := nrgbaAt(img, 0, 131); got.A != 0xFF {
		t.Errorf("bottom row pixel = %v, want opaque", got)
	}
}
