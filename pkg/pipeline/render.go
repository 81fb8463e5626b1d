package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/sink"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

// Render generates a single artifact for a composed flag.
// Options must have passed [Options.ValidateAndSetDefaults].
func Render(ctx context.Context, f *layout.Flag, format string, opts Options) ([]byte, error) {
	palette, err := styles.Lookup(opts.Palette)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case FormatSVG:
		data = sink.RenderSVG(f, buildSVGOptions(palette, opts)...)
	case FormatPNG:
		data, err = sink.RenderPNG(f, buildRasterOptions(palette, opts)...)
	case FormatBMP:
		data, err = sink.RenderBMP(f, buildRasterOptions(palette, opts)...)
	case FormatPDF:
		data, err = sink.RenderPDF(ctx, f, buildSVGOptions(palette, opts)...)
	case FormatJSON:
		data, err = sink.RenderJSON(f, sink.WithJSONPalette(palette), sink.WithJSONIndent())
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// RenderAll generates every format in opts for a composed flag, bypassing
// the cache.
func RenderAll(ctx context.Context, f *layout.Flag, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := Render(ctx, f, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(p styles.Palette, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithPalette(p)}
	if opts.Grid {
		svgOpts = append(svgOpts, sink.WithGrid())
	}
	return svgOpts
}

// buildRasterOptions builds PNG and BMP rendering options.
func buildRasterOptions(p styles.Palette, opts Options) []sink.RasterOption {
	return []sink.RasterOption{
		sink.WithRasterPalette(p),
		sink.WithScale(opts.Scale),
		sink.WithSupersample(opts.Supersample),
	}
}
