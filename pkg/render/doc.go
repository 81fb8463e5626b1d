// Package render turns a composed [layout.Flag] into output files.
//
// # Overview
//
// The drawing itself lives in two subpackages:
//
//   - [styles]: named color palettes mapping logical fills to colors
//   - [sink]: output formats (SVG, PNG, BMP, PDF, JSON, ANSI)
//
// This package holds the format conversion shared by the sinks.
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(flag)
//	pdf, err := render.ToPDF(ctx, svg)
//
// Raster formats are drawn in-process and do not need librsvg.
//
// [layout.Flag]: github.com/matzehuels/oldglory/pkg/layout.Flag
// [styles]: github.com/matzehuels/oldglory/pkg/render/styles
// [sink]: github.com/matzehuels/oldglory/pkg/render/sink
package render
