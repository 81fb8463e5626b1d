// Package sink provides output format renderers for composed flags.
//
// # Overview
//
// A "sink" transforms a [layout.Flag] into a final output format. This
// package provides renderers for:
//
//   - SVG: vector output with the star defined once as a <symbol>
//   - PNG and BMP: raster output drawn in-process
//   - PDF: print-ready output (requires rsvg-convert)
//   - JSON: the region tree for external tools
//   - ANSI: a colored block rendering for terminals
//
// # SVG Output
//
// [RenderSVG] walks the region tree in paint order: stripes, then the
// canton, then one <use> per star referencing the star symbol.
//
//	svg := sink.RenderSVG(flag,
//	    sink.WithPalette(styles.Primary),
//	    sink.WithGrid(),
//	)
//
// [WithGrid] overlays the reference cells the star positions were derived
// from, which is handy when checking the layout by eye.
//
// # Raster Output
//
// [RenderPNG] and [RenderBMP] draw the regions with gg at a multiple of the
// target resolution and downsample with imaging, which gives smooth star
// edges without depending on a vector renderer:
//
//	png, err := sink.RenderPNG(flag, sink.WithScale(2))
//
// # PDF Output
//
// [RenderPDF] generates SVG and converts it via [render.ToPDF]. This requires
// librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(f *layout.Flag, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Walk f.Root() with [layout.Walk] for absolute region frames
//  4. Register the format in pkg/pipeline
//
// [layout.Flag]: github.com/matzehuels/oldglory/pkg/layout.Flag
// [layout.Walk]: github.com/matzehuels/oldglory/pkg/layout.Walk
// [render.ToPDF]: github.com/matzehuels/oldglory/pkg/render.ToPDF
package sink
