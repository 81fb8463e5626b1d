// Package pkg provides the core libraries for Old Glory, a layout engine for
// the flag of the United States.
//
// # Overview
//
// Everything about the flag follows from one number, its width (the fly).
// The height (the hoist), the canton, the thirteen stripes and the fifty
// star positions are all proportions of the hoist. The pkg directory is
// organized into three areas:
//
//  1. [layout] - Geometry (metrics, flow layout, star grid, region tree)
//  2. [render] - Output (palettes and SVG/PNG/BMP/PDF/JSON/ANSI sinks)
//  3. [pipeline] - Orchestration (compose → render, with caching)
//
// # Architecture
//
// The typical data flow:
//
//	width
//	  ↓
//	[layout.ComputeMetrics] (derived measurements)
//	  ↓
//	[layout.StarPoints] (float-left grid, every other cell selected)
//	  ↓
//	[layout.Compose] (stripes + canton + stars as a region tree)
//	  ↓
//	[render/sink] (SVG, PNG, BMP, PDF, JSON, ANSI)
//
// # Quick Start
//
//	f, err := layout.Compose(250)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := sink.RenderSVG(f)
//	png, _ := sink.RenderPNG(f, sink.WithScale(2))
//
// # Main Packages
//
// [geom] - Points, sizes and rectangles in float64 layout units.
//
// [assets] - Embedded vector assets, most importantly the star polygon.
//
// [layout] - Flag geometry. [layout.FloatLeft] packs boxes left to right
// with wrapping, [layout.NthChild] selects every n-th element, and
// [layout.Compose] assembles the region tree that the sinks walk.
//
// [render/styles] - Color palettes (official Old Glory colors, primary).
//
// [render/sink] - Output formats. Raster sinks draw with gg and downsample
// with imaging; PDF goes through rsvg-convert.
//
// [cache] - Artifact caches: null, file and Redis backends with scoped keys.
//
// [pipeline] - Option validation, cached compose → render runs shared by the
// CLI and the HTTP server.
//
// [observability] - Hook interfaces for layout, render, cache and HTTP
// events. No-op by default.
//
// [errors] - Coded errors mapped to CLI messages and HTTP statuses.
//
// [buildinfo] - Version information stamped at link time.
package pkg
