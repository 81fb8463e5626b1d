// Package layout computes the geometry of the United States flag.
//
// # Overview
//
// Every measurement derives from one number, the fly (width). The hoist
// (height) is fly/1.9 and every other dimension is a fixed fraction of the
// hoist, following the proportions in Executive Order 10834:
//
//	hoist          = fly / 1.9
//	canton         = 0.76   x 0.5385 hoist
//	stripe height  = 0.0769 hoist
//	star diameter  = 0.0616 hoist
//	star offsets   = 0.063 (x) and 0.054 (y) hoist
//
// [ComputeMetrics] turns a width into a [Metrics] value.
//
// # Star Grid
//
// Stars are not placed by formula. Instead the canton is tiled with reference
// cells two star-offsets wide and one star-offset tall, the first cell of
// every other row is halved (every 12th cell, starting with the 1st), and the
// cells are floated left inside the canton with [FloatLeft]. The bottom-right
// corner of each cell is a candidate star center; candidates whose star would
// cross the canton's right edge are dropped. The first 50 survivors form nine
// rows alternating six and five stars. See [StarPoints] and [StarGrid].
//
// # Composing a Flag
//
// [New] (or [Compose]) builds an immutable [Flag]:
//
//	f, err := layout.Compose(250)
//	if err != nil {
//	    return err
//	}
//	root := f.Root() // flag -> {13 stripes, canton -> {50 stars}}
//
// The region tree is consumed read-only by the sinks in
// github.com/matzehuels/oldglory/pkg/render/sink.
//
// # Helpers
//
//   - [NthChild]: CSS nth-child style selection over any slice
//   - [FloatLeft]: CSS float:left style flow of rectangles inside a width
package layout
