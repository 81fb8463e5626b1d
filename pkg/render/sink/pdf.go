package sink

import (
	"context"

	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render"
)

// RenderPDF renders the flag as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, f *layout.Flag, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(f, opts...))
}
