package sink

import (
	"encoding/json"

	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	palette *styles.Palette
	indent  bool
}

// WithJSONPalette records the palette name and its resolved colors.
func WithJSONPalette(p styles.Palette) JSONOption {
	return func(r *jsonRenderer) { r.palette = &p }
}

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	layout.Document
	Palette string            `json:"palette,omitempty"`
	Colors  map[string]string `json:"colors,omitempty"`
}

// RenderJSON exports the flag's region tree, measurements and star centers.
// The output is write-only; a flag is rebuilt from its width, never decoded.
func RenderJSON(f *layout.Flag, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Document: f.Document()}
	if p := r.palette; p != nil {
		out.Palette = p.Name
		out.Colors = map[string]string{
			string(layout.FillRed):   p.Hex(layout.FillRed),
			string(layout.FillWhite): p.Hex(layout.FillWhite),
			string(layout.FillBlue):  p.Hex(layout.FillBlue),
		}
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
