// Package pipeline provides the compose → render pipeline for oldglory.
//
// This package implements the complete pipeline that is shared by the CLI
// commands and the HTTP server. By centralizing this logic, every entry point
// validates options, caches artifacts and reports events the same way.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Compose: lay out the flag for the requested width ([layout.New])
//  2. Render: generate output in various formats (SVG, PNG, BMP, PDF, JSON)
//
// Rendered artifacts are cached per format. When every requested format is
// cached the flag is not composed at all.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Width:   250,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// [layout.New]: github.com/matzehuels/oldglory/pkg/layout.New
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/oldglory/pkg/cache"
	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default flag width (fly) in layout units. Raster
	// sinks map one unit to one pixel at scale 1.
	DefaultWidth = 250.0

	// DefaultScale is the default raster scale factor.
	DefaultScale = 2.0

	// DefaultSupersample is the default raster supersampling factor.
	DefaultSupersample = 4
)

// DefaultPalette is the default color palette.
const DefaultPalette = styles.DefaultName

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatBMP:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// FormatNames lists the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// IsRaster reports whether format is drawn to pixels, so that the scale
// option applies.
func IsRaster(format string) bool {
	return format == FormatPNG || format == FormatBMP
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Compose options
	Width float64 `json:"width"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Palette     string   `json:"palette,omitempty"`
	Scale       float64  `json:"scale,omitempty"`       // raster formats only
	Supersample int      `json:"supersample,omitempty"` // raster formats only
	Grid        bool     `json:"grid,omitempty"`        // overlay the star grid (svg, pdf)
	Refresh     bool     `json:"refresh,omitempty"`     // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Flag is the composed flag. It is nil when every artifact came from
	// the cache.
	Flag *layout.Flag

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // Formats served from the cache
	RenderHit bool     // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePalette checks that a palette is registered.
func ValidatePalette(name string) error {
	_, err := styles.Lookup(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
//
// The width has no default: zero is rejected like any other invalid width.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()

	if err := errors.ValidateWidth(o.Width); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidatePalette(o.Palette); err != nil {
		return err
	}
	if err := errors.ValidateScale(o.Scale); err != nil {
		return err
	}
	if err := errors.ValidateSupersample(o.Supersample); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.Formats = dedupe(o.Formats)
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Palette == "" {
		o.Palette = DefaultPalette
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Supersample == 0 {
		o.Supersample = DefaultSupersample
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
// Options that do not affect a format are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Width:   o.Width,
		Palette: o.Palette,
	}
	if IsRaster(format) {
		k.Scale = o.Scale
		k.Supersample = o.Supersample
	}
	if format == FormatSVG || format == FormatPDF {
		k.Grid = o.Grid
	}
	return k
}

// String summarizes the options for log lines.
func (o *Options) String() string {
	return fmt.Sprintf("width=%v formats=%s palette=%s", o.Width, strings.Join(o.Formats, ","), o.Palette)
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
