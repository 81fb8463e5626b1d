package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/oldglory/pkg/errors"
	"github.com/matzehuels/oldglory/pkg/pipeline"
)

// defaultBase is the output base path when neither --output nor the config
// file names one.
const defaultBase = "flag"

// stdoutPath selects standard output as the render destination.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string   // output file (single format) or base path (multiple)
	formats     []string // output formats: svg, png, bmp, pdf, json
	width       float64  // flag width (fly) in layout units
	palette     string   // color palette name
	scale       float64  // raster scale factor
	supersample int      // raster supersampling factor
	grid        bool     // overlay the star grid
	noCache     bool     // bypass the artifact cache entirely
	refresh     bool     // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the flag to SVG, PNG, BMP, PDF or JSON",
		Long: `Render lays out the flag for the given width and writes one file per format.

With a single format, --output names the file ("-" writes to stdout). With
several formats, --output is a base path and each file gets its format's
extension.`,
		Example: `  oldglory render
  oldglory render -w 1900 -f svg,png -o out/flag
  oldglory render -f json -o - | jq .metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			c.mergeRenderConfig(cmd, &opts)

			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			_, err = runRender(cmd.Context(), runner, &opts, os.Stdout)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format) or base path (multiple), "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated)")
	cmd.Flags().Float64VarP(&opts.width, "width", "w", pipeline.DefaultWidth, "flag width (fly)")
	cmd.Flags().StringVar(&opts.palette, "palette", pipeline.DefaultPalette, "color palette: official, primary")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "raster scale factor (png, bmp)")
	cmd.Flags().IntVar(&opts.supersample, "supersample", pipeline.DefaultSupersample, "raster supersampling factor (png, bmp), at most 16")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "overlay the star grid (svg, pdf)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and render again")

	return cmd
}

// mergeRenderConfig fills options whose flags were not set on the command
// line from the config file.
func (c *CLI) mergeRenderConfig(cmd *cobra.Command, opts *renderOpts) {
	cfg := c.Config
	flags := cmd.Flags()
	if !flags.Changed("width") && cfg.Width != 0 {
		opts.width = cfg.Width
	}
	if !flags.Changed("format") && len(cfg.Formats) > 0 {
		opts.formats = cfg.Formats
	}
	if !flags.Changed("palette") && cfg.Palette != "" {
		opts.palette = cfg.Palette
	}
	if !flags.Changed("scale") && cfg.Scale != 0 {
		opts.scale = cfg.Scale
	}
	if !flags.Changed("output") && cfg.Output != "" {
		opts.output = cfg.Output
	}
}

// runRender executes the pipeline and writes every artifact. It returns the
// paths written; stdout output yields no paths.
func runRender(ctx context.Context, runner *pipeline.Runner, opts *renderOpts, stdout io.Writer) ([]string, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	popts := pipeline.Options{
		Width:       opts.width,
		Formats:     opts.formats,
		Palette:     opts.palette,
		Scale:       opts.scale,
		Supersample: opts.supersample,
		Grid:        opts.grid,
		Refresh:     opts.refresh,
		Logger:      logger,
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.output == stdoutPath && len(popts.Formats) > 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(popts.Formats))
	}

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		return nil, err
	}

	if opts.output == stdoutPath {
		_, err := stdout.Write(result.Artifacts[popts.Formats[0]])
		return nil, err
	}

	var paths []string
	for _, format := range popts.Formats {
		path := outputPath(opts.output, format, len(popts.Formats))
		if err := writeArtifact(path, result.Artifacts[format]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(paths)))
	printStats(popts.Width, len(paths), result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	if !opts.grid {
		printNextStep("Check the star grid", "oldglory render --grid -w "+strconv.FormatFloat(popts.Width, 'g', -1, 64))
	}
	return paths, nil
}

// basePath strips a known format extension from output so that each format
// can append its own. An empty output selects the default base.
func basePath(output string) string {
	if output == "" {
		return defaultBase
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.ToLower(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file for one format. A single format with an
// explicit output writes exactly there; otherwise the format's extension is
// appended to the base path.
func outputPath(output, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output) + "." + format
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
