package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/pipeline"
)

// metricsCommand creates the metrics command, which prints the derived
// measurements for a width without rendering anything.
func (c *CLI) metricsCommand() *cobra.Command {
	var (
		width    float64
		showStar bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Print the flag measurements for a width",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("width") && c.Config.Width != 0 {
				width = c.Config.Width
			}
			f, err := layout.Compose(width)
			if err != nil {
				return err
			}
			if asJSON {
				return writeMetricsJSON(os.Stdout, f)
			}
			printMetrics(f)
			if showStar {
				fmt.Println(starTable(f))
			}
			return nil
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "w", pipeline.DefaultWidth, "flag width (fly)")
	cmd.Flags().BoolVar(&showStar, "stars", false, "list every star center")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the measurements as JSON")

	return cmd
}

// metricsJSON is the shape printed by metrics --json and served by the
// server's /metrics endpoint.
type metricsJSON struct {
	Width   float64           `json:"width"`
	Height  float64           `json:"height"`
	Metrics layout.MetricsDoc `json:"metrics"`
	Points  []layout.PointDoc `json:"star_points"`
}

func newMetricsJSON(f *layout.Flag) metricsJSON {
	doc := f.Document()
	return metricsJSON{
		Width:   doc.Width,
		Height:  doc.Height,
		Metrics: doc.Metrics,
		Points:  doc.Points,
	}
}

func writeMetricsJSON(w io.Writer, f *layout.Flag) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newMetricsJSON(f))
}

func printMetrics(f *layout.Flag) {
	m := f.Metrics()
	fmt.Println(StyleTitle.Render("Old Glory"))
	printKeyValue("fly", formatNum(m.Fly()))
	printKeyValue("hoist", formatNum(m.Hoist()))
	printKeyValue("canton", formatNum(m.CantonSize.W)+" × "+formatNum(m.CantonSize.H))
	printKeyValue("stripe", formatNum(m.StripeSize.H))
	printKeyValue("star diameter", formatNum(m.StarSize.W))
	printKeyValue("star offset", formatNum(m.StarOffset.X)+", "+formatNum(m.StarOffset.Y))
	printKeyValue("stars", strconv.Itoa(len(f.StarPoints())))
}

// starTable lists every star center with its row.
func starTable(f *layout.Flag) string {
	points := f.StarPoints()
	rows := make([][]string, 0, len(points))
	row, lastY := 0, points[0].Y
	for i, p := range points {
		if p.Y != lastY {
			row++
			lastY = p.Y
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(row + 1),
			formatNum(p.X),
			formatNum(p.Y),
		})
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("#", "row", "x", "y").
		Rows(rows...).
		StyleFunc(func(r, _ int) lipgloss.Style {
			if r == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
