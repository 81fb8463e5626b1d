package cli

import (
	"fmt"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oldglory/pkg/layout"
	"github.com/matzehuels/oldglory/pkg/render/sink"
	"github.com/matzehuels/oldglory/pkg/render/styles"
)

// previewSupersample keeps terminal redraws fast on resize.
const previewSupersample = 2

// previewCommand creates the preview command. It draws the flag in the
// terminal and lays it out again whenever the window is resized.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		cols    int
		palette string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw the flag in the terminal",
		Long: `Preview lays the flag out at the terminal's width and redraws it on every resize.

Press p to switch palettes and q to quit. With --cols the flag is printed once
at that width instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("palette") && c.Config.Palette != "" {
				palette = c.Config.Palette
			}
			p, err := styles.Lookup(palette)
			if err != nil {
				return err
			}

			if cols > 0 {
				out, err := renderPreview(cols, p)
				if err != nil {
					return err
				}
				fmt.Println(out)
				return nil
			}

			m := newPreviewModel(p)
			prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()), tea.WithOutput(os.Stderr))
			_, err = prog.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "print once at this many columns instead of starting the interactive preview")
	cmd.Flags().StringVar(&palette, "palette", styles.DefaultName, "color palette: official, primary")

	return cmd
}

// renderPreview lays out a flag one unit per column and draws it.
func renderPreview(cols int, p styles.Palette) (string, error) {
	f, err := layout.Compose(float64(cols))
	if err != nil {
		return "", err
	}
	return sink.RenderANSI(f, cols, sink.WithRasterPalette(p), sink.WithSupersample(previewSupersample))
}

// previewCols returns the widest flag that fits a width × height terminal,
// leaving one line for the status bar. Each cell row holds two pixel rows.
func previewCols(width, height int) int {
	avail := height - 1
	if avail < 1 || width < 1 {
		return 0
	}
	byHeight := int(float64(avail) * 2 * layout.FlyRatio)
	return min(width, byHeight)
}

// =============================================================================
// Model
// =============================================================================

// previewModel is the bubbletea model for the live preview.
type previewModel struct {
	palette styles.Palette
	width   int
	height  int
	cols    int
	view    string
	err     error
}

func newPreviewModel(p styles.Palette) previewModel {
	return previewModel{palette: p}
}

// Init implements tea.Model.
func (m previewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p":
			m.palette = nextPalette(m.palette)
			m.relayout()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
	}
	return m, nil
}

// relayout composes the flag for the current window.
func (m *previewModel) relayout() {
	m.cols = previewCols(m.width, m.height)
	if m.cols < 1 {
		m.view, m.err = "", nil
		return
	}
	m.view, m.err = renderPreview(m.cols, m.palette)
}

// View implements tea.Model.
func (m previewModel) View() string {
	if m.err != nil {
		return StyleWarning.Render(m.err.Error()) + "\n"
	}
	if m.view == "" {
		return StyleDim.Render("waiting for window size…")
	}
	status := fmt.Sprintf("width %d · palette %s · p palette · q quit", m.cols, m.palette.Name)
	return m.view + "\n" + StyleDim.Render(status)
}

// nextPalette cycles through the registered palettes.
func nextPalette(p styles.Palette) styles.Palette {
	names := styles.Names()
	i := slices.Index(names, p.Name)
	next, _ := styles.Lookup(names[(i+1)%len(names)])
	return next
}
