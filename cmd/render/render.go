// Package render implements the "render" subcommand: print a serialized
// grid to the terminal with one color per pattern.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/eng618/wfc-loom/pkg/catalogio"
	"github.com/eng618/wfc-loom/pkg/grid"
	"github.com/eng618/wfc-loom/pkg/model"
	"github.com/eng618/wfc-loom/pkg/serialize"
)

var (
	catalogPath string
	gridPath    string
	width       int
	height      int
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a serialized grid to the terminal",
	Long: `Render a ".dat" grid (see serialize.Serialize) to the terminal,
assigning each pattern uid a perceptually distinct color via an evenly
spaced hue sweep.

Examples:
  wfc-loom render --catalog patterns.json --grid grid.dat --width 20 --height 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, err := catalogio.LoadFile(catalogPath)
		if err != nil {
			return fmt.Errorf("render: load catalog: %w", err)
		}

		g, err := serialize.Deserialize(gridPath, repo, height, width)
		if err != nil {
			return fmt.Errorf("render: load grid: %w", err)
		}

		palette := repo.AllPatterns()
		colors := assignColors(palette)
		RenderGridToWriter(cmd.OutOrStdout(), g, colors)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&catalogPath, "catalog", "c", "", "path to a pattern catalog JSON file (required)")
	renderCmd.Flags().StringVarP(&gridPath, "grid", "g", "", "path to a serialized .dat grid file (required)")
	renderCmd.Flags().IntVarP(&width, "width", "w", 20, "grid width")
	renderCmd.Flags().IntVarP(&height, "height", "H", 20, "grid height")
	_ = renderCmd.MarkFlagRequired("catalog")
	_ = renderCmd.MarkFlagRequired("grid")
}

// GetCommand returns the render command for registration with root.
func GetCommand() *cobra.Command {
	return renderCmd
}

// assignColors spaces len(palette) hues evenly around the color wheel
// (go-colorful's HSV) and maps each down to the nearest of fatih/color's
// eight terminal foreground colors.
func assignColors(palette []*model.MetaPattern) map[int]color.Attribute {
	attrs := []color.Attribute{
		color.FgRed, color.FgGreen, color.FgYellow, color.FgBlue,
		color.FgMagenta, color.FgCyan, color.FgWhite, color.FgHiRed,
	}

	out := make(map[int]color.Attribute, len(palette))
	n := len(palette)
	if n == 0 {
		return out
	}

	for i, mp := range palette {
		hue := 360.0 * float64(i) / float64(n)
		c := colorful.Hsv(hue, 0.75, 0.9)
		out[mp.UID] = nearestAttr(c, attrs)
	}
	return out
}

var attrRefs = map[color.Attribute]colorful.Color{
	color.FgRed:     {R: 1, G: 0, B: 0},
	color.FgGreen:   {R: 0, G: 1, B: 0},
	color.FgYellow:  {R: 1, G: 1, B: 0},
	color.FgBlue:    {R: 0, G: 0, B: 1},
	color.FgMagenta: {R: 1, G: 0, B: 1},
	color.FgCyan:    {R: 0, G: 1, B: 1},
	color.FgWhite:   {R: 1, G: 1, B: 1},
	color.FgHiRed:   {R: 1, G: 0.5, B: 0.5},
}

func nearestAttr(c colorful.Color, attrs []color.Attribute) color.Attribute {
	best := attrs[0]
	bestDist := -1.0
	for _, a := range attrs {
		d := c.DistanceLab(attrRefs[a])
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = a
		}
	}
	return best
}

// RenderGridToWriter prints a colored grid to w, one cell per glyph, empty
// cells shown as a dim dot.
func RenderGridToWriter(w io.Writer, g *grid.Grid, colors map[int]color.Attribute) {
	for x := 0; x < g.Height; x++ {
		for y := 0; y < g.Width; y++ {
			p := model.Point{X: x, Y: y}
			pattern := g.At(p)
			if pattern == nil {
				fmt.Fprint(w, "· ")
				continue
			}
			attr, ok := colors[pattern.UID]
			if !ok {
				attr = color.FgWhite
			}
			fmt.Fprint(w, color.New(attr).Sprintf("%d ", pattern.UID))
		}
		fmt.Fprintln(w)
	}
}
