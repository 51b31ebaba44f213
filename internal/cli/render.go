package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/floorplan"
	"github.com/planrect/planrect/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output SVG path
	width    int    // target image width in pixels
	noLabels bool   // omit box index labels
}

// renderCommand creates the render command, which draws a previously
// solved result file as an SVG image.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{width: 800}

	cmd := &cobra.Command{
		Use:   "render [result.json]",
		Short: "Draw a solved result as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := floorplan.ReadResultFile(args[0])
			if err != nil {
				return err
			}
			out := render.PlanSVG(res, render.SVGOptions{
				Width:    opts.width,
				NoLabels: opts.noLabels,
			})
			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return err
			}
			printSuccess("Rendered %d boxes", res.Boxes())
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "image width in pixels")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit box index labels")

	return cmd
}
