package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/problem"
	"github.com/planrect/planrect/pkg/render"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output string // output path
	format string // "dot" or "svg"
}

// graphCommand creates the graph command, which visualizes the constraint
// structure of a problem as a Graphviz graph.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: "svg"}

	cmd := &cobra.Command{
		Use:   "graph [problem.toml]",
		Short: "Visualize the constraint structure of a problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "dot" && opts.format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", opts.format)
			}

			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			dot, err := render.ConstraintDOT(*p)
			if err != nil {
				return err
			}

			out := []byte(dot)
			if opts.format == "svg" {
				out, err = render.RenderSVG(dot)
				if err != nil {
					return err
				}
			}

			if opts.output == "" {
				_, err := cmd.OutOrStdout().Write(out)
				return err
			}
			if err := os.WriteFile(opts.output, out, 0o644); err != nil {
				return err
			}
			printFile(opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), dot")

	return cmd
}
