package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/errors"
	"github.com/planrect/planrect/pkg/floorplan"
	"github.com/planrect/planrect/pkg/problem"
	"github.com/planrect/planrect/pkg/render"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output  string        // result JSON output path
	svg     string        // plan SVG output path
	noCache bool          // disable the result cache
	timeout time.Duration // overrides the problem file's timeout
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOpts

	cmd := &cobra.Command{
		Use:   "solve [problem.toml]",
		Short: "Solve a floor-plan problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the result JSON to this file")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "draw the plan as SVG to this file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "solver time limit (overrides the problem file)")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, path string, opts *solveOpts) error {
	p, err := problem.Load(path)
	if err != nil {
		return err
	}
	if opts.timeout > 0 {
		p.TimeLimit = opts.timeout
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "solving...")
	spinner.Start()
	res, hit, err := runner.SolveWithCacheInfo(cmd.Context(), *p)
	spinner.Stop()
	if err != nil {
		if code := errors.GetCode(err); code == errors.ErrCodeInfeasible || code == errors.ErrCodeNoSolution {
			printError("%s", errors.UserMessage(err))
		}
		return err
	}

	if res.Status == floorplan.StatusFeasible {
		printWarning("Time limit reached; layout is feasible but may not be optimal")
	} else {
		printSuccess("Solved: perimeter %s, bounding %s × %s",
			StyleNumber.Render(fmt.Sprintf("%.3f", res.Perimeter)),
			StyleNumber.Render(fmt.Sprintf("%.3f", res.W)),
			StyleNumber.Render(fmt.Sprintf("%.3f", res.H)))
	}
	printStats(p.Boxes, len(p.Constraints), hit)

	if res.Boxes() > 0 {
		fmt.Println(layoutTable(res))
	}
	if pairs := res.Overlapping(1e-6); len(pairs) > 0 {
		printWarning("Layout contains overlapping boxes: %v", pairs)
	}

	if opts.output != "" {
		if err := floorplan.WriteResultFile(opts.output, res); err != nil {
			return err
		}
		printFile(opts.output)
	}
	if opts.svg != "" {
		if err := os.WriteFile(opts.svg, render.PlanSVG(res, render.SVGOptions{}), 0o644); err != nil {
			return err
		}
		printFile(opts.svg)
	}
	return nil
}

// layoutTable renders the per-box geometry as a bordered table.
func layoutTable(res *floorplan.Result) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	rows := make([][]string, res.Boxes())
	for i := range rows {
		rows[i] = []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("%.3f", res.X[i]),
			fmt.Sprintf("%.3f", res.Y[i]),
			fmt.Sprintf("%.3f", res.Width[i]),
			fmt.Sprintf("%.3f", res.Height[i]),
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Box", "X", "Y", "Width", "Height").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}
