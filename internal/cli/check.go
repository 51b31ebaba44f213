package cli

import (
	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/constraint"
	"github.com/planrect/planrect/pkg/errors"
	"github.com/planrect/planrect/pkg/problem"
)

// checkCommand creates the check command, which validates a problem file
// without solving it.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [problem.toml]",
		Short: "Validate a problem file without solving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}

			bad := 0
			for i, con := range p.Constraints {
				f, err := constraint.Parse(constraint.Kind(con.Kind), con.Text)
				if err != nil {
					bad++
					printError("constraint %d: %s", i, errors.UserMessage(err))
					continue
				}
				for _, b := range f.Boxes() {
					if b < 0 || b >= p.Boxes {
						bad++
						printError("constraint %d references box %d; problem has %d boxes", i, b, p.Boxes)
					}
				}
			}

			if bad > 0 {
				return errors.New(errors.ErrCodeInvalidProblem,
					"%d of %d constraints are invalid", bad, len(p.Constraints))
			}
			printSuccess("%d boxes, %d constraints, all valid", p.Boxes, len(p.Constraints))
			return nil
		},
	}
}
