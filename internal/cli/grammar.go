package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/constraint"
)

// grammarCommand creates the grammar command, which lists every constraint
// kind with its sentence pattern.
func (c *CLI) grammarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "grammar",
		Short: "List the constraint kinds and their sentence patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := [][]string{}
			for _, k := range constraint.Kinds() {
				form, _ := constraint.Form(k)
				rows = append(rows, []string{string(k), form})
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Kind", "Pattern").
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
			fmt.Println(t.Render())
			return nil
		},
	}
}
