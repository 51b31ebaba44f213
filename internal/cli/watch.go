package cli

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/planrect/planrect/pkg/floorplan"
	"github.com/planrect/planrect/pkg/problem"
)

// watchCommand creates the watch command: an interactive view of a running
// solve showing the search progress live.
func (c *CLI) watchCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "watch [problem.toml]",
		Short: "Solve a problem with a live progress view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := problem.Load(args[0])
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), *p, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

type progressMsg struct {
	explored, pruned int
	best             float64
}

type solveDoneMsg struct {
	res *floorplan.Result
	err error
}

type watchTickMsg time.Time

func watchTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// watchModel is the bubbletea model for the live solve view.
type watchModel struct {
	boxes       int
	constraints int
	start       time.Time

	explored, pruned int
	best             float64

	res    *floorplan.Result
	err    error
	done   bool
	cancel context.CancelFunc
}

func newWatchModel(p floorplan.Problem, cancel context.CancelFunc) watchModel {
	return watchModel{
		boxes:       p.Boxes,
		constraints: len(p.Constraints),
		start:       time.Now(),
		best:        math.Inf(1),
		cancel:      cancel,
	}
}

func (m watchModel) Init() tea.Cmd {
	return watchTick()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case progressMsg:
		m.explored = msg.explored
		m.pruned = msg.pruned
		m.best = msg.best
	case solveDoneMsg:
		m.res = msg.res
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case watchTickMsg:
		return m, watchTick()
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Solving floor plan"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	best := "-"
	if !math.IsInf(m.best, 1) {
		best = fmt.Sprintf("%.3f", m.best)
	}
	rows := []struct{ k, v string }{
		{"boxes", fmt.Sprintf("%d", m.boxes)},
		{"constraints", fmt.Sprintf("%d", m.constraints)},
		{"elapsed", time.Since(m.start).Round(100 * time.Millisecond).String()},
		{"explored", fmt.Sprintf("%d", m.explored)},
		{"pruned", fmt.Sprintf("%d", m.pruned)},
		{"best perimeter", best},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			StyleDim.Render(fmt.Sprintf("%-15s", r.k)),
			StyleNumber.Render(r.v)))
	}
	return b.String()
}

func (c *CLI) runWatch(ctx context.Context, p floorplan.Problem, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	solveCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	prog := tea.NewProgram(newWatchModel(p, cancel))
	runner.Progress = func(explored, pruned int, best float64) {
		prog.Send(progressMsg{explored: explored, pruned: pruned, best: best})
	}

	go func() {
		res, err := runner.Solve(solveCtx, p)
		prog.Send(solveDoneMsg{res: res, err: err})
	}()

	final, err := prog.Run()
	if err != nil {
		return err
	}
	m := final.(watchModel)
	if !m.done {
		printWarning("Solve cancelled")
		return nil
	}
	if m.err != nil {
		return m.err
	}

	res := m.res
	if res.Status == floorplan.StatusFeasible {
		printWarning("Time limit reached; layout is feasible but may not be optimal")
	} else {
		printSuccess("Solved: perimeter %s", StyleNumber.Render(fmt.Sprintf("%.3f", res.Perimeter)))
	}
	if res.Boxes() > 0 {
		fmt.Println(layoutTable(res))
	}
	return nil
}
