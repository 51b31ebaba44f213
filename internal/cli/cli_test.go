package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planrect/planrect/pkg/floorplan"
)

func testCLI() *CLI {
	return New(io.Discard, LogInfo)
}

func writeTempProblem(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const sideBySide = `
[problem]
boxes = 2

[[constraint]]
kind = "width"
text = "box 0 has width of 2"

[[constraint]]
kind = "height"
text = "box 0 has height of 3"

[[constraint]]
kind = "width"
text = "box 1 has width of 4"

[[constraint]]
kind = "height"
text = "box 1 has height of 3"

[[constraint]]
kind = "position"
text = "box 0 is to the left of box 1"
`

func TestCacheDirXDG(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", tmp)
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(tmp, "planrect") {
		t.Errorf("cacheDir() = %q, want %q", dir, filepath.Join(tmp, "planrect"))
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	root := testCLI().RootCommand()
	want := []string{"solve", "check", "grammar", "render", "graph", "watch", "serve", "cache", "completion"}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSolveCommand(t *testing.T) {
	path := writeTempProblem(t, sideBySide)
	out := filepath.Join(t.TempDir(), "result.json")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"solve", path, "--no-cache", "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("solve: %v", err)
	}

	res, err := floorplan.ReadResultFile(out)
	if err != nil {
		t.Fatalf("reading result: %v", err)
	}
	if res.Perimeter < 17.99 || res.Perimeter > 18.01 {
		t.Errorf("perimeter = %v, want 18", res.Perimeter)
	}
}

func TestCheckCommand(t *testing.T) {
	path := writeTempProblem(t, sideBySide)
	root := testCLI().RootCommand()
	root.SetArgs([]string{"check", path})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Errorf("check on valid file: %v", err)
	}
}

func TestCheckCommandInvalid(t *testing.T) {
	path := writeTempProblem(t, `
[problem]
boxes = 1

[[constraint]]
kind = "width"
text = "box 7 has width of 2"
`)
	root := testCLI().RootCommand()
	root.SetArgs([]string{"check", path})
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("check should fail on out-of-range box index")
	}
}

func TestRenderCommand(t *testing.T) {
	res := &floorplan.Result{
		Perimeter: 10, W: 3, H: 2,
		X: []float64{0}, Y: []float64{0},
		Width: []float64{3}, Height: []float64{2},
		Status: floorplan.StatusOptimal,
	}
	in := filepath.Join(t.TempDir(), "result.json")
	if err := floorplan.WriteResultFile(in, res); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "plan.svg")

	root := testCLI().RootCommand()
	root.SetArgs([]string{"render", in, "-o", out})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not SVG")
	}
}

func TestGraphCommandDOT(t *testing.T) {
	path := writeTempProblem(t, sideBySide)

	var buf bytes.Buffer
	root := testCLI().RootCommand()
	root.SetOut(&buf)
	root.SetArgs([]string{"graph", path, "-f", "dot"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("graph: %v", err)
	}
	if !strings.Contains(buf.String(), "graph constraints {") {
		t.Errorf("output is not DOT:\n%s", buf.String())
	}
}

func TestGrammarCommand(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetArgs([]string{"grammar"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Errorf("grammar: %v", err)
	}
}
