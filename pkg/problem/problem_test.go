package problem

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/planrect/planrect/pkg/errors"
)

const sample = `
[problem]
boxes = 2
padding = 0.5
timeout = "30s"

[[constraint]]
kind = "width"
text = "box 0 has width of 2"

[[constraint]]
kind = "position"
text = "box 0 is to the left of box 1"
`

func TestParse(t *testing.T) {
	p, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Boxes != 2 || p.Padding != 0.5 {
		t.Errorf("boxes=%d padding=%v, want 2 and 0.5", p.Boxes, p.Padding)
	}
	if p.TimeLimit != 30*time.Second {
		t.Errorf("time limit = %v, want 30s", p.TimeLimit)
	}
	if len(p.Constraints) != 2 || p.Constraints[1].Kind != "position" {
		t.Errorf("constraints = %+v", p.Constraints)
	}
}

func TestParseDefaults(t *testing.T) {
	p, err := Parse([]byte("[problem]\nboxes = 1\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if p.Padding != 0 || p.TimeLimit != 0 || len(p.Constraints) != 0 {
		t.Errorf("got %+v, want zero padding, zero time limit, no constraints", p)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"bad toml", "[problem\nboxes = 1", errors.ErrCodeInvalidFormat},
		{"negative boxes", "[problem]\nboxes = -1", errors.ErrCodeInvalidProblem},
		{"negative padding", "[problem]\nboxes = 1\npadding = -0.5", errors.ErrCodeInvalidProblem},
		{"bad timeout", "[problem]\nboxes = 1\ntimeout = \"soon\"", errors.ErrCodeInvalidProblem},
		{"zero timeout", "[problem]\nboxes = 1\ntimeout = \"0s\"", errors.ErrCodeInvalidProblem},
		{"missing kind", "[problem]\nboxes = 1\n[[constraint]]\ntext = \"box 0 has width of 2\"", errors.ErrCodeInvalidProblem},
		{"missing text", "[problem]\nboxes = 1\n[[constraint]]\nkind = \"width\"", errors.ErrCodeInvalidProblem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); !errors.Is(err, tt.code) {
				t.Errorf("Parse() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Boxes != 2 {
		t.Errorf("boxes = %d, want 2", p.Boxes)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want code FILE_NOT_FOUND", err)
	}
}
