package floorplan

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/planrect/planrect/pkg/errors"
)

func TestResultFileRoundTrip(t *testing.T) {
	want := &Result{
		Perimeter: 18,
		W:         6, H: 3,
		X:      []float64{0, 2},
		Y:      []float64{0, 0},
		Width:  []float64{2, 4},
		Height: []float64{3, 3},
		Status: StatusOptimal,
	}
	path := filepath.Join(t.TempDir(), "result.json")
	if err := WriteResultFile(path, want); err != nil {
		t.Fatalf("WriteResultFile() error = %v", err)
	}
	got, err := ReadResultFile(path)
	if err != nil {
		t.Fatalf("ReadResultFile() error = %v", err)
	}
	if got.Perimeter != want.Perimeter || got.W != want.W || got.H != want.H || got.Status != want.Status {
		t.Errorf("ReadResultFile() = %+v, want %+v", got, want)
	}
	if len(got.X) != 2 || got.X[1] != 2 {
		t.Errorf("x = %v, want [0 2]", got.X)
	}
}

func TestReadResultFileMissing(t *testing.T) {
	_, err := ReadResultFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want code FILE_NOT_FOUND", err)
	}
}

func TestReadResultBadShape(t *testing.T) {
	r := strings.NewReader(`{"x": [0, 1], "y": [0], "width": [1, 1], "height": [1, 1]}`)
	if _, err := ReadResult(r); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want code INVALID_FORMAT", err)
	}
}
