package floorplan

import (
	"encoding/json"
	"io"
	"os"

	"github.com/planrect/planrect/pkg/errors"
)

// WriteResult encodes a result as indented JSON.
func WriteResult(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding result")
	}
	return nil
}

// WriteResultFile writes a result to path as indented JSON.
func WriteResultFile(path string, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "creating %s", path)
	}
	if err := WriteResult(f, r); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "writing %s", path)
	}
	return nil
}

// ReadResult decodes a result written by WriteResult.
func ReadResult(rd io.Reader) (*Result, error) {
	var r Result
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding result")
	}
	if len(r.X) != len(r.Y) || len(r.X) != len(r.Width) || len(r.X) != len(r.Height) {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "result arrays disagree on box count")
	}
	return &r, nil
}

// ReadResultFile reads a result JSON file.
func ReadResultFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "result file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "opening %s", path)
	}
	defer f.Close()
	return ReadResult(f)
}
