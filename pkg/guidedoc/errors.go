package guidedoc

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is neither a readable xlsx workbook nor CSV.
var ErrInvalidFormat = errors.New("invalid guideline source format")

// ErrUnsupportedSource indicates a source location no loader can read.
var ErrUnsupportedSource = errors.New("unsupported guideline source")

// LoadError represents an error while loading guideline rows.
type LoadError struct {
	Source string
	Stage  string // "open", "range", "rows", "fetch"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in %q (%s): %v", e.Source, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(source, stage string, err error) *LoadError {
	return &LoadError{
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}
