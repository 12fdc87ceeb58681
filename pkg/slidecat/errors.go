package slidecat

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates an input file does not exist.
var ErrFileNotFound = errors.New("input file not found")

// ErrInvalidChunkSize indicates a split chunk size below 1.
var ErrInvalidChunkSize = errors.New("chunk size must be at least 1")

// ErrNoInputs indicates a merge without input files.
var ErrNoInputs = errors.New("no input files provided")

// ErrNoSlides indicates a presentation without slides.
var ErrNoSlides = errors.New("no slides found")

// ErrNoLayouts indicates a merge base deck without slide layouts.
var ErrNoLayouts = errors.New("presentation has no slide layouts")

// ErrInvalidRange indicates a malformed slide range string.
var ErrInvalidRange = errors.New("invalid range format")

// RangeError reports a slide number outside the valid bounds.
type RangeError struct {
	// Bound is "start" or "end".
	Bound string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s slide %d is out of range (%d-%d)", e.Bound, e.Value, e.Min, e.Max)
}

// DocumentError represents a failure to load or write a presentation.
type DocumentError struct {
	Path string
	Op   string // "open", "save"
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// NewDocumentError creates a new DocumentError.
func NewDocumentError(path, op string, err error) *DocumentError {
	return &DocumentError{
		Path: path,
		Op:   op,
		Err:  err,
	}
}
