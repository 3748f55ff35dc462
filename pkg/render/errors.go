package render

import (
	"errors"
	"fmt"
)

var (
	// ErrSave wraps failures to serialize the finished document.
	ErrSave = errors.New("render: save failed")
	// ErrUnsupportedFormat is returned by New for unknown formats.
	ErrUnsupportedFormat = errors.New("render: unsupported format")

	errDrawPanic = errors.New("drawing panicked")
)

// SlideError reports a slide that was skipped.
type SlideError struct {
	Index int
	Title string
	Err   error
}

func (e *SlideError) Error() string {
	return fmt.Sprintf("render: slide %d (%q): %v", e.Index, e.Title, e.Err)
}

func (e *SlideError) Unwrap() error { return e.Err }
