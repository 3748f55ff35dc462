package domain

import "errors"

// ErrNoSlides is returned when a presentation would be built without any slide.
var ErrNoSlides = errors.New("presentation has no slides")

// ErrMissingTitle is returned when a presentation has an empty title or subtitle.
var ErrMissingTitle = errors.New("presentation title and subtitle are required")
