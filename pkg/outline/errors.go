package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
)

// ReasonNoValidJSON is the only extraction failure reason.
const ReasonNoValidJSON = "no_valid_json"

var (
	// ErrNoValidJSON matches every *ExtractionError.
	ErrNoValidJSON = errors.New("no valid JSON outline found")

	// ErrEmptyPresentation is returned by Build when no slide could be constructed.
	ErrEmptyPresentation = fmt.Errorf("outline: every slide failed to build: %w", domain.ErrNoSlides)
)

// ExtractionError reports that no parseable outline was found in model output.
type ExtractionError struct {
	Reason string
	// Attempts is the number of parse attempts made, candidates included.
	Attempts int
	// Last is the error of the final attempt, if any.
	Last error
}

func (e *ExtractionError) Error() string {
	if e.Last == nil {
		return fmt.Sprintf("outline: %s after %d attempts", e.Reason, e.Attempts)
	}
	return fmt.Sprintf("outline: %s after %d attempts: %v", e.Reason, e.Attempts, e.Last)
}

func (e *ExtractionError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrNoValidJSON}
	}
	return []error{ErrNoValidJSON, e.Last}
}

// Message returns a user-facing explanation. When the last candidate parsed but
// failed structural validation, its explanation is appended.
func (e *ExtractionError) Message() string {
	msg := "The model response did not contain a valid presentation outline."
	var verr *ValidationError
	if errors.As(e.Last, &verr) {
		return msg + " " + verr.Message()
	}
	return msg + " Please try again or rephrase the topic."
}

// Kind classifies a validation failure.
type Kind string

const (
	KindStructure           Kind = "structure"
	KindInvalidSlide        Kind = "invalid_slide"
	KindInvalidSlideTitle   Kind = "invalid_slide_title"
	KindInvalidSlideType    Kind = "invalid_slide_type"
	KindInvalidSlideLayout  Kind = "invalid_slide_layout"
	KindInvalidTableContent Kind = "invalid_table_content"
	KindInvalidSlideContent Kind = "invalid_slide_content"
)

// ValidationError reports an outline that failed Tier 1 or Tier 2 validation.
type ValidationError struct {
	Kind Kind
	// Index is the zero-based slide index, or -1 for structural failures.
	Index int
	// Reason is a short technical description.
	Reason string
	// MissingFields lists absent top-level fields (structure failures only).
	MissingFields []string
	Err           error
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("outline: %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("outline: %s (slide %d): %s", e.Kind, e.Index, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Message returns a user-facing explanation. Slide numbers are one-based.
func (e *ValidationError) Message() string {
	n := e.Index + 1
	switch e.Kind {
	case KindStructure:
		if len(e.MissingFields) > 0 {
			return fmt.Sprintf("The generated outline is missing required fields: %s.", strings.Join(e.MissingFields, ", "))
		}
		return "The generated outline needs a non-empty title, subtitle and list of slides."
	case KindInvalidSlide:
		return fmt.Sprintf("Slide %d is not a valid slide object.", n)
	case KindInvalidSlideTitle:
		return fmt.Sprintf("Slide %d has a missing, empty or non-text title.", n)
	case KindInvalidSlideType:
		return fmt.Sprintf("Slide %d has an unsupported type. Use one of: %s.", n, joinValues(domain.SlideTypes))
	case KindInvalidSlideLayout:
		return fmt.Sprintf("Slide %d has an unsupported layout. Use one of: %s.", n, joinValues(domain.Layouts))
	case KindInvalidTableContent:
		return fmt.Sprintf("Slide %d is a table but its content is not a list of rows.", n)
	case KindInvalidSlideContent:
		return fmt.Sprintf("Slide %d content must be a list of text items.", n)
	default:
		return "The generated outline is invalid."
	}
}

// IsKind reports whether err is a *ValidationError of kind k.
func IsKind(err error, k Kind) bool {
	var verr *ValidationError
	return errors.As(err, &verr) && verr.Kind == k
}

func joinValues[S ~string](values []S) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
