package deckgen

import (
	"context"
	"errors"
	"net/http"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/llm"
	"github.com/aretw0/deckgen/pkg/observability"
	"github.com/aretw0/deckgen/pkg/outline"
	"github.com/aretw0/deckgen/pkg/render"
	"github.com/aretw0/deckgen/pkg/sanitize"
	"github.com/aretw0/deckgen/pkg/styles"
)

// Failure is the caller-facing translation of a pipeline error.
type Failure struct {
	// Status is the HTTP status code for the failure.
	Status int
	// Kind is a stable machine-readable label (also used as the metrics outcome).
	Kind string
	// Message is safe to show to end users.
	Message string
	// Retryable reports whether the same request may succeed later.
	Retryable bool
}

const internalMessage = "An unexpected error occurred while generating the presentation."

// Classify maps err onto a Failure. A nil error classifies as success with status 200.
func Classify(err error) Failure {
	if err == nil {
		return Failure{Status: http.StatusOK, Kind: observability.OutcomeSuccess}
	}

	var (
		extractErr *outline.ExtractionError
		validErr   *outline.ValidationError
		connErr    *llm.ConnectionError
	)

	switch {
	case errors.Is(err, sanitize.ErrEmptyTopic),
		errors.Is(err, sanitize.ErrTopicTooLarge),
		errors.Is(err, sanitize.ErrInvalidUTF8),
		errors.Is(err, styles.ErrUnknownStyle),
		errors.Is(err, render.ErrUnsupportedFormat):
		return Failure{
			Status:  http.StatusBadRequest,
			Kind:    observability.OutcomeInput,
			Message: inputMessage(err),
		}

	case errors.As(err, &extractErr):
		return Failure{
			Status:  http.StatusBadRequest,
			Kind:    observability.OutcomeExtraction,
			Message: extractErr.Message(),
		}

	case errors.As(err, &validErr):
		return Failure{
			Status:  http.StatusBadRequest,
			Kind:    observability.OutcomeValidation,
			Message: validErr.Message(),
		}

	case errors.Is(err, domain.ErrNoSlides), errors.Is(err, domain.ErrMissingTitle):
		return Failure{
			Status:  http.StatusBadRequest,
			Kind:    observability.OutcomeValidation,
			Message: "The outline has no usable slides.",
		}

	case errors.As(err, &connErr):
		return Failure{
			Status:    http.StatusServiceUnavailable,
			Kind:      observability.OutcomeConnection,
			Message:   connErr.Message(),
			Retryable: true,
		}

	case errors.Is(err, render.ErrSave):
		return Failure{
			Status:  http.StatusInternalServerError,
			Kind:    observability.OutcomeRender,
			Message: "The presentation could not be saved. Please try again.",
		}

	case errors.Is(err, context.DeadlineExceeded):
		return Failure{
			Status:    http.StatusServiceUnavailable,
			Kind:      observability.OutcomeConnection,
			Message:   "The request took too long. Please try again.",
			Retryable: true,
		}

	default:
		return Failure{
			Status:  http.StatusInternalServerError,
			Kind:    observability.OutcomeError,
			Message: internalMessage,
		}
	}
}

func inputMessage(err error) string {
	switch {
	case errors.Is(err, sanitize.ErrEmptyTopic):
		return "Please provide a topic."
	case errors.Is(err, sanitize.ErrTopicTooLarge):
		return "The topic is too long."
	case errors.Is(err, sanitize.ErrInvalidUTF8):
		return "The topic contains invalid characters."
	default:
		return err.Error()
	}
}
