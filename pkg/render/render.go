package render

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
)

// Format is an output document format.
type Format string

const (
	FormatPPTX Format = "pptx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "pptx", "ppt" and "pdf", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pptx", "ppt":
		return FormatPPTX, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string { return "." + string(f) }

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Filename returns the download name used for attachments.
func (f Format) Filename() string { return "presentation" + f.Extension() }

// Renderer writes a presentation as a document.
type Renderer interface {
	Format() Format
	// Render writes the document to w. Nothing is written if it fails.
	Render(ctx context.Context, p *domain.Presentation, w io.Writer) error
}

// Option configures renderers.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	creator string
}

// WithLogger sets the logger used to report skipped slides.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCreator sets the document author property.
func WithCreator(name string) Option {
	return func(o *options) { o.creator = name }
}

func newOptions(opts []Option) options {
	o := options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		creator: "deckgen",
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the renderer for format.
func New(format Format, opts ...Option) (Renderer, error) {
	switch format {
	case FormatPPTX:
		return NewPPTX(opts...), nil
	case FormatPDF:
		return NewPDF(opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// plans lays out every slide, logging and dropping those that fail.
// A cover page is added when the deck does not open with a title slide,
// so the result is never empty.
func plans(ctx context.Context, p *domain.Presentation, logger *slog.Logger) ([]slidePlan, error) {
	out := make([]slidePlan, 0, len(p.Slides)+1)
	if len(p.Slides) == 0 || p.Slides[0].Type != domain.SlideTypeTitle {
		out = append(out, coverPlan(p))
	}
	for i, s := range p.Slides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan, err := planSlide(s)
		if err != nil {
			logger.Warn("skipping slide", "error", &SlideError{Index: i, Title: s.Title, Err: err})
			continue
		}
		plan.index = i
		out = append(out, plan)
	}
	return out, nil
}

// drawSafely runs draw and turns a panic into an error.
func drawSafely(draw func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errDrawPanic, r)
		}
	}()
	draw()
	return nil
}
