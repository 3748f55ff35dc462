package deckgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/llm"
	"github.com/aretw0/deckgen/pkg/observability"
	"github.com/aretw0/deckgen/pkg/outline"
	"github.com/aretw0/deckgen/pkg/render"
	"github.com/aretw0/deckgen/pkg/sanitize"
	"github.com/aretw0/deckgen/pkg/styles"
)

// ErrNoClient is returned by New without an llm.Client.
var ErrNoClient = errors.New("deckgen: an llm client is required")

// Generator runs the outline pipeline. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	client  llm.Client
	styles  *styles.Catalog
	logger  *slog.Logger
	metrics *observability.Metrics
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithStyles sets the style catalog. The built-in styles are used otherwise.
func WithStyles(c *styles.Catalog) Option {
	return func(g *Generator) {
		g.styles = c
	}
}

// WithMetrics records pipeline outcomes on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// New creates a Generator that asks client for outlines.
func New(client llm.Client, opts ...Option) (*Generator, error) {
	if client == nil {
		return nil, ErrNoClient
	}

	g := &Generator{client: client}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.styles == nil {
		g.styles = styles.Default()
	}
	return g, nil
}

// Styles returns the catalog used to resolve style names.
func (g *Generator) Styles() *styles.Catalog {
	return g.styles
}

// Result is the outcome of one successful generation.
type Result struct {
	Presentation *domain.Presentation
	Style        styles.Style
	// Raw is the unmodified model response.
	Raw string
}

// Generate produces a presentation about topic in the named style.
// An empty style selects styles.DefaultStyle.
func (g *Generator) Generate(ctx context.Context, topic, style string) (res *Result, err error) {
	defer func() {
		g.metrics.ObserveGeneration(Classify(err).Kind)
	}()

	clean, err := sanitize.Topic(topic)
	if err != nil {
		return nil, err
	}
	st, err := g.styles.Resolve(style)
	if err != nil {
		return nil, err
	}

	logger := g.logger.With("style", st.Name)
	logger.Info("generating outline", "topic", clean)

	start := time.Now()
	raw, err := g.client.Outline(ctx, llm.Request{Topic: clean, Style: st.Guidance})
	g.metrics.ObserveLLM(time.Since(start))
	if err != nil {
		logger.Error("llm request failed", "topic", clean, "err", err)
		return nil, err
	}

	p, err := g.process(raw, st, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("outline ready", "title", p.Title, "slides", len(p.Slides), "duration", time.Since(start))
	return &Result{Presentation: p, Style: st, Raw: raw}, nil
}

// Process runs extraction, validation, normalization and building over raw model text.
func (g *Generator) Process(raw, style string) (*domain.Presentation, error) {
	st, err := g.styles.Resolve(style)
	if err != nil {
		return nil, err
	}
	return g.process(raw, st, g.logger.With("style", st.Name))
}

func (g *Generator) process(raw string, st styles.Style, logger *slog.Logger) (*domain.Presentation, error) {
	c, err := outline.Extract(raw)
	if err != nil {
		logger.Warn("outline extraction failed", "response_len", len(raw), "err", err)
		return nil, err
	}
	return g.prepare(c, st, logger)
}

// Prepare validates, normalizes and builds an outline supplied by a caller.
func (g *Generator) Prepare(c outline.Candidate, style string) (*domain.Presentation, error) {
	st, err := g.styles.Resolve(style)
	if err != nil {
		return nil, err
	}
	return g.prepare(c, st, g.logger.With("style", st.Name))
}

func (g *Generator) prepare(c outline.Candidate, st styles.Style, logger *slog.Logger) (*domain.Presentation, error) {
	coerced := outline.Coerce(c)
	if err := outline.ValidateSlides(coerced); err != nil {
		logger.Warn("outline validation failed", "err", err)
		return nil, err
	}

	normalized := outline.Normalize(coerced, outline.WithThemeDefaults(st.Theme))

	p, err := outline.Build(normalized,
		outline.WithLogger(logger),
		outline.WithDefaultTheme(st.Theme),
	)
	if err != nil {
		logger.Warn("presentation build failed", "err", err)
		return nil, err
	}
	return p, nil
}

// Render writes p in the given format to w.
func (g *Generator) Render(ctx context.Context, p *domain.Presentation, format render.Format, w io.Writer) error {
	r, err := render.New(format,
		render.WithLogger(g.logger),
		render.WithCreator("deckgen "+Version),
	)
	if err != nil {
		return err
	}

	err = r.Render(ctx, p, w)
	g.metrics.ObserveRender(string(format), err)
	if err != nil {
		g.logger.Error("render failed", "format", format, "title", p.Title, "err", err)
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}
