package outline

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// UntitledSlide replaces blank slide titles.
const UntitledSlide = "Untitled Slide"

type buildConfig struct {
	logger *slog.Logger
	theme  domain.Theme
}

// BuildOption configures Build.
type BuildOption func(*buildConfig)

// WithLogger sets the logger used to report skipped slides.
func WithLogger(logger *slog.Logger) BuildOption {
	return func(cfg *buildConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithDefaultTheme sets the theme that fills fields the candidate omits.
func WithDefaultTheme(t domain.Theme) BuildOption {
	return func(cfg *buildConfig) {
		cfg.theme = t.Merge(domain.DefaultTheme())
	}
}

type presentationInput struct {
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
	Theme    any    `mapstructure:"theme"`
	Slides   []any  `mapstructure:"slides"`
}

type slideInput struct {
	Title       string `mapstructure:"title"`
	Type        string `mapstructure:"type"`
	Layout      string `mapstructure:"layout"`
	Content     any    `mapstructure:"content"`
	VisualNotes string `mapstructure:"visual_notes"`
	Notes       string `mapstructure:"notes"`
}

// Build maps a normalized, validated candidate onto a domain.Presentation.
//
// It does not re-run validation. A slide that cannot be mapped is logged and
// skipped; if no slide survives, Build returns ErrEmptyPresentation.
func Build(c Candidate, opts ...BuildOption) (*domain.Presentation, error) {
	cfg := buildConfig{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		theme:  domain.DefaultTheme(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var in presentationInput
	if err := decode(map[string]any(c), &in); err != nil {
		return nil, fmt.Errorf("outline: decode presentation: %w", err)
	}

	var theme domain.Theme
	if err := decode(in.Theme, &theme); err != nil {
		cfg.logger.Warn("theme could not be decoded, using defaults", "error", err)
		theme = domain.Theme{}
	}

	p := &domain.Presentation{
		Title:    strings.TrimSpace(in.Title),
		Subtitle: strings.TrimSpace(in.Subtitle),
		Theme:    theme.Merge(cfg.theme),
		Slides:   make([]domain.Slide, 0, len(in.Slides)),
	}

	for i, raw := range in.Slides {
		slide, err := buildSlide(raw)
		if err != nil {
			cfg.logger.Warn("skipping slide", "index", i, "error", err)
			continue
		}
		p.Slides = append(p.Slides, slide)
	}

	if len(p.Slides) == 0 {
		return nil, ErrEmptyPresentation
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("outline: %w", err)
	}
	return p, nil
}

func buildSlide(raw any) (slide domain.Slide, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while building slide: %v", r)
		}
	}()

	var in slideInput
	if err := decode(raw, &in); err != nil {
		return domain.Slide{}, err
	}

	slide = domain.Slide{
		Title:       strings.TrimSpace(in.Title),
		Type:        domain.SlideType(in.Type),
		Layout:      domain.Layout(in.Layout),
		VisualNotes: in.VisualNotes,
		Notes:       in.Notes,
	}
	if slide.Title == "" {
		slide.Title = UntitledSlide
	}
	if !slide.Type.Valid() {
		return domain.Slide{}, fmt.Errorf("unknown slide type %q", in.Type)
	}
	if !slide.Layout.Valid() {
		return domain.Slide{}, fmt.Errorf("unknown layout %q", in.Layout)
	}

	if slide.Type == domain.SlideTypeTable {
		err = decode(in.Content, &slide.Rows)
	} else {
		err = decode(in.Content, &slide.Bullets)
	}
	if err != nil {
		return domain.Slide{}, fmt.Errorf("content: %w", err)
	}
	return slide, nil
}

func decode(input, output any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
