package styles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/schema"
	"github.com/aretw0/loam"
	"github.com/mitchellh/mapstructure"
)

// DefaultStyle is used when a request names no style.
const DefaultStyle = "corporate"

// ErrUnknownStyle is returned by Catalog.Resolve for names it does not hold.
var ErrUnknownStyle = errors.New("unknown style")

// Style is a named preset.
type Style struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Guidance    string       `json:"guidance"`
	Theme       domain.Theme `json:"theme"`
}

// Metadata is the frontmatter of a style document.
type Metadata struct {
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description" mapstructure:"description"`
	Theme       map[string]any `json:"theme" mapstructure:"theme"`
}

// Builtins returns the styles available without a styles directory.
func Builtins() []Style {
	base := domain.DefaultTheme()
	return []Style{
		{
			Name:        "corporate",
			Description: "Clean business deck with concise, outcome-focused bullets",
			Guidance:    "Write for business stakeholders. Lead with outcomes and numbers, keep bullets short and action-oriented, and close with clear next steps.",
			Theme:       base,
		},
		{
			Name:        "academic",
			Description: "Lecture style with definitions, evidence and references",
			Guidance:    "Write for a lecture audience. Define key terms before using them, support claims with evidence or citations, and end with a summary and open questions.",
			Theme: domain.Theme{
				PrimaryColor:    "#1F3A5F",
				SecondaryColor:  "#333333",
				AccentColor:     "#B8860B",
				BackgroundColor: "#FDFCF8",
				FontFamily:      "Georgia",
			}.Merge(base),
		},
		{
			Name:        "minimal",
			Description: "Sparse slides with one idea each",
			Guidance:    "Use as few words as possible. One idea per slide, at most three bullets, no filler.",
			Theme: domain.Theme{
				PrimaryColor:    "#111111",
				SecondaryColor:  "#555555",
				AccentColor:     "#E63946",
				BackgroundColor: "#FFFFFF",
				FontFamily:      "Helvetica",
				BodyFontSize:    28,
			}.Merge(base),
		},
	}
}

// Catalog holds styles by lowercase name. It is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	styles map[string]Style
}

// NewCatalog creates a catalog from the given styles. Later entries replace earlier ones.
func NewCatalog(styles ...Style) *Catalog {
	c := &Catalog{styles: make(map[string]Style, len(styles))}
	for _, s := range styles {
		c.put(s)
	}
	return c
}

// Default returns a catalog with only the built-in styles.
func Default() *Catalog {
	return NewCatalog(Builtins()...)
}

func (c *Catalog) put(s Style) {
	s.Name = normalizeName(s.Name)
	if s.Name == "" {
		return
	}
	s.Theme = s.Theme.Merge(domain.DefaultTheme())
	c.mu.Lock()
	c.styles[s.Name] = s
	c.mu.Unlock()
}

// Add registers or replaces a style.
func (c *Catalog) Add(s Style) {
	c.put(s)
}

// Replace swaps the contents of c for those of other.
func (c *Catalog) Replace(other *Catalog) {
	other.mu.RLock()
	fresh := maps.Clone(other.styles)
	other.mu.RUnlock()

	c.mu.Lock()
	c.styles = fresh
	c.mu.Unlock()
}

// Get returns the named style. An empty name selects DefaultStyle.
func (c *Catalog) Get(name string) (Style, bool) {
	name = normalizeName(name)
	if name == "" {
		name = DefaultStyle
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.styles[name]
	return s, ok
}

// Resolve is Get with an error for unknown names.
func (c *Catalog) Resolve(name string) (Style, error) {
	s, ok := c.Get(name)
	if !ok {
		return Style{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownStyle, name, strings.Join(c.Names(), ", "))
	}
	return s, nil
}

// Names returns the style names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.styles))
}

// List returns every style sorted by name.
func (c *Catalog) List() []Style {
	names := c.Names()
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Style, 0, len(names))
	for _, n := range names {
		out = append(out, c.styles[n])
	}
	return out
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *slog.Logger
}

// WithLogger sets the logger used to report skipped style documents.
func WithLogger(logger *slog.Logger) LoadOption {
	return func(c *loadConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Load returns the built-in styles overlaid with the documents found in dir.
// A document that cannot be decoded is logged and skipped.
func Load(ctx context.Context, dir string, opts ...LoadOption) (*Catalog, error) {
	cfg := newLoadConfig(opts)

	if dir == "" {
		return Default(), nil
	}

	repo, err := openRepository(dir)
	if err != nil {
		return nil, err
	}
	return load(ctx, repo, cfg.logger)
}

// Watch reloads dir into c whenever a style document changes, until ctx is canceled.
// A reload that fails keeps the previous styles.
func Watch(ctx context.Context, dir string, c *Catalog, opts ...LoadOption) error {
	cfg := newLoadConfig(opts)

	repo, err := openRepository(dir)
	if err != nil {
		return err
	}

	events, err := repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return fmt.Errorf("failed to start loam watcher: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				fresh, err := load(ctx, repo, cfg.logger)
				if err != nil {
					cfg.logger.Warn("style reload failed", "id", evt.ID, "err", err)
					continue
				}
				c.Replace(fresh)
				cfg.logger.Info("styles reloaded", "id", evt.ID, "styles", len(fresh.Names()))
			}
		}
	}()
	return nil
}

func newLoadConfig(opts []LoadOption) loadConfig {
	cfg := loadConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func openRepository(dir string) (*loam.TypedRepository[Metadata], error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid styles path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return loam.NewTypedRepository[Metadata](repo), nil
}

func load(ctx context.Context, repo *loam.TypedRepository[Metadata], logger *slog.Logger) (*Catalog, error) {
	docs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	catalog := Default()
	for _, listed := range docs {
		// List carries only IDs and metadata; Get reads the body.
		doc, err := repo.Get(ctx, listed.ID)
		if err != nil {
			logger.Warn("skipping style", "id", listed.ID, "err", err)
			continue
		}

		name := doc.Data.Name
		if name == "" {
			name = trimExtension(doc.ID)
		}

		theme, err := decodeTheme(doc.Data.Theme)
		if err != nil {
			logger.Warn("skipping style", "id", doc.ID, "err", err)
			continue
		}

		catalog.Add(Style{
			Name:        name,
			Description: doc.Data.Description,
			Guidance:    strings.TrimSpace(doc.Content),
			Theme:       theme,
		})
		logger.Debug("style loaded", "name", normalizeName(name), "id", doc.ID)
	}
	return catalog, nil
}

var hexColor = regexp.MustCompile(`^#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

func colorType() schema.Type {
	return schema.Custom("hex_color", func(v any) error {
		s, ok := v.(string)
		if !ok || !hexColor.MatchString(s) {
			return fmt.Errorf("expected #RGB or #RRGGBB, got %v", v)
		}
		return nil
	})
}

// themeSchema checks the keys a style document may set. Unknown keys are
// reported as not defined.
var themeSchema = schema.Schema{
	domain.KeyPrimaryColor:     colorType(),
	domain.KeySecondaryColor:   colorType(),
	domain.KeyAccentColor:      colorType(),
	domain.KeyBackgroundColor:  colorType(),
	domain.KeyTextColor:        colorType(),
	domain.KeyFontFamily:       schema.NonEmptyString(),
	domain.KeyTitleFontSize:    schema.Int(),
	domain.KeySubtitleFontSize: schema.Int(),
	domain.KeyBodyFontSize:     schema.Int(),
}

func decodeTheme(raw map[string]any) (domain.Theme, error) {
	var theme domain.Theme
	if len(raw) == 0 {
		return theme, nil
	}
	if err := schema.ValidateFields(themeSchema, raw, slices.Sorted(maps.Keys(raw))...); err != nil {
		return theme, fmt.Errorf("invalid theme: %w", err)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &theme,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return theme, err
	}
	if err := decoder.Decode(raw); err != nil {
		return theme, fmt.Errorf("invalid theme: %w", err)
	}
	return theme, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func trimExtension(id string) string {
	base := filepath.Base(filepath.ToSlash(id))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
