package tui

import (
	"io"
	"os"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is the wrap width when the terminal size is unknown.
const DefaultWidth = 80

type rendererConfig struct {
	width int
	plain bool
}

// RendererOption configures NewRenderer.
type RendererOption func(*rendererConfig)

// WithWidth sets the word wrap width.
func WithWidth(width int) RendererOption {
	return func(c *rendererConfig) {
		if width > 0 {
			c.width = width
		}
	}
}

// WithPlain disables colors and uses the no-TTY style.
func WithPlain(plain bool) RendererOption {
	return func(c *rendererConfig) {
		c.plain = plain
	}
}

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer(opts ...RendererOption) (func(string) (string, error), error) {
	cfg := rendererConfig{width: DefaultWidth}
	for _, opt := range opts {
		opt(&cfg)
	}

	options := []glamour.TermRendererOption{glamour.WithWordWrap(cfg.width)}
	if cfg.plain {
		options = append(options,
			glamour.WithStandardStyle("notty"),
			glamour.WithColorProfile(termenv.Ascii),
		)
	} else {
		options = append(options, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return nil, err
	}
	return r.Render, nil
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w, or DefaultWidth.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// Preview renders p as styled markdown to w. Output that is not a terminal gets the plain style.
func Preview(w io.Writer, p *domain.Presentation) error {
	render, err := NewRenderer(
		WithWidth(terminalWidth(w)),
		WithPlain(!IsTerminal(w)),
	)
	if err != nil {
		return err
	}

	out, err := render(Markdown(p))
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
