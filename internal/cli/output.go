package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/internal/presentation/graph"
	"github.com/aretw0/deckgen/internal/presentation/tui"
	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/observability"
	"github.com/aretw0/deckgen/pkg/render"
)

// Text output formats. The rendered formats are those of render.ParseFormat.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatMermaid  = "mermaid"
)

// OutputOptions selects how a presentation is written.
type OutputOptions struct {
	// Format is json, markdown, mermaid, pptx or pdf. Empty means json.
	Format string
	// Out is a file for rendered formats. Empty saves into the artifact store.
	Out string
	// Notes includes speaker notes in the mermaid mindmap.
	Notes bool
}

// failure turns a pipeline error into the message shown to the user.
func (a *App) failure(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	f := deckgen.Classify(err)
	a.Logger.Debug("command failed", "kind", f.Kind, "err", err)
	if f.Kind == observability.OutcomeError {
		return err
	}
	return errors.New(f.Message)
}

func (a *App) emit(ctx context.Context, gen *deckgen.Generator, p *domain.Presentation, opts OutputOptions) error {
	switch opts.Format {
	case "", FormatJSON:
		enc := json.NewEncoder(a.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case FormatMarkdown:
		return tui.Preview(a.Stdout, p)
	case FormatMermaid:
		_, err := io.WriteString(a.Stdout, graph.GenerateMindmap(p, &graph.MindmapOptions{Notes: opts.Notes}))
		return err
	}

	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("unknown output format %q (want json, markdown, mermaid, pptx or pdf)", opts.Format)
	}

	if opts.Out != "" {
		return a.renderFile(ctx, gen, p, format, opts.Out)
	}

	var buf bytes.Buffer
	if err := gen.Render(ctx, p, format, &buf); err != nil {
		return a.failure(err)
	}
	store, err := a.Store(ctx)
	if err != nil {
		return err
	}
	art, err := store.Save(ctx, format.Extension(), &buf)
	if err != nil {
		return fmt.Errorf("failed to save presentation: %w", err)
	}
	a.Logger.Info("presentation saved", "name", art.Name, "size", art.Size)
	_, err = fmt.Fprintln(a.Stdout, filepath.Join(store.Dir(), art.Name))
	return err
}

func (a *App) renderFile(ctx context.Context, gen *deckgen.Generator, p *domain.Presentation, format render.Format, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := gen.Render(ctx, p, format, f); err != nil {
		return a.failure(err)
	}
	a.Logger.Info("presentation written", "path", path, "format", format)
	return nil
}
