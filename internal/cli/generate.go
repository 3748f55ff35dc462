package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// GenerateOptions configures RunGenerate.
type GenerateOptions struct {
	Topic string
	Style string
	OutputOptions
}

// RunGenerate asks the model for an outline about opts.Topic and writes the result.
func RunGenerate(ctx context.Context, app *App, opts GenerateOptions) error {
	gen, err := app.Generator(ctx, false)
	if err != nil {
		return err
	}

	res, err := gen.Generate(ctx, opts.Topic, opts.Style)
	if err != nil {
		return app.failure(err)
	}
	return app.emit(ctx, gen, res.Presentation, opts.OutputOptions)
}

// ValidateOptions configures RunValidate.
type ValidateOptions struct {
	// Path is the file holding raw model output. Empty or "-" reads stdin.
	Path  string
	Style string
	OutputOptions
}

// RunValidate runs extraction, normalization and validation over saved model
// output without contacting the model.
func RunValidate(ctx context.Context, app *App, stdin io.Reader, opts ValidateOptions) error {
	raw, err := readInput(opts.Path, stdin)
	if err != nil {
		return err
	}

	gen, err := app.Generator(ctx, true)
	if err != nil {
		return err
	}

	p, err := gen.Process(raw, opts.Style)
	if err != nil {
		return app.failure(err)
	}
	return app.emit(ctx, gen, p, opts.OutputOptions)
}

func readInput(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read outline: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no outline text in %s", displayPath(path))
	}
	return string(data), nil
}

func displayPath(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}
