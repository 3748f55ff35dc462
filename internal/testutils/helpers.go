package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/deckgen"
	"github.com/aretw0/deckgen/pkg/llm"
	"github.com/stretchr/testify/require"
)

// Outline is a well-formed model response with one slide of each kind.
const Outline = `{
  "title": "Go Concurrency",
  "subtitle": "Goroutines and channels",
  "slides": [
    {"title": "Go Concurrency", "type": "title", "layout": "centered", "content": "An overview"},
    {"title": "Primitives", "type": "content", "layout": "split", "content": ["goroutines", "channels", "select"]},
    {"title": "Costs", "type": "table", "layout": "table", "content": [["Primitive", "Cost"], ["goroutine", "2KB"]]}
  ]
}`

// StaticClient returns an llm.Client that always answers with text and err.
func StaticClient(text string, err error) llm.Client {
	return llm.ClientFunc(func(ctx context.Context, req llm.Request) (string, error) {
		return text, err
	})
}

// NewGenerator builds a Generator around client, failing the test on error.
func NewGenerator(t *testing.T, client llm.Client, opts ...deckgen.Option) *deckgen.Generator {
	t.Helper()

	gen, err := deckgen.New(client, opts...)
	require.NoError(t, err, "Failed to create generator")
	return gen
}

// SetupStylesDir writes files (name to content) into a temporary directory
// and returns its absolute path.
func SetupStylesDir(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(absPath, name), []byte(content), 0o644))
	}
	return absPath
}
