package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/deckgen/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "deckgen.yaml")
	content := "log:\n  level: error\noutput:\n  dir: " + filepath.Join(dir, "out") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "deckgen version "))
}

func TestValidateCommand_Stdin(t *testing.T) {
	out, err := execute(t, testutils.Outline, "validate", "--config", writeConfig(t), "--format", "mermaid", "--style", "minimal")
	require.NoError(t, err)
	assert.Contains(t, out, "root((\"Go Concurrency\"))")
}

func TestStylesCommand(t *testing.T) {
	out, err := execute(t, "", "styles", "--config", writeConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "corporate")
	assert.Contains(t, out, "academic")
}

func TestGenerateCommand_RequiresTopic(t *testing.T) {
	_, err := execute(t, "", "generate", "--config", writeConfig(t))
	assert.Error(t, err)
}
