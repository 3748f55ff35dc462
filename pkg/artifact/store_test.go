package artifact_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/deckgen/pkg/artifact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
	return func() time.Time { return at }
}

func TestStore_SaveAndOpen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	store := artifact.New(dir, artifact.WithClock(fixedClock()))
	ctx := context.Background()

	a, err := store.Save(ctx, "pptx", strings.NewReader("deck"))
	require.NoError(t, err)
	assert.Equal(t, "presentation_20240309_140507.pptx", a.Name)
	assert.EqualValues(t, 4, a.Size)

	rc, info, err := store.Open(ctx, a.Name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "deck", string(data))
	assert.Equal(t, a.Name, info.Name)
}

func TestStore_SaveCollisionsGetSuffix(t *testing.T) {
	store := artifact.New(t.TempDir(), artifact.WithClock(fixedClock()))
	ctx := context.Background()

	first, err := store.Save(ctx, ".PPTX", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := store.Save(ctx, "pptx", strings.NewReader("b"))
	require.NoError(t, err)
	pdf, err := store.Save(ctx, "pdf", strings.NewReader("c"))
	require.NoError(t, err)

	assert.Equal(t, "presentation_20240309_140507.pptx", first.Name)
	assert.Equal(t, "presentation_20240309_140507_1.pptx", second.Name)
	assert.Equal(t, "presentation_20240309_140507.pdf", pdf.Name)
}

func TestStore_ConcurrentSavesAreUnique(t *testing.T) {
	store := artifact.New(t.TempDir(), artifact.WithClock(fixedClock()))
	ctx := context.Background()

	const n = 16
	names := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := store.Save(ctx, "pptx", strings.NewReader("x"))
			assert.NoError(t, err)
			names[i] = a.Name
		}()
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, name := range names {
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
}

func TestStore_SaveRejectsUnknownExtension(t *testing.T) {
	store := artifact.New(t.TempDir())

	_, err := store.Save(context.Background(), "exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, artifact.ErrUnsupportedExtension)
}

func TestStore_OpenRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "secret.txt"), []byte("x"), 0644))
	store := artifact.New(dir)
	ctx := context.Background()

	for _, name := range []string{
		"secret.txt",
		"../secret.txt",
		"presentation_20240309_140507.pptx/../../etc/passwd",
		"presentation_2024.pptx",
		"",
	} {
		_, _, err := store.Open(ctx, name)
		assert.ErrorIs(t, err, artifact.ErrInvalidName, name)
	}

	_, _, err := store.Open(ctx, "presentation_20240309_140507.pdf")
	assert.ErrorIs(t, err, artifact.ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	writeArtifact(t, dir, "presentation_20240101_000000.pptx", base)
	writeArtifact(t, dir, "presentation_20240101_000001.pdf", base.Add(2*time.Minute))
	writeArtifact(t, dir, "presentation_20240101_000002.pptx", base.Add(time.Minute))
	writeArtifact(t, dir, "notes.md", base.Add(time.Hour))

	list, err := artifact.New(dir).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "presentation_20240101_000001.pdf", list[0].Name)
	assert.Equal(t, "presentation_20240101_000002.pptx", list[1].Name)
	assert.Equal(t, "presentation_20240101_000000.pptx", list[2].Name)
}

func TestStore_ListMissingDir(t *testing.T) {
	list, err := artifact.New(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func writeArtifact(t *testing.T, dir, name string, mod time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(name), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}
