package render

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slideTexts(t *testing.T, path string) [][]string {
	t.Helper()

	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	require.NoError(t, err)

	var out [][]string
	for _, slide := range pres.GetAllSlides() {
		var texts []string
		for _, shape := range slide.GetShapes() {
			rts, ok := shape.(*ppt.RichTextShape)
			if !ok {
				continue
			}
			for _, para := range rts.GetParagraphs() {
				var b strings.Builder
				for _, elem := range para.GetElements() {
					if run, ok := elem.(*ppt.TextRun); ok {
						b.WriteString(run.GetText())
					}
				}
				if s := strings.TrimSpace(b.String()); s != "" {
					texts = append(texts, s)
				}
			}
		}
		out = append(out, texts)
	}
	return out
}

func TestPPTX_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPPTX().Render(context.Background(), samplePresentation(), &buf))
	require.NotZero(t, buf.Len())
	assert.Equal(t, "PK", string(buf.Bytes()[:2]))

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	slides := slideTexts(t, path)
	require.Len(t, slides, 3)
	assert.Contains(t, slides[0], "Go in Production")
	assert.Contains(t, slides[0], "Lessons learned")
	assert.Contains(t, slides[1], "Agenda")
	assert.Contains(t, slides[1], "• What next")
	assert.Contains(t, slides[1], "timeline graphic")
	assert.Contains(t, slides[2], "Lang")
	assert.Contains(t, slides[2], "Rust")
}

func TestPPTX_SynthesizesCover(t *testing.T) {
	p := samplePresentation()
	p.Slides = p.Slides[1:]

	var buf bytes.Buffer
	require.NoError(t, NewPPTX().Render(context.Background(), p, &buf))

	path := filepath.Join(t.TempDir(), "deck.pptx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	slides := slideTexts(t, path)
	require.Len(t, slides, 3)
	assert.Contains(t, slides[0], "Go in Production")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPPTX_SaveFailure(t *testing.T) {
	err := NewPPTX().Render(context.Background(), samplePresentation(), failingWriter{})
	assert.ErrorIs(t, err, ErrSave)
}

func TestPPTX_SkipsSlideThatPanics(t *testing.T) {
	tests := []struct {
		name    string
		failing string
		first   string
	}{
		{name: "middle slide", failing: "Agenda", first: "Go in Production"},
		{name: "first slide", failing: "Go in Production", first: "Agenda"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig := drawPage
			t.Cleanup(func() { drawPage = orig })
			drawPage = func(slide *ppt.Slide, page slidePlan, pal palette) {
				if page.title == tt.failing {
					slide.CreateRichTextShape()
					panic("shape overflow")
				}
				orig(slide, page, pal)
			}

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, nil))

			var buf bytes.Buffer
			require.NoError(t, NewPPTX(WithLogger(logger)).Render(context.Background(), samplePresentation(), &buf))

			path := filepath.Join(t.TempDir(), "deck.pptx")
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

			slides := slideTexts(t, path)
			require.Len(t, slides, 2)
			assert.Contains(t, slides[0], tt.first)
			for _, texts := range slides {
				assert.NotContains(t, texts, tt.failing)
			}
			assert.Contains(t, logs.String(), "skipping slide")
			assert.Contains(t, logs.String(), "shape overflow")
		})
	}
}
