package render

import (
	"bytes"
	"context"
	"fmt"
	"io"

	ppt "github.com/VantageDataChat/GoPPT"
	"github.com/aretw0/deckgen/pkg/domain"
)

// 16:9 slide geometry in EMU.
const (
	emuPerInch = 914400

	slideWidth   = int64(10.0 * emuPerInch)
	slideHeight  = int64(5.625 * emuPerInch)
	marginLeft   = int64(0.5 * emuPerInch)
	contentWidth = int64(9.0 * emuPerInch)
	barHeight    = int64(0.12 * emuPerInch)

	tableCellFont = 12
	notesFont     = 10
)

// PPTX renders presentations with GoPPT.
type PPTX struct {
	opts options
}

// NewPPTX returns a PPTX renderer.
func NewPPTX(opts ...Option) *PPTX {
	return &PPTX{opts: newOptions(opts)}
}

func (r *PPTX) Format() Format { return FormatPPTX }

// Render writes p as a PowerPoint 2007 document.
func (r *PPTX) Render(ctx context.Context, p *domain.Presentation, w io.Writer) error {
	pages, err := plans(ctx, p, r.opts.logger)
	if err != nil {
		return err
	}

	deck := ppt.New()
	deck.GetDocumentProperties().Title = p.Title
	deck.GetDocumentProperties().Creator = r.opts.creator

	pal := newPalette(p.Theme)
	drawn := 0
	for _, page := range pages {
		slide := deck.GetActiveSlide()
		if drawn > 0 {
			slide = deck.CreateSlide()
		}
		if err := drawSafely(func() { drawPage(slide, page, pal) }); err != nil {
			r.opts.logger.Warn("skipping slide", "error", &SlideError{Index: page.index, Title: page.title, Err: err})
			discardSlide(deck, slide, drawn == 0)
			continue
		}
		drawn++
	}

	writer, err := ppt.NewWriter(deck, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	pw, ok := writer.(*ppt.PPTXWriter)
	if !ok {
		return fmt.Errorf("%w: unexpected writer %T", ErrSave, writer)
	}

	var buf bytes.Buffer
	if err := pw.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// drawPage is swapped in tests to simulate GoPPT failures.
var drawPage = drawPPTX

// discardSlide drops a partially drawn slide. The first slide of a deck
// cannot be removed, so it is emptied instead and reused.
func discardSlide(deck *ppt.Presentation, slide *ppt.Slide, first bool) {
	if !first {
		_ = deck.RemoveSlideByIndex(deck.GetSlideCount() - 1)
		return
	}
	for i := len(slide.GetShapes()) - 1; i >= 0; i-- {
		_ = slide.RemoveShape(i)
	}
}

func drawPPTX(slide *ppt.Slide, page slidePlan, pal palette) {
	background := slide.CreateRichTextShape()
	background.SetOffsetX(0).SetOffsetY(0)
	background.SetWidth(slideWidth).SetHeight(slideHeight)
	background.SetFill(solidFill(pal.background))

	bar := slide.CreateRichTextShape()
	bar.SetOffsetX(0).SetOffsetY(0)
	bar.SetWidth(slideWidth).SetHeight(barHeight)
	bar.SetFill(solidFill(pal.primary))

	switch page.kind {
	case planCover, planTitle:
		drawCenteredTitle(slide, page, pal)
	case planBullets:
		drawHeading(slide, page.title, pal)
		drawBullets(slide, page.columns, pal)
	case planTable:
		drawHeading(slide, page.title, pal)
		drawTable(slide, page.header, page.rows, pal)
	}

	if page.notes != "" {
		notes := slide.CreateRichTextShape()
		notes.SetOffsetX(marginLeft).SetOffsetY(int64(5.1 * emuPerInch))
		notes.SetWidth(contentWidth).SetHeight(int64(0.35 * emuPerInch))
		tr := notes.CreateTextRun(page.notes)
		styleRun(tr, pal, notesFont, false, pal.secondary)
	}
}

func drawCenteredTitle(slide *ppt.Slide, page slidePlan, pal palette) {
	title := slide.CreateRichTextShape()
	title.SetOffsetX(marginLeft).SetOffsetY(int64(1.5 * emuPerInch))
	title.SetWidth(contentWidth).SetHeight(int64(1.2 * emuPerInch))
	styleRun(title.CreateTextRun(page.title), pal, pal.titleSize, true, pal.primary)
	alignCenter(title.GetActiveParagraph())

	if len(page.subtitle) == 0 {
		return
	}
	sub := slide.CreateRichTextShape()
	sub.SetOffsetX(marginLeft).SetOffsetY(int64(2.9 * emuPerInch))
	sub.SetWidth(contentWidth).SetHeight(int64(1.4 * emuPerInch))
	for i, line := range page.subtitle {
		if i > 0 {
			sub.CreateParagraph()
		}
		styleRun(sub.CreateTextRun(line), pal, pal.subtitleSize, false, pal.secondary)
		alignCenter(sub.GetActiveParagraph())
	}
}

func drawHeading(slide *ppt.Slide, text string, pal palette) {
	heading := slide.CreateRichTextShape()
	heading.SetOffsetX(marginLeft).SetOffsetY(int64(0.3 * emuPerInch))
	heading.SetWidth(contentWidth).SetHeight(int64(0.8 * emuPerInch))
	styleRun(heading.CreateTextRun(text), pal, pal.subtitleSize, true, pal.primary)

	rule := slide.CreateRichTextShape()
	rule.SetOffsetX(marginLeft).SetOffsetY(int64(1.1 * emuPerInch))
	rule.SetWidth(int64(1.5 * emuPerInch)).SetHeight(int64(0.05 * emuPerInch))
	rule.SetFill(solidFill(pal.accent))
}

func drawBullets(slide *ppt.Slide, columns [][]string, pal palette) {
	gap := int64(0.3 * emuPerInch)
	width := (contentWidth - gap*int64(len(columns)-1)) / int64(len(columns))

	for c, bullets := range columns {
		box := slide.CreateRichTextShape()
		box.SetOffsetX(marginLeft + int64(c)*(width+gap)).SetOffsetY(int64(1.3 * emuPerInch))
		box.SetWidth(width).SetHeight(int64(3.7 * emuPerInch))
		for i, b := range bullets {
			if i > 0 {
				box.CreateParagraph()
			}
			styleRun(box.CreateTextRun("• "+b), pal, pal.bodySize, false, pal.text)
		}
	}
}

// drawTable lays the table out as one text shape per cell.
func drawTable(slide *ppt.Slide, header []string, rows [][]string, pal palette) {
	cols := int64(len(header))
	top := int64(1.3 * emuPerInch)
	cellWidth := contentWidth / cols
	rowHeight := int64(3.6*emuPerInch) / int64(len(rows)+1)
	rowHeight = min(rowHeight, int64(0.5*emuPerInch))

	drawRow := func(y int64, cells []string, fill rgb, color rgb, bold bool) {
		for c, text := range cells {
			cell := slide.CreateRichTextShape()
			cell.SetOffsetX(marginLeft + int64(c)*cellWidth).SetOffsetY(y)
			cell.SetWidth(cellWidth).SetHeight(rowHeight)
			cell.SetFill(solidFill(fill))
			styleRun(cell.CreateTextRun(text), pal, tableCellFont, bold, color)
		}
	}

	drawRow(top, header, pal.primary, white, true)
	stripe := rgb{0xF1, 0xF5, 0xF9}
	for i, row := range rows {
		fill := pal.background
		if i%2 == 1 {
			fill = stripe
		}
		drawRow(top+int64(i+1)*rowHeight, row, fill, pal.text, false)
	}
}

func styleRun(tr *ppt.TextRun, pal palette, size int, bold bool, color rgb) {
	font := tr.GetFont()
	font.SetSize(size).SetBold(bold).SetColor(ppt.NewColor(color.argb()))
	if pal.font != "" {
		font.Name = pal.font
	}
}

func solidFill(c rgb) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(c.argb()))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}
