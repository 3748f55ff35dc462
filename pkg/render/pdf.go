package render

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// maroto lays rows out on a 12-column grid.
const gridColumns = 12

// PDF renders presentations with maroto, one landscape page per slide.
type PDF struct {
	opts options
}

// NewPDF returns a PDF renderer.
func NewPDF(opts ...Option) *PDF {
	return &PDF{opts: newOptions(opts)}
}

func (r *PDF) Format() Format { return FormatPDF }

// Render writes p as a PDF document.
func (r *PDF) Render(ctx context.Context, p *domain.Presentation, w io.Writer) error {
	pages, err := plans(ctx, p, r.opts.logger)
	if err != nil {
		return err
	}

	pal := newPalette(p.Theme)
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithTitle(p.Title, true).
		WithAuthor(r.opts.creator, true).
		WithDefaultFont(&props.Font{
			Family: fontfamily.Arial,
			Size:   float64(pal.bodySize) / 2,
		}).
		Build()

	m := maroto.New(cfg)
	for _, plan := range pages {
		var rows []core.Row
		if err := drawSafely(func() { rows = pdfRows(plan, pal) }); err != nil {
			r.opts.logger.Warn("skipping slide", "error", &SlideError{Index: plan.index, Title: plan.title, Err: err})
			continue
		}
		m.AddPages(page.New().Add(rows...))
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func pdfRows(plan slidePlan, pal palette) []core.Row {
	var rows []core.Row

	switch plan.kind {
	case planCover, planTitle:
		rows = append(rows, row.New(45))
		rows = append(rows, textRow(18, plan.title, props.Text{
			Size:  float64(pal.titleSize) / 1.5,
			Style: fontstyle.Bold,
			Align: align.Center,
			Color: pdfColor(pal.primary),
		}))
		for _, line := range plan.subtitle {
			rows = append(rows, textRow(12, line, props.Text{
				Size:  float64(pal.subtitleSize) / 2,
				Align: align.Center,
				Color: pdfColor(pal.secondary),
			}))
		}
	case planBullets:
		rows = append(rows, headingRows(plan.title, pal)...)
		rows = append(rows, bulletRows(plan.columns, pal)...)
	case planTable:
		rows = append(rows, headingRows(plan.title, pal)...)
		rows = append(rows, tableRows(plan.header, plan.rows, pal)...)
	}

	if plan.notes != "" {
		rows = append(rows, row.New(6), textRow(8, plan.notes, props.Text{
			Size:  8,
			Style: fontstyle.Italic,
			Color: pdfColor(pal.secondary),
		}))
	}
	return rows
}

func headingRows(title string, pal palette) []core.Row {
	heading := textRow(14, title, props.Text{
		Size:  float64(pal.subtitleSize) / 1.6,
		Style: fontstyle.Bold,
		Color: pdfColor(pal.primary),
	})
	rule := row.New(1.5).Add(col.New(3)).WithStyle(&props.Cell{BackgroundColor: pdfColor(pal.accent)})
	return []core.Row{heading, rule, row.New(6)}
}

func bulletRows(columns [][]string, pal palette) []core.Row {
	width := gridColumns / len(columns)
	longest := 0
	for _, c := range columns {
		longest = max(longest, len(c))
	}

	rows := make([]core.Row, 0, longest)
	for i := range longest {
		cols := make([]core.Col, 0, len(columns))
		for _, c := range columns {
			item := col.New(width)
			if i < len(c) {
				item.Add(text.New("• "+c[i], props.Text{
					Size:  float64(pal.bodySize) / 2,
					Color: pdfColor(pal.text),
				}))
			}
			cols = append(cols, item)
		}
		rows = append(rows, row.New(10).Add(cols...))
	}
	return rows
}

func tableRows(header []string, body [][]string, pal palette) []core.Row {
	width := max(1, gridColumns/len(header))

	cells := func(values []string, style props.Text) []core.Col {
		cols := make([]core.Col, len(values))
		for i, v := range values {
			cols[i] = col.New(width).Add(text.New(v, style))
		}
		return cols
	}

	rows := []core.Row{
		row.New(9).Add(cells(header, props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Left:  1.5,
			Top:   2,
			Color: pdfColor(white),
		})...).WithStyle(&props.Cell{BackgroundColor: pdfColor(pal.primary)}),
	}
	for i, values := range body {
		r := row.New(8).Add(cells(values, props.Text{
			Size:  9,
			Left:  1.5,
			Top:   1.5,
			Color: pdfColor(pal.text),
		})...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: &props.Color{Red: 241, Green: 245, Blue: 249}})
		}
		rows = append(rows, r)
	}
	return rows
}

func textRow(height float64, value string, style props.Text) core.Row {
	return row.New(height).Add(col.New(gridColumns).Add(text.New(value, style)))
}

func pdfColor(c rgb) *props.Color {
	return &props.Color{Red: int(c.r), Green: int(c.g), Blue: int(c.b)}
}
