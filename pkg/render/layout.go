package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
)

// MaxTableColumns is the widest table either renderer lays out.
const MaxTableColumns = 12

var errEmptyTable = errors.New("table has no cells")

type planKind int

const (
	planCover planKind = iota
	planTitle
	planBullets
	planTable
)

// slidePlan is a renderer-independent description of one page.
type slidePlan struct {
	// index is the source slide index, -1 for a synthesized cover.
	index    int
	kind     planKind
	title    string
	subtitle []string
	// columns holds one or two bullet columns.
	columns [][]string
	header  []string
	rows    [][]string
	notes   string
}

func coverPlan(p *domain.Presentation) slidePlan {
	return slidePlan{index: -1, kind: planCover, title: p.Title, subtitle: []string{p.Subtitle}}
}

func planSlide(s domain.Slide) (slidePlan, error) {
	plan := slidePlan{title: s.Title, notes: s.VisualNotes}

	switch s.Type {
	case domain.SlideTypeTitle:
		plan.kind = planTitle
		plan.subtitle = s.Bullets
	case domain.SlideTypeContent:
		plan.kind = planBullets
		if s.Layout == domain.LayoutSplit && len(s.Bullets) > 1 {
			half := (len(s.Bullets) + 1) / 2
			plan.columns = [][]string{s.Bullets[:half], s.Bullets[half:]}
		} else {
			plan.columns = [][]string{s.Bullets}
		}
	case domain.SlideTypeTable:
		cols := s.Columns()
		if cols == 0 {
			return slidePlan{}, errEmptyTable
		}
		if cols > MaxTableColumns {
			return slidePlan{}, fmt.Errorf("table has %d columns, at most %d are supported", cols, MaxTableColumns)
		}
		plan.kind = planTable
		plan.header = pad(s.Header(), cols)
		for _, row := range s.Body() {
			plan.rows = append(plan.rows, pad(row, cols))
		}
	default:
		return slidePlan{}, fmt.Errorf("unknown slide type %q", s.Type)
	}
	return plan, nil
}

func pad(row []string, n int) []string {
	out := make([]string, n)
	copy(out, row)
	return out
}

// rgb is a color parsed from a #RRGGBB theme value.
type rgb struct{ r, g, b uint8 }

func parseColor(hex string, fallback rgb) rgb {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return rgb{r: uint8(v >> 16), g: uint8(v >> 8), b: uint8(v)}
}

// argb formats c for GoPPT, fully opaque.
func (c rgb) argb() string {
	return fmt.Sprintf("FF%02X%02X%02X", c.r, c.g, c.b)
}

// palette is the resolved theme of a presentation.
type palette struct {
	primary      rgb
	secondary    rgb
	accent       rgb
	background   rgb
	text         rgb
	font         string
	titleSize    int
	subtitleSize int
	bodySize     int
}

var (
	black = rgb{}
	white = rgb{0xFF, 0xFF, 0xFF}
)

func newPalette(t domain.Theme) palette {
	t = t.Merge(domain.DefaultTheme())
	d := domain.DefaultTheme()
	return palette{
		primary:      parseColor(t.PrimaryColor, parseColor(d.PrimaryColor, black)),
		secondary:    parseColor(t.SecondaryColor, parseColor(d.SecondaryColor, black)),
		accent:       parseColor(t.AccentColor, parseColor(d.AccentColor, black)),
		background:   parseColor(t.BackgroundColor, white),
		text:         parseColor(t.TextColor, black),
		font:         t.FontFamily,
		titleSize:    t.TitleFontSize,
		subtitleSize: t.SubtitleFontSize,
		bodySize:     t.BodyFontSize,
	}
}
