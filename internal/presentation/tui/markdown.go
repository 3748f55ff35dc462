package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
)

// Markdown formats p as a markdown document, one section per slide.
func Markdown(p *domain.Presentation) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", escape(p.Title))
	if p.Subtitle != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", escape(p.Subtitle))
	}

	for i, slide := range p.Slides {
		fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, escape(slide.Title))

		if slide.Type == domain.SlideTypeTable {
			writeTable(&sb, slide)
		} else {
			for _, b := range slide.Bullets {
				fmt.Fprintf(&sb, "- %s\n", escape(b))
			}
			if len(slide.Bullets) > 0 {
				sb.WriteString("\n")
			}
		}

		if slide.VisualNotes != "" {
			fmt.Fprintf(&sb, "> Visual: %s\n\n", escape(slide.VisualNotes))
		}
		if slide.Notes != "" {
			fmt.Fprintf(&sb, "> Notes: %s\n\n", escape(slide.Notes))
		}
	}

	return sb.String()
}

func writeTable(sb *strings.Builder, slide domain.Slide) {
	cols := slide.Columns()
	if cols == 0 {
		return
	}

	row := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = escape(cells[i])
			}
			fmt.Fprintf(sb, " %s |", strings.ReplaceAll(cell, "|", "\\|"))
		}
		sb.WriteString("\n")
	}

	row(slide.Header())
	sb.WriteString("|" + strings.Repeat(" --- |", cols) + "\n")
	for _, r := range slide.Body() {
		row(r)
	}
	sb.WriteString("\n")
}

// escape keeps model text from opening markdown constructs across lines.
func escape(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
