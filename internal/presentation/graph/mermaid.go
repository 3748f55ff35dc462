package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
)

// MindmapOptions controls how much of each slide the mindmap shows.
type MindmapOptions struct {
	// MaxBullets caps the leaves under each slide. Zero means all.
	MaxBullets int
	// Notes adds speaker notes as a leaf.
	Notes bool
}

// GenerateMindmap produces a Mermaid mindmap of p.
// Shapes follow the slide type:
// - Root (the deck): ((Circle))
// - Title slide: (Rounded)
// - Table slide: [[Subroutine]] with the header row as its leaf
// - Content slide: [Rectangle]
func GenerateMindmap(p *domain.Presentation, opts *MindmapOptions) string {
	if opts == nil {
		opts = &MindmapOptions{}
	}

	var sb strings.Builder
	sb.WriteString("mindmap\n")
	fmt.Fprintf(&sb, "  root((%s))\n", quote(p.Title))

	for i, slide := range p.Slides {
		id := fmt.Sprintf("s%d", i+1)

		opener, closer := "[", "]"
		switch slide.Type {
		case domain.SlideTypeTitle:
			opener, closer = "(", ")"
		case domain.SlideTypeTable:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s%s%s\n", id, opener, quote(fmt.Sprintf("%d. %s", i+1, slide.Title)), closer)

		for _, leaf := range leaves(slide, opts.MaxBullets) {
			fmt.Fprintf(&sb, "      %s\n", quote(leaf))
		}
		if opts.Notes && slide.Notes != "" {
			fmt.Fprintf(&sb, "      %s\n", quote("Notes: "+slide.Notes))
		}
	}

	return sb.String()
}

func leaves(slide domain.Slide, max int) []string {
	var out []string
	if slide.Type == domain.SlideTypeTable {
		if header := slide.Header(); len(header) > 0 {
			out = append(out, strings.Join(header, " | "))
		}
		if body := slide.Body(); len(body) > 0 {
			out = append(out, fmt.Sprintf("%d rows", len(body)))
		}
		return out
	}

	out = slide.Bullets
	if max > 0 && len(out) > max {
		out = append(out[:max:max], fmt.Sprintf("+%d more", len(slide.Bullets)-max))
	}
	return out
}

// quote wraps s as a Mermaid markdown string, dropping characters that end it.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "`", "'")
	s = strings.Join(strings.Fields(s), " ")
	return "\"" + s + "\""
}
