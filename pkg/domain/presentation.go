package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SlideType classifies how a slide's content is shaped.
type SlideType string

const (
	SlideTypeTitle   SlideType = "title"
	SlideTypeContent SlideType = "content"
	SlideTypeTable   SlideType = "table"
)

// SlideTypes lists every accepted slide type.
var SlideTypes = []SlideType{SlideTypeTitle, SlideTypeContent, SlideTypeTable}

// Valid reports whether t is one of SlideTypes.
func (t SlideType) Valid() bool {
	switch t {
	case SlideTypeTitle, SlideTypeContent, SlideTypeTable:
		return true
	}
	return false
}

// Layout is the arrangement hint a renderer uses for a slide.
type Layout string

const (
	LayoutCentered Layout = "centered"
	LayoutSplit    Layout = "split"
	LayoutTable    Layout = "table"
)

// Layouts lists every accepted layout.
var Layouts = []Layout{LayoutCentered, LayoutSplit, LayoutTable}

// Valid reports whether l is one of Layouts.
func (l Layout) Valid() bool {
	switch l {
	case LayoutCentered, LayoutSplit, LayoutTable:
		return true
	}
	return false
}

// Slide is a single page of a presentation.
// Bullets is used by title and content slides, Rows by table slides (row 0 is the header).
type Slide struct {
	Title       string
	Type        SlideType
	Layout      Layout
	Bullets     []string
	Rows        [][]string
	VisualNotes string
	Notes       string
}

// Header returns the header row of a table slide.
func (s Slide) Header() []string {
	if len(s.Rows) == 0 {
		return nil
	}
	return s.Rows[0]
}

// Body returns the data rows of a table slide.
func (s Slide) Body() [][]string {
	if len(s.Rows) < 2 {
		return nil
	}
	return s.Rows[1:]
}

// Columns returns the widest row length of a table slide.
func (s Slide) Columns() int {
	cols := 0
	for _, row := range s.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

type slideJSON struct {
	Title       string    `json:"title"`
	Type        SlideType `json:"type"`
	Layout      Layout    `json:"layout"`
	Content     any       `json:"content"`
	VisualNotes string    `json:"visual_notes,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// MarshalJSON emits the outline shape: content is a list of strings,
// or a list of rows for table slides.
func (s Slide) MarshalJSON() ([]byte, error) {
	out := slideJSON{
		Title:       s.Title,
		Type:        s.Type,
		Layout:      s.Layout,
		VisualNotes: s.VisualNotes,
		Notes:       s.Notes,
	}
	if s.Type == SlideTypeTable {
		rows := s.Rows
		if rows == nil {
			rows = [][]string{}
		}
		out.Content = rows
	} else {
		bullets := s.Bullets
		if bullets == nil {
			bullets = []string{}
		}
		out.Content = bullets
	}
	return json.Marshal(out)
}

// Presentation is the canonical, validated deck handed to renderers.
type Presentation struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Theme    Theme   `json:"theme"`
	Slides   []Slide `json:"slides"`
}

// Validate checks the invariants every built presentation must hold.
func (p *Presentation) Validate() error {
	if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Subtitle) == "" {
		return ErrMissingTitle
	}
	if len(p.Slides) == 0 {
		return ErrNoSlides
	}
	for i, s := range p.Slides {
		if !s.Type.Valid() {
			return fmt.Errorf("slide %d: unknown type %q", i, s.Type)
		}
		if !s.Layout.Valid() {
			return fmt.Errorf("slide %d: unknown layout %q", i, s.Layout)
		}
	}
	return nil
}
