/*
Package domain contains the canonical presentation model produced by the deckgen pipeline.

Values in this package are only ever constructed from an outline that already passed
structural and per-slide validation, so consumers (renderers, HTTP responses, MCP tools)
can rely on the invariants below without re-checking them.

# Key Entities

  - Presentation: title, subtitle, exactly one Theme and a non-empty ordered list of Slides.
  - Theme: named colors and font settings, always fully populated.
  - Slide: a titled slide whose content shape depends on its SlideType.
  - SlideType / Layout: the closed enumerations accepted from the model.
*/
package domain
