/*
Package styles provides the presentation style presets selectable per request.

A style contributes two things: guidance appended to the LLM system prompt and the
theme used to fill gaps in the outline the model returns. Three styles are built in
(corporate, academic, minimal). More can be loaded from a directory of Markdown
files whose frontmatter carries the name, description and theme, and whose body is
the prompt guidance:

	---
	name: pitch
	description: Investor pitch deck
	theme:
	  primary_color: "#FF5A00"
	  font_family: Helvetica
	---
	Keep every slide to one claim backed by a number.

Files with the same name as a built-in style replace it.
*/
package styles
