package llm

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
)

// SystemPrompt describes the outline schema and formatting rules.
const SystemPrompt = `You are a professional presentation designer. Create a comprehensive presentation outline following this exact structure:
{
    "title": "Main presentation title",
    "subtitle": "A compelling subtitle",
    "theme": {
        "primary_color": "#0072C6",
        "secondary_color": "#404040",
        "accent_color": "#00B294",
        "background_color": "#FFFFFF"
    },
    "slides": [
        {
            "title": "Slide title",
            "type": "title|content|table",
            "layout": "centered|split|table",
            "content": ["Point 1", "Point 2", "Point 3"],
            "visual_notes": "Visual suggestion",
            "notes": "Speaker notes"
        }
    ]
}

IMPORTANT GUIDELINES:
1. Return ONLY valid JSON
2. Always use lists for slide content
3. Create as many slides as needed to cover the topic comprehensively
4. Each content slide should have 2-5 bullet points
5. Keep titles clear and descriptive
6. For complex topics:
   - Start with an overview/agenda slide
   - Group related concepts into separate slides
   - Include comparison slides where relevant
   - End with summary/conclusion slides
7. Use visual_notes field to suggest diagrams, charts, or images
8. Include detailed speaker notes for complex points
9. For comparison or data-heavy content:
   - Set type to "table" and layout to "table" for table slides
   - Make content a list of rows, the first row holding the column headers
   - Keep tables clear and well-structured
   - Use headers that clearly describe the columns`

// UserPrompt embeds the topic in the user message.
func UserPrompt(topic string) string {
	return fmt.Sprintf("Create a detailed and comprehensive presentation about: %s. Include all necessary sections and explanations.", topic)
}

// Messages builds the chat messages for req.
func Messages(req Request) []*schema.Message {
	system := SystemPrompt
	if style := strings.TrimSpace(req.Style); style != "" {
		system += "\n\nSTYLE:\n" + style
	}
	return []*schema.Message{
		schema.SystemMessage(system),
		schema.UserMessage(UserPrompt(req.Topic)),
	}
}
