package outline

// Field names of the outline shape.
const (
	FieldTitle       = "title"
	FieldSubtitle    = "subtitle"
	FieldTheme       = "theme"
	FieldSlides      = "slides"
	FieldType        = "type"
	FieldLayout      = "layout"
	FieldContent     = "content"
	FieldTableData   = "table_data"
	FieldHeaders     = "headers"
	FieldRows        = "rows"
	FieldVisualNotes = "visual_notes"
	FieldNotes       = "notes"
)

// Candidate is an outline decoded from untrusted text.
// It may miss fields, carry wrong types or contain unknown keys.
type Candidate map[string]any

// Slides returns the slides sequence, or nil when it is absent or not a list.
func (c Candidate) Slides() []any {
	slides, _ := c[FieldSlides].([]any)
	return slides
}

// Clone returns a deep copy of c. Only JSON container types are copied;
// other values are shared.
func (c Candidate) Clone() Candidate {
	if c == nil {
		return nil
	}
	return Candidate(cloneMap(c))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Candidate:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case [][]string:
		out := make([]any, len(t))
		for i, row := range t {
			out[i] = cloneValue(row)
		}
		return out
	default:
		return v
	}
}
