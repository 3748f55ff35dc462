// Package schema validates loosely typed, JSON-decoded data against a declared shape.
//
// A Schema maps field names to Types. Values decoded by encoding/json arrive as
// string, float64, bool, []any and map[string]any, so every built-in Type accepts
// those representations as well as their typed Go counterparts.
//
// Basic usage:
//
//	outline := schema.Schema{
//	    "title":    schema.NonEmptyString(),
//	    "subtitle": schema.NonEmptyString(),
//	    "slides":   schema.NonEmptySlice(schema.Any()),
//	}
//
//	if err := schema.Validate(outline, data); err != nil {
//	    for _, missing := range schema.MissingFields(err) {
//	        // ...
//	    }
//	}
//
// Validate always reports every failing field, ordered by field name, as an
// *AggregateError of *ValidationError values. Custom validators cover rules the
// built-ins do not:
//
//	hexColor := schema.Custom("hex_color", func(v any) error {
//	    s, ok := v.(string)
//	    if !ok || !strings.HasPrefix(s, "#") {
//	        return fmt.Errorf("expected #RRGGBB")
//	    }
//	    return nil
//	})
//
// The package depends only on the standard library.
package schema
