package outline

import (
	"fmt"
	"strings"

	"github.com/aretw0/deckgen/pkg/domain"
	"github.com/aretw0/deckgen/pkg/schema"
)

var structureSchema = schema.Schema{
	FieldTitle:    schema.NonEmptyString(),
	FieldSubtitle: schema.NonEmptyString(),
	FieldSlides:   schema.NonEmptySlice(schema.Any()),
}

// slideRule is one Tier 2 check. Rules run in order and the first failure wins.
type slideRule struct {
	field string
	kind  Kind
	typ   func(slide map[string]any) schema.Type
}

var slideRules = []slideRule{
	{FieldTitle, KindInvalidSlideTitle, fixed(schema.NonEmptyString())},
	{FieldType, KindInvalidSlideType, fixed(schema.Enum(domain.SlideTypes...))},
	{FieldLayout, KindInvalidSlideLayout, fixed(schema.Enum(domain.Layouts...))},
	{FieldContent, KindInvalidTableContent, onlyTables(schema.Slice(schema.Slice(schema.Any())))},
	{FieldContent, KindInvalidSlideContent, exceptTables(schema.Slice(schema.String()))},
}

func fixed(t schema.Type) func(map[string]any) schema.Type {
	return func(map[string]any) schema.Type { return t }
}

func onlyTables(t schema.Type) func(map[string]any) schema.Type {
	return func(slide map[string]any) schema.Type {
		if slide[FieldType] == string(domain.SlideTypeTable) {
			return t
		}
		return nil
	}
}

func exceptTables(t schema.Type) func(map[string]any) schema.Type {
	return func(slide map[string]any) schema.Type {
		if slide[FieldType] == string(domain.SlideTypeTable) {
			return nil
		}
		return t
	}
}

// ValidateStructure is the Tier 1 check: title and subtitle are non-empty
// strings and slides is a non-empty list.
func ValidateStructure(c Candidate) error {
	err := schema.Validate(structureSchema, c)
	if err == nil {
		return nil
	}

	missing := schema.MissingFields(err)
	reason := err.Error()
	if len(missing) > 0 {
		reason = "missing required fields: " + strings.Join(missing, ", ")
	}
	return &ValidationError{
		Kind:          KindStructure,
		Index:         -1,
		Reason:        reason,
		MissingFields: missing,
		Err:           err,
	}
}

// ValidateSlides is the Tier 2 check. Slides are checked in order and the
// first violation aborts validation; no partial result is produced.
func ValidateSlides(c Candidate) error {
	if err := ValidateStructure(c); err != nil {
		return err
	}

	for i, raw := range c.Slides() {
		slide, ok := raw.(map[string]any)
		if !ok {
			return &ValidationError{
				Kind:   KindInvalidSlide,
				Index:  i,
				Reason: fmt.Sprintf("expected object, got %T", raw),
			}
		}
		if err := validateSlide(i, slide); err != nil {
			return err
		}
	}
	return nil
}

func validateSlide(index int, slide map[string]any) error {
	for _, rule := range slideRules {
		typ := rule.typ(slide)
		if typ == nil {
			continue
		}
		err := schema.ValidateFields(schema.Schema{rule.field: typ}, slide, rule.field)
		if err == nil {
			continue
		}
		return &ValidationError{
			Kind:   rule.kind,
			Index:  index,
			Reason: err.Error(),
			Err:    err,
		}
	}
	return nil
}
