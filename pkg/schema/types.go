package schema

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[string]").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// AnyType accepts every value, including nil.
type AnyType struct{}

func (t *AnyType) Name() string { return "any" }

func (t *AnyType) Validate(value any) error { return nil }

// StringType validates string values.
type StringType struct {
	nonEmpty bool
}

func (t *StringType) Name() string {
	if t.nonEmpty {
		return "non-empty string"
	}
	return "string"
}

func (t *StringType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if t.nonEmpty && strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// JSON numbers decode as float64
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
	nonEmpty bool
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	if value == nil {
		return fmt.Errorf("expected slice, got nil")
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	if t.nonEmpty && rv.Len() == 0 {
		return fmt.Errorf("must not be empty")
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// EnumType validates strings drawn from a closed set.
type EnumType struct {
	values []string
}

func (t *EnumType) Name() string {
	return "enum(" + strings.Join(t.values, "|") + ")"
}

func (t *EnumType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if !slices.Contains(t.values, s) {
		return fmt.Errorf("%q is not one of %s", s, strings.Join(t.values, ", "))
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// Any creates a validator that accepts every value.
func Any() Type { return &AnyType{} }

// String creates a string type validator.
func String() Type { return &StringType{} }

// NonEmptyString creates a validator for strings with non-whitespace content.
func NonEmptyString() Type { return &StringType{nonEmpty: true} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// NonEmptySlice is Slice with at least one element required.
func NonEmptySlice(elemType Type) Type {
	return &SliceType{elemType: elemType, nonEmpty: true}
}

// Enum creates a validator accepting exactly the given strings.
func Enum[S ~string](values ...S) Type {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return &EnumType{values: names}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
