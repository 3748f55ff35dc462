package outline

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var errNotObject = errors.New("JSON value is not an object")

var (
	// MaxInputSize bounds the model output Extract will scan.
	MaxInputSize = 1 << 20
	// ErrInputTooLarge is the Last error of an ExtractionError for oversized input.
	ErrInputTooLarge = errors.New("model output exceeds maximum size")
)

// maxCandidates bounds the balanced-brace objects tried after the fast paths.
const maxCandidates = 64

// Extract locates the first structurally valid outline in raw model output.
//
// It tries, in order: raw as is, raw after Repair, then every balanced-brace
// object found in raw (each repaired). The first candidate that parses to an
// object and passes ValidateStructure wins. Input longer than MaxInputSize
// is rejected without scanning.
func Extract(raw string) (Candidate, error) {
	if len(raw) > MaxInputSize {
		return nil, &ExtractionError{
			Reason: ReasonNoValidJSON,
			Last:   fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(raw), MaxInputSize),
		}
	}

	attempts := 0
	var last error

	try := func(text string) (Candidate, bool) {
		attempts++
		c, err := parseObject(text)
		if err == nil {
			err = ValidateStructure(c)
		}
		if err != nil {
			last = err
			return nil, false
		}
		return c, true
	}

	if c, ok := try(raw); ok {
		return c, nil
	}
	if repaired := Repair(raw); repaired != raw {
		if c, ok := try(repaired); ok {
			return c, nil
		}
	}
	objects := Objects(raw)
	if len(objects) > maxCandidates {
		objects = objects[:maxCandidates]
	}
	for _, obj := range objects {
		if c, ok := try(Repair(obj)); ok {
			return c, nil
		}
	}

	return nil, &ExtractionError{Reason: ReasonNoValidJSON, Attempts: attempts, Last: last}
}

func parseObject(text string) (Candidate, error) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", errNotObject, v)
	}
	return Candidate(m), nil
}

// Objects returns every balanced-brace substring of text, ordered by start offset.
//
// Text is scanned once. Quotes only open string literals inside an object, so
// stray quotes in surrounding prose do not hide the JSON, and braces inside
// string literals do not count.
func Objects(text string) []string {
	type span struct{ start, end int }

	var (
		open     []int
		spans    []span
		inString bool
		escaped  bool
	)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if len(open) == 0 {
				continue
			}
			start := open[len(open)-1]
			open = open[:len(open)-1]
			spans = append(spans, span{start, i + 1})
		}
	}

	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.start, b.start) })
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = text[sp.start:sp.end]
	}
	return out
}
