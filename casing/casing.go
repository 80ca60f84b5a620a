package casing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// SnakeKey rewrites a single key: every uppercase letter after the first
// rune gets an underscore in front of it and is lowercased.
// Keys without uppercase letters come back unchanged.
func SnakeKey(key string) string {
	if !hasUpperAfterFirst(key) {
		return key
	}

	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func hasUpperAfterFirst(key string) bool {
	for i, r := range key {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// Transform returns a copy of v with every mapping key rewritten by
// SnakeKey, recursing into nested mappings and sequences. Scalars and
// unknown leaf types are returned as-is. v is never modified.
//
// When several keys of one mapping rewrite to the same key, a key already
// in snake_case wins, otherwise the lexically smallest source key does.
func Transform(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		out := make(map[string]any, len(t))
		sources := make(map[string]string, len(t))
		for k, val := range t {
			sk := SnakeKey(k)
			if prev, ok := sources[sk]; ok && !replaces(k, prev, sk) {
				continue
			}
			sources[sk] = k
			out[sk] = Transform(val)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Transform(val)
		}
		return out
	case []map[string]any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Transform(val)
		}
		return out
	case map[string]string:
		if t == nil {
			return t
		}
		out := make(map[string]string, len(t))
		sources := make(map[string]string, len(t))
		for k, val := range t {
			sk := SnakeKey(k)
			if prev, ok := sources[sk]; ok && !replaces(k, prev, sk) {
				continue
			}
			sources[sk] = k
			out[sk] = val
		}
		return out
	default:
		// strings, []string, numbers, booleans, nil
		return v
	}
}

// replaces reports whether source key k takes sk over from prev.
func replaces(k, prev, sk string) bool {
	if prev == sk {
		return false
	}
	return k == sk || k < prev
}

// Encode turns a caller option value into its wire form.
//
// nil, including a typed nil pointer, stays nil so that an absent query can
// be told apart from an empty one. Generic maps and slices are transformed
// directly; anything else is round-tripped through encoding/json first, so
// structs are keyed by their json tags.
func Encode(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		if t == nil {
			return nil, nil
		}
		return Transform(t), nil
	case []any:
		return Transform(t), nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("failed to decode %T: %w", v, err)
	}

	return Transform(generic), nil
}

// EncodeMap is Encode for values that must serialise to a JSON object,
// such as query parameter sets. A nil result means "no parameters".
func EncodeMap(v any) (map[string]any, error) {
	wire, err := Encode(v)
	if err != nil || wire == nil {
		return nil, err
	}

	m, ok := wire.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected an object for %T, got %T", v, wire)
	}
	return m, nil
}
