package casing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"fooBar", "foo_bar"},
		{"replaceExisting", "replace_existing"},
		{"includeChildProjects", "include_child_projects"},
		{"already_snake", "already_snake"},
		{"lower", "lower"},
		{"", ""},
		{"Title", "Title"},
		{"projectID", "project_i_d"},
		{"aB", "a_b"},
		{"ümlautÄnder", "ümlaut_änder"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, SnakeKey(tt.key))
		})
	}
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{
			name:     "flat mapping",
			input:    map[string]any{"fooBar": 1},
			expected: map[string]any{"foo_bar": 1},
		},
		{
			name:     "array of mappings",
			input:    map[string]any{"a": []any{map[string]any{"nestedKey": 2}}},
			expected: map[string]any{"a": []any{map[string]any{"nested_key": 2}}},
		},
		{
			name:     "array of primitives untouched",
			input:    map[string]any{"tags": []any{"a", "B"}},
			expected: map[string]any{"tags": []any{"a", "B"}},
		},
		{
			name:     "string values are not rewritten",
			input:    map[string]any{"searchQuery": "camelCaseValue"},
			expected: map[string]any{"search_query": "camelCaseValue"},
		},
		{
			name: "deep nesting",
			input: map[string]any{
				"outerKey": map[string]any{
					"innerKey": []any{[]any{map[string]any{"leafKey": nil}}},
				},
			},
			expected: map[string]any{
				"outer_key": map[string]any{
					"inner_key": []any{[]any{map[string]any{"leaf_key": nil}}},
				},
			},
		},
		{
			name:     "typed slice of mappings",
			input:    []map[string]any{{"fieldName": "title"}},
			expected: []any{map[string]any{"field_name": "title"}},
		},
		{
			name:     "string mapping",
			input:    map[string]string{"matchMode": "exact"},
			expected: map[string]string{"match_mode": "exact"},
		},
		{name: "string", input: "camelCase", expected: "camelCase"},
		{name: "number", input: 42.5, expected: 42.5},
		{name: "bool", input: true, expected: true},
		{name: "nil", input: nil, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Transform(tt.input))
		})
	}
}

func TestTransformIdempotent(t *testing.T) {
	snake := map[string]any{
		"start_date_min": "2024-01-01T00:00:00+00:00",
		"projects":       []any{"/projects/1", "/projects/2"},
		"filters":        []any{map[string]any{"field_name": "title"}},
	}

	once := Transform(snake)
	twice := Transform(once)

	assert.Equal(t, snake, once)
	assert.Equal(t, once, twice)

	mixed := map[string]any{"already_snake": 1, "camelCase": 2}
	assert.Equal(t, Transform(mixed), Transform(Transform(mixed)))
}

func TestTransformDoesNotMutateInput(t *testing.T) {
	input := map[string]any{
		"fooBar": map[string]any{"bazQux": 1},
		"list":   []any{map[string]any{"itemKey": true}},
	}

	_ = Transform(input)

	assert.Contains(t, input, "fooBar")
	assert.Contains(t, input["fooBar"], "bazQux")
	assert.Contains(t, input["list"].([]any)[0], "itemKey")
}

func TestTransformKeyCollision(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected any
	}{
		{
			name:     "snake key wins over camel key",
			input:    map[string]any{"fooBar": 1, "foo_bar": 2},
			expected: map[string]any{"foo_bar": 2},
		},
		{
			name:     "smallest source key wins between camel keys",
			input:    map[string]any{"a_bC": 1, "aB_c": 2},
			expected: map[string]any{"a_b_c": 2},
		},
		{
			name:     "string maps",
			input:    map[string]string{"fooBar": "camel", "foo_bar": "snake"},
			expected: map[string]string{"foo_bar": "snake"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// map iteration order varies, so repeat to catch flapping
			for i := 0; i < 50; i++ {
				assert.Equal(t, tt.expected, Transform(tt.input))
			}
		})
	}
}

type sampleOptions struct {
	Project         string     `json:"project,omitempty"`
	Title           string     `json:"title,omitempty"`
	ReplaceExisting bool       `json:"replaceExisting,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	Projects        []string   `json:"projects,omitempty"`
	Limit           *int       `json:"limit,omitempty"`
}

func TestEncode(t *testing.T) {
	t.Run("struct with camelCase tags", func(t *testing.T) {
		wire, err := Encode(sampleOptions{
			Project:         "/projects/123",
			Title:           "t",
			ReplaceExisting: true,
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"project":          "/projects/123",
			"title":            "t",
			"replace_existing": true,
		}, wire)
	})

	t.Run("numbers keep their exact form", func(t *testing.T) {
		limit := 25
		wire, err := Encode(&sampleOptions{Limit: &limit})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"limit": json.Number("25")}, wire)
	})

	t.Run("dates are ISO-8601 with offset", func(t *testing.T) {
		start := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))
		wire, err := Encode(&sampleOptions{StartDate: &start})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"start_date": "2024-03-01T09:30:00+01:00"}, wire)
	})

	t.Run("string arrays pass through", func(t *testing.T) {
		wire, err := Encode(&sampleOptions{Projects: []string{"/projects/1", "/projects/B"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"projects": []any{"/projects/1", "/projects/B"}}, wire)
	})

	t.Run("nil is absent", func(t *testing.T) {
		wire, err := Encode(nil)
		require.NoError(t, err)
		assert.Nil(t, wire)

		var opts *sampleOptions
		wire, err = Encode(opts)
		require.NoError(t, err)
		assert.Nil(t, wire)
	})

	t.Run("empty struct is an empty mapping", func(t *testing.T) {
		wire, err := Encode(&sampleOptions{})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{}, wire)
	})

	t.Run("generic map", func(t *testing.T) {
		wire, err := Encode(map[string]any{"hideArchived": true})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"hide_archived": true}, wire)
	})

	t.Run("unsupported value", func(t *testing.T) {
		_, err := Encode(make(chan int))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to encode")
	})
}

func TestEncodeMap(t *testing.T) {
	m, err := EncodeMap(&sampleOptions{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"title": "x"}, m)

	m, err = EncodeMap(nil)
	require.NoError(t, err)
	assert.Nil(t, m)

	empty, err := EncodeMap(&sampleOptions{})
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = EncodeMap([]any{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an object")
}
