package filter

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRows() []map[string]any {
	return []map[string]any{
		{"title": "Code review", "duration": float64(7200), "project": map[string]any{"self": "/projects/1", "title_chain": []any{"Client", "Website"}}},
		{"title": "Standup", "duration": float64(900), "project": "/projects/2"},
		{"title": "Review notes", "duration": float64(5400), "project": map[string]any{"self": "/projects/3", "title": "Internal"}},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `hours(duration) > 1`,
		},
		{
			name:        "empty expression",
			expression:  "",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:        "whitespace only",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `includes(title, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "non-boolean literal",
			expression: `1 + 2`,
			wantErr:    true,
		},
		{
			name:       "bare duration column",
			expression: `duration > 3600`,
		},
		{
			name:       "complex expression",
			expression: `hours(duration) >= 1 and (includes(title, "review") or projectTitle startsWith "Client")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				require.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			require.NotNil(t, f)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestMatch(t *testing.T) {
	rows := testRows()

	tests := []struct {
		name       string
		expression string
		row        map[string]any
		want       bool
	}{
		{
			name:       "hours helper",
			expression: `hours(duration) >= 2`,
			row:        rows[0],
			want:       true,
		},
		{
			name:       "hours below threshold",
			expression: `hours(duration) >= 2`,
			row:        rows[1],
			want:       false,
		},
		{
			name:       "duration column compared directly",
			expression: `duration > 3600`,
			row:        rows[0],
			want:       true,
		},
		{
			name:       "duration column below threshold",
			expression: `duration > 3600`,
			row:        rows[1],
			want:       false,
		},
		{
			name:       "case-insensitive includes",
			expression: `includes(title, "REVIEW")`,
			row:        rows[2],
			want:       true,
		},
		{
			name:       "project title from chain",
			expression: `projectTitle == "Client ▸ Website"`,
			row:        rows[0],
			want:       true,
		},
		{
			name:       "project title from reference",
			expression: `projectTitle == "/projects/2"`,
			row:        rows[1],
			want:       true,
		},
		{
			name:       "project title from title",
			expression: `projectTitle == "Internal"`,
			row:        rows[2],
			want:       true,
		},
		{
			name:       "whole row",
			expression: `row.title == "Standup"`,
			row:        rows[1],
			want:       true,
		},
		{
			name:       "missing column is nil",
			expression: `notes == nil`,
			row:        rows[0],
			want:       true,
		},
		{
			name:       "json number duration",
			expression: `hours(duration) == 0.5`,
			row:        map[string]any{"duration": json.Number("1800")},
			want:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(tt.row)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchEvaluationError(t *testing.T) {
	f, err := Compile(`title > 3`)
	require.NoError(t, err)

	_, err = f.Match(map[string]any{"title": "Standup"})
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, -1, evalErr.Row)
	assert.Equal(t, "title > 3", evalErr.Expression)
	assert.NotNil(t, evalErr.Err)
}

func TestApply(t *testing.T) {
	f, err := Compile(`hours(duration) >= 1.5`)
	require.NoError(t, err)

	got, err := f.Apply(testRows())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Code review", got[0]["title"])
	assert.Equal(t, "Review notes", got[1]["title"])

	none, err := f.Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestApplyStopsAtFailingRow(t *testing.T) {
	f, err := Compile(`duration > 1000`)
	require.NoError(t, err)

	rows := testRows()
	rows[1]["duration"] = "soon"

	got, err := f.Apply(rows)
	require.Error(t, err)
	assert.Nil(t, got)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, 1, evalErr.Row)
	assert.Contains(t, err.Error(), "row 1")
}

func TestCompilerCache(t *testing.T) {
	c := NewCompiler(WithCache(2))

	first, err := c.Compile(`hours(duration) > 1`)
	require.NoError(t, err)
	again, err := c.Compile(`  hours(duration) > 1  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, c.Size())

	_, err = c.Compile(`duration > 0`)
	require.NoError(t, err)
	_, err = c.Compile(`duration > 1`)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Size())

	evicted, err := c.Compile(`hours(duration) > 1`)
	require.NoError(t, err)
	assert.NotSame(t, first, evicted)
}

func TestCompilerWithoutCache(t *testing.T) {
	c := NewCompiler(WithCache(0))

	a, err := c.Compile(`duration > 0`)
	require.NoError(t, err)
	b, err := c.Compile(`duration > 0`)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, 0, c.Size())
}

func TestHours(t *testing.T) {
	assert.Equal(t, 2.0, hours(float64(7200)))
	assert.Equal(t, 1.0, hours(3600))
	assert.Equal(t, 0.25, hours(int64(900)))
	assert.Equal(t, 0.0, hours("x"))
	assert.Equal(t, 0.0, hours(json.Number("nope")))
	assert.Equal(t, 0.0, hours(nil))
}
