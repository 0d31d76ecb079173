package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldSignificant(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		initial any
		want    bool
	}{
		{"plain string", "hello", "", true},
		{"empty string", "", "", false},
		{"whitespace only", "   \n", "", false},
		{"empty editor markup", "<p><br></p>", "", false},
		{"markup with text", "<p>note</p>", "", true},
		{"nil value", nil, "", false},
		{"empty slice", []any{}, nil, false},
		{"populated slice", []any{"tag"}, nil, true},
		{"empty map", map[string]any{}, nil, false},
		{"populated map", map[string]any{"k": 1}, nil, true},
		{"bool unchanged", false, false, false},
		{"bool changed", true, false, true},
		{"number unchanged", 3, 3, false},
		{"number changed", 5, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldSignificant(tt.value, tt.initial))
		})
	}
}

func TestSignificantIsLogicalOr(t *testing.T) {
	initial := map[string]any{"title": "", "body": "", "tags": []any{}}

	assert.False(t, significant(map[string]any{"title": "", "body": "", "tags": []any{}}, initial))
	assert.True(t, significant(map[string]any{"title": "", "body": "x", "tags": []any{}}, initial))
	assert.True(t, significant(map[string]any{"title": "", "body": "", "tags": []any{"go"}}, initial))
}
