package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListParams(t *testing.T) {
	tests := []struct {
		name string
		q    map[string]any
		want ListParams
	}{
		{
			"defaults",
			map[string]any{},
			ListParams{Page: 1, PerPage: DefaultPerPage, Offset: 0},
		},
		{
			"page 2 per_page 10",
			map[string]any{"page": 2, "per_page": 10},
			ListParams{Page: 2, PerPage: 10, Offset: 10},
		},
		{
			// query-строка отдаёт значения строками
			"string numbers",
			map[string]any{"page": "3", "per_page": "15"},
			ListParams{Page: 3, PerPage: 15, Offset: 30},
		},
		{
			"page clamp low",
			map[string]any{"page": 0},
			ListParams{Page: 1, PerPage: DefaultPerPage, Offset: 0},
		},
		{
			"page clamp negative",
			map[string]any{"page": -5},
			ListParams{Page: 1, PerPage: DefaultPerPage, Offset: 0},
		},
		{
			"per_page clamp high",
			map[string]any{"per_page": 1000},
			ListParams{Page: 1, PerPage: MaxPerPage, Offset: 0},
		},
		{
			"per_page clamp low",
			map[string]any{"per_page": 0},
			ListParams{Page: 1, PerPage: 1, Offset: 0},
		},
		{
			"offset after clamp",
			map[string]any{"page": 4, "per_page": 500},
			ListParams{Page: 4, PerPage: MaxPerPage, Offset: 300},
		},
		{
			"search trimmed",
			map[string]any{"search": "  Doe "},
			ListParams{Search: "Doe", Page: 1, PerPage: DefaultPerPage},
		},
		{
			"sort dir normalized",
			map[string]any{"sort_by": "city", "sort_dir": "desc"},
			ListParams{Page: 1, PerPage: DefaultPerPage, SortBy: "city", SortDir: "DESC"},
		},
		{
			"sort dir garbage dropped",
			map[string]any{"sort_dir": "sideways"},
			ListParams{Page: 1, PerPage: DefaultPerPage},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseListParams(tt.q))
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		expr, source := resolveLanguage(map[string]any{})
		assert.Equal(t, "1", expr)
		assert.Equal(t, "default", source)
	})

	t.Run("language_id", func(t *testing.T) {
		expr, source := resolveLanguage(map[string]any{"language_id": 2})
		assert.Equal(t, "2", expr)
		assert.Equal(t, "language_id", source)
	})

	t.Run("language_code subquery", func(t *testing.T) {
		expr, source := resolveLanguage(map[string]any{"language_code": "de"})
		assert.Equal(t, "(SELECT id FROM languages WHERE LOWER(code) = LOWER('de') LIMIT 1)", expr)
		assert.Equal(t, "language_code", source)
	})

	t.Run("id beats code", func(t *testing.T) {
		expr, source := resolveLanguage(map[string]any{"language_id": 2, "language_code": "de"})
		assert.Equal(t, "2", expr)
		assert.Equal(t, "language_id", source)
	})

	t.Run("numeric string id", func(t *testing.T) {
		expr, _ := resolveLanguage(map[string]any{"language_id": "3"})
		assert.Equal(t, "3", expr)
	})

	t.Run("code escaped", func(t *testing.T) {
		expr, _ := resolveLanguage(map[string]any{"language_code": "d'e"})
		assert.Contains(t, expr, `LOWER('d\'e')`)
	})
}
