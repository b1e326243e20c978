package sqlgen

import (
	"fmt"
	"strconv"
	"strings"
)

// ==== Пагинация ====

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type ListParams struct {
	Search  string
	Page    int
	PerPage int
	Offset  int
	SortBy  string
	SortDir string
}

// parseListParams читает search/page/per_page/sort_by/sort_dir из query.
// page прижимается к ≥1, per_page — к [1, MaxPerPage].
func parseListParams(q map[string]any) ListParams {
	page := intParam(q, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := intParam(q, "per_page", DefaultPerPage)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	dir := strings.ToUpper(strings.TrimSpace(stringParam(q, "sort_dir")))
	if dir != "ASC" && dir != "DESC" {
		dir = ""
	}

	return ListParams{
		Search:  strings.TrimSpace(stringParam(q, "search")),
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
		SortBy:  strings.TrimSpace(stringParam(q, "sort_by")),
		SortDir: dir,
	}
}

// ==== Чтение значений из параметров ====
//
// Параметры приходят как map[string]any (JSON-body либо query-строка),
// поэтому числа бывают float64, json-числами и строками.

func stringParam(q map[string]any, key string) string {
	v, ok := q[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func intParam(q map[string]any, key string, fallback int) int {
	v, ok := q[key]
	if !ok || v == nil {
		return fallback
	}
	if n, ok := intValue(v); ok {
		return n
	}
	return fallback
}

func intValue(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}

func hasParam(q map[string]any, key string) bool {
	v, ok := q[key]
	return ok && v != nil
}

// ==== Разрешение языка ====

// DefaultLanguageID — язык по умолчанию для join'ов переводов
const DefaultLanguageID = 1

// resolveLanguage вычисляет SQL-выражение идентификатора языка.
// Приоритет жёсткий: числовой language_id → language_code через подзапрос
// (регистронезависимо) → язык 1. Несуществующий language_code — не ошибка:
// join просто ничего не найдёт, и COALESCE вернёт сырой код.
func resolveLanguage(q map[string]any) (expr string, source string) {
	if hasParam(q, "language_id") {
		if n, ok := intValue(q["language_id"]); ok {
			return strconv.Itoa(n), "language_id"
		}
	}
	if code := strings.TrimSpace(stringParam(q, "language_code")); code != "" {
		return fmt.Sprintf(
			"(SELECT id FROM languages WHERE LOWER(code) = LOWER(%s) LIMIT 1)",
			QuoteString(code),
		), "language_code"
	}
	return strconv.Itoa(DefaultLanguageID), "default"
}
