package sqlgen

import (
	"fmt"
	"strconv"

	"kontora/internal/schema"
)

// Statement — результат работы построителя: текст запроса (и, для
// списков, параллельный COUNT с теми же FROM/WHERE) плюс использованные
// значения пагинации/фильтров. Исполнение — забота внешнего слоя.
type Statement struct {
	Query            string
	CountQuery       string
	Params           map[string]any
	TranslationJoins []string
}

// BuildSelect строит списочный SELECT + COUNT для метаданных пагинации.
func BuildSelect(e *schema.EntityConfig, q map[string]any) *Statement {
	langExpr, langSource := resolveLanguage(q)
	lp := parseListParams(q)

	from, applied := buildFrom(e, langExpr)
	where := buildWhere(e, q, lp)

	query := "SELECT " + buildSelectList(e) + " FROM " + from
	count := "SELECT COUNT(*) AS total FROM " + from
	if where != "" {
		query += " " + where
		count += " " + where
	}
	query += " " + buildOrder(e, lp) + " " + buildLimit(lp)

	params := map[string]any{
		"page":     lp.Page,
		"per_page": lp.PerPage,
		"offset":   lp.Offset,
		"language": langSource,
	}
	if lp.Search != "" {
		params["search"] = lp.Search
	}

	return &Statement{
		Query:            query,
		CountQuery:       count,
		Params:           params,
		TranslationJoins: applied,
	}
}

// BuildSelectByID — выборка одной записи: те же проекции и join'ы,
// но из фильтров остаётся только точное совпадение id.
func BuildSelectByID(e *schema.EntityConfig, id any, q map[string]any) *Statement {
	langExpr, langSource := resolveLanguage(q)
	from, applied := buildFrom(e, langExpr)

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s.%s = %s",
		buildSelectList(e), from, e.Alias, e.PrimaryKey(), formatID(id))

	return &Statement{
		Query:            query,
		Params:           map[string]any{"id": id, "language": langSource},
		TranslationJoins: applied,
	}
}

// formatID: числовые id не оборачиваем в кавычки (path-параметры приходят строками)
func formatID(id any) string {
	if n, ok := intValue(id); ok {
		return strconv.Itoa(n)
	}
	return FormatValue(id)
}
