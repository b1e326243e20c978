package sqlgen

import (
	"fmt"
	"strings"

	"kontora/internal/schema"
)

// ==== Фрагменты: SELECT-список, FROM/JOIN, WHERE, ORDER BY, LIMIT ====

const objectsAlias = "obj"

// translationAlias: алиас join'а переводов для колонки, p + gender_code → p_gender_code
func translationAlias(e *schema.EntityConfig, col string) string {
	return e.Alias + "_" + col
}

// buildSelectList собирает список проекций.
// Для колонок-переводов дополнительно отдаём
// COALESCE(<tr>.text, <alias>.<col>) AS <col без суффикса _code>:
// есть перевод — вернётся текст, нет — сырой код.
func buildSelectList(e *schema.EntityConfig) string {
	var parts []string
	for _, col := range e.SelectColumns {
		parts = append(parts, e.Alias+"."+col)
		if e.IsTranslated(col) {
			tr := translationAlias(e, col)
			parts = append(parts, fmt.Sprintf(
				"COALESCE(%s.text, %s.%s) AS %s",
				tr, e.Alias, col, strings.TrimSuffix(col, "_code"),
			))
		}
	}
	if e.SharedPrimaryKey {
		parts = append(parts, objectsAlias+".object_status_id")
	}
	for _, j := range e.Joins {
		for _, col := range j.Columns {
			parts = append(parts, j.Alias+"."+col)
		}
	}
	return strings.Join(parts, ", ")
}

// buildFrom собирает FROM: таблица + статические join'ы из конфига как есть,
// для shared-PK сущностей — объектная таблица, затем по одному LEFT JOIN
// переводов на каждую колонку из translationColumns.
// Возвращает также список применённых алиасов переводов (debug-конверт).
func buildFrom(e *schema.EntityConfig, langExpr string) (string, []string) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", e.Table, e.Alias)

	for _, j := range e.Joins {
		fmt.Fprintf(&sb, " %s JOIN %s %s ON %s", j.Kind, j.Table, j.Alias, j.On)
	}

	if e.SharedPrimaryKey {
		fmt.Fprintf(&sb, " INNER JOIN objects %s ON %s.id = %s.%s",
			objectsAlias, objectsAlias, e.Alias, e.PrimaryKey())
	}

	var applied []string
	for _, col := range e.TranslationColumns {
		tr := translationAlias(e, col)
		fmt.Fprintf(&sb,
			" LEFT JOIN translations %s ON %s.code = %s.%s AND %s.language_id = %s",
			tr, tr, e.Alias, col, tr, langExpr)
		applied = append(applied, tr)
	}
	return sb.String(), applied
}

// buildWhere собирает предикаты в фиксированном порядке:
// поиск → is_active → статус объекта → object_id. Всё через AND.
func buildWhere(e *schema.EntityConfig, q map[string]any, lp ListParams) string {
	var conds []string

	// (a) поиск: OR по searchColumns
	if lp.Search != "" && len(e.SearchColumns) > 0 {
		like := make([]string, 0, len(e.SearchColumns))
		for _, col := range e.SearchColumns {
			like = append(like, fmt.Sprintf("%s.%s LIKE %s", e.Alias, col, quoteLike(lp.Search)))
		}
		conds = append(conds, "("+strings.Join(like, " OR ")+")")
	}

	// (b) soft delete: по умолчанию скрываем is_active = 0
	if e.DeletePolicy == schema.DeleteSoft {
		active := 1
		if hasParam(q, "is_active") {
			active = boolishParam(q["is_active"])
		}
		conds = append(conds, fmt.Sprintf("%s.is_active = %d", e.Alias, active))
	}

	// (c) статус обобщённого объекта
	if e.SharedPrimaryKey && hasParam(q, "object_status_id") {
		if n, ok := intValue(q["object_status_id"]); ok {
			conds = append(conds, fmt.Sprintf("%s.object_status_id = %d", objectsAlias, n))
		}
	}

	// (d) привязка детальной сущности к объекту
	if e.IsDetail() && hasParam(q, "object_id") {
		if n, ok := intValue(q["object_id"]); ok {
			conds = append(conds, fmt.Sprintf("%s.object_id = %d", e.Alias, n))
		}
	}

	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ")
}

// buildOrder: сортировка из запроса либо умолчания сущности.
// Для заметок — жёсткое правило: закреплённые всегда первыми.
func buildOrder(e *schema.EntityConfig, lp ListParams) string {
	col := e.DefaultSortColumn
	if lp.SortBy != "" && e.HasColumn(lp.SortBy) {
		col = lp.SortBy
	}
	dir := e.DefaultSortDir
	if lp.SortDir != "" {
		dir = lp.SortDir
	}
	if col == "" {
		col = e.PrimaryKey()
	}
	if e.PinnedSort {
		return fmt.Sprintf("ORDER BY %s.is_pinned DESC, %s.%s %s", e.Alias, e.Alias, col, dir)
	}
	return fmt.Sprintf("ORDER BY %s.%s %s", e.Alias, col, dir)
}

func buildLimit(lp ListParams) string {
	return fmt.Sprintf("LIMIT %d OFFSET %d", lp.PerPage, lp.Offset)
}

// quoteLike: литерал для LIKE '%...%' с тем же порядком экранирования,
// что и в QuoteString
func quoteLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'%" + s + "%'"
}

// boolishParam: true/1/"1"/"true" → 1, остальное → 0
func boolishParam(v any) int {
	switch t := v.(type) {
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		if n, ok := intValue(v); ok && n != 0 {
			return 1
		}
		if s, ok := v.(string); ok && strings.EqualFold(strings.TrimSpace(s), "true") {
			return 1
		}
		return 0
	}
}
