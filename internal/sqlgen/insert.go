package sqlgen

import (
	"fmt"
	"strings"

	"kontora/internal/schema"
)

// BuildInsert выбирает один из двух взаимоисключающих алгоритмов вставки
// по флагу SharedPrimaryKey.
func BuildInsert(e *schema.EntityConfig, body, q map[string]any) *Statement {
	if e.SharedPrimaryKey {
		return buildSharedInsert(e, body, q)
	}
	return buildSimpleInsert(e, body, q)
}

// buildSharedInsert: вставка для сущностей с разделяемым первичным ключом —
// один скрипт-транзакция: строка в objects (object_type_id — подзапросом по
// коду типа), захват идентификатора в @new_id, строка сущности с тем же id,
// COMMIT и гидрированный re-select. Частичное создание — невалидное
// состояние, атомарность делегирована внешнему исполнителю.
func buildSharedInsert(e *schema.EntityConfig, body, q map[string]any) *Statement {
	status := 1
	if hasParam(body, "object_status_id") {
		if n, ok := intValue(body["object_status_id"]); ok {
			status = n
		}
	} else if hasParam(q, "object_status_id") {
		if n, ok := intValue(q["object_status_id"]); ok {
			status = n
		}
	}

	names, values := insertColumns(e, body, q)
	names = append([]string{e.PrimaryKey()}, names...)
	values = append([]string{"@new_id"}, values...)

	langExpr, _ := resolveLanguage(q)
	from, applied := buildFrom(e, langExpr)

	var sb strings.Builder
	sb.WriteString("START TRANSACTION;\n")
	fmt.Fprintf(&sb,
		"INSERT INTO objects (object_type_id, object_status_id, created_at) "+
			"VALUES ((SELECT id FROM object_types WHERE code = %s), %d, NOW());\n",
		QuoteString(e.ObjectTypeCode), status)
	sb.WriteString("SET @new_id = LAST_INSERT_ID();\n")
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES (%s);\n",
		e.Table, strings.Join(names, ", "), strings.Join(values, ", "))
	sb.WriteString("COMMIT;\n")

	// re-select нового объекта со всеми join'ами/переводами
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s.%s = @new_id;",
		buildSelectList(e), from, e.Alias, e.PrimaryKey())

	return &Statement{
		Query:            sb.String(),
		Params:           map[string]any{"object_status_id": status},
		TranslationJoins: applied,
	}
}

// buildSimpleInsert: прямая вставка для детальных сущностей + re-select
// по LAST_INSERT_ID().
func buildSimpleInsert(e *schema.EntityConfig, body, q map[string]any) *Statement {
	names, values := insertColumns(e, body, q)
	langExpr, _ := resolveLanguage(q)
	from, applied := buildFrom(e, langExpr)

	var sb strings.Builder
	fmt.Fprintf(&sb, "INSERT INTO %s (%s) VALUES (%s);\n",
		e.Table, strings.Join(names, ", "), strings.Join(values, ", "))
	fmt.Fprintf(&sb, "SELECT %s FROM %s WHERE %s.%s = LAST_INSERT_ID();",
		buildSelectList(e), from, e.Alias, e.PrimaryKey())

	return &Statement{
		Query:            sb.String(),
		Params:           map[string]any{},
		TranslationJoins: applied,
	}
}

// insertColumns собирает пары колонка/литерал: каждая колонка с переданным
// значением, кроме первичного ключа и таймстампов. created_at ставим сами,
// created_by — из user_id вызывающего (identity уже развёрнута снаружи).
func insertColumns(e *schema.EntityConfig, body, q map[string]any) (names, values []string) {
	for _, c := range e.Columns {
		if c.PrimaryKey || c.Name == "created_at" || c.Name == "updated_at" {
			continue
		}
		if c.Name == "created_by" || c.Name == "updated_by" {
			continue
		}
		v, ok := body[c.Name]
		if !ok || v == nil {
			continue
		}
		names = append(names, c.Name)
		values = append(values, FormatValue(v))
	}

	if e.HasColumn("created_at") {
		names = append(names, "created_at")
		values = append(values, "NOW()")
	}
	if uid, ok := userID(body, q); ok && e.HasColumn("created_by") {
		names = append(names, "created_by")
		values = append(values, fmt.Sprintf("%d", uid))
	}
	return names, values
}

func userID(body, q map[string]any) (int, bool) {
	if hasParam(body, "user_id") {
		if n, ok := intValue(body["user_id"]); ok {
			return n, true
		}
	}
	if hasParam(q, "user_id") {
		if n, ok := intValue(q["user_id"]); ok {
			return n, true
		}
	}
	return 0, false
}
