package sqlgen

import (
	"fmt"
	"strings"

	"kontora/internal/schema"
)

// BuildDelete строит удаление строго по статической политике сущности —
// вызывающий выбрать стратегию не может.
func BuildDelete(e *schema.EntityConfig, id any) *Statement {
	var sb strings.Builder

	switch e.DeletePolicy {
	case schema.DeleteSoft:
		// мягкое удаление: строка остаётся, помечаем неактивной
		fmt.Fprintf(&sb, "UPDATE %s SET is_active = 0, updated_at = NOW() WHERE %s = %s;\n",
			e.Table, e.PrimaryKey(), formatID(id))
	case schema.DeleteObject:
		// удаляем объектную строку; строку сущности снесёт внешний FK-каскад
		fmt.Fprintf(&sb, "DELETE FROM objects WHERE id = %s;\n", formatID(id))
	default:
		fmt.Fprintf(&sb, "DELETE FROM %s WHERE %s = %s;\n",
			e.Table, e.PrimaryKey(), formatID(id))
	}

	// маркер для вызывающего
	sb.WriteString("SELECT 1 AS success;")

	return &Statement{
		Query:  sb.String(),
		Params: map[string]any{"id": id, "delete_policy": string(e.DeletePolicy)},
	}
}
