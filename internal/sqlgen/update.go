package sqlgen

import (
	"fmt"
	"strings"

	"kontora/internal/schema"
)

// BuildUpdate выбирает протокол обновления: old/new-аудит для сущностей
// с trackChanges-колонками, COALESCE — для всех остальных.
func BuildUpdate(e *schema.EntityConfig, id any, body, q map[string]any) (*Statement, error) {
	if e.UsesAuditUpdate() {
		return buildAuditUpdate(e, id, body, q)
	}
	return buildCoalesceUpdate(e, id, body, q)
}

// buildCoalesceUpdate: частичное обновление.
// column = COALESCE(<литерал>, column) — переданный NULL значит «не трогать»,
// отсутствие и null неразличимы. Для shared-PK сущностей обновление идёт
// join'ом через objects, чтобы object_status_id менялся тем же стейтментом.
func buildCoalesceUpdate(e *schema.EntityConfig, id any, body, q map[string]any) (*Statement, error) {
	var sets []string
	for _, c := range e.Columns {
		// первичный ключ и следы создания не обновляются
		if c.PrimaryKey || c.Name == "created_at" || c.Name == "created_by" {
			continue
		}
		if c.Name == "updated_at" || c.Name == "updated_by" {
			continue
		}
		v, ok := body[c.Name]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s.%s = COALESCE(%s, %s.%s)",
			e.Alias, c.Name, FormatValue(v), e.Alias, c.Name))
	}
	if e.SharedPrimaryKey && hasParam(body, "object_status_id") {
		sets = append(sets, fmt.Sprintf("%s.object_status_id = COALESCE(%s, %s.object_status_id)",
			objectsAlias, FormatValue(body["object_status_id"]), objectsAlias))
	}

	sets = append(sets, fmt.Sprintf("%s.updated_at = NOW()", e.Alias))
	if uid, ok := userID(body, q); ok && e.HasColumn("updated_by") {
		sets = append(sets, fmt.Sprintf("%s.updated_by = %d", e.Alias, uid))
	}

	var sb strings.Builder
	if e.SharedPrimaryKey {
		fmt.Fprintf(&sb, "UPDATE %s %s INNER JOIN objects %s ON %s.id = %s.%s SET %s WHERE %s.%s = %s;\n",
			e.Table, e.Alias, objectsAlias, objectsAlias, e.Alias, e.PrimaryKey(),
			strings.Join(sets, ", "), e.Alias, e.PrimaryKey(), formatID(id))
	} else {
		fmt.Fprintf(&sb, "UPDATE %s %s SET %s WHERE %s.%s = %s;\n",
			e.Table, e.Alias, strings.Join(sets, ", "),
			e.Alias, e.PrimaryKey(), formatID(id))
	}

	sel := BuildSelectByID(e, id, q)
	sb.WriteString(sel.Query + ";")

	return &Statement{
		Query:            sb.String(),
		Params:           map[string]any{"id": id},
		TranslationJoins: sel.TranslationJoins,
	}, nil
}

// buildAuditUpdate: old/new-протокол. Пишутся только trackChanges-колонки,
// для которых пришло <col>_new — без COALESCE, безусловно. <col>_old по
// умолчанию не сверяется с текущим значением (аудит-метаданные для внешнего
// журнала); при AuditVerifyOld старые значения добавляются в WHERE — тогда
// отставший вызывающий обновит ноль строк.
func buildAuditUpdate(e *schema.EntityConfig, id any, body, q map[string]any) (*Statement, error) {
	var sets []string
	conds := []string{fmt.Sprintf("%s.%s = %s", e.Alias, e.PrimaryKey(), formatID(id))}
	params := map[string]any{"id": id}

	for _, c := range e.AuditColumns() {
		nv, ok := body[c.Name+"_new"]
		if !ok {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s.%s = %s", e.Alias, c.Name, FormatValue(nv)))
		params[c.Name+"_new"] = nv
		if ov, okOld := body[c.Name+"_old"]; okOld {
			params[c.Name+"_old"] = ov
			if e.AuditVerifyOld {
				conds = append(conds, fmt.Sprintf("%s.%s = %s", e.Alias, c.Name, FormatValue(ov)))
			}
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: entity %q expects <column>_new values", ErrNoColumns, e.Key)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "UPDATE %s %s SET %s WHERE %s;\n",
		e.Table, e.Alias, strings.Join(sets, ", "), strings.Join(conds, " AND "))

	sel := BuildSelectByID(e, id, q)
	sb.WriteString(sel.Query + ";")

	return &Statement{
		Query:            sb.String(),
		Params:           params,
		TranslationJoins: sel.TranslationJoins,
	}, nil
}
