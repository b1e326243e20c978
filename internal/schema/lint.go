package schema

import (
	"fmt"
	"strings"
)

type Issue struct {
	Entity  string `json:"entity"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Lint проверяет базовые противоречия в конфигурациях реестра.
// Запускается на старте и по GET /api/meta/lint.
func (r *Registry) Lint() []Issue {
	var issues []Issue

	for _, key := range r.Keys() {
		e := r.entities[key]

		if e.Table == "" || e.Alias == "" {
			issues = append(issues, Issue{
				Entity: key, Code: "table_or_alias_empty",
				Message: "entity must define table and alias",
			})
		}
		if len(e.Columns) == 0 {
			issues = append(issues, Issue{
				Entity: key, Code: "no_columns",
				Message: "entity has no columns",
			})
			continue
		}
		if !e.HasColumn(e.PrimaryKey()) {
			issues = append(issues, Issue{
				Entity: key, Field: e.PrimaryKey(), Code: "primary_key_missing",
				Message: "entity has no primary-key column",
			})
		}
		if !e.DeletePolicy.Valid() {
			issues = append(issues, Issue{
				Entity: key, Code: "delete_policy_unknown",
				Message: fmt.Sprintf("unknown delete policy %q (allowed: hard|soft|object)", e.DeletePolicy),
			})
		}
		if e.DeletePolicy == DeleteSoft && !e.HasColumn("is_active") {
			issues = append(issues, Issue{
				Entity: key, Code: "soft_delete_without_is_active",
				Message: "soft delete requires an is_active column",
			})
		}
		if e.DeletePolicy == DeleteObject && !e.SharedPrimaryKey {
			issues = append(issues, Issue{
				Entity: key, Code: "object_delete_without_shared_pk",
				Message: "object-cascade delete only makes sense for shared-primary-key entities",
			})
		}
		if e.SharedPrimaryKey && strings.TrimSpace(e.ObjectTypeCode) == "" {
			issues = append(issues, Issue{
				Entity: key, Code: "object_type_code_empty",
				Message: "shared-primary-key entity must define object_type_code",
			})
		}

		// валидность типов колонок
		for _, c := range e.Columns {
			if !c.Type.Valid() {
				issues = append(issues, Issue{
					Entity: key, Field: c.Name, Code: "column_type_unknown",
					Message: fmt.Sprintf("unknown column type %q", c.Type),
				})
			}
		}

		// select/search/sort должны ссылаться на реальные колонки
		for _, name := range e.SelectColumns {
			if !e.HasColumn(name) {
				issues = append(issues, Issue{
					Entity: key, Field: name, Code: "select_column_unknown",
					Message: "select column does not exist",
				})
			}
		}
		for _, name := range e.SearchColumns {
			c, ok := e.Column(name)
			if !ok {
				issues = append(issues, Issue{
					Entity: key, Field: name, Code: "search_column_unknown",
					Message: "search column does not exist",
				})
				continue
			}
			if c.Type != TypeString && c.Type != TypeText {
				issues = append(issues, Issue{
					Entity: key, Field: name, Code: "search_column_not_text",
					Message: fmt.Sprintf("search column has type %q, LIKE needs string/text", c.Type),
				})
			}
		}
		if e.DefaultSortColumn != "" && !e.HasColumn(e.DefaultSortColumn) {
			issues = append(issues, Issue{
				Entity: key, Field: e.DefaultSortColumn, Code: "sort_column_unknown",
				Message: "default sort column does not exist",
			})
		}

		// колонки переводов: существуют и заканчиваются на _code
		for _, name := range e.TranslationColumns {
			if !e.HasColumn(name) {
				issues = append(issues, Issue{
					Entity: key, Field: name, Code: "translation_column_unknown",
					Message: "translation column does not exist",
				})
			}
			if !strings.HasSuffix(name, "_code") {
				issues = append(issues, Issue{
					Entity: key, Field: name, Code: "translation_column_suffix",
					Message: "translation column must end with _code",
				})
			}
		}

		// статические join'ы: полный вид и известный kind, иначе в FROM
		// уйдёт битый фрагмент
		for _, j := range e.Joins {
			if j.Table == "" || j.Alias == "" || strings.TrimSpace(j.On) == "" {
				issues = append(issues, Issue{
					Entity: key, Field: j.Table, Code: "join_incomplete",
					Message: "join must define table, alias and on",
				})
			}
			if !j.Kind.Valid() {
				issues = append(issues, Issue{
					Entity: key, Field: j.Alias, Code: "join_kind_unknown",
					Message: fmt.Sprintf("unknown join kind %q (allowed: INNER|LEFT|RIGHT)", j.Kind),
				})
			}
		}

		if e.PinnedSort && !e.HasColumn("is_pinned") {
			issues = append(issues, Issue{
				Entity: key, Field: "is_pinned", Code: "pinned_sort_without_column",
				Message: "pinned sort requires an is_pinned column",
			})
		}
	}

	return issues
}
